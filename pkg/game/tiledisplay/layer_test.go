package tiledisplay

import (
	"image/color"
	"testing"

	"tileview/pkg/engine/world"
)

func TestParseLayer(t *testing.T) {
	tests := []struct {
		in       string
		id       string
		tint     *color.NRGBA
		rotation world.Rotation
		wantErr  bool
	}{
		{in: "mon_zombie", id: "mon_zombie"},
		{in: "mon_zombie:ff0000", id: "mon_zombie", tint: &color.NRGBA{R: 255, A: 255}},
		{in: "mon_zombie:ff000080", id: "mon_zombie", tint: &color.NRGBA{R: 255, A: 128}},
		{in: "t_door@east", id: "t_door", rotation: world.East},
		{in: "t_door:00ff00ff@2", id: "t_door", tint: &color.NRGBA{G: 255, A: 255}, rotation: world.South},
		{in: "fx@flip", id: "fx", rotation: world.FlipHorizontal},
		{in: "", wantErr: true},
		{in: ":ff0000", wantErr: true},
		{in: "a:zzzzzz", wantErr: true},
		{in: "a@sideways", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLayer(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseLayer(%q) = %+v, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLayer(%q): %v", tt.in, err)
			}
			if got.TileID != tt.id || got.Rotation != tt.rotation {
				t.Errorf("ParseLayer(%q) = %+v, want id %q rotation %v", tt.in, got, tt.id, tt.rotation)
			}
			switch {
			case tt.tint == nil && got.Tint != nil:
				t.Errorf("tint = %v, want none", *got.Tint)
			case tt.tint != nil && (got.Tint == nil || *got.Tint != *tt.tint):
				t.Errorf("tint = %v, want %v", got.Tint, *tt.tint)
			}
		})
	}
}

func TestLayerString_ParsesBack(t *testing.T) {
	layers := []Layer{
		NewLayer("t_floor"),
		{TileID: "mon_zombie", Tint: &color.NRGBA{R: 1, G: 2, B: 3, A: 4}},
		{TileID: "t_door", Rotation: world.West},
		{TileID: "fx", Tint: &color.NRGBA{R: 255, A: 255}, Rotation: world.FlipHorizontal},
	}
	for _, l := range layers {
		back, err := ParseLayer(l.String())
		if err != nil {
			t.Fatalf("ParseLayer(%q): %v", l.String(), err)
		}
		if back.String() != l.String() {
			t.Errorf("round trip %q -> %q", l.String(), back.String())
		}
	}
}

func TestLayerStack(t *testing.T) {
	var s LayerStack
	s.AddID("a")
	s.AddTinted("b", 1, 2, 3, 4)
	s.AddRotated("c", world.South)

	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}

	all := s.All()
	all[0].TileID = "mutated"
	if s.All()[0].TileID != "a" {
		t.Error("All() returned the backing slice")
	}

	var order []string
	s.Each(func(l Layer) { order = append(order, l.TileID) })
	if !equalStrings(order, []string{"a", "b", "c"}) {
		t.Errorf("Each order = %v", order)
	}

	s.Clear()
	if s.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", s.Len())
	}
}
