package main

import (
	"bytes"
	"strings"
	"testing"

	"tileview/pkg/engine/input"
	"tileview/pkg/engine/world"
	"tileview/pkg/game/config"
	"tileview/pkg/game/renderer"
	"tileview/pkg/game/renderer/tui"
	"tileview/pkg/game/tiledisplay"
	"tileview/pkg/game/tileset"
)

func TestChooseBackend(t *testing.T) {
	env := func(vars map[string]string) func(string) string {
		return func(k string) string { return vars[k] }
	}
	tests := []struct {
		name        string
		backend     string
		interactive bool
		env         map[string]string
		goos        string
		want        string
		wantErr     bool
	}{
		{"explicit ebiten", config.BackendEbiten, false, nil, "linux", config.BackendEbiten, false},
		{"explicit terminal", config.BackendTerminal, false, nil, "linux", config.BackendTerminal, false},
		{"auto x11", config.BackendAuto, true, map[string]string{"DISPLAY": ":0"}, "linux", config.BackendEbiten, false},
		{"auto wayland", config.BackendAuto, false, map[string]string{"WAYLAND_DISPLAY": "wayland-0"}, "linux", config.BackendEbiten, false},
		{"auto macos", "", false, nil, "darwin", config.BackendEbiten, false},
		{"auto ssh", config.BackendAuto, true, nil, "linux", config.BackendTerminal, false},
		{"auto headless pipe", config.BackendAuto, false, nil, "linux", "", true},
		{"unknown", "opengl", true, nil, "linux", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := chooseBackend(tt.backend, tt.interactive, env(tt.env), tt.goos)
			if (err != nil) != tt.wantErr {
				t.Fatalf("chooseBackend() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("chooseBackend() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseFlags(t *testing.T) {
	opts, err := parseFlags([]string{
		"-tileset", "tiles.json",
		"-tile", "t_floor",
		"-tile", "mon_zombie:ff000080@east",
		"-zoom", "2",
		"-x", "10",
		"-probe",
	})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if opts.tilesetPath != "tiles.json" || opts.zoom != 2 || opts.x != 10 || opts.y != -1 || !opts.probe {
		t.Errorf("opts = %+v", opts)
	}
	if len(opts.layers) != 2 {
		t.Fatalf("layers = %v, want 2", opts.layers)
	}
	if l := opts.layers[1]; l.TileID != "mon_zombie" || l.Rotation != world.East || l.Tint == nil || l.Tint.A != 0x80 {
		t.Errorf("layer = %+v", l)
	}
	if got := opts.layers.String(); got != "t_floor,mon_zombie:ff000080@3" {
		t.Errorf("layers.String() = %q", got)
	}

	if _, err := parseFlags([]string{"-tile", "bad@sideways"}); err == nil {
		t.Error("parseFlags accepted a bad rotation")
	}
}

func TestApplyBindings(t *testing.T) {
	// "e" is the only non-reserved confirm key by default.
	t.Cleanup(func() { input.SetSingleBinding(input.ActionConfirm, "e") })

	applyBindings(map[string]string{"confirm": "space"})

	got := input.MapToIntent(input.DebouncedInput{Code: "space"})
	if got.Action != input.ActionConfirm {
		t.Errorf("space -> %q, want CONFIRM", got.Action)
	}
	if e := input.MapToIntent(input.DebouncedInput{Code: "e"}); e.Action == input.ActionConfirm {
		t.Error("old binding e still confirms")
	}
	if enter := input.MapToIntent(input.DebouncedInput{Code: "enter"}); enter.Action != input.ActionConfirm {
		t.Error("reserved enter lost its binding")
	}
}

func TestProbe(t *testing.T) {
	ts := tileset.New(tileset.Info{}, nil, []*tileset.Tile{
		{IDs: tileset.IDList{"t_floor"}},
	})
	saved := renderer.Current
	t.Cleanup(func() { renderer.SetRenderer(saved) })
	renderer.SetRenderer(tui.New(ts))

	w := tiledisplay.New()
	w.AddLayerID("t_floor")
	w.AddLayerID("t_nope")

	var out bytes.Buffer
	if code := probe(&out, w); code != 1 {
		t.Errorf("probe() = %d, want 1", code)
	}
	if !strings.Contains(out.String(), "t_floor") || !strings.Contains(out.String(), "t_nope") {
		t.Errorf("probe output = %q", out.String())
	}
}

func TestDumpTiles(t *testing.T) {
	ts := tileset.New(tileset.Info{}, nil, []*tileset.Tile{
		{IDs: tileset.IDList{"t_floor"}, Symbol: "."},
	})
	var out bytes.Buffer
	dumpTiles(&out, ts, nil)
	if !strings.Contains(out.String(), "t_floor: ") || !strings.Contains(out.String(), `Symbol: (string) (len=1) "."`) {
		t.Errorf("dump = %q", out.String())
	}
}
