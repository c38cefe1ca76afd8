package tiledisplay

import (
	"fmt"
	"image/color"
	"strings"

	"tileview/pkg/engine/world"
	"tileview/pkg/game/tileset"
)

// Layer is one tile drawn by the window.
type Layer struct {
	// TileID is looked up in the tileset at draw time, e.g. "mon_zombie",
	// "t_floor" or "overlay_worn_backpack".
	TileID   string
	Tint     *color.NRGBA
	Rotation world.Rotation
}

// NewLayer returns an untinted, unrotated layer.
func NewLayer(id string) Layer {
	return Layer{TileID: id}
}

// String renders the layer in the form ParseLayer accepts.
func (l Layer) String() string {
	var b strings.Builder
	b.WriteString(l.TileID)
	if l.Tint != nil {
		fmt.Fprintf(&b, ":%02x%02x%02x%02x", l.Tint.R, l.Tint.G, l.Tint.B, l.Tint.A)
	}
	if l.Rotation != world.North {
		fmt.Fprintf(&b, "@%d", int(l.Rotation))
	}
	return b.String()
}

// ParseLayer parses "id[:rrggbb[aa]][@rotation]".
func ParseLayer(s string) (Layer, error) {
	var l Layer

	rest := s
	if i := strings.LastIndexByte(rest, '@'); i >= 0 {
		rot, ok := world.ParseRotation(rest[i+1:])
		if !ok {
			return Layer{}, fmt.Errorf("layer %q: unknown rotation %q", s, rest[i+1:])
		}
		l.Rotation = rot
		rest = rest[:i]
	}
	if i := strings.LastIndexByte(rest, ':'); i >= 0 {
		c, err := tileset.ParseColor(rest[i+1:])
		if err != nil {
			return Layer{}, fmt.Errorf("layer %q: %w", s, err)
		}
		l.Tint = &c
		rest = rest[:i]
	}
	if rest == "" {
		return Layer{}, fmt.Errorf("layer %q: empty tile id", s)
	}
	l.TileID = rest
	return l, nil
}

// LayerStack is the ordered set of layers. Later layers draw on top.
type LayerStack struct {
	layers []Layer
}

// Add appends a layer as given.
func (s *LayerStack) Add(l Layer) {
	s.layers = append(s.layers, l)
}

// AddID appends an untinted, unrotated layer.
func (s *LayerStack) AddID(id string) {
	s.Add(NewLayer(id))
}

// AddTinted appends a tinted layer.
func (s *LayerStack) AddTinted(id string, r, g, b, a uint8) {
	s.Add(Layer{TileID: id, Tint: &color.NRGBA{R: r, G: g, B: b, A: a}})
}

// AddRotated appends a rotated layer.
func (s *LayerStack) AddRotated(id string, rotation world.Rotation) {
	s.Add(Layer{TileID: id, Rotation: rotation})
}

// AddFull appends a tinted, rotated layer.
func (s *LayerStack) AddFull(id string, r, g, b, a uint8, rotation world.Rotation) {
	s.Add(Layer{TileID: id, Tint: &color.NRGBA{R: r, G: g, B: b, A: a}, Rotation: rotation})
}

// Clear removes every layer.
func (s *LayerStack) Clear() {
	s.layers = nil
}

// Len returns the number of layers.
func (s *LayerStack) Len() int {
	return len(s.layers)
}

// All returns a copy of the layers in draw order.
func (s *LayerStack) All() []Layer {
	out := make([]Layer, len(s.layers))
	copy(out, s.layers)
	return out
}

// Each calls fn for each layer in draw order.
func (s *LayerStack) Each(fn func(Layer)) {
	for _, l := range s.layers {
		fn(l)
	}
}
