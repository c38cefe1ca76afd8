// Package tilecap is the privileged drawing contract a renderer grants to
// trusted callers inside pkg/game.
//
// Callers that only have a raw tile id, like the tile preview window, draw
// through a Drawer. The contract lives in an internal package so code
// outside pkg/game cannot reach it.
package tilecap

import (
	"image"
	"image/color"

	"tileview/pkg/engine/world"
)

// LitLevel is the lighting applied to a drawn sprite.
type LitLevel int

const (
	LitDark LitLevel = iota
	LitLow
	LitMid
	LitBright
)

// Brightness returns the colour multiplier for the light level.
func (l LitLevel) Brightness() float32 {
	switch l {
	case LitDark:
		return 0.25
	case LitLow:
		return 0.5
	case LitMid:
		return 0.75
	default:
		return 1
	}
}

// DrawParams describes one draw-by-id request.
type DrawParams struct {
	ID       string
	Rotation world.Rotation
	Pos      image.Point // top-left corner, absolute pixels
	Tint     *color.NRGBA
	Lit      LitLevel
}

// Animator is the renderer's idle animation clock.
type Animator interface {
	SetEnabled(enabled bool)
	PrepareForRedraw()
}

// Drawer exposes the renderer's raw tile primitives.
type Drawer interface {
	// DrawFromID draws the tile resolved from p.ID. ok is false when the id
	// does not resolve; nothing is drawn then. height3D is the vertical
	// offset the tile applies on top of its draw position.
	DrawFromID(p DrawParams) (height3D int, ok bool)

	// HasTile reports whether id resolves in the active tileset.
	HasTile(id string) bool

	// IdleAnimations returns the renderer's idle animation clock.
	IdleAnimations() Animator
}

// Granter is implemented by renderers that hand out a Drawer.
type Granter interface {
	GrantTileAccess() Drawer
}

// From returns the Drawer granted by r, if r grants one.
func From(r any) (Drawer, bool) {
	g, ok := r.(Granter)
	if !ok {
		return nil, false
	}
	d := g.GrantTileAccess()
	return d, d != nil
}
