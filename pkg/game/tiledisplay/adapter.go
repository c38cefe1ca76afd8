package tiledisplay

import (
	"image"

	"tileview/pkg/engine/log"
	"tileview/pkg/game/internal/tilecap"
	"tileview/pkg/game/renderer"
)

// renderAdapter draws raw tile ids through the capability the renderer
// grants, using a neutral draw context.
type renderAdapter struct {
	drawer     tilecap.Drawer
	animations func() bool
}

func newRenderAdapter(r renderer.Renderer, animations func() bool) (*renderAdapter, bool) {
	d, ok := tilecap.From(r)
	if !ok {
		return nil, false
	}
	return &renderAdapter{drawer: d, animations: animations}, true
}

// drawTileLayer draws l with its top-left corner at pos. Ids the tileset
// does not know draw nothing.
func (a *renderAdapter) drawTileLayer(l Layer, pos image.Point) bool {
	_, ok := a.drawer.DrawFromID(tilecap.DrawParams{
		ID:       l.TileID,
		Rotation: l.Rotation,
		Pos:      pos,
		Tint:     l.Tint,
		Lit:      tilecap.LitBright,
	})
	if !ok {
		log.Debugf("tile display: no tile %q in tileset, layer skipped", l.TileID)
	}
	return ok
}

func (a *renderAdapter) hasTile(id string) bool {
	return a.drawer.HasTile(id)
}

// advanceAnimationFrame ticks the idle animation clock, which the main
// render loop would otherwise drive.
func (a *renderAdapter) advanceAnimationFrame() {
	anim := a.drawer.IdleAnimations()
	anim.SetEnabled(a.animations())
	anim.PrepareForRedraw()
}
