package ebiten

import (
	"image/color"

	"tileview/pkg/game/internal/tilecap"
	"tileview/pkg/game/renderer"
	"tileview/pkg/game/tileset"
)

var white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

// DrawFromID records the tile resolved from p.ID for the next Present. The
// background sprite goes first, then the foreground. Glyph-only tilesets
// record the tile's symbol.
func (e *EbitenRenderer) DrawFromID(p tilecap.DrawParams) (int, bool) {
	tile, ok := e.tiles.Find(p.ID)
	if !ok {
		return 0, false
	}

	w, h := float64(e.TileWidth()), float64(e.TileHeight())
	x := float64(p.Pos.X)
	y := float64(p.Pos.Y - e.tiles.ScaledLift(tile.Height3D, e.DrawScale(), renderer.DefaultTileScale))

	base := drawOp{
		x:        x,
		y:        y,
		w:        w,
		h:        h,
		rotation: p.Rotation,
		tint:     white,
		light:    p.Lit.Brightness(),
	}
	if p.Tint != nil {
		base.tint = *p.Tint
	}

	var ops frame
	if e.tiles.Sheet() != nil && tile.HasSprites() {
		tick := e.anim.Frame()
		for _, list := range []tileset.SpriteList{tile.BG, tile.FG} {
			s, ok := tileset.Pick(list, tick, tile.Animated)
			if !ok {
				continue
			}
			op := base
			op.sprite = s.Index
			ops = append(ops, op)
		}
	} else {
		op := base
		op.sprite = -1
		op.glyph = string(tile.Glyph())
		if p.Tint == nil {
			op.tint = tile.Tint()
		}
		ops = append(ops, op)
	}

	e.presentMutex.Lock()
	e.pending = append(e.pending, ops...)
	e.presentMutex.Unlock()
	return tile.Height3D, true
}
