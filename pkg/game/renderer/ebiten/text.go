package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// drawGlyph draws a glyph-only tile: a dim backing square with the tile's
// symbol centred on it
func (e *EbitenRenderer) drawGlyph(screen *ebiten.Image, op *drawOp) {
	back := op.tint
	back.A /= 4
	r := tileRect(op)
	vector.DrawFilledRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), scaleLight(back, op.light), false)

	if e.monoFontSource == nil || op.glyph == "" {
		return
	}
	face := e.getGlyphFace(op.h)

	// text/v2 Draw uses top-left as the origin point
	w, h := text.Measure(op.glyph, face, 0)
	opts := &text.DrawOptions{}
	opts.GeoM.Translate(op.x+(op.w-w)/2, op.y+(op.h-h)/2)
	opts.ColorScale.ScaleWithColor(op.tint)
	opts.ColorScale.Scale(op.light, op.light, op.light, 1)
	text.Draw(screen, op.glyph, face, opts)
}
