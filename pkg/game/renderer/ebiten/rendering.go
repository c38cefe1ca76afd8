package ebiten

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"tileview/pkg/engine/log"
)

// Draw renders the last presented frame (Ebiten interface)
func (e *EbitenRenderer) Draw(screen *ebiten.Image) {
	// Fill background first
	screen.Fill(colorBackground)

	e.presentMutex.Lock()
	ops := e.presented
	e.presentMutex.Unlock()

	for i := range ops {
		op := &ops[i]
		if op.sprite < 0 {
			e.drawGlyph(screen, op)
			continue
		}
		e.drawSprite(screen, op)
	}
}

// drawSprite draws one sheet sprite with rotation, tint and light applied
func (e *EbitenRenderer) drawSprite(screen *ebiten.Image, op *drawOp) {
	img, ok := e.spriteImage(op.sprite)
	if !ok {
		return
	}
	b := img.Bounds()

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM = spriteGeoM(b.Dx(), b.Dy(), op)
	opts.ColorScale.ScaleWithColor(op.tint)
	opts.ColorScale.Scale(op.light, op.light, op.light, 1)
	opts.Filter = ebiten.FilterNearest
	screen.DrawImage(img, opts)
}

// spriteImage returns sprite index of the sheet, uploading the sheet on
// first use. Must only be called from Draw.
func (e *EbitenRenderer) spriteImage(index int) (*ebiten.Image, bool) {
	if e.spriteCache != nil {
		if img, ok := e.spriteCache.Get(index); ok {
			return img, true
		}
	}

	rect, ok := e.tiles.SpriteRect(index)
	if !ok {
		log.Debugf("sprite %d is outside the sheet", index)
		return nil, false
	}
	if e.sheet == nil {
		e.sheet = ebiten.NewImageFromImage(e.tiles.Sheet())
		// The uploaded sheet starts at the origin whatever the source bounds
		e.sheetOrigin = e.tiles.Sheet().Bounds().Min
	}
	img := e.sheet.SubImage(rect.Sub(e.sheetOrigin)).(*ebiten.Image)

	if e.spriteCache != nil {
		e.spriteCache.Set(index, img, 1)
	}
	return img, true
}

// spriteGeoM maps a srcW x srcH sprite onto the op's on-screen tile,
// rotating or flipping it about the tile centre.
func spriteGeoM(srcW, srcH int, op *drawOp) ebiten.GeoM {
	var g ebiten.GeoM
	if srcW <= 0 || srcH <= 0 {
		return g
	}
	g.Translate(-float64(srcW)/2, -float64(srcH)/2)
	if op.rotation.Mirrored() {
		g.Scale(-1, 1)
	}
	g.Scale(op.w/float64(srcW), op.h/float64(srcH))
	g.Rotate(op.rotation.Radians())
	g.Translate(op.x+op.w/2, op.y+op.h/2)
	return g
}

// tileRect is the screen rectangle an op covers before rotation.
func tileRect(op *drawOp) image.Rectangle {
	return image.Rect(int(op.x), int(op.y), int(op.x+op.w), int(op.y+op.h))
}

// scaleLight darkens c by the light multiplier, keeping alpha.
func scaleLight(c color.NRGBA, light float32) color.NRGBA {
	if light >= 1 {
		return c
	}
	if light < 0 {
		light = 0
	}
	return color.NRGBA{
		R: uint8(float32(c.R) * light),
		G: uint8(float32(c.G) * light),
		B: uint8(float32(c.B) * light),
		A: c.A,
	}
}
