package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// getGlyphFontSize returns the glyph font size for a tile of height h
func getGlyphFontSize(h float64) float64 {
	size := h * glyphFill
	if size < 6 {
		size = 6
	}
	return size
}

// getGlyphFace returns a cached font face for glyphs, recreated when the
// tile size changes
func (e *EbitenRenderer) getGlyphFace(h float64) *text.GoTextFace {
	size := getGlyphFontSize(h)
	if e.cachedFace == nil || e.cachedFaceSize != size {
		e.cachedFaceSize = size
		e.cachedFace = &text.GoTextFace{
			Source: e.monoFontSource,
			Size:   size,
		}
	}
	return e.cachedFace
}
