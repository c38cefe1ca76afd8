package ebiten

import "image/color"

// Color palette
var (
	colorBackground = color.RGBA{15, 15, 26, 255} // Dark blue-gray
)

// Terminal cell geometry. Positions given in cells are converted to pixels
// with these, matching a typical 8x16 console font.
const (
	cellWidth  = 8
	cellHeight = 16
)

// glyphFill is the share of the tile height a fallback glyph occupies.
const glyphFill = 0.8

const (
	keyRepeatInitialDelay = 500 // Initial delay before first repeat (milliseconds)
	keyRepeatInterval     = 100 // Interval between repeat events (milliseconds)
)

// inputBuffer is the capacity of the channel between Update and the loop.
const inputBuffer = 16

// spriteCacheCost is the maximum number of sprite sub-images kept.
const spriteCacheCost = 4096
