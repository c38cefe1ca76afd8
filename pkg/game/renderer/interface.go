package renderer

import (
	"tileview/pkg/engine/input"
)

// DefaultTileScale is the draw scale that renders tiles at their native size.
// Scales are integers proportional to it: 8 is half size, 32 double.
const DefaultTileScale = 16

// Renderer defines the interface for tile rendering backends.
// Implementations include the Ebiten window and the tcell terminal.
type Renderer interface {
	// Init prepares the backend (screen, caches, input polling).
	Init() error

	// TileWidth and TileHeight return the on-screen tile size in pixels at
	// the current draw scale.
	TileWidth() int
	TileHeight() int

	// DrawScale returns the current draw scale.
	DrawScale() int
	// SetDrawScale changes the draw scale. Tile sizes follow immediately.
	SetDrawScale(scale int)

	// ProjectedSize returns the drawable area in pixels.
	ProjectedSize() (width, height int)
	// GridSize returns the terminal grid in cells.
	GridSize() (cols, rows int)

	// Present shows everything drawn since the previous Present.
	Present()

	// InputSource returns the backend's key event source.
	InputSource() input.Source
}

// Current holds the active renderer instance
var Current Renderer

// SetRenderer sets the active renderer
func SetRenderer(r Renderer) {
	Current = r
}

// Active returns the current renderer and whether one is set.
func Active() (Renderer, bool) {
	return Current, Current != nil
}
