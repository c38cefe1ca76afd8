package tiledisplay

import "image"

// Coord is a position along one axis in terminal cells. Negative values mean
// the tile is centered on that axis.
type Coord int

// Centered is the canonical centered coordinate.
const Centered Coord = -1

// IsCentered reports whether c centers the tile.
func (c Coord) IsCentered() bool {
	return c < 0
}

// Position is where the window's tiles go.
type Position struct {
	X, Y Coord
}

// Metrics are the screen measurements position resolution needs. Tile size
// depends on zoom, so metrics are taken fresh every frame.
type Metrics struct {
	Tile      image.Point // tile size in pixels
	Projected image.Point // drawable area in pixels
	Grid      image.Point // terminal grid in cells
}

// ResolvePosition returns the pixel position of the tiles' top-left corner.
func ResolvePosition(p Position, m Metrics) image.Point {
	return image.Point{
		X: resolveAxis(p.X, m.Projected.X, m.Tile.X, m.Grid.X),
		Y: resolveAxis(p.Y, m.Projected.Y, m.Tile.Y, m.Grid.Y),
	}
}

func resolveAxis(c Coord, projected, tile, cells int) int {
	if c.IsCentered() {
		return (projected - tile) / 2
	}
	if cells <= 0 {
		return 0
	}
	return int(c) * (projected / cells)
}
