package world

import "math"

// Rotation is the facing applied to a tile sprite. The numeric values match
// tileset rotation codes: 0=N, 1=W, 2=S, 3=E, 4=horizontal flip.
type Rotation int

// Rotation constants
const (
	North Rotation = iota
	West
	South
	East
	FlipHorizontal
)

// String returns the string representation of a rotation
func (r Rotation) String() string {
	switch r {
	case North:
		return "North"
	case West:
		return "West"
	case South:
		return "South"
	case East:
		return "East"
	case FlipHorizontal:
		return "Flip"
	default:
		return "Unknown"
	}
}

// IsValid returns true if the rotation is one of the five known codes
func (r Rotation) IsValid() bool {
	return r >= North && r <= FlipHorizontal
}

// Radians returns the clockwise screen-space angle for the rotation.
// Facing west is a quarter turn counter-clockwise from north. Flip and
// unknown codes have no angle.
func (r Rotation) Radians() float64 {
	switch r {
	case West:
		return -math.Pi / 2
	case South:
		return math.Pi
	case East:
		return math.Pi / 2
	default:
		return 0
	}
}

// Mirrored reports whether the sprite is flipped horizontally
func (r Rotation) Mirrored() bool {
	return r == FlipHorizontal
}

// ParseRotation accepts a numeric code or a name ("n", "west", "flip", ...).
func ParseRotation(s string) (Rotation, bool) {
	switch s {
	case "0", "n", "N", "north", "North":
		return North, true
	case "1", "w", "W", "west", "West":
		return West, true
	case "2", "s", "S", "south", "South":
		return South, true
	case "3", "e", "E", "east", "East":
		return East, true
	case "4", "f", "flip", "Flip":
		return FlipHorizontal, true
	}
	return North, false
}
