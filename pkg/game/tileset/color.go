package tileset

import (
	"encoding/hex"
	"fmt"
	"image/color"
	"strings"
)

// ParseColor parses "rrggbb" or "rrggbbaa", with or without a leading '#'.
// Alpha defaults to 255.
func ParseColor(s string) (color.NRGBA, error) {
	raw := strings.TrimPrefix(s, "#")
	if len(raw) != 6 && len(raw) != 8 {
		return color.NRGBA{}, fmt.Errorf("color %q: want 6 or 8 hex digits", s)
	}
	b, err := hex.DecodeString(raw)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	c := color.NRGBA{R: b[0], G: b[1], B: b[2], A: 255}
	if len(b) == 4 {
		c.A = b[3]
	}
	return c, nil
}
