package tileset

import (
	"encoding/json"
	"fmt"
	"image/color"
	"unicode"
	"unicode/utf8"
)

// Sprite is one frame reference into the sprite sheet.
type Sprite struct {
	Index  int
	Weight int
}

// SpriteList is a tile's fg or bg sprite set. In JSON it may be a single
// index, a list of indices, or a list of {"weight", "sprite"} objects.
type SpriteList []Sprite

// UnmarshalJSON accepts every sprite list shape used by tileset files.
func (l *SpriteList) UnmarshalJSON(data []byte) error {
	var single int
	if err := json.Unmarshal(data, &single); err == nil {
		*l = SpriteList{{Index: single, Weight: 1}}
		return nil
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("sprite list: %w", err)
	}

	out := make(SpriteList, 0, len(entries))
	for _, entry := range entries {
		if err := json.Unmarshal(entry, &single); err == nil {
			out = append(out, Sprite{Index: single, Weight: 1})
			continue
		}

		var weighted struct {
			Weight int             `json:"weight"`
			Sprite json.RawMessage `json:"sprite"`
		}
		if err := json.Unmarshal(entry, &weighted); err != nil {
			return fmt.Errorf("sprite entry %s: %w", entry, err)
		}
		idx, err := firstIndex(weighted.Sprite)
		if err != nil {
			return err
		}
		if weighted.Weight <= 0 {
			weighted.Weight = 1
		}
		out = append(out, Sprite{Index: idx, Weight: weighted.Weight})
	}
	*l = out
	return nil
}

// firstIndex reads an int or the first element of an int list. Multi-tile
// sprites are reduced to their first part.
func firstIndex(raw json.RawMessage) (int, error) {
	var idx int
	if err := json.Unmarshal(raw, &idx); err == nil {
		return idx, nil
	}
	var list []int
	if err := json.Unmarshal(raw, &list); err != nil {
		return 0, fmt.Errorf("sprite index %s: %w", raw, err)
	}
	if len(list) == 0 {
		return 0, fmt.Errorf("sprite index %s: empty list", raw)
	}
	return list[0], nil
}

// TotalWeight returns the sum of frame weights.
func (l SpriteList) TotalWeight() int {
	total := 0
	for _, s := range l {
		total += s.Weight
	}
	return total
}

// IDList is a tile's id field: one string or a list of aliases.
type IDList []string

// UnmarshalJSON accepts a string or a list of strings.
func (l *IDList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*l = IDList{single}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("tile id: %w", err)
	}
	*l = list
	return nil
}

// Tile is one tileset entry.
type Tile struct {
	IDs       IDList     `json:"id"`
	FG        SpriteList `json:"fg"`
	BG        SpriteList `json:"bg"`
	Animated  bool       `json:"animated"`
	Rotates   bool       `json:"rotates"`
	Height3D  int        `json:"height_3d"`
	LooksLike string     `json:"looks_like"`
	Symbol    string     `json:"symbol"`
	Color     string     `json:"color"`
}

// HasSprites reports whether the tile references any sprite.
func (t *Tile) HasSprites() bool {
	return len(t.FG) > 0 || len(t.BG) > 0
}

// Pick selects the frame of list to draw. Animated tiles cycle through their
// frames, each shown for weight ticks; others always use the first frame.
func Pick(list SpriteList, tick uint64, animated bool) (Sprite, bool) {
	if len(list) == 0 {
		return Sprite{}, false
	}
	if !animated || len(list) == 1 {
		return list[0], true
	}

	total := list.TotalWeight()
	if total <= 0 {
		return list[0], true
	}
	n := tick % uint64(total)
	for _, s := range list {
		if n < uint64(s.Weight) {
			return s, true
		}
		n -= uint64(s.Weight)
	}
	return list[len(list)-1], true
}

// Glyph returns the character used to draw the tile on a terminal.
func (t *Tile) Glyph() rune {
	if r, _ := utf8.DecodeRuneInString(t.Symbol); r != utf8.RuneError {
		return r
	}
	for _, id := range t.IDs {
		// Skip well-known prefixes so "mon_zombie" draws as Z, not M.
		for _, prefix := range []string{"mon_", "t_", "f_", "overlay_", "vp_"} {
			if len(id) > len(prefix) && id[:len(prefix)] == prefix {
				id = id[len(prefix):]
				break
			}
		}
		if r, _ := utf8.DecodeRuneInString(id); r != utf8.RuneError {
			return unicode.ToUpper(r)
		}
	}
	return '?'
}

// Tint returns the tile's own colour, white if it has none or it is invalid.
func (t *Tile) Tint() color.NRGBA {
	if t.Color == "" {
		return color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	}
	c, err := ParseColor(t.Color)
	if err != nil {
		return color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	}
	return c
}
