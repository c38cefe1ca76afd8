// Package tileset loads tile catalogs: JSON tile definitions plus an optional
// PNG sprite sheet.
package tileset

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sort"

	"github.com/zyedidia/generic/mapset"
)

// maxLooksLikeDepth bounds looks_like chains so a cycle cannot hang lookup.
const maxLooksLikeDepth = 10

// ErrNoTiles is returned when a tileset file defines no tiles.
var ErrNoTiles = errors.New("tileset: no tiles defined")

// Info is the tileset-wide sprite geometry.
type Info struct {
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	PixelScale float64 `json:"pixelscale"`
}

// document is the on-disk layout.
type document struct {
	TileInfo []Info  `json:"tile_info"`
	File     string  `json:"file"`
	Tiles    []*Tile `json:"tiles"`
}

// Tileset maps tile ids to sprite frames.
type Tileset struct {
	Info  Info
	sheet image.Image
	tiles map[string]*Tile
	ids   mapset.Set[string]
}

// New builds a tileset from already decoded parts. sheet may be nil.
func New(info Info, sheet image.Image, tiles []*Tile) *Tileset {
	if info.Width <= 0 {
		info.Width = 32
	}
	if info.Height <= 0 {
		info.Height = 32
	}
	if info.PixelScale <= 0 {
		info.PixelScale = 1
	}

	ts := &Tileset{
		Info:  info,
		sheet: sheet,
		tiles: make(map[string]*Tile),
		ids:   mapset.New[string](),
	}
	for _, tile := range tiles {
		for _, id := range tile.IDs {
			// Later definitions override earlier ones, as tileset mods do.
			ts.tiles[id] = tile
			ts.ids.Put(id)
		}
	}
	return ts
}

// Load reads a tileset JSON file. A sprite sheet named by "file" is
// resolved relative to the JSON file.
func Load(path string) (*Tileset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tileset: %w", err)
	}
	ts, err := Parse(data, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("tileset %s: %w", path, err)
	}
	return ts, nil
}

// Parse decodes tileset JSON. dir is where the sprite sheet is looked up.
func Parse(data []byte, dir string) (*Tileset, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if len(doc.Tiles) == 0 {
		return nil, ErrNoTiles
	}

	var info Info
	if len(doc.TileInfo) > 0 {
		info = doc.TileInfo[0]
	}

	var sheet image.Image
	if doc.File != "" {
		var err error
		sheet, err = loadSheet(filepath.Join(dir, doc.File))
		if err != nil {
			return nil, err
		}
	}
	return New(info, sheet, doc.Tiles), nil
}

func loadSheet(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sprite sheet: %w", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode sprite sheet %s: %w", path, err)
	}
	return img, nil
}

// Find resolves id, following looks_like redirects on entries that carry no
// sprites of their own.
func (t *Tileset) Find(id string) (*Tile, bool) {
	for depth := 0; depth <= maxLooksLikeDepth && id != ""; depth++ {
		tile, ok := t.tiles[id]
		if !ok {
			return nil, false
		}
		if tile.HasSprites() || tile.LooksLike == "" {
			return tile, true
		}
		id = tile.LooksLike
	}
	return nil, false
}

// Has reports whether id resolves.
func (t *Tileset) Has(id string) bool {
	_, ok := t.Find(id)
	return ok
}

// IDs returns every defined id, sorted.
func (t *Tileset) IDs() []string {
	ids := make([]string, 0, t.ids.Size())
	t.ids.Each(func(id string) {
		ids = append(ids, id)
	})
	sort.Strings(ids)
	return ids
}

// Len returns the number of defined ids.
func (t *Tileset) Len() int {
	return t.ids.Size()
}

// Sheet returns the sprite sheet, or nil for glyph-only tilesets.
func (t *Tileset) Sheet() image.Image {
	return t.sheet
}

// SpriteRect returns the sheet region of sprite index. Sprites are laid out
// left to right, top to bottom, Info.Width by Info.Height each.
func (t *Tileset) SpriteRect(index int) (image.Rectangle, bool) {
	if t.sheet == nil || index < 0 {
		return image.Rectangle{}, false
	}
	b := t.sheet.Bounds()
	cols := b.Dx() / t.Info.Width
	rows := b.Dy() / t.Info.Height
	if cols == 0 || index >= cols*rows {
		return image.Rectangle{}, false
	}
	x := b.Min.X + (index%cols)*t.Info.Width
	y := b.Min.Y + (index/cols)*t.Info.Height
	return image.Rect(x, y, x+t.Info.Width, y+t.Info.Height), true
}

// SpriteImage returns sprite index as a sub-image of the sheet.
func (t *Tileset) SpriteImage(index int) (image.Image, bool) {
	rect, ok := t.SpriteRect(index)
	if !ok {
		return nil, false
	}
	sub, ok := t.sheet.(interface {
		SubImage(r image.Rectangle) image.Image
	})
	if !ok {
		return nil, false
	}
	return sub.SubImage(rect), true
}

// ScaledSize returns the on-screen tile size for a draw scale, where
// baseline is the scale that draws tiles at native size.
func (t *Tileset) ScaledSize(scale, baseline int) (width, height int) {
	if baseline <= 0 {
		baseline = 1
	}
	w := float64(t.Info.Width) * t.Info.PixelScale
	h := float64(t.Info.Height) * t.Info.PixelScale
	return int(w) * scale / baseline, int(h) * scale / baseline
}

// ScaledLift converts a tile's height_3d offset to pixels at scale, the same
// way ScaledSize converts the tile size.
func (t *Tileset) ScaledLift(height3D, scale, baseline int) int {
	if baseline <= 0 {
		baseline = 1
	}
	return int(float64(height3D)*t.Info.PixelScale) * scale / baseline
}
