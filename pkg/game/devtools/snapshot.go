// Package devtools provides developer tools for testing and debugging.
package devtools

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"tileview/pkg/engine/log"
	"tileview/pkg/engine/world"
	"tileview/pkg/game/renderer"
	"tileview/pkg/game/tiledisplay"
	"tileview/pkg/game/tileset"
)

// ErrNoSheet is returned when a snapshot is requested from a glyph-only
// tileset.
var ErrNoSheet = errors.New("devtools: tileset has no sprite sheet")

// RenderLayers composites layers off screen the way the graphical renderer
// draws them at the given zoom: bg sprite under fg, tint multiplied in,
// rotation about the tile centre, height_3d lifting the tile. The canvas
// grows upward to fit the tallest tile. Animated tiles use their first
// frame. Unknown ids are skipped.
func RenderLayers(ts *tileset.Tileset, layers []tiledisplay.Layer, zoom float64) (*image.NRGBA, error) {
	if ts.Sheet() == nil {
		return nil, ErrNoSheet
	}

	drawScale := tiledisplay.DrawScale(tiledisplay.ClampZoom(zoom))
	w, h := ts.ScaledSize(drawScale, renderer.DefaultTileScale)

	type resolved struct {
		layer tiledisplay.Layer
		tile  *tileset.Tile
		lift  int
	}
	var tiles []resolved
	maxLift := 0
	for _, l := range layers {
		tile, ok := ts.Find(l.TileID)
		if !ok {
			log.Debugf("snapshot: no tile %q in tileset, layer skipped", l.TileID)
			continue
		}
		lift := ts.ScaledLift(tile.Height3D, drawScale, renderer.DefaultTileScale)
		maxLift = max(maxLift, lift)
		tiles = append(tiles, resolved{layer: l, tile: tile, lift: lift})
	}

	canvas := image.NewNRGBA(image.Rect(0, 0, w, h+maxLift))
	for _, r := range tiles {
		l, tile := r.layer, r.tile
		tint := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
		if l.Tint != nil {
			tint = *l.Tint
		}
		for _, list := range []tileset.SpriteList{tile.BG, tile.FG} {
			s, ok := tileset.Pick(list, 0, false)
			if !ok {
				continue
			}
			src, ok := ts.SpriteImage(s.Index)
			if !ok {
				continue
			}
			tinted := tintImage(src, tint)
			m := spriteTransform(tinted.Bounds().Dx(), tinted.Bounds().Dy(),
				float64(w), float64(h), float64(maxLift-r.lift), l.Rotation)
			draw.NearestNeighbor.Transform(canvas, m, tinted, tinted.Bounds(), draw.Over, nil)
		}
	}
	return canvas, nil
}

// SaveSnapshot writes img to a timestamped PNG in dir and returns its path.
func SaveSnapshot(dir string, img image.Image) (string, error) {
	timestamp := time.Now().Format("20060102-150405")
	filename := filepath.Join(dir, fmt.Sprintf("tile-%s.png", timestamp))

	f, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("create snapshot: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	return filename, nil
}

// tintImage returns a copy of src, origin at zero, with every pixel
// multiplied by tint.
func tintImage(src image.Image, tint color.NRGBA) *image.NRGBA {
	b := src.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := color.NRGBAModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			out.SetNRGBA(x, y, color.NRGBA{
				R: mul8(c.R, tint.R),
				G: mul8(c.G, tint.G),
				B: mul8(c.B, tint.B),
				A: mul8(c.A, tint.A),
			})
		}
	}
	return out
}

func mul8(a, b uint8) uint8 {
	return uint8((uint16(a)*uint16(b) + 127) / 255)
}

// spriteTransform maps a srcW x srcH sprite onto a dstW x dstH tile whose
// top edge is at top, rotated or mirrored about the tile centre.
func spriteTransform(srcW, srcH int, dstW, dstH, top float64, rot world.Rotation) f64.Aff3 {
	m := translate(-float64(srcW)/2, -float64(srcH)/2)
	if rot.Mirrored() {
		m = mul(scale(-1, 1), m)
	}
	m = mul(scale(dstW/float64(srcW), dstH/float64(srcH)), m)
	m = mul(rotate(rot.Radians()), m)
	return mul(translate(dstW/2, top+dstH/2), m)
}

func translate(x, y float64) f64.Aff3 {
	return f64.Aff3{1, 0, x, 0, 1, y}
}

func scale(x, y float64) f64.Aff3 {
	return f64.Aff3{x, 0, 0, 0, y, 0}
}

func rotate(theta float64) f64.Aff3 {
	sin, cos := math.Sincos(theta)
	return f64.Aff3{cos, -sin, 0, sin, cos, 0}
}

// mul returns the transform that applies n, then m.
func mul(m, n f64.Aff3) f64.Aff3 {
	return f64.Aff3{
		m[0]*n[0] + m[1]*n[3],
		m[0]*n[1] + m[1]*n[4],
		m[0]*n[2] + m[1]*n[5] + m[2],
		m[3]*n[0] + m[4]*n[3],
		m[3]*n[1] + m[4]*n[4],
		m[3]*n[2] + m[4]*n[5] + m[5],
	}
}
