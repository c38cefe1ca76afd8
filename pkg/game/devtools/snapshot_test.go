package devtools

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"testing"

	"tileview/pkg/engine/world"
	"tileview/pkg/game/tiledisplay"
	"tileview/pkg/game/tileset"
)

var (
	red         = color.NRGBA{R: 255, A: 255}
	green       = color.NRGBA{G: 255, A: 255}
	blue        = color.NRGBA{B: 255, A: 255}
	white       = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	yellow      = color.NRGBA{R: 255, G: 255, A: 255}
	transparent = color.NRGBA{}
)

// testTileset has three 2x2 sprites: 0 is red/green over blue/white, 1 is
// solid yellow, 2 is red in the top-left corner only. "tall" is lifted by
// one pixel.
func testTileset() *tileset.Tileset {
	sheet := image.NewNRGBA(image.Rect(0, 0, 6, 2))
	sheet.SetNRGBA(0, 0, red)
	sheet.SetNRGBA(1, 0, green)
	sheet.SetNRGBA(0, 1, blue)
	sheet.SetNRGBA(1, 1, white)
	for y := 0; y < 2; y++ {
		for x := 2; x < 4; x++ {
			sheet.SetNRGBA(x, y, yellow)
		}
	}
	sheet.SetNRGBA(4, 0, red)

	return tileset.New(tileset.Info{Width: 2, Height: 2}, sheet, []*tileset.Tile{
		{IDs: tileset.IDList{"pattern"}, FG: tileset.SpriteList{{Index: 0, Weight: 1}}},
		{IDs: tileset.IDList{"stack"}, BG: tileset.SpriteList{{Index: 1, Weight: 1}}, FG: tileset.SpriteList{{Index: 2, Weight: 1}}},
		{IDs: tileset.IDList{"dot"}, FG: tileset.SpriteList{{Index: 2, Weight: 1}}},
		{IDs: tileset.IDList{"tall"}, FG: tileset.SpriteList{{Index: 1, Weight: 1}}, Height3D: 1},
	})
}

func pixels(img *image.NRGBA) [4]color.NRGBA {
	return [4]color.NRGBA{img.NRGBAAt(0, 0), img.NRGBAAt(1, 0), img.NRGBAAt(0, 1), img.NRGBAAt(1, 1)}
}

func TestRenderLayers_Rotation(t *testing.T) {
	tests := []struct {
		rotation world.Rotation
		want     [4]color.NRGBA // top-left, top-right, bottom-left, bottom-right
	}{
		{world.North, [4]color.NRGBA{red, green, blue, white}},
		{world.South, [4]color.NRGBA{white, blue, green, red}},
		{world.East, [4]color.NRGBA{blue, red, white, green}},
		{world.West, [4]color.NRGBA{green, white, red, blue}},
		{world.FlipHorizontal, [4]color.NRGBA{green, red, white, blue}},
	}
	ts := testTileset()
	for _, tt := range tests {
		t.Run(tt.rotation.String(), func(t *testing.T) {
			img, err := RenderLayers(ts, []tiledisplay.Layer{{TileID: "pattern", Rotation: tt.rotation}}, 1)
			if err != nil {
				t.Fatalf("RenderLayers: %v", err)
			}
			if got := pixels(img); got != tt.want {
				t.Errorf("pixels = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRenderLayers_StackAndTint(t *testing.T) {
	ts := testTileset()
	img, err := RenderLayers(ts, []tiledisplay.Layer{
		{TileID: "stack"},
		{TileID: "missing"},
		{TileID: "dot", Tint: &color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
	}, 1)
	if err != nil {
		t.Fatalf("RenderLayers: %v", err)
	}
	want := [4]color.NRGBA{red, yellow, yellow, yellow}
	if got := pixels(img); got != want {
		t.Errorf("pixels = %v, want %v", got, want)
	}

	img, _ = RenderLayers(ts, []tiledisplay.Layer{{TileID: "pattern", Tint: &color.NRGBA{R: 255, A: 255}}}, 1)
	want = [4]color.NRGBA{red, {A: 255}, {A: 255}, red}
	if got := pixels(img); got != want {
		t.Errorf("red-tinted pixels = %v, want %v", got, want)
	}
}

func TestRenderLayers_Zoom(t *testing.T) {
	img, err := RenderLayers(testTileset(), []tiledisplay.Layer{{TileID: "dot"}}, 2)
	if err != nil {
		t.Fatalf("RenderLayers: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 4 {
		t.Fatalf("size = %v, want 4x4", b)
	}
	for _, p := range []image.Point{{0, 0}, {1, 1}} {
		if got := img.NRGBAAt(p.X, p.Y); got != red {
			t.Errorf("pixel %v = %v, want red", p, got)
		}
	}
	if got := img.NRGBAAt(2, 2); got != transparent {
		t.Errorf("pixel (2,2) = %v, want transparent", got)
	}
}

func TestRenderLayers_Height3D(t *testing.T) {
	tests := []struct {
		zoom   float64
		size   image.Point
		yellow []image.Point
		red    image.Point
		empty  []image.Point
	}{
		{
			zoom:   1,
			size:   image.Pt(2, 3),
			yellow: []image.Point{{0, 0}, {1, 1}},
			red:    image.Pt(0, 1),
			empty:  []image.Point{{0, 2}, {1, 2}},
		},
		{
			zoom:   2,
			size:   image.Pt(4, 6),
			yellow: []image.Point{{0, 0}, {3, 3}},
			red:    image.Pt(1, 3),
			empty:  []image.Point{{0, 4}, {3, 5}},
		},
	}
	for _, tt := range tests {
		img, err := RenderLayers(testTileset(), []tiledisplay.Layer{{TileID: "tall"}, {TileID: "dot"}}, tt.zoom)
		if err != nil {
			t.Fatalf("RenderLayers: %v", err)
		}
		if got := img.Bounds().Size(); got != tt.size {
			t.Fatalf("zoom %v: size = %v, want %v", tt.zoom, got, tt.size)
		}
		for _, p := range tt.yellow {
			if got := img.NRGBAAt(p.X, p.Y); got != yellow {
				t.Errorf("zoom %v: pixel %v = %v, want yellow", tt.zoom, p, got)
			}
		}
		if got := img.NRGBAAt(tt.red.X, tt.red.Y); got != red {
			t.Errorf("zoom %v: pixel %v = %v, want red", tt.zoom, tt.red, got)
		}
		for _, p := range tt.empty {
			if got := img.NRGBAAt(p.X, p.Y); got != transparent {
				t.Errorf("zoom %v: pixel %v = %v, want transparent", tt.zoom, p, got)
			}
		}
	}
}

func TestRenderLayers_NoSheet(t *testing.T) {
	ts := tileset.New(tileset.Info{}, nil, []*tileset.Tile{{IDs: tileset.IDList{"a"}, Symbol: "a"}})
	if _, err := RenderLayers(ts, nil, 1); !errors.Is(err, ErrNoSheet) {
		t.Errorf("err = %v, want ErrNoSheet", err)
	}
}

func TestSaveSnapshot(t *testing.T) {
	img, err := RenderLayers(testTileset(), []tiledisplay.Layer{{TileID: "pattern"}}, 1)
	if err != nil {
		t.Fatalf("RenderLayers: %v", err)
	}
	path, err := SaveSnapshot(t.TempDir(), img)
	if err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	back, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := color.NRGBAModel.Convert(back.At(1, 0)); got != green {
		t.Errorf("pixel (1,0) = %v, want green", got)
	}
}

func TestMul8(t *testing.T) {
	tests := []struct{ a, b, want uint8 }{
		{255, 255, 255},
		{255, 0, 0},
		{255, 128, 128},
		{128, 128, 64},
	}
	for _, tt := range tests {
		if got := mul8(tt.a, tt.b); got != tt.want {
			t.Errorf("mul8(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
