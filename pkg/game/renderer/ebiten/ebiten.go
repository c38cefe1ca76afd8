package ebiten

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/examples/resources/fonts"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/leonelquinteros/gotext"

	engineinput "tileview/pkg/engine/input"
	"tileview/pkg/engine/log"
	"tileview/pkg/game/internal/tilecap"
	"tileview/pkg/game/renderer"
	"tileview/pkg/game/tileset"
)

// New creates a new Ebiten renderer for ts with the given initial window size
func New(ts *tileset.Tileset, width, height int) *EbitenRenderer {
	if width <= 0 {
		width = 800
	}
	if height <= 0 {
		height = 600
	}
	return &EbitenRenderer{
		tiles:          ts,
		anim:           &tileset.IdleAnimations{},
		windowWidth:    width,
		windowHeight:   height,
		drawScale:      renderer.DefaultTileScale,
		inputChan:      make(chan engineinput.RawInput, inputBuffer),
		keyRepeatState: make(map[string]keyRepeatInfo),
	}
}

// Init loads the glyph font and creates the sprite cache
func (e *EbitenRenderer) Init() error {
	if e.tiles == nil {
		return errors.New("ebiten renderer: no tileset")
	}

	src, err := text.NewGoTextFaceSource(bytes.NewReader(fonts.MPlus1pRegular_ttf))
	if err != nil {
		return fmt.Errorf("load glyph font: %w", err)
	}
	e.monoFontSource = src

	cache, err := ristretto.NewCache(&ristretto.Config[int, *ebiten.Image]{
		NumCounters: spriteCacheCost * 10,
		MaxCost:     spriteCacheCost,
		BufferItems: 64,
	})
	if err != nil {
		return fmt.Errorf("sprite cache: %w", err)
	}
	e.spriteCache = cache
	return nil
}

// Run starts the Ebiten game loop. It must be called from the main goroutine
// and returns once Stop has been called or the window is gone.
func (e *EbitenRenderer) Run() error {
	e.sizeMutex.RLock()
	w, h := e.windowWidth, e.windowHeight
	e.sizeMutex.RUnlock()

	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(gotext.Get("WINDOW_TITLE"))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	// Closing the window is turned into an input event for the loop
	ebiten.SetWindowClosingHandled(true)

	if err := ebiten.RunGame(e); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run game: %w", err)
	}
	if e.spriteCache != nil {
		e.spriteCache.Close()
	}
	return nil
}

// Stop asks the game loop to exit on its next update
func (e *EbitenRenderer) Stop() {
	e.stopped.Store(true)
}

// DrawScale returns the current draw scale
func (e *EbitenRenderer) DrawScale() int {
	e.scaleMutex.RLock()
	defer e.scaleMutex.RUnlock()
	return e.drawScale
}

// SetDrawScale changes the draw scale
func (e *EbitenRenderer) SetDrawScale(scale int) {
	if scale < 1 {
		scale = 1
	}
	e.scaleMutex.Lock()
	e.drawScale = scale
	e.scaleMutex.Unlock()
}

// TileWidth returns the on-screen tile width at the current draw scale
func (e *EbitenRenderer) TileWidth() int {
	w, _ := e.tiles.ScaledSize(e.DrawScale(), renderer.DefaultTileScale)
	return w
}

// TileHeight returns the on-screen tile height at the current draw scale
func (e *EbitenRenderer) TileHeight() int {
	_, h := e.tiles.ScaledSize(e.DrawScale(), renderer.DefaultTileScale)
	return h
}

// ProjectedSize returns the window's logical size in pixels
func (e *EbitenRenderer) ProjectedSize() (int, int) {
	e.sizeMutex.RLock()
	defer e.sizeMutex.RUnlock()
	return e.windowWidth, e.windowHeight
}

// GridSize returns how many terminal cells fit in the window
func (e *EbitenRenderer) GridSize() (int, int) {
	w, h := e.ProjectedSize()
	return w / cellWidth, h / cellHeight
}

// Present hands everything recorded since the last Present to Draw
func (e *EbitenRenderer) Present() {
	e.presentMutex.Lock()
	e.presented = e.pending
	e.pending = nil
	e.presentMutex.Unlock()
}

// InputSource returns the renderer itself; key events arrive from Update
func (e *EbitenRenderer) InputSource() engineinput.Source {
	return e
}

// Events returns the channel Update feeds
func (e *EbitenRenderer) Events() <-chan engineinput.RawInput {
	return e.inputChan
}

// GrantTileAccess exposes the raw tile primitives
func (e *EbitenRenderer) GrantTileAccess() tilecap.Drawer {
	return e
}

// IdleAnimations returns the animation clock
func (e *EbitenRenderer) IdleAnimations() tilecap.Animator {
	return e.anim
}

// HasTile reports whether id resolves in the tileset
func (e *EbitenRenderer) HasTile(id string) bool {
	return e.tiles.Has(id)
}

// logWindowOpened logs once that the window is up
func (e *EbitenRenderer) logWindowOpened() {
	if e.windowOpenedLogged {
		return
	}
	e.windowOpenedLogged = true
	w, h := ebiten.WindowSize()
	log.Infof("Main window opened successfully (%dx%d)", w, h)
}

var _ renderer.Renderer = (*EbitenRenderer)(nil)
