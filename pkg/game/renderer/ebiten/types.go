// Package ebiten provides an Ebiten-based 2D graphical renderer for tile
// sprites.
package ebiten

import (
	"image"
	"image/color"
	"sync"
	"sync/atomic"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	engineinput "tileview/pkg/engine/input"
	"tileview/pkg/engine/world"
	"tileview/pkg/game/tileset"
)

// drawOp is one recorded tile draw. Sprite indices are resolved when the op
// is recorded so the Ebiten goroutine never touches the animation clock.
type drawOp struct {
	sprite   int    // sheet index, or -1 to draw glyph instead
	glyph    string // used when sprite is -1
	x, y     float64
	w, h     float64 // on-screen size
	rotation world.Rotation
	tint     color.NRGBA
	light    float32
}

// frame is an ordered list of draws.
type frame []drawOp

// keyRepeatInfo tracks the repeat state for a key
type keyRepeatInfo struct {
	firstPressed int64 // Timestamp when first pressed (milliseconds)
	lastRepeat   int64 // Timestamp when last repeat event was sent (milliseconds)
}

// EbitenRenderer is the Ebiten-based graphical renderer
type EbitenRenderer struct {
	tiles *tileset.Tileset
	anim  *tileset.IdleAnimations

	// Window size requested at startup, then whatever Layout reports
	windowWidth  int
	windowHeight int
	sizeMutex    sync.RWMutex

	// drawScale is in renderer.DefaultTileScale units
	drawScale  int
	scaleMutex sync.RWMutex

	// pending is built by the caller between Present calls; presented is
	// what Draw replays.
	pending      frame
	presented    frame
	presentMutex sync.Mutex

	// Sprite sheet uploaded to the GPU on first Draw, and sub-images of it
	sheet       *ebiten.Image
	sheetOrigin image.Point
	spriteCache *ristretto.Cache[int, *ebiten.Image]

	// Font for glyph-only tilesets
	monoFontSource *text.GoTextFaceSource
	cachedFace     *text.GoTextFace
	cachedFaceSize float64

	// Input channel for communication between Ebiten and the window loop
	inputChan chan engineinput.RawInput

	// Key repeat state tracking
	// Maps key codes to their repeat state
	keyRepeatState      map[string]keyRepeatInfo
	keyRepeatStateMutex sync.Mutex

	// Flag to track if we've logged window opening
	windowOpenedLogged bool

	// closeSent is set once window_close has been queued for the loop
	closeSent bool

	stopped atomic.Bool
}
