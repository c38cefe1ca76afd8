// Package tui is the terminal renderer. Tiles are drawn as coloured glyph
// blocks on a tcell screen.
package tui

import (
	"errors"
	"fmt"
	"image/color"
	"sync"

	"github.com/gdamore/tcell/v2"

	"tileview/pkg/engine/input"
	"tileview/pkg/engine/log"
	"tileview/pkg/engine/terminal"
	"tileview/pkg/game/internal/tilecap"
	"tileview/pkg/game/renderer"
	"tileview/pkg/game/tileset"
)

// Virtual pixel size of one terminal cell. Callers work in pixels like on
// the graphical backend; the terminal maps them back to cells.
const (
	CellWidth  = 8
	CellHeight = 16
)

// backdropShare is how much of a tile's colour its background block gets.
const backdropShare = 0.3

// TUIRenderer is the terminal-based renderer implementation
type TUIRenderer struct {
	screen tcell.Screen
	tiles  *tileset.Tileset
	anim   *tileset.IdleAnimations

	mutex        sync.Mutex
	drawScale    int
	frameStarted bool

	events chan input.RawInput
	done   chan struct{}
}

// New creates a new TUI renderer on the process terminal
func New(ts *tileset.Tileset) *TUIRenderer {
	return NewWithScreen(nil, ts)
}

// NewWithScreen creates a TUI renderer on screen. A nil screen opens the
// process terminal in Init.
func NewWithScreen(screen tcell.Screen, ts *tileset.Tileset) *TUIRenderer {
	return &TUIRenderer{
		screen:    screen,
		tiles:     ts,
		anim:      &tileset.IdleAnimations{},
		drawScale: renderer.DefaultTileScale,
		events:    make(chan input.RawInput, 16),
		done:      make(chan struct{}),
	}
}

// Init takes over the terminal and starts reading key events
func (t *TUIRenderer) Init() error {
	if t.tiles == nil {
		return errors.New("tui renderer: no tileset")
	}
	if t.screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("open terminal: %w", err)
		}
		t.screen = s
	}
	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	t.screen.SetStyle(tcell.StyleDefault)
	t.screen.HideCursor()
	t.screen.Clear()

	go t.poll()
	return nil
}

// Fini restores the terminal. The event channel is closed once the poller
// has stopped.
func (t *TUIRenderer) Fini() {
	if t.screen == nil {
		return
	}
	t.screen.Fini()
	<-t.done
}

// poll turns tcell events into raw input until the screen is finalized
func (t *TUIRenderer) poll() {
	defer close(t.done)
	defer close(t.events)

	for {
		ev := t.screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return
		case *tcell.EventResize:
			t.screen.Sync()
		case *tcell.EventKey:
			code, ok := keyCode(ev)
			if !ok {
				continue
			}
			select {
			case t.events <- input.RawInput{Device: input.DeviceTerminal, Code: code, Timestamp: ev.When()}:
			default:
				log.Debugf("input channel full, dropped %q", code)
			}
		}
	}
}

// DrawScale returns the current draw scale
func (t *TUIRenderer) DrawScale() int {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return t.drawScale
}

// SetDrawScale changes the draw scale
func (t *TUIRenderer) SetDrawScale(scale int) {
	if scale < 1 {
		scale = 1
	}
	t.mutex.Lock()
	t.drawScale = scale
	t.mutex.Unlock()
}

// TileWidth returns the tile width in virtual pixels
func (t *TUIRenderer) TileWidth() int {
	w, _ := t.tiles.ScaledSize(t.DrawScale(), renderer.DefaultTileScale)
	return w
}

// TileHeight returns the tile height in virtual pixels
func (t *TUIRenderer) TileHeight() int {
	_, h := t.tiles.ScaledSize(t.DrawScale(), renderer.DefaultTileScale)
	return h
}

// GridSize returns the terminal size in cells
func (t *TUIRenderer) GridSize() (int, int) {
	if t.screen == nil {
		return terminal.GetSize()
	}
	return t.screen.Size()
}

// ProjectedSize returns the terminal size in virtual pixels
func (t *TUIRenderer) ProjectedSize() (int, int) {
	cols, rows := t.GridSize()
	return cols * CellWidth, rows * CellHeight
}

// Present shows the frame. A frame with no draws shows an empty screen.
func (t *TUIRenderer) Present() {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	if !t.frameStarted {
		t.screen.Clear()
	}
	t.screen.Show()
	t.frameStarted = false
}

// InputSource returns the renderer's key event source
func (t *TUIRenderer) InputSource() input.Source {
	return t
}

// Events returns terminal key events as raw input
func (t *TUIRenderer) Events() <-chan input.RawInput {
	return t.events
}

// GrantTileAccess exposes the raw tile primitives
func (t *TUIRenderer) GrantTileAccess() tilecap.Drawer {
	return t
}

// IdleAnimations returns the animation clock
func (t *TUIRenderer) IdleAnimations() tilecap.Animator {
	return t.anim
}

// HasTile reports whether id resolves in the tileset
func (t *TUIRenderer) HasTile(id string) bool {
	return t.tiles.Has(id)
}

// DrawFromID paints the tile as a block of cells with its glyph centred
func (t *TUIRenderer) DrawFromID(p tilecap.DrawParams) (int, bool) {
	tile, ok := t.tiles.Find(p.ID)
	if !ok {
		return 0, false
	}

	fg := tile.Tint()
	if p.Tint != nil {
		fg = *p.Tint
	}
	light := p.Lit.Brightness()

	lift := t.tiles.ScaledLift(tile.Height3D, t.DrawScale(), renderer.DefaultTileScale)
	b := cellBlock(p.Pos.X, p.Pos.Y-lift, t.TileWidth(), t.TileHeight())
	glyph := tile.Glyph()
	if p.Rotation.Mirrored() {
		glyph = mirrorGlyph(glyph)
	}

	fgStyle := tcell.StyleDefault.
		Foreground(rgb(fg, light)).
		Background(rgb(fg, light*backdropShare))
	bgStyle := tcell.StyleDefault.Background(rgb(fg, light*backdropShare))

	t.mutex.Lock()
	defer t.mutex.Unlock()
	if !t.frameStarted {
		t.screen.Clear()
		t.frameStarted = true
	}

	cols, rows := t.screen.Size()
	for row := b.row; row < b.row+b.rows; row++ {
		for col := b.col; col < b.col+b.cols; col++ {
			if col < 0 || row < 0 || col >= cols || row >= rows {
				continue
			}
			t.screen.SetContent(col, row, ' ', nil, bgStyle)
		}
	}
	cc, cr := b.centre()
	if cc >= 0 && cr >= 0 && cc < cols && cr < rows {
		t.screen.SetContent(cc, cr, glyph, nil, fgStyle)
	}
	return tile.Height3D, true
}

// block is a rectangle of cells.
type block struct {
	col, row   int
	cols, rows int
}

func (b block) centre() (int, int) {
	return b.col + (b.cols-1)/2, b.row + (b.rows-1)/2
}

// cellBlock converts a pixel rectangle to the cells it covers. Every tile
// covers at least one cell.
func cellBlock(x, y, w, h int) block {
	b := block{
		col:  floorDiv(x, CellWidth),
		row:  floorDiv(y, CellHeight),
		cols: (w + CellWidth - 1) / CellWidth,
		rows: (h + CellHeight - 1) / CellHeight,
	}
	if b.cols < 1 {
		b.cols = 1
	}
	if b.rows < 1 {
		b.rows = 1
	}
	return b
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// rgb converts c to a terminal colour darkened by light.
func rgb(c color.NRGBA, light float32) tcell.Color {
	if light > 1 {
		light = 1
	}
	if light < 0 {
		light = 0
	}
	return tcell.NewRGBColor(
		int32(float32(c.R)*light),
		int32(float32(c.G)*light),
		int32(float32(c.B)*light),
	)
}

var mirrored = map[rune]rune{
	'(': ')', ')': '(',
	'[': ']', ']': '[',
	'{': '}', '}': '{',
	'<': '>', '>': '<',
	'/': '\\', '\\': '/',
}

// mirrorGlyph returns the horizontal mirror image of r where one exists.
func mirrorGlyph(r rune) rune {
	if m, ok := mirrored[r]; ok {
		return m
	}
	return r
}

// keyCode returns the raw code for a terminal key event.
func keyCode(ev *tcell.EventKey) (string, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return "arrow_up", true
	case tcell.KeyDown:
		return "arrow_down", true
	case tcell.KeyLeft:
		return "arrow_left", true
	case tcell.KeyRight:
		return "arrow_right", true
	case tcell.KeyEscape:
		return "escape", true
	case tcell.KeyEnter:
		return "enter", true
	case tcell.KeyCtrlC:
		return "quit", true
	case tcell.KeyRune:
		r := ev.Rune()
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		return string(r), true
	}
	log.Debugf("unmapped terminal key %s", ev.Name())
	return "", false
}

var _ renderer.Renderer = (*TUIRenderer)(nil)
