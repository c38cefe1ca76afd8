// Package tiledisplay is a modal window that composites arbitrary tileset
// tiles.
//
// Callers stack layers (tile id, optional tint, rotation), pick a position
// and zoom, then call Query, which draws the layers every frame, keeps idle
// animations running and blocks until the user leaves the window. The
// renderer's draw scale is captured when the window first uses it and put
// back when the window is done, so the window leaves no trace behind.
package tiledisplay

import (
	"image"
	"time"

	"github.com/sirupsen/logrus"

	"tileview/pkg/engine/input"
	"tileview/pkg/engine/log"
	"tileview/pkg/engine/world"
	"tileview/pkg/game/config"
	"tileview/pkg/game/renderer"
)

const (
	// ContextName is the input context the window registers.
	ContextName = "TILE_DISPLAY_WINDOW"

	// IdleTimeout is how long the window waits for a key before redrawing,
	// which is also the idle animation tick rate.
	IdleTimeout = 125 * time.Millisecond

	// ResultError is returned by Query when there is nothing to draw on.
	ResultError = "ERROR"

	// ZoomStep is the factor one zoom key press multiplies or divides by.
	ZoomStep = 2.0
)

// windowActions are the actions that close the window.
var windowActions = []input.Action{
	input.ActionQuit,
	input.ActionConfirm,
	input.ActionLeft,
	input.ActionRight,
	input.ActionUp,
	input.ActionDown,
}

// zoomActions change the zoom and keep the window open.
var zoomActions = []input.Action{
	input.ActionZoomIn,
	input.ActionZoomOut,
}

// loopState is a state of the Query loop.
type loopState int

const (
	stateInit loopState = iota
	stateRendering
	stateAwaitingInput
	stateClosed
)

func (s loopState) String() string {
	switch s {
	case stateInit:
		return "init"
	case stateRendering:
		return "rendering"
	case stateAwaitingInput:
		return "awaiting-input"
	case stateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Window composites tile layers on the active renderer.
type Window struct {
	layers   LayerStack
	zoom     zoomController
	position Position

	renderer   func() (renderer.Renderer, bool)
	animations func() bool
	timeout    time.Duration
	log        *logrus.Entry
}

// Option configures a Window.
type Option func(*Window)

// WithRenderer pins the window to r instead of the process-wide renderer.
func WithRenderer(r renderer.Renderer) Option {
	return func(w *Window) {
		w.renderer = func() (renderer.Renderer, bool) { return r, r != nil }
	}
}

// WithAnimations overrides where the "animations enabled" preference is read.
func WithAnimations(enabled func() bool) Option {
	return func(w *Window) {
		w.animations = enabled
	}
}

// WithIdleTimeout overrides IdleTimeout.
func WithIdleTimeout(d time.Duration) Option {
	return func(w *Window) {
		w.timeout = d
	}
}

// New returns an empty, centered window at zoom 1.
func New(opts ...Option) *Window {
	w := &Window{
		zoom:     newZoomController(),
		position: Position{X: Centered, Y: Centered},
		renderer: renderer.Active,
		animations: func() bool {
			return config.Current().AnimationsEnabled()
		},
		timeout: IdleTimeout,
		log:     log.WithField("window", ContextName),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// SetPosition sets the tile position in terminal cells. A negative value
// centers the tiles on that axis.
func (w *Window) SetPosition(x, y int) {
	w.position = Position{X: Coord(x), Y: Coord(y)}
}

// Position returns the configured position.
func (w *Window) Position() Position {
	return w.position
}

// ClearLayers removes every layer.
func (w *Window) ClearLayers() {
	w.layers.Clear()
}

// AddLayer appends a layer. Layers draw in the order they are added.
func (w *Window) AddLayer(l Layer) {
	w.checkRotation(l.TileID, l.Rotation)
	w.layers.Add(l)
}

// AddLayerID appends a layer with no tint and no rotation.
func (w *Window) AddLayerID(id string) {
	w.layers.AddID(id)
}

// AddLayerWithTint appends a tinted layer.
func (w *Window) AddLayerWithTint(id string, r, g, b, a uint8) {
	w.layers.AddTinted(id, r, g, b, a)
}

// AddLayerRotated appends a rotated layer.
func (w *Window) AddLayerRotated(id string, rotation world.Rotation) {
	w.checkRotation(id, rotation)
	w.layers.AddRotated(id, rotation)
}

// AddLayerFull appends a tinted, rotated layer.
func (w *Window) AddLayerFull(id string, r, g, b, a uint8, rotation world.Rotation) {
	w.checkRotation(id, rotation)
	w.layers.AddFull(id, r, g, b, a, rotation)
}

// checkRotation warns about rotation codes outside 0-4. They are kept and
// draw unrotated.
func (w *Window) checkRotation(id string, rotation world.Rotation) {
	if !rotation.IsValid() {
		w.log.WithFields(logrus.Fields{
			"tile":     id,
			"rotation": int(rotation),
		}).Warn("unknown rotation code, drawing unrotated")
	}
}

// Layers returns the layers in draw order.
func (w *Window) Layers() []Layer {
	return w.layers.All()
}

// SetZoom sets the zoom factor, clamped to [MinZoom, MaxZoom].
func (w *Window) SetZoom(v float64) {
	w.zoom.set(v)
}

// Zoom returns the zoom factor.
func (w *Window) Zoom() float64 {
	return w.zoom.level
}

// TileExists reports whether id resolves on the window's renderer.
func (w *Window) TileExists(id string) bool {
	r, ok := w.renderer()
	if !ok {
		return false
	}
	a, ok := newRenderAdapter(r, w.animations)
	if !ok {
		return false
	}
	return a.hasTile(id)
}

// TileExists reports whether id resolves on the process-wide renderer.
func TileExists(id string) bool {
	return New().TileExists(id)
}

// Render draws a single frame without waiting for input. The renderer's
// draw scale stays captured until Query returns, Clear or Close.
func (w *Window) Render() bool {
	r, a, ok := w.engage()
	if !ok {
		return false
	}
	w.renderFrame(r, a)
	return true
}

// Query shows the window until the user leaves it and returns the action
// that closed it, or ResultError when no renderer is available. The zoom
// keys change the zoom by ZoomStep without closing the window.
func (w *Window) Query() string {
	r, adapter, ok := w.engage()
	if !ok {
		return ResultError
	}
	// Put the draw scale back on every way out of the loop.
	defer w.zoom.restore()

	var (
		ctxt   *input.Context
		action input.Action
	)
	state := stateInit
	for state != stateClosed {
		switch state {
		case stateInit:
			ctxt = input.NewContext(ContextName, r.InputSource())
			for _, a := range windowActions {
				ctxt.RegisterAction(a)
			}
			for _, a := range zoomActions {
				ctxt.RegisterAction(a)
			}
			ctxt.SetTimeout(w.timeout)
			state = stateRendering

		case stateRendering:
			w.renderFrame(r, adapter)
			state = stateAwaitingInput

		case stateAwaitingInput:
			action = ctxt.HandleInput()
			switch action {
			case input.ActionTimeout:
				state = stateRendering
			case input.ActionZoomIn:
				w.SetZoom(w.zoom.level * ZoomStep)
				state = stateRendering
			case input.ActionZoomOut:
				w.SetZoom(w.zoom.level / ZoomStep)
				state = stateRendering
			default:
				state = stateClosed
			}
		}
	}

	w.zoom.restore()
	w.log.WithField("action", action).Debug("tile display closed")
	return string(action)
}

// Clear resets layers, zoom and position to their defaults and restores the
// renderer's draw scale if it is still captured.
func (w *Window) Clear() {
	w.layers.Clear()
	w.zoom.set(DefaultZoom)
	w.position = Position{X: Centered, Y: Centered}
	w.zoom.restore()
}

// Close restores the renderer's draw scale if it is still captured. The
// window stays usable.
func (w *Window) Close() error {
	w.zoom.restore()
	return nil
}

// engage resolves the renderer and its tile capability and captures the
// draw scale.
func (w *Window) engage() (renderer.Renderer, *renderAdapter, bool) {
	r, ok := w.renderer()
	if !ok {
		w.log.Debug("no active renderer")
		return nil, nil, false
	}
	adapter, ok := newRenderAdapter(r, w.animations)
	if !ok {
		w.log.Warn("renderer grants no tile access")
		return nil, nil, false
	}
	if err := w.zoom.engage(r); err != nil {
		w.log.WithError(err).Warn("cannot capture draw scale")
		return nil, nil, false
	}
	return r, adapter, true
}

// renderFrame draws one complete frame and presents it.
func (w *Window) renderFrame(r renderer.Renderer, a *renderAdapter) {
	w.zoom.apply(r)

	pw, ph := r.ProjectedSize()
	cols, rows := r.GridSize()
	pos := ResolvePosition(w.position, Metrics{
		Tile:      image.Pt(r.TileWidth(), r.TileHeight()),
		Projected: image.Pt(pw, ph),
		Grid:      image.Pt(cols, rows),
	})

	a.advanceAnimationFrame()
	w.layers.Each(func(l Layer) {
		a.drawTileLayer(l, pos)
	})
	r.Present()
}
