package ebiten

import (
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	engineinput "tileview/pkg/engine/input"
	"tileview/pkg/engine/log"
)

// keyCode pairs an Ebiten key with the raw code the bindings use.
type keyCode struct {
	key    ebiten.Key
	code   string
	repeat bool // held keys repeat after keyRepeatInitialDelay
}

// keyCodes are the keys forwarded to the window loop. Shifted keys are
// handled in shiftedCode.
var keyCodes = []keyCode{
	{ebiten.KeyArrowUp, "arrow_up", true},
	{ebiten.KeyArrowDown, "arrow_down", true},
	{ebiten.KeyArrowLeft, "arrow_left", true},
	{ebiten.KeyArrowRight, "arrow_right", true},
	{ebiten.KeyEscape, "escape", false},
	{ebiten.KeyEnter, "enter", false},
	{ebiten.KeyKPEnter, "enter", false},
	{ebiten.KeyNumpadAdd, "numpad_add", false},
	{ebiten.KeyNumpadSubtract, "numpad_subtract", false},
	{ebiten.KeyMinus, "-", false},
}

// Update forwards input to the window loop (Ebiten interface)
func (e *EbitenRenderer) Update() error {
	if e.stopped.Load() {
		return ebiten.Termination
	}
	e.logWindowOpened()

	if e.requestClose(ebiten.IsWindowBeingClosed()) {
		return nil
	}

	if code, ok := e.checkInput(); ok {
		e.send(engineinput.DeviceKeyboard, code)
	}
	return nil
}

// requestClose forwards a window close once. While the queue is full the
// close is retried on the following ticks.
func (e *EbitenRenderer) requestClose(closing bool) bool {
	if !closing || e.closeSent {
		return false
	}
	e.closeSent = e.send(engineinput.DeviceWindow, "window_close")
	return true
}

// send queues a raw event without blocking the game loop
func (e *EbitenRenderer) send(device engineinput.Device, code string) bool {
	select {
	case e.inputChan <- engineinput.RawInput{Device: device, Code: code, Timestamp: time.Now()}:
		return true
	default:
		// Channel full, drop input
		log.Debugf("input channel full, dropped %q", code)
		return false
	}
}

// checkInput returns the raw code of the key pressed this tick, if any
func (e *EbitenRenderer) checkInput() (string, bool) {
	for _, kc := range keyCodes {
		if kc.repeat {
			if e.shouldRepeatKey(func() bool { return ebiten.IsKeyPressed(kc.key) }, kc.code) {
				return kc.code, true
			}
			continue
		}
		if inpututil.IsKeyJustPressed(kc.key) {
			return kc.code, true
		}
	}

	shift := ebiten.IsKeyPressed(ebiten.KeyShift)
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) {
		return shiftedCode("=", shift), true
	}

	// Letters go through as their lower-case names ("q", "e", "h", ...)
	for _, k := range letterKeys {
		if inpututil.IsKeyJustPressed(k) {
			return letterCode(k), true
		}
	}
	return "", false
}

// shiftedCode returns the character a US layout produces for base with
// shift held.
func shiftedCode(base string, shift bool) string {
	if !shift {
		return base
	}
	if base == "=" {
		return "+"
	}
	return base
}

var letterKeys = []ebiten.Key{
	ebiten.KeyA, ebiten.KeyB, ebiten.KeyC, ebiten.KeyD, ebiten.KeyE, ebiten.KeyF,
	ebiten.KeyG, ebiten.KeyH, ebiten.KeyI, ebiten.KeyJ, ebiten.KeyK, ebiten.KeyL,
	ebiten.KeyM, ebiten.KeyN, ebiten.KeyO, ebiten.KeyP, ebiten.KeyQ, ebiten.KeyR,
	ebiten.KeyS, ebiten.KeyT, ebiten.KeyU, ebiten.KeyV, ebiten.KeyW, ebiten.KeyX,
	ebiten.KeyY, ebiten.KeyZ,
}

// letterCode returns the lower-case name of a letter key.
func letterCode(k ebiten.Key) string {
	return strings.ToLower(k.String())
}

// shouldRepeatKey checks if a key should trigger (initial press or repeat)
// Returns true if the key should trigger, false otherwise
func (e *EbitenRenderer) shouldRepeatKey(isPressed func() bool, code string) bool {
	return e.repeatAt(isPressed(), code, time.Now().UnixMilli())
}

// repeatAt is shouldRepeatKey with the clock and key state supplied.
func (e *EbitenRenderer) repeatAt(pressed bool, code string, now int64) bool {
	e.keyRepeatStateMutex.Lock()
	defer e.keyRepeatStateMutex.Unlock()

	state, exists := e.keyRepeatState[code]
	if !pressed {
		// Key released - clean up state
		delete(e.keyRepeatState, code)
		return false
	}

	if !exists {
		// First press - record it and trigger immediately
		e.keyRepeatState[code] = keyRepeatInfo{
			firstPressed: now,
			lastRepeat:   now,
		}
		return true
	}

	// Key is held - check if we should repeat
	if now-state.firstPressed >= keyRepeatInitialDelay && now-state.lastRepeat >= keyRepeatInterval {
		state.lastRepeat = now
		e.keyRepeatState[code] = state
		return true
	}
	return false
}

// Layout returns the game's logical screen size (Ebiten interface)
func (e *EbitenRenderer) Layout(outsideWidth, outsideHeight int) (int, int) {
	e.sizeMutex.Lock()
	if outsideWidth != e.windowWidth || outsideHeight != e.windowHeight {
		log.Debugf("window resized to %dx%d", outsideWidth, outsideHeight)
		e.windowWidth = outsideWidth
		e.windowHeight = outsideHeight
	}
	e.sizeMutex.Unlock()
	return outsideWidth, outsideHeight
}
