package input

import (
	"sort"
	"time"
)

// Device represents a physical input source.
type Device int

const (
	DeviceUnknown Device = iota
	DeviceKeyboard
	DeviceTerminal
	DeviceWindow
)

// Action is a named high-level intent. Input contexts register the actions
// they care about and HandleInput returns one of them, or ActionTimeout.
type Action string

const (
	ActionNone    Action = ""
	ActionTimeout Action = "TIMEOUT"

	ActionQuit    Action = "QUIT"
	ActionConfirm Action = "CONFIRM"
	ActionLeft    Action = "LEFT"
	ActionRight   Action = "RIGHT"
	ActionUp      Action = "UP"
	ActionDown    Action = "DOWN"

	ActionZoomIn  Action = "ZOOM_IN"
	ActionZoomOut Action = "ZOOM_OUT"
)

// Intent is the 4th-layer, high-level description of what the user wants to do.
type Intent struct {
	Action Action
}

// RawInput is the 1st-layer event emitted directly from an input device.
// Code is a device-specific identifier (e.g. "q", "arrow_up", "escape").
type RawInput struct {
	Device    Device
	Code      string
	Timestamp time.Time
}

// DebouncedInput is the 2nd-layer representation after debouncing/deduplication.
// Backends already deliver one event per key press (Ebiten's inpututil, tcell's
// event queue), so this is a thin copy that keeps the layering explicit.
type DebouncedInput struct {
	Device Device
	Code   string
}

// NewDebouncedInput converts a raw event to a debounced event.
func NewDebouncedInput(raw RawInput) DebouncedInput {
	return DebouncedInput{
		Device: raw.Device,
		Code:   raw.Code,
	}
}

// reserved codes are never removed or reassigned by SetSingleBinding.
var reserved = map[string]bool{
	"escape":       true,
	"quit":         true, // terminal Ctrl-C
	"window_close": true,
	"arrow_up":     true,
	"arrow_down":   true,
	"arrow_left":   true,
	"arrow_right":  true,
	"enter":        true,
}

// bindings maps raw codes to actions (3rd-layer bindings).
// Multiple codes may point to the same Action.
var bindings = map[string]Action{
	// Leaving the window
	"q":            ActionQuit,
	"escape":       ActionQuit,
	"quit":         ActionQuit,
	"window_close": ActionQuit,

	"enter": ActionConfirm,
	"e":     ActionConfirm,

	// Movement (arrows, WASD, Vim)
	"arrow_up":    ActionUp,
	"k":           ActionUp,
	"w":           ActionUp,
	"arrow_down":  ActionDown,
	"j":           ActionDown,
	"s":           ActionDown,
	"arrow_left":  ActionLeft,
	"h":           ActionLeft,
	"a":           ActionLeft,
	"arrow_right": ActionRight,
	"l":           ActionRight,
	"d":           ActionRight,

	"=":               ActionZoomIn,
	"+":               ActionZoomIn,
	"numpad_add":      ActionZoomIn,
	"-":               ActionZoomOut,
	"numpad_subtract": ActionZoomOut,
}

// MapToIntent is the 3rd+4th layer: it applies the current bindings to a
// debounced input and returns a high-level Intent.
func MapToIntent(ev DebouncedInput) Intent {
	if act, ok := bindings[ev.Code]; ok {
		return Intent{Action: act}
	}
	return Intent{Action: ActionNone}
}

// GetBindingsByAction returns the current bindings grouped by action.
func GetBindingsByAction() map[Action][]string {
	result := make(map[Action][]string)
	for code, act := range bindings {
		result[act] = append(result[act], code)
	}
	// Stable ordering so listings don't shuffle between runs.
	for act, codes := range result {
		sort.Strings(codes)
		result[act] = codes
	}
	return result
}

// SetSingleBinding replaces all non-reserved bindings for the given action
// with a single code. Reserved codes keep their action.
func SetSingleBinding(action Action, code string) {
	for c, a := range bindings {
		if reserved[c] {
			continue
		}
		if a == action {
			delete(bindings, c)
		}
	}
	if code != "" && !reserved[code] {
		bindings[code] = action
	}
}

// IsReserved reports whether code is fixed to its action.
func IsReserved(code string) bool {
	return reserved[code]
}

// BindableActions lists the actions that key codes can be bound to, in
// display order.
func BindableActions() []Action {
	return []Action{
		ActionQuit,
		ActionConfirm,
		ActionUp,
		ActionDown,
		ActionLeft,
		ActionRight,
		ActionZoomIn,
		ActionZoomOut,
	}
}
