package input

import (
	"maps"
	"testing"
)

func TestMapToIntent(t *testing.T) {
	tests := []struct {
		code string
		want Action
	}{
		{"q", ActionQuit},
		{"escape", ActionQuit},
		{"window_close", ActionQuit},
		{"enter", ActionConfirm},
		{"arrow_up", ActionUp},
		{"j", ActionDown},
		{"h", ActionLeft},
		{"arrow_right", ActionRight},
		{"+", ActionZoomIn},
		{"numpad_subtract", ActionZoomOut},
		{"?", ActionNone},
		{"unbound", ActionNone},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got := MapToIntent(NewDebouncedInput(RawInput{Code: tt.code})).Action
			if got != tt.want {
				t.Errorf("MapToIntent(%q) = %q, want %q", tt.code, got, tt.want)
			}
		})
	}
}

func TestSetSingleBinding(t *testing.T) {
	saved := maps.Clone(bindings)
	t.Cleanup(func() { bindings = saved })

	SetSingleBinding(ActionQuit, "x")

	if got := MapToIntent(DebouncedInput{Code: "x"}).Action; got != ActionQuit {
		t.Errorf("after rebinding, x = %q, want %q", got, ActionQuit)
	}
	if got := MapToIntent(DebouncedInput{Code: "q"}).Action; got != ActionNone {
		t.Errorf("after rebinding, q = %q, want none", got)
	}
	// Reserved codes survive rebinding.
	for _, code := range []string{"escape", "quit", "window_close"} {
		if got := MapToIntent(DebouncedInput{Code: code}).Action; got != ActionQuit {
			t.Errorf("after rebinding, %s = %q, want %q", code, got, ActionQuit)
		}
	}
}

func TestSetSingleBinding_ReservedCodeRejected(t *testing.T) {
	saved := maps.Clone(bindings)
	t.Cleanup(func() { bindings = saved })

	SetSingleBinding(ActionConfirm, "escape")

	if got := MapToIntent(DebouncedInput{Code: "escape"}).Action; got != ActionQuit {
		t.Errorf("escape = %q, want %q (reserved)", got, ActionQuit)
	}
}

func TestGetBindingsByAction_Sorted(t *testing.T) {
	codes := GetBindingsByAction()[ActionQuit]
	for i := 1; i < len(codes); i++ {
		if codes[i-1] > codes[i] {
			t.Fatalf("codes = %v, want sorted", codes)
		}
	}
	if len(codes) == 0 {
		t.Error("no codes bound to QUIT")
	}
}
