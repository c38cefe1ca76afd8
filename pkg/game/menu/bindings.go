package menu

import (
	"fmt"
	"io"
	"strings"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"

	engineinput "tileview/pkg/engine/input"
)

// BindingMenuItem represents a menu item for a key binding.
type BindingMenuItem struct {
	Action engineinput.Action
}

// codes splits the action's codes into rebindable and fixed ones.
func (b *BindingMenuItem) codes() (free, fixed []string) {
	for _, c := range engineinput.GetBindingsByAction()[b.Action] {
		if engineinput.IsReserved(c) {
			fixed = append(fixed, c)
		} else {
			free = append(free, c)
		}
	}
	return free, fixed
}

// GetLabel returns the display label for this binding menu item.
func (b *BindingMenuItem) GetLabel() string {
	free, fixed := b.codes()
	codeText := strings.Join(free, ", ")
	if codeText == "" {
		codeText = "(unbound)"
	}
	if len(fixed) > 0 {
		codeText += color.Gray.Sprintf(" (fixed: %s)", strings.Join(fixed, ", "))
	}
	return fmt.Sprintf("%s %s", color.Magenta.Sprintf("%-10s", b.Action), codeText)
}

// IsSelectable returns whether this binding can be rebound.
func (b *BindingMenuItem) IsSelectable() bool {
	return true
}

// GetHelpText returns how to rebind this action.
func (b *BindingMenuItem) GetHelpText() string {
	return fmt.Sprintf(gotext.Get("REBIND_HINT"), strings.ToLower(string(b.Action)))
}

// BindingItems returns one item per bindable action.
func BindingItems() []MenuItem {
	actions := engineinput.BindableActions()
	items := make([]MenuItem, len(actions))
	for i, action := range actions {
		items[i] = &BindingMenuItem{Action: action}
	}
	return items
}

// WriteBindings prints the bindings listing.
func WriteBindings(w io.Writer) {
	items := BindingItems()
	fmt.Fprintln(w, color.Bold.Sprint(gotext.Get("BINDINGS_HEADER")))
	for _, item := range items {
		fmt.Fprintf(w, "  %s\n", item.GetLabel())
	}
	if len(items) > 0 {
		fmt.Fprintln(w, color.Gray.Sprint(items[0].GetHelpText()))
	}
}
