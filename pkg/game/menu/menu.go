// Package menu provides the listing shown for -keys.
package menu

// MenuItem represents a single item in a menu.
type MenuItem interface {
	// GetLabel returns the display label for this menu item.
	GetLabel() string
	// IsSelectable returns whether this item can be rebound.
	IsSelectable() bool
	// GetHelpText returns optional help text for this item.
	GetHelpText() string
}
