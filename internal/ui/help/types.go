// Package help provides the status bar and the floating help modal.
package help

import (
	"charm.land/bubbles/v2/key"
)

// Category represents a logical grouping of keybindings for help display
type Category string

const (
	CategoryNavigation Category = "Navigation"
	CategoryActions    Category = "Actions"
	CategoryCoach      Category = "Coach"
)

// Entry describes one named command binding: display metadata for the help
// surfaces plus the command identity and documentation the coach teaches
// from.
type Entry struct {
	// Name is the command identifier, e.g. "scroll-down". It is the
	// binding token written into binding reports.
	Name string
	// Doc is the command documentation. The first line is the summary
	// used in hints; empty means undocumented.
	Doc string

	Binding  key.Binding
	Category Category
	Order    int // lower = higher display priority
}
