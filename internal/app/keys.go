package app

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/chatter/nudge/internal/ui/help"
)

// Action is a function that executes a keybinding's behavior
type Action func(m *Model) (Model, tea.Cmd)

// ActionBinding combines a display entry with its action for dispatch.
type ActionBinding struct {
	help.Entry        // embedded for display and coaching (Name, Doc, Binding, Category, Order)
	Action     Action // nil = display-only (no action)
}

// dispatchKey iterates through bindings and executes the first matching action.
// Returns nil, nil if no binding matches.
func dispatchKey(m *Model, msg tea.KeyMsg, bindings []ActionBinding) (*Model, tea.Cmd) {
	for _, ab := range bindings {
		if key.Matches(msg, ab.Binding) && ab.Action != nil {
			newModel, cmd := ab.Action(m)
			return &newModel, cmd
		}
	}
	return nil, nil
}

// ToHelpEntries extracts display-only entries from action bindings.
func ToHelpEntries(abs []ActionBinding) []help.Entry {
	result := make([]help.Entry, len(abs))
	for i, ab := range abs {
		result[i] = ab.Entry
	}
	return result
}

// KeyMap defines the key bindings for the application
type KeyMap struct {
	// Navigation between panes
	FocusNotes    key.Binding
	FocusActivity key.Binding
	NextPane      key.Binding
	PrevPane      key.Binding

	// Actions
	AddNote   key.Binding
	ClearPane key.Binding
	Quit      key.Binding
	Help      key.Binding

	// Coach
	ToggleCoach key.Binding
	CycleScope  key.Binding
	ShowHint    key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		FocusNotes: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "focus notes"),
		),
		FocusActivity: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "focus activity"),
		),
		NextPane: key.NewBinding(
			key.WithKeys("tab", "l", "right"),
			key.WithHelp("→/l/⇥", "next pane"),
		),
		PrevPane: key.NewBinding(
			key.WithKeys("shift+tab", "h", "left"),
			key.WithHelp("←/h/⇧⇥", "prev pane"),
		),
		AddNote: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new note"),
		),
		ClearPane: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear pane"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		ToggleCoach: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "toggle coach"),
		),
		CycleScope: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "hint scope"),
		),
		ShowHint: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "hint now"),
		),
	}
}
