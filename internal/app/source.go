package app

import (
	"fmt"
	"sync"

	"github.com/chatter/nudge/internal/keymap"
	"github.com/chatter/nudge/internal/ui/help"
)

// bindingSource turns the application's keybinding tables into the textual
// reports the extractor consumes, and resolves report tokens back into
// commands. It implements keymap.Source, keymap.Resolver and hint.Docs.
//
// The scheduler calls in from its timer goroutine, so the focused pane
// name is mutex guarded.
type bindingSource struct {
	mu      sync.Mutex
	focused string

	panes  map[string]paneBindings
	global []help.Entry
	names  map[string]keymap.Command
	docs   map[keymap.Command]string
}

// paneBindings is one pane's report section.
type paneBindings struct {
	label   string
	entries []help.Entry
}

func newBindingSource() *bindingSource {
	return &bindingSource{
		panes: make(map[string]paneBindings),
		names: make(map[string]keymap.Command),
		docs:  make(map[keymap.Command]string),
	}
}

// AddPane registers a pane's bindings under a map name. The label heads the
// pane's report section.
func (s *bindingSource) AddPane(name, label string, entries []help.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.panes[name] = paneBindings{label: label, entries: entries}
	s.registerLocked(entries)
}

// SetGlobal registers the application-wide bindings.
func (s *bindingSource) SetGlobal(entries []help.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.global = entries
	s.registerLocked(entries)
}

// SetFocused names the pane whose bindings are local.
func (s *bindingSource) SetFocused(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.focused = name
}

func (s *bindingSource) registerLocked(entries []help.Entry) {
	for _, e := range entries {
		cmd := keymap.Command(e.Name)
		s.names[e.Name] = cmd
		if e.Doc != "" {
			s.docs[cmd] = e.Doc
		}
	}
}

// ActiveReport builds the report for the current context: the focused
// pane's section followed by the global section. The local flag does not
// change the shape; consumers stop at the global label themselves.
func (s *bindingSource) ActiveReport(bool) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sections []keymap.Section
	if pane, ok := s.panes[s.focused]; ok {
		sections = append(sections, keymap.Section{
			Label: pane.label,
			Rows:  entryRows(pane.entries),
		})
	}
	sections = append(sections, keymap.Section{
		Label: keymap.GlobalLabel,
		Rows:  entryRows(s.global),
	})

	return keymap.BuildReport(sections), nil
}

// MapReport builds the report for one pane's bindings in isolation.
func (s *bindingSource) MapReport(name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pane, ok := s.panes[name]
	if !ok {
		return "", fmt.Errorf("unknown binding map %q", name)
	}

	return keymap.BuildReport([]keymap.Section{{
		Label: pane.label,
		Rows:  entryRows(pane.entries),
	}}), nil
}

// Resolve maps a report token to its command. Unknown tokens, including
// the synthetic "Prefix Command" and "Keyboard Macro" rows, do not resolve.
func (s *bindingSource) Resolve(token string) (keymap.Command, bool) {
	if token == string(keymap.SelfInsert) {
		return keymap.SelfInsert, true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cmd, ok := s.names[token]
	return cmd, ok
}

// Doc returns the documentation text for a command.
func (s *bindingSource) Doc(cmd keymap.Command) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[cmd]
	return doc, ok
}

func entryRows(entries []help.Entry) []keymap.Row {
	rows := make([]keymap.Row, 0, len(entries))
	for _, e := range entries {
		if !e.Binding.Enabled() {
			continue
		}
		rows = append(rows, keymap.Row{
			Key:   e.Binding.Help().Key,
			Token: e.Name,
		})
	}
	return rows
}
