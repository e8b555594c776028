package ui

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"pgregory.net/rapid"
)

func TestPane_SetContentResetsScroll(t *testing.T) {
	p := NewPane(1, "Notes")
	p.SetSize(40, 10)
	p.SetFocused(true)

	p.SetContent(strings.Repeat("line\n", 50))

	// Scroll down, then replace content
	down := tea.KeyPressMsg(tea.Key{Code: 'j', Text: "j"})
	for i := 0; i < 5; i++ {
		p.Update(down)
	}
	p.SetContent("fresh")

	if p.viewport.YOffset() != 0 {
		t.Errorf("expected scroll reset after SetContent, got offset %d", p.viewport.YOffset())
	}
}

func TestPane_AppendLineAccumulates(t *testing.T) {
	p := NewPane(2, "Activity")
	p.SetSize(40, 10)

	p.AppendLine("first")
	p.AppendLine("second")

	if p.content != "first\nsecond" {
		t.Errorf("unexpected content: %q", p.content)
	}
}

func TestPane_UnfocusedIgnoresKeys(t *testing.T) {
	p := NewPane(1, "Notes")
	p.SetSize(40, 6)
	p.SetFocused(false)
	p.SetContent(strings.Repeat("line\n", 50))

	down := tea.KeyPressMsg(tea.Key{Code: 'j', Text: "j"})
	p.Update(down)

	if p.viewport.YOffset() != 0 {
		t.Errorf("unfocused pane should not scroll, got offset %d", p.viewport.YOffset())
	}
}

func TestPane_FocusedScrolls(t *testing.T) {
	p := NewPane(1, "Notes")
	p.SetSize(40, 6)
	p.SetFocused(true)
	p.SetContent(strings.Repeat("line\n", 50))

	down := tea.KeyPressMsg(tea.Key{Code: 'j', Text: "j"})
	p.Update(down)

	if p.viewport.YOffset() != 1 {
		t.Errorf("expected offset 1 after one line down, got %d", p.viewport.YOffset())
	}

	bottom := tea.KeyPressMsg(tea.Key{Code: 'G', Text: "G"})
	p.Update(bottom)
	top := tea.KeyPressMsg(tea.Key{Code: 'g', Text: "g"})
	p.Update(top)

	if p.viewport.YOffset() != 0 {
		t.Errorf("expected offset 0 after goto top, got %d", p.viewport.YOffset())
	}
}

func TestPane_HelpEntriesHaveNamesAndDocs(t *testing.T) {
	p := NewPane(1, "Notes")

	entries := p.HelpEntries()
	if len(entries) == 0 {
		t.Fatal("expected help entries")
	}

	seen := make(map[string]bool)
	for _, e := range entries {
		if e.Name == "" {
			t.Error("entry with empty name")
		}
		if e.Doc == "" {
			t.Errorf("entry %q has no doc", e.Name)
		}
		if seen[e.Name] {
			t.Errorf("duplicate entry name %q", e.Name)
		}
		seen[e.Name] = true
	}
}

// Property: the rendered pane never exceeds its box
func TestPane_ViewFitsSize(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		width := rapid.IntRange(20, 120).Draw(t, "width")
		height := rapid.IntRange(5, 40).Draw(t, "height")
		lines := rapid.IntRange(0, 100).Draw(t, "lines")
		focused := rapid.Bool().Draw(t, "focused")

		p := NewPane(1, "Notes")
		p.SetSize(width, height)
		p.SetFocused(focused)
		p.SetContent(strings.Repeat("some pane content here\n", lines))

		view := p.View()

		if w := lipgloss.Width(view); w > width {
			t.Errorf("view width %d exceeds %d", w, width)
		}
		if h := lipgloss.Height(view); h > height {
			t.Errorf("view height %d exceeds %d", h, height)
		}
	})
}
