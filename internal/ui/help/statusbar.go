package help

import (
	"strings"
	"sync"

	"charm.land/lipgloss/v2"
)

// StatusBar renders a minimal status line: content (or an active hint) on
// the left and a right-aligned version string.
//
// It is the default display sink for the hint scheduler: Show temporarily
// replaces the persistent content, Clear restores it. The scheduler calls
// Show and Clear from its timer goroutines while the TUI renders View on
// the program goroutine, so hint state is mutex-guarded.
type StatusBar struct {
	mu      sync.Mutex
	width   int
	version string
	content string
	hint    string
	hasHint bool

	contentStyle lipgloss.Style
	hintStyle    lipgloss.Style
}

// NewStatusBar creates a new status bar displaying the given version.
func NewStatusBar(version string) *StatusBar {
	return &StatusBar{
		version:      version,
		contentStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		hintStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	}
}

// SetWidth sets the available width for rendering.
func (s *StatusBar) SetWidth(width int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
}

// SetContent sets the persistent status content. Content set while a hint
// is showing is preserved and restored when the hint clears.
func (s *StatusBar) SetContent(content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.content = content
}

// Show displays a hint, replacing the content until Clear.
func (s *StatusBar) Show(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hint = text
	s.hasHint = true
}

// Clear removes any shown hint, restoring the previous content.
func (s *StatusBar) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hint = ""
	s.hasHint = false
}

// Showing reports whether a hint is currently displayed.
func (s *StatusBar) Showing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasHint
}

// View renders the status bar.
func (s *StatusBar) View() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.width <= 0 {
		return ""
	}

	var left string
	if s.hasHint {
		left = s.hintStyle.Render(s.hint)
	} else {
		left = s.contentStyle.Render(s.content)
	}

	leftWidth := lipgloss.Width(left)

	// If left side + version don't fit, drop the version.
	const minGap = 1

	versionWidth := lipgloss.Width(s.version)

	if leftWidth+minGap+versionWidth > s.width {
		if leftWidth > s.width {
			return lipgloss.NewStyle().MaxWidth(s.width).Render(left)
		}

		return left + strings.Repeat(" ", s.width-leftWidth)
	}

	padding := s.width - leftWidth - versionWidth

	return left + strings.Repeat(" ", padding) + s.version
}
