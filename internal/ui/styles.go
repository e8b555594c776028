package ui

import (
	"charm.land/lipgloss/v2"
)

// Panel chrome measurements.
const (
	PanelBorderWidth  = 2 // left + right border
	PanelBorderHeight = 2 // top + bottom border
	PanelChromeHeight = 3 // border + title line
)

// Help entry ordering within a category.
const (
	PanelOrderPrimary   = 10
	PanelOrderSecondary = 20
)

// Colors
var (
	primaryColor   = lipgloss.Color("62")  // Purple
	secondaryColor = lipgloss.Color("241") // Gray
	accentColor    = lipgloss.Color("86")  // Cyan
	borderColor    = lipgloss.Color("240") // Dark gray
	focusBorder    = lipgloss.Color("62")  // Purple for focused
)

// Styles for the application
var (
	// Panel styles
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor)

	FocusedPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(focusBorder)

	// Title styles
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			Padding(0, 1)

	FocusedTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(accentColor).
				Padding(0, 1)

	// Dim style for non-focused content
	DimStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)
)

// SetAccentColor overrides the accent used for focused panel chrome with a
// configured color. The empty string keeps the built-in accent.
func SetAccentColor(hex string) {
	if hex == "" {
		return
	}
	c := lipgloss.Color(hex)
	accentColor = c
	focusBorder = c
	FocusedPanelStyle = FocusedPanelStyle.BorderForeground(c)
	FocusedTitleStyle = FocusedTitleStyle.Foreground(c)
}

// PanelTitle returns a formatted panel title with optional focus indicator
func PanelTitle(num int, title string, focused bool) string {
	prefix := ""
	if focused {
		prefix = "● "
	}
	titleText := prefix + "[" + string(rune('0'+num)) + "] " + title

	if focused {
		return FocusedTitleStyle.Render(titleText)
	}
	return TitleStyle.Render(titleText)
}
