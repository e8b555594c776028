package help

import (
	"sort"
	"strings"

	"charm.land/lipgloss/v2"
)

// FloatingHelp renders a modal with all keybindings organized by category.
type FloatingHelp struct {
	width   int
	height  int
	entries []Entry

	borderStyle lipgloss.Style
	titleStyle  lipgloss.Style
	footerStyle lipgloss.Style
}

// NewFloatingHelp creates a new floating help modal.
func NewFloatingHelp() *FloatingHelp {
	return &FloatingHelp{
		borderStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2),
		titleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")),
		footerStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
	}
}

// SetSize sets the available size for the modal.
func (f *FloatingHelp) SetSize(width, height int) {
	f.width = width
	f.height = height
}

// SetEntries sets the keybindings to display.
func (f *FloatingHelp) SetEntries(entries []Entry) {
	f.entries = entries
}

// View renders the floating help modal.
func (f *FloatingHelp) View() string {
	if f.width <= 0 || f.height <= 0 {
		return ""
	}

	innerWidth := f.width - f.borderStyle.GetHorizontalFrameSize()
	innerHeight := f.height - f.borderStyle.GetVerticalFrameSize()

	if innerWidth < 20 || innerHeight < 5 {
		return f.borderStyle.Width(max(innerWidth, 10)).Render("...")
	}

	content := f.renderContent(innerWidth)

	// Truncate to the space between title and footer.
	contentHeight := innerHeight - 2
	contentLines := strings.Split(content, "\n")
	if len(contentLines) > contentHeight {
		contentLines = contentLines[:contentHeight]
	}
	content = strings.Join(contentLines, "\n")

	upper := lipgloss.JoinVertical(lipgloss.Left,
		f.titleStyle.Render("Help"),
		content,
	)

	inner := lipgloss.Place(
		innerWidth, innerHeight-1,
		lipgloss.Left, lipgloss.Top,
		upper,
	)

	footer := f.footerStyle.Render("? to close")
	footerLine := lipgloss.PlaceHorizontal(innerWidth, lipgloss.Right, footer)

	return f.borderStyle.Render(lipgloss.JoinVertical(lipgloss.Left, inner, footerLine))
}

// categoryOrder defines the display order of categories.
var categoryOrder = []Category{
	CategoryNavigation,
	CategoryActions,
	CategoryCoach,
}

// groupByCategory groups enabled entries by category, sorted by order.
func (f *FloatingHelp) groupByCategory() map[Category][]Entry {
	groups := make(map[Category][]Entry)

	for _, e := range f.entries {
		if !e.Binding.Enabled() {
			continue
		}
		groups[e.Category] = append(groups[e.Category], e)
	}

	for cat := range groups {
		sort.Slice(groups[cat], func(i, j int) bool {
			return groups[cat][i].Order < groups[cat][j].Order
		})
	}

	return groups
}

// renderContent renders the entries grouped by category.
func (f *FloatingHelp) renderContent(availableWidth int) string {
	groups := f.groupByCategory()
	if len(groups) == 0 {
		return "No keybindings available"
	}

	maxKeyWidth := 0
	for _, e := range f.entries {
		if !e.Binding.Enabled() {
			continue
		}
		if w := lipgloss.Width(e.Binding.Help().Key); w > maxKeyWidth {
			maxKeyWidth = w
		}
	}

	keyColumnWidth := maxKeyWidth + 2
	descMaxWidth := max(availableWidth-2-keyColumnWidth, 10)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("86")).
		Width(keyColumnWidth)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		MaxWidth(descMaxWidth)

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("62"))

	var lines []string

	for _, cat := range categoryOrder {
		entries, ok := groups[cat]
		if !ok || len(entries) == 0 {
			continue
		}

		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, headerStyle.Render(string(cat)))

		for _, e := range entries {
			h := e.Binding.Help()
			lines = append(lines, "  "+keyStyle.Render(h.Key)+descStyle.Render(h.Desc))
		}
	}

	return strings.Join(lines, "\n")
}
