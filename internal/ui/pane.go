package ui

import (
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/chatter/nudge/internal/ui/help"
)

// mouseScrollLines is the number of lines to scroll per mouse wheel tick.
const mouseScrollLines = 3

// paneKeys holds the scroll bindings shared by every pane.
type paneKeys struct {
	LineDown     key.Binding
	LineUp       key.Binding
	HalfPageDown key.Binding
	HalfPageUp   key.Binding
	Top          key.Binding
	Bottom       key.Binding
}

func newPaneKeys() paneKeys {
	return paneKeys{
		LineDown:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j", "scroll down")),
		LineUp:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k", "scroll up")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("C-d", "half page down")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("C-u", "half page up")),
		Top:          key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "go to top")),
		Bottom:       key.NewBinding(key.WithKeys("G"), key.WithHelp("G", "go to bottom")),
	}
}

// Pane displays scrollable text content with a titled border.
type Pane struct {
	viewport viewport.Model
	keys     paneKeys
	title    string
	num      int
	focused  bool
	width    int
	height   int
	content  string
}

// NewPane creates a pane with the given title and panel number.
func NewPane(num int, title string) Pane {
	return Pane{
		viewport: viewport.New(),
		keys:     newPaneKeys(),
		title:    title,
		num:      num,
	}
}

// Title returns the pane title.
func (p *Pane) Title() string {
	return p.title
}

// SetSize sets the pane dimensions.
func (p *Pane) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.viewport.SetWidth(width - PanelBorderWidth)
	p.viewport.SetHeight(height - PanelChromeHeight)
}

// SetFocused sets the focus state.
func (p *Pane) SetFocused(focused bool) {
	p.focused = focused
}

// Focused reports whether the pane has focus.
func (p *Pane) Focused() bool {
	return p.focused
}

// SetContent replaces the pane content and resets the scroll position.
func (p *Pane) SetContent(content string) {
	p.content = content
	p.viewport.SetContent(content)
	p.viewport.GotoTop()
}

// AppendLine appends a line to the pane content, keeping the scroll position.
func (p *Pane) AppendLine(line string) {
	if p.content == "" {
		p.content = line
	} else {
		p.content += "\n" + line
	}
	p.viewport.SetContent(p.content)
}

// Content returns the pane's raw content.
func (p *Pane) Content() string {
	return p.content
}

// YOffset returns the viewport scroll offset.
func (p *Pane) YOffset() int {
	return p.viewport.YOffset()
}

// HandleMouseScroll handles mouse wheel events.
func (p *Pane) HandleMouseScroll(button tea.MouseButton) {
	switch button {
	case tea.MouseWheelUp:
		p.viewport.ScrollUp(mouseScrollLines)
	case tea.MouseWheelDown:
		p.viewport.ScrollDown(mouseScrollLines)
	}
}

// Update handles input. Only the focused pane reacts.
func (p *Pane) Update(msg tea.Msg) tea.Cmd {
	if !p.focused {
		return nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, p.keys.LineDown):
			p.viewport.ScrollDown(1)
		case key.Matches(msg, p.keys.LineUp):
			p.viewport.ScrollUp(1)
		case key.Matches(msg, p.keys.HalfPageDown):
			p.viewport.HalfPageDown()
		case key.Matches(msg, p.keys.HalfPageUp):
			p.viewport.HalfPageUp()
		case key.Matches(msg, p.keys.Top):
			p.viewport.GotoTop()
		case key.Matches(msg, p.keys.Bottom):
			p.viewport.GotoBottom()
		}
	}

	return nil
}

// View renders the pane.
func (p *Pane) View() string {
	title := PanelTitle(p.num, p.title, p.focused)

	style := PanelStyle
	if p.focused {
		style = FocusedPanelStyle
	}
	style = style.Height(p.height - PanelBorderHeight)

	content := title + "\n" + p.viewport.View()

	return style.Width(p.width - PanelBorderWidth).Render(lipgloss.NewStyle().MaxWidth(p.width - PanelBorderWidth).Render(content))
}

// HelpEntries returns the scroll bindings for this pane.
func (p *Pane) HelpEntries() []help.Entry {
	return []help.Entry{
		{
			Name:     "scroll-line-down",
			Doc:      "*Scroll the focused pane down one line.",
			Binding:  p.keys.LineDown,
			Category: help.CategoryNavigation,
			Order:    PanelOrderPrimary,
		},
		{
			Name:     "scroll-line-up",
			Doc:      "*Scroll the focused pane up one line.",
			Binding:  p.keys.LineUp,
			Category: help.CategoryNavigation,
			Order:    PanelOrderPrimary + 1,
		},
		{
			Name:     "scroll-half-page-down",
			Doc:      "*Scroll the focused pane down half a page.",
			Binding:  p.keys.HalfPageDown,
			Category: help.CategoryNavigation,
			Order:    PanelOrderSecondary,
		},
		{
			Name:     "scroll-half-page-up",
			Doc:      "*Scroll the focused pane up half a page.",
			Binding:  p.keys.HalfPageUp,
			Category: help.CategoryNavigation,
			Order:    PanelOrderSecondary + 1,
		},
		{
			Name:     "goto-top",
			Doc:      "*Jump to the first line of the focused pane.",
			Binding:  p.keys.Top,
			Category: help.CategoryNavigation,
			Order:    PanelOrderSecondary + 2,
		},
		{
			Name:     "goto-bottom",
			Doc:      "*Jump to the last line of the focused pane.",
			Binding:  p.keys.Bottom,
			Category: help.CategoryNavigation,
			Order:    PanelOrderSecondary + 3,
		},
	}
}
