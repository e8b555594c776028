package ui

import (
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

const (
	// noteHorizontalPadding is the horizontal padding value for the overlay border.
	noteHorizontalPadding = 2

	// noteInputChrome is the total horizontal space consumed by the overlay's
	// border and padding on both sides.
	noteInputChrome = 12

	// minNoteInputWidth is the floor width for the text input field.
	minNoteInputWidth = 20
)

// NoteInput is a text input overlay for adding a note to the notes pane.
type NoteInput struct {
	input  textinput.Model
	width  int
	height int

	// Key bindings
	submit key.Binding
	cancel key.Binding

	// Styles
	borderStyle lipgloss.Style
	titleStyle  lipgloss.Style
	hintStyle   lipgloss.Style
}

// NewNoteInput creates a new note input overlay.
func NewNoteInput() *NoteInput {
	input := textinput.New()
	input.Placeholder = "Write a note..."
	input.CharLimit = 256
	input.Focus()

	return &NoteInput{
		input: input,
		submit: key.NewBinding(
			key.WithKeys("enter"),
		),
		cancel: key.NewBinding(
			key.WithKeys("esc"),
		),
		borderStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, noteHorizontalPadding),
		titleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")),
		hintStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
	}
}

// SetSize sets the available size for the overlay.
func (n *NoteInput) SetSize(width, height int) {
	n.width = width
	n.height = height

	inputWidth := width - noteInputChrome
	if inputWidth < minNoteInputWidth {
		inputWidth = minNoteInputWidth
	}

	n.input.SetWidth(inputWidth)
}

// Reset clears the input value.
func (n *NoteInput) Reset() {
	n.input.SetValue("")
}

// SetValue sets the current input text.
func (n *NoteInput) SetValue(value string) {
	n.input.SetValue(value)
	n.input.CursorEnd()
}

// Value returns the current input value.
func (n *NoteInput) Value() string {
	return n.input.Value()
}

// Focus sets focus on the text input.
func (n *NoteInput) Focus() tea.Cmd {
	return n.input.Focus()
}

// NoteSubmitMsg is sent when the user submits a note.
type NoteSubmitMsg struct {
	Text string
}

// NoteCancelMsg is sent when the user dismisses the overlay.
type NoteCancelMsg struct{}

// Update handles input messages.
func (n *NoteInput) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, n.submit) {
			text := n.input.Value()
			return func() tea.Msg {
				return NoteSubmitMsg{Text: text}
			}
		}

		if key.Matches(msg, n.cancel) {
			return func() tea.Msg {
				return NoteCancelMsg{}
			}
		}
	}

	// Forward to text input
	var cmd tea.Cmd

	n.input, cmd = n.input.Update(msg)

	return cmd
}

// View renders the note input overlay.
func (n *NoteInput) View() string {
	title := n.titleStyle.Render("New note")
	hint := n.hintStyle.Render("⏎ save • ⎋ cancel")

	content := lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		n.input.View(),
		"",
		hint,
	)

	return n.borderStyle.Render(content)
}

// Width returns the rendered width of the overlay.
func (n *NoteInput) Width() int {
	return lipgloss.Width(n.View())
}

// Height returns the rendered height of the overlay.
func (n *NoteInput) Height() int {
	return lipgloss.Height(n.View())
}
