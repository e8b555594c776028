// Package hint turns key bindings into short teachable messages and drives
// the idle loop that surfaces them.
package hint

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"charm.land/lipgloss/v2"

	"github.com/chatter/nudge/internal/keymap"
)

// Formatter builds display strings for hints. When styled, the key portion
// is rendered bold so it stands out in a status line; plain text otherwise.
type Formatter struct {
	styled        bool
	escapePercent bool
	keyStyle      lipgloss.Style
}

// NewFormatter creates a Formatter. Pass styled=false when the display
// sink cannot render ANSI styling.
func NewFormatter(styled bool) *Formatter {
	return &Formatter{
		styled:   styled,
		keyStyle: lipgloss.NewStyle().Bold(true),
	}
}

// SetPercentEscaping doubles any % in formatted output, for sinks that
// treat % as a format directive.
func (f *Formatter) SetPercentEscaping(on bool) {
	f.escapePercent = on
}

// Format builds the hint message for a key bound to cmd. With documentation
// the message reads "Press <key> to <summary>"; without, it falls back to
// "Press <key> for <command>.".
func (f *Formatter) Format(key string, cmd keymap.Command, doc string) string {
	rendered := key
	if f.styled {
		rendered = f.keyStyle.Render(key)
	}

	var text string
	if summary := summarize(doc); summary != "" {
		text = "Press " + rendered + " to " + summary
	} else {
		text = "Press " + rendered + " for " + string(cmd) + "."
	}

	if f.escapePercent {
		text = strings.ReplaceAll(text, "%", "%%")
	}

	return text
}

// summarize reduces documentation text to its first sentence line with the
// leading character lower-cased. A leading "*" option marker is stripped;
// a leading ":" calling-convention line is skipped entirely. Returns ""
// when no usable summary remains.
func summarize(doc string) string {
	doc = strings.TrimPrefix(doc, "*")

	if strings.HasPrefix(doc, ":") {
		i := strings.IndexByte(doc, '\n')
		if i < 0 {
			return ""
		}
		doc = strings.TrimLeft(doc[i+1:], "\n")
	}

	if i := strings.IndexByte(doc, '\n'); i >= 0 {
		doc = doc[:i]
	}

	return lowerFirst(doc)
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
