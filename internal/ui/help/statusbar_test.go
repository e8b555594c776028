package help

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	"pgregory.net/rapid"
)

func TestStatusBar_WidthNeverExceeded(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		width := rapid.IntRange(10, 200).Draw(rt, "width")
		content := rapid.StringMatching(`[a-z ]{0,120}`).Draw(rt, "content")

		sb := NewStatusBar("v1.0.0")
		sb.SetWidth(width)
		sb.SetContent(content)

		view := sb.View()
		if got := lipgloss.Width(view); got > width {
			rt.Errorf("view width %d exceeds %d: %q", got, width, view)
		}
	})
}

func TestStatusBar_VersionAtEndWhenItFits(t *testing.T) {
	sb := NewStatusBar("v1.0.0")
	sb.SetWidth(80)
	sb.SetContent("ready")

	view := sb.View()
	if !strings.HasSuffix(view, "v1.0.0") {
		t.Errorf("version not at end: %q", view)
	}
	if !strings.Contains(view, "ready") {
		t.Errorf("content missing: %q", view)
	}
}

func TestStatusBar_VersionDroppedWhenTight(t *testing.T) {
	sb := NewStatusBar("v1.0.0")
	sb.SetWidth(12)
	sb.SetContent("a long status line")

	if view := sb.View(); strings.Contains(view, "v1.0.0") {
		t.Errorf("version should be dropped when it cannot fit: %q", view)
	}
}

func TestStatusBar_HintReplacesAndClearRestores(t *testing.T) {
	sb := NewStatusBar("v1.0.0")
	sb.SetWidth(80)
	sb.SetContent("2 panes · log focused")

	sb.Show("Press q to quit the app.")
	if !sb.Showing() {
		t.Error("Showing() should report an active hint")
	}
	view := sb.View()
	if !strings.Contains(view, "Press q") {
		t.Errorf("hint not shown: %q", view)
	}
	if strings.Contains(view, "log focused") {
		t.Errorf("content should be hidden while a hint shows: %q", view)
	}

	sb.Clear()
	if sb.Showing() {
		t.Error("Showing() should be false after Clear")
	}
	view = sb.View()
	if !strings.Contains(view, "log focused") {
		t.Errorf("content not restored after Clear: %q", view)
	}
}

func TestStatusBar_ContentSetDuringHintIsPreserved(t *testing.T) {
	sb := NewStatusBar("v1.0.0")
	sb.SetWidth(80)
	sb.SetContent("before")

	sb.Show("Press g to refresh.")
	sb.SetContent("after")
	sb.Clear()

	if view := sb.View(); !strings.Contains(view, "after") {
		t.Errorf("latest content should survive the hint: %q", view)
	}
}

func TestStatusBar_ZeroWidth(t *testing.T) {
	sb := NewStatusBar("v1.0.0")
	if view := sb.View(); view != "" {
		t.Errorf("zero width should render nothing, got %q", view)
	}
}
