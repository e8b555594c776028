package help

import (
	"regexp"
	"strings"
	"testing"

	"charm.land/bubbles/v2/key"
	"charm.land/lipgloss/v2"
	"pgregory.net/rapid"
)

// ansiRegex matches ANSI escape sequences
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// stripANSI removes all ANSI escape sequences from a string
func stripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

func generateFloatingEntries(t *rapid.T) []Entry {
	numEntries := rapid.IntRange(0, 30).Draw(t, "numEntries")
	entries := make([]Entry, numEntries)
	for i := 0; i < numEntries; i++ {
		keyStr := string(rune('a' + i%26))
		desc := rapid.StringMatching(`[a-z]{3,12}`).Draw(t, "desc")
		category := rapid.SampledFrom([]Category{CategoryNavigation, CategoryActions, CategoryCoach}).Draw(t, "category")
		enabled := rapid.Float64Range(0, 1).Draw(t, "enabledChance") > 0.2 // 80% enabled

		binding := key.NewBinding(key.WithKeys(keyStr), key.WithHelp(keyStr, desc))
		if !enabled {
			binding.SetEnabled(false)
		}

		entries[i] = Entry{
			Name:     desc,
			Binding:  binding,
			Category: category,
			Order:    i,
		}
	}
	return entries
}

func TestFloating_AllEnabledEntriesAppear_WhenEnoughSpace(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		width := rapid.IntRange(60, 120).Draw(t, "width")

		// Small enough set that everything fits
		numEntries := rapid.IntRange(1, 5).Draw(t, "numEntries")
		entries := make([]Entry, numEntries)
		for i := 0; i < numEntries; i++ {
			keyStr := string(rune('a' + i))
			desc := "desc" + string(rune('0'+i))
			entries[i] = Entry{
				Name:     desc,
				Binding:  key.NewBinding(key.WithKeys(keyStr), key.WithHelp(keyStr, desc)),
				Category: CategoryNavigation,
				Order:    i,
			}
		}

		height := numEntries + 10

		fh := NewFloatingHelp()
		fh.SetSize(width, height)
		fh.SetEntries(entries)

		view := fh.View()
		plainView := stripANSI(view)

		for _, e := range entries {
			desc := e.Binding.Help().Desc
			if !strings.Contains(plainView, desc) {
				t.Errorf("enabled entry %q not found in view with sufficient space", desc)
			}
		}
	})
}

func TestFloating_DisabledEntriesNeverAppear(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		width := rapid.IntRange(60, 120).Draw(t, "width")
		height := rapid.IntRange(20, 40).Draw(t, "height")

		numEntries := rapid.IntRange(1, 10).Draw(t, "numEntries")
		entries := make([]Entry, numEntries)
		for i := 0; i < numEntries; i++ {
			desc := "disabled" + string(rune('0'+i))
			binding := key.NewBinding(key.WithKeys("x"), key.WithHelp("x", desc))
			binding.SetEnabled(false)
			entries[i] = Entry{
				Name:     desc,
				Binding:  binding,
				Category: CategoryActions,
				Order:    i,
			}
		}

		fh := NewFloatingHelp()
		fh.SetSize(width, height)
		fh.SetEntries(entries)

		view := fh.View()
		plainView := stripANSI(view)

		for i := 0; i < numEntries; i++ {
			desc := "disabled" + string(rune('0'+i))
			if strings.Contains(plainView, desc) {
				t.Errorf("disabled entry %q should not appear in view", desc)
			}
		}
	})
}

func TestFloating_CategoriesAppearAsHeaders(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		width := rapid.IntRange(60, 120).Draw(t, "width")
		height := rapid.IntRange(20, 40).Draw(t, "height")

		entries := []Entry{
			{
				Name:     "scroll-down",
				Binding:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "nav action")),
				Category: CategoryNavigation,
				Order:    1,
			},
			{
				Name:     "refresh-view",
				Binding:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "action action")),
				Category: CategoryActions,
				Order:    2,
			},
			{
				Name:     "toggle-coach",
				Binding:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "coach action")),
				Category: CategoryCoach,
				Order:    3,
			},
		}

		fh := NewFloatingHelp()
		fh.SetSize(width, height)
		fh.SetEntries(entries)

		view := fh.View()
		plainView := stripANSI(view)

		if !strings.Contains(plainView, string(CategoryNavigation)) {
			t.Errorf("Navigation category header not found")
		}
		if !strings.Contains(plainView, string(CategoryActions)) {
			t.Errorf("Actions category header not found")
		}
		if !strings.Contains(plainView, string(CategoryCoach)) {
			t.Errorf("Coach category header not found")
		}
	})
}

func TestFloating_EntriesOrderedWithinCategory(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		width := rapid.IntRange(80, 120).Draw(t, "width")
		height := rapid.IntRange(30, 50).Draw(t, "height")

		// Insert out of order; Order should win
		entries := []Entry{
			{Name: "nav2", Binding: key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "nav2")), Category: CategoryNavigation, Order: 2},
			{Name: "nav1", Binding: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "nav1")), Category: CategoryNavigation, Order: 1},
			{Name: "act1", Binding: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "act1")), Category: CategoryActions, Order: 3},
		}

		fh := NewFloatingHelp()
		fh.SetSize(width, height)
		fh.SetEntries(entries)

		plainView := stripANSI(fh.View())

		nav1Idx := strings.Index(plainView, "nav1")
		nav2Idx := strings.Index(plainView, "nav2")
		act1Idx := strings.Index(plainView, "act1")

		if nav1Idx < 0 || nav2Idx < 0 || act1Idx < 0 {
			t.Fatalf("expected all entries in view")
		}
		if nav1Idx > nav2Idx {
			t.Errorf("nav1 (Order 1) should render before nav2 (Order 2)")
		}
		if nav2Idx > act1Idx {
			t.Errorf("Navigation entries should render before Actions entries")
		}
	})
}

func TestFloating_SizeConstraintsRespected(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		width := rapid.IntRange(40, 120).Draw(t, "width")
		height := rapid.IntRange(10, 40).Draw(t, "height")
		entries := generateFloatingEntries(t)

		fh := NewFloatingHelp()
		fh.SetSize(width, height)
		fh.SetEntries(entries)

		view := fh.View()

		viewWidth := lipgloss.Width(view)
		viewHeight := lipgloss.Height(view)

		if viewWidth > width {
			t.Errorf("view width %d exceeds specified width %d", viewWidth, width)
		}
		if viewHeight > height {
			t.Errorf("view height %d exceeds specified height %d", viewHeight, height)
		}
	})
}

func TestFloating_EmptyEntriesShowsEmptyModal(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		width := rapid.IntRange(40, 120).Draw(t, "width")
		height := rapid.IntRange(10, 40).Draw(t, "height")

		fh := NewFloatingHelp()
		fh.SetSize(width, height)
		fh.SetEntries(nil)

		view := fh.View()

		if len(view) == 0 {
			t.Errorf("empty entries should still render modal frame")
		}
	})
}
