package app

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/chatter/nudge/internal/activity"
	"github.com/chatter/nudge/internal/config"
	"github.com/chatter/nudge/internal/hint"
	"github.com/chatter/nudge/internal/keymap"
	"github.com/chatter/nudge/internal/logger"
	"github.com/chatter/nudge/internal/ui"
	"github.com/chatter/nudge/internal/ui/help"
)

// FocusedPane represents which pane has focus
type FocusedPane int

const (
	PaneNotes    FocusedPane = iota // [1] Left pane
	PaneActivity                    // [2] Right pane
)

// Map names the panes register their bindings under.
const (
	paneNotesName    = "notes"
	paneActivityName = "activity"
)

// relaySink bridges the hint scheduler to the status bar. Scheduler
// callbacks arrive on its timer goroutine, so the sink writes through the
// mutex guarded status bar and pings the wake channel for a redraw.
type relaySink struct {
	bar  *help.StatusBar
	wake chan struct{}
}

func (r *relaySink) Show(text string) {
	r.bar.Show(text)
	r.ping()
}

func (r *relaySink) Clear() {
	r.bar.Clear()
	r.ping()
}

func (r *relaySink) ping() {
	select {
	case r.wake <- struct{}{}:
	default:
	}
}

// Model is the main application model
type Model struct {
	// Core state
	workDir string
	version string
	cfg     *config.Config
	log     *logger.Logger
	keys    KeyMap

	// Coach
	source    *bindingSource
	scheduler *hint.Scheduler
	wake      chan struct{}
	coachOn   bool
	scope     keymap.Scope

	// Activity watcher
	watcher *activity.Watcher

	// View state
	focusedPane   FocusedPane
	showHelp      bool
	showNoteInput bool

	// Panes
	notesPane    ui.Pane
	activityPane ui.Pane

	// Overlays
	noteInput    *ui.NoteInput
	floatingHelp *help.FloatingHelp
	statusBar    *help.StatusBar

	// Window size
	width  int
	height int
}

// New creates a new application model with the coach enabled.
func New(workDir, version string, cfg *config.Config, log *logger.Logger, styled bool) Model {
	ui.SetAccentColor(cfg.TUI.AccentColor)

	notesPane := ui.NewPane(1, "Notes")
	activityPane := ui.NewPane(2, "Activity")
	notesPane.SetFocused(true)
	notesPane.SetContent("Notes live here. Press n to add one.\nStop typing for a while and watch the status bar.")
	activityPane.SetContent(time.Now().Format("15:04:05") + " session started")

	statusBar := help.NewStatusBar("nudge " + version)
	statusBar.SetContent("? help · tab switch pane")

	source := newBindingSource()
	source.AddPane(paneNotesName, "Notes Bindings:", notesPane.HelpEntries())
	source.AddPane(paneActivityName, "Activity Bindings:", activityPane.HelpEntries())
	source.SetFocused(paneNotesName)

	wake := make(chan struct{}, 1)
	relay := &relaySink{bar: statusBar, wake: wake}

	cache := keymap.NewCache(source, keymap.NewExtractor(source, log), log)
	scheduler := hint.NewScheduler(cache, source, hint.NewFormatter(styled), relay, log)
	scheduler.SetIdleThreshold(cfg.IdleThreshold())
	scheduler.SetUpdatePeriod(cfg.UpdatePeriod())

	sel := selectorFromScope(cfg.Hints.Scope)
	scheduler.SetSelector(sel)

	m := Model{
		workDir:      workDir,
		version:      version,
		cfg:          cfg,
		log:          log,
		keys:         DefaultKeyMap(),
		source:       source,
		scheduler:    scheduler,
		wake:         wake,
		scope:        sel.Scope,
		focusedPane:  PaneNotes,
		notesPane:    notesPane,
		activityPane: activityPane,
		noteInput:    ui.NewNoteInput(),
		floatingHelp: help.NewFloatingHelp(),
		statusBar:    statusBar,
	}

	source.SetGlobal(ToHelpEntries(m.globalBindings()))

	scheduler.Enable()
	m.coachOn = true

	return m
}

// selectorFromScope maps the hints.scope config value onto a binding
// selector. "map:<name>" pins hints to one named binding map; cycling the
// scope at runtime moves off the pinned map until the next start.
func selectorFromScope(scope string) keymap.Selector {
	switch {
	case scope == "local":
		return keymap.Selector{Scope: keymap.ScopeLocal}
	case strings.HasPrefix(scope, "map:"):
		return keymap.Selector{Scope: keymap.ScopeMap, Map: strings.TrimPrefix(scope, "map:")}
	default:
		return keymap.Selector{Scope: keymap.ScopeAll}
	}
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.waitForWake()}
	if m.cfg.Watch.Enabled {
		cmds = append(cmds, m.startWatcher())
	}
	return tea.Batch(cmds...)
}

// waitForWake blocks until the scheduler touches the status bar, then
// triggers a redraw.
func (m Model) waitForWake() tea.Cmd {
	return func() tea.Msg {
		<-m.wake
		return sinkWakeMsg{}
	}
}

// startWatcher starts the file system watcher
func (m Model) startWatcher() tea.Cmd {
	return func() tea.Msg {
		watcher, err := activity.NewWatcher(m.workDir, m.log)
		if err != nil {
			// Keystroke-only activity tracking still works
			return watcherStartedMsg{watcher: nil, err: err}
		}
		return watcherStartedMsg{watcher: watcher, err: nil}
	}
}

// waitForChange waits for file system activity
func (m Model) waitForChange() tea.Cmd {
	if m.watcher == nil {
		return nil
	}

	return func() tea.Msg {
		if _, ok := <-m.watcher.Signals(); !ok {
			return nil
		}
		return fsActivityMsg{}
	}
}

// Message types
type sinkWakeMsg struct{}

type fsActivityMsg struct{}

type watcherStartedMsg struct {
	watcher *activity.Watcher
	err     error
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Every keystroke counts as activity, overlays included.
		m.scheduler.Activity()

		// When help modal is open, only handle ? and esc
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			// Absorb all other keys
			return m, nil
		}

		// When the note overlay is open, all keys go to the input
		if m.showNoteInput {
			return m, m.noteInput.Update(msg)
		}

		// Try active bindings first
		if newModel, cmd := dispatchKey(&m, msg, m.globalBindings()); newModel != nil {
			m = *newModel
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
		} else {
			// No binding matched, pass to focused pane
			cmds = append(cmds, m.focusedPaneRef().Update(msg))
		}

	case tea.MouseWheelMsg:
		m.scheduler.Activity()
		m.focusedPaneRef().HandleMouseScroll(msg.Button)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updatePaneSizes()

	case sinkWakeMsg:
		// The status bar already holds the new hint text; arriving here
		// forces the redraw.
		cmds = append(cmds, m.waitForWake())

	case watcherStartedMsg:
		m.watcher = msg.watcher
		if msg.err != nil {
			m.log.Warn("activity watcher unavailable", "err", msg.err)
		}
		if msg.watcher != nil {
			cmds = append(cmds, m.waitForChange())
		}

	case fsActivityMsg:
		m.scheduler.Activity()
		m.activityPane.AppendLine(time.Now().Format("15:04:05") + " filesystem change")
		cmds = append(cmds, m.waitForChange())

	case ui.NoteSubmitMsg:
		if msg.Text != "" {
			m.notesPane.AppendLine("• " + msg.Text)
		}
		m.showNoteInput = false
		m.noteInput.Reset()

	case ui.NoteCancelMsg:
		m.showNoteInput = false
		m.noteInput.Reset()
	}

	return m, tea.Batch(cmds...)
}

// focusedPaneRef returns the pane that currently has focus.
func (m *Model) focusedPaneRef() *ui.Pane {
	if m.focusedPane == PaneActivity {
		return &m.activityPane
	}
	return &m.notesPane
}

func (m *Model) focusedPaneName() string {
	if m.focusedPane == PaneActivity {
		return paneActivityName
	}
	return paneNotesName
}

func (m *Model) updatePaneFocus() {
	m.notesPane.SetFocused(m.focusedPane == PaneNotes)
	m.activityPane.SetFocused(m.focusedPane == PaneActivity)
	m.source.SetFocused(m.focusedPaneName())
}

// Action methods for keybindings

func (m *Model) actionQuit() (Model, tea.Cmd) {
	m.scheduler.Disable()
	if m.watcher != nil {
		m.watcher.Close()
	}
	return *m, tea.Quit
}

func (m *Model) actionFocusNotes() (Model, tea.Cmd) {
	m.focusedPane = PaneNotes
	m.updatePaneFocus()
	return *m, nil
}

func (m *Model) actionFocusActivity() (Model, tea.Cmd) {
	m.focusedPane = PaneActivity
	m.updatePaneFocus()
	return *m, nil
}

func (m *Model) actionNextPane() (Model, tea.Cmd) {
	m.focusedPane = (m.focusedPane + 1) % 2
	m.updatePaneFocus()
	return *m, nil
}

func (m *Model) actionAddNote() (Model, tea.Cmd) {
	m.showNoteInput = true
	m.noteInput.Reset()
	return *m, m.noteInput.Focus()
}

func (m *Model) actionClearPane() (Model, tea.Cmd) {
	m.focusedPaneRef().SetContent("")
	return *m, nil
}

func (m *Model) actionToggleCoach() (Model, tea.Cmd) {
	if m.coachOn {
		m.scheduler.Disable()
		m.coachOn = false
		m.statusBar.SetContent("coach off · c resumes")
	} else {
		m.scheduler.Enable()
		m.coachOn = true
		m.statusBar.SetContent("coach on")
	}
	return *m, nil
}

func (m *Model) actionCycleScope() (Model, tea.Cmd) {
	if m.scope == keymap.ScopeAll {
		m.scope = keymap.ScopeLocal
	} else {
		m.scope = keymap.ScopeAll
	}
	m.scheduler.SetSelector(keymap.Selector{Scope: m.scope})
	m.statusBar.SetContent("hints: " + m.scope.String() + " bindings")
	return *m, nil
}

func (m *Model) actionShowHint() (Model, tea.Cmd) {
	m.scheduler.ShowNow()
	return *m, nil
}

func (m *Model) actionToggleHelp() (Model, tea.Cmd) {
	m.showHelp = !m.showHelp
	return *m, nil
}

// activeEntries returns all display entries for the current context: global
// bindings plus the focused pane's.
func (m *Model) activeEntries() []help.Entry {
	entries := ToHelpEntries(m.globalBindings())
	return append(entries, m.focusedPaneRef().HelpEntries()...)
}

// globalBindings returns the app-level keybindings with their actions.
// Names and docs feed the binding reports the coach draws hints from.
func (m *Model) globalBindings() []ActionBinding {
	return []ActionBinding{
		{
			Entry: help.Entry{
				Name:     "quit-app",
				Doc:      "*Quit the application.",
				Binding:  m.keys.Quit,
				Category: help.CategoryActions,
				Order:    100,
			},
			Action: (*Model).actionQuit,
		},
		{
			Entry: help.Entry{
				Name:     "focus-notes",
				Doc:      "*Focus the notes pane.",
				Binding:  m.keys.FocusNotes,
				Category: help.CategoryNavigation,
				Order:    50,
			},
			Action: (*Model).actionFocusNotes,
		},
		{
			Entry: help.Entry{
				Name:     "focus-activity",
				Doc:      "*Focus the activity pane.",
				Binding:  m.keys.FocusActivity,
				Category: help.CategoryNavigation,
				Order:    51,
			},
			Action: (*Model).actionFocusActivity,
		},
		{
			Entry: help.Entry{
				Name:     "next-pane",
				Doc:      "*Cycle focus to the next pane.",
				Binding:  m.keys.NextPane,
				Category: help.CategoryNavigation,
				Order:    20,
			},
			Action: (*Model).actionNextPane,
		},
		{
			Entry: help.Entry{
				Name:     "prev-pane",
				Doc:      "*Cycle focus to the previous pane.",
				Binding:  m.keys.PrevPane,
				Category: help.CategoryNavigation,
				Order:    21,
			},
			Action: (*Model).actionNextPane,
		},
		{
			Entry: help.Entry{
				Name:     "add-note",
				Doc:      "*Open the note input overlay.\nThe note is appended to the notes pane.",
				Binding:  m.keys.AddNote,
				Category: help.CategoryActions,
				Order:    10,
			},
			Action: (*Model).actionAddNote,
		},
		{
			Entry: help.Entry{
				Name:     "clear-pane",
				Doc:      "*Clear the focused pane's content.",
				Binding:  m.keys.ClearPane,
				Category: help.CategoryActions,
				Order:    11,
			},
			Action: (*Model).actionClearPane,
		},
		{
			Entry: help.Entry{
				Name:     "toggle-coach",
				Doc:      "*Turn the idle hint coach on or off.",
				Binding:  m.keys.ToggleCoach,
				Category: help.CategoryCoach,
				Order:    30,
			},
			Action: (*Model).actionToggleCoach,
		},
		{
			Entry: help.Entry{
				Name:     "cycle-hint-scope",
				Doc:      "*Switch hints between local and all bindings.",
				Binding:  m.keys.CycleScope,
				Category: help.CategoryCoach,
				Order:    31,
			},
			Action: (*Model).actionCycleScope,
		},
		{
			Entry: help.Entry{
				Name:     "show-hint-now",
				Doc:      "*Show a hint immediately instead of waiting for idle.",
				Binding:  m.keys.ShowHint,
				Category: help.CategoryCoach,
				Order:    32,
			},
			Action: (*Model).actionShowHint,
		},
		{
			Entry: help.Entry{
				Name:     "toggle-help",
				Doc:      "*Show or hide the floating help overlay.",
				Binding:  m.keys.Help,
				Category: help.CategoryActions,
				Order:    99,
			},
			Action: (*Model).actionToggleHelp,
		},
	}
}

func (m *Model) updatePaneSizes() {
	// Leave room for the status bar
	contentHeight := m.height - 1

	leftWidth := m.width / 2
	rightWidth := m.width - leftWidth

	m.notesPane.SetSize(leftWidth, contentHeight)
	m.activityPane.SetSize(rightWidth, contentHeight)
}

// View renders the application
func (m Model) View() tea.View {
	var view tea.View
	view.AltScreen = true
	view.MouseMode = tea.MouseModeCellMotion

	if m.width == 0 || m.height == 0 {
		view.SetContent("Loading...")
		return view
	}

	panes := lipgloss.JoinHorizontal(lipgloss.Top, m.notesPane.View(), m.activityPane.View())

	// The status bar stays on screen under overlays so hints reach the
	// user even while a modal holds the keyboard.
	m.statusBar.SetWidth(m.width)
	statusBar := ui.DimStyle.Render(m.statusBar.View())

	base := lipgloss.JoinVertical(lipgloss.Left, panes, statusBar)

	var modal string
	switch {
	case m.showHelp:
		modal = m.renderHelpModal()
	case m.showNoteInput:
		modal = m.renderNoteModal()
	default:
		view.SetContent(base)
		return view
	}

	x := (m.width - lipgloss.Width(modal)) / 2
	y := (m.height - lipgloss.Height(modal)) / 2

	view.SetContent(lipgloss.NewCanvas(
		lipgloss.NewLayer(base),
		lipgloss.NewLayer(modal).X(max(x, 0)).Y(max(y, 0)),
	).Render())
	return view
}

func (m Model) renderHelpModal() string {
	modalWidth := m.width * 80 / 100
	modalHeight := m.height * 70 / 100

	if modalWidth < 40 {
		modalWidth = min(40, m.width-4)
	}
	if modalHeight < 10 {
		modalHeight = min(10, m.height-4)
	}

	m.floatingHelp.SetSize(modalWidth, modalHeight)
	m.floatingHelp.SetEntries(m.activeEntries())
	return m.floatingHelp.View()
}

func (m Model) renderNoteModal() string {
	m.noteInput.SetSize(min(60, m.width-4), m.height)
	return m.noteInput.View()
}
