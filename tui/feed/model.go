package feed

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	feedctl "github.com/CrestNiraj12/terminalfeed/app/feed"
	"github.com/CrestNiraj12/terminalfeed/app/schedule"
	"github.com/CrestNiraj12/terminalfeed/app/search"
	"github.com/CrestNiraj12/terminalfeed/tui/common"
)

// prefetchTrigger is how close to the last card the cursor must be before
// the next page is requested.
const prefetchTrigger = 3

// OpenPostMsg asks the root app to open a post's detail view.
type OpenPostMsg struct {
	ID int
}

// QueryMsg carries a settled search query from the debouncer.
type QueryMsg struct {
	Query string
}

// Deps holds what the feed view needs. Plain struct, not a DI container.
type Deps struct {
	Controller *feedctl.Controller
	Scheduler  schedule.Scheduler
	Relay      *common.Relay
	Debounce   time.Duration
	Throttle   time.Duration
}

// Model is the feed list view. State lives in the controller; the model
// only tracks cursor, scroll window and the search box.
type Model struct {
	ctl       *feedctl.Controller
	debouncer *search.Debouncer
	throttle  *schedule.Throttle
	keys      common.KeyMap
	spinner   spinner.Model
	input     textinput.Model

	cursor     int
	startIndex int
	width      int
	height     int
	showHints  bool
}

// New creates the feed view.
func New(deps Deps) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6600"))

	ti := textinput.New()
	ti.Prompt = "🔍 "
	ti.Placeholder = "Search titles or authors (/)"
	ti.CharLimit = search.MaxQueryLength
	ti.Width = 40

	sched := deps.Scheduler
	if sched == nil {
		sched = schedule.Real()
	}
	relay := deps.Relay
	return Model{
		ctl: deps.Controller,
		debouncer: search.NewDebouncer(sched, deps.Debounce, func(q string) {
			relay.Send(QueryMsg{Query: q})
		}),
		throttle: schedule.NewThrottle(sched, deps.Throttle),
		keys:     common.DefaultKeyMap(),
		spinner:  s,
		input:    ti,
	}
}

// Init starts the first page fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.ctl.Initialize(),
		m.spinner.Tick,
	)
}

// Stop cancels pending debounce and throttle timers.
func (m Model) Stop() {
	m.debouncer.Stop()
	m.throttle.Stop()
}

func (m Model) Controller() *feedctl.Controller { return m.ctl }
func (m Model) Cursor() int                     { return m.cursor }

// SearchInput returns the raw text in the search box.
func (m Model) SearchInput() string { return m.input.Value() }

// Searching reports whether the search box has focus. Global keys such as
// quit must not fire while the user types.
func (m Model) Searching() bool { return m.input.Focused() }

// Update handles messages for the feed view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(min(msg.Width-8, 60), 10)
		m.ensureCursorVisible()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case feedctl.PageLoadedMsg, feedctl.PageErrorMsg:
		m.ctl.Update(msg)
		m.clampCursor()
		return m, nil

	case QueryMsg:
		m.ctl.SetSearchQuery(msg.Query)
		m.cursor = 0
		m.startIndex = 0
		return m, nil

	case tea.KeyMsg:
		if m.input.Focused() {
			return m.updateSearchKey(msg)
		}
		return m.updateKey(msg)
	}
	return m, nil
}

func (m Model) updateSearchKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.input.SetValue("")
		m.input.Blur()
		m.debouncer.Clear()
		return m, nil
	case tea.KeyEnter:
		m.input.Blur()
		m.debouncer.Submit(m.input.Value())
		return m, nil
	}

	prev := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if v := m.input.Value(); v != prev {
		m.debouncer.Input(v)
	}
	return m, cmd
}

func (m Model) updateKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Search):
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Cancel):
		if strings.TrimSpace(m.ctl.SearchQuery()) != "" || m.input.Value() != "" {
			m.input.SetValue("")
			m.debouncer.Clear()
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		m.ensureCursorVisible()
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.ctl.FilteredItems())-1 {
			m.cursor++
		}
		m.ensureCursorVisible()
		return m, m.maybeLoadMore()

	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
		m.startIndex = 0
		return m, nil

	case key.Matches(msg, m.keys.Open):
		items := m.ctl.FilteredItems()
		if m.cursor < 0 || m.cursor >= len(items) {
			return m, nil
		}
		id := items[m.cursor].ID
		return m, func() tea.Msg { return OpenPostMsg{ID: id} }

	case key.Matches(msg, m.keys.Retry):
		if m.ctl.Presentation() == feedctl.ListFailed {
			return m, m.ctl.Retry()
		}
		if m.ctl.Footer() == feedctl.FooterRetry {
			return m, m.ctl.RetryLoadMore()
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		cmd := m.ctl.Retry()
		if cmd != nil {
			m.cursor = 0
			m.startIndex = 0
		}
		return m, cmd

	case key.Matches(msg, m.keys.ToggleHints):
		m.showHints = !m.showHints
		return m, nil
	}
	return m, nil
}

// maybeLoadMore requests the next page when the cursor nears the end of the
// list, at most once per throttle window.
func (m Model) maybeLoadMore() tea.Cmd {
	n := len(m.ctl.FilteredItems())
	if n == 0 || m.cursor < n-prefetchTrigger {
		return nil
	}
	if !m.throttle.Allow() {
		return nil
	}
	return m.ctl.OnScrollNearBottom()
}

func (m *Model) clampCursor() {
	n := len(m.ctl.FilteredItems())
	if m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
	m.ensureCursorVisible()
}

func (m *Model) ensureCursorVisible() {
	slots := m.visibleCount()
	if m.cursor < m.startIndex {
		m.startIndex = m.cursor
	}
	if m.cursor >= m.startIndex+slots {
		m.startIndex = m.cursor - slots + 1
	}
	if m.startIndex < 0 {
		m.startIndex = 0
	}
}
