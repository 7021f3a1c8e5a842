package detail

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/terminalfeed/app/comments"
	detailctl "github.com/CrestNiraj12/terminalfeed/app/detail"
	"github.com/CrestNiraj12/terminalfeed/domain"
	"github.com/CrestNiraj12/terminalfeed/tui/common"
	"github.com/CrestNiraj12/terminalfeed/tui/compose"
)

// BackMsg asks the root app to return to the feed.
type BackMsg struct{}

// Model renders one detail session: the post, its comments and the
// comment composer.
type Model struct {
	session  *detailctl.Session
	keys     common.KeyMap
	spinner  spinner.Model
	composer compose.Model
	editor   compose.Editor

	cursor int // selected comment
	status string
	width  int
	height int
}

// New creates a detail view over session. Call Init to start loading.
func New(session *detailctl.Session) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6600"))
	return Model{
		session:  session,
		keys:     common.DefaultKeyMap(),
		spinner:  s,
		composer: compose.New(),
	}
}

// Init starts the detail fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.session.Load(), m.spinner.Tick)
}

func (m Model) Session() *detailctl.Session { return m.session }
func (m Model) Cursor() int              { return m.cursor }

// Composing reports whether the composer holds keyboard focus.
func (m Model) Composing() bool { return m.composer.Focused() }

// SetEditor enables ctrl+e hand-off of the draft to ed. Nil disables it.
func (m Model) SetEditor(ed compose.Editor) Model {
	m.editor = ed
	return m
}

// SetSize applies a terminal size without a WindowSizeMsg round trip.
func (m Model) SetSize(w, h int) Model {
	m.width, m.height = w, h
	m.composer = m.composer.SetWidth(w)
	return m
}

// Update handles messages for the detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case detailctl.LoadedMsg:
		m.session.Update(msg)
		return m, nil

	case comments.SubmittedMsg:
		if !m.session.Update(msg) {
			return m, nil
		}
		th := m.session.Thread()
		if err := th.Err(); err != nil {
			m.status = "Could not post comment. Your draft was kept."
			m.composer = m.composer.SetStatus("")
			return m, nil
		}
		m.status = "Comment posted."
		m.composer = m.composer.SetValue("").SetReplyTo("").SetStatus("").Blur()
		m.cursor = max(len(th.Comments())-1, 0)
		return m, nil

	case compose.EditedMsg:
		if msg.Err != nil {
			m.status = "Editor failed. Your draft was kept."
			return m, nil
		}
		if msg.Content == "" {
			return m, nil
		}
		th := m.session.Thread()
		th.SetDraft(msg.Content)
		m.composer = m.composer.SetValue(msg.Content)
		return m, nil

	case tea.KeyMsg:
		if m.composer.Focused() {
			return m.updateComposerKey(msg)
		}
		return m.updateKey(msg)
	}

	var cmd tea.Cmd
	m.composer, cmd = m.composer.Update(msg)
	return m, cmd
}

func (m Model) updateKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	th := m.session.Thread()
	list := th.Comments()

	switch {
	case key.Matches(msg, m.keys.Back):
		return m, func() tea.Msg { return BackMsg{} }

	case key.Matches(msg, m.keys.Retry):
		if cmd := m.session.Retry(); cmd != nil {
			m.status = ""
			return m, cmd
		}
		return m, nil
	}

	if m.session.State() != detailctl.StateReady {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(list)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Like):
		m.session.ToggleLike()
	case key.Matches(msg, m.keys.LikeComment):
		if c, ok := m.selected(list); ok {
			th.ToggleLike(c.ID)
		}
	case key.Matches(msg, m.keys.Reply):
		c, ok := m.selected(list)
		if !ok {
			return m, nil
		}
		th.SetReplyTarget(c)
		m.composer = m.composer.SetValue(th.Draft()).SetReplyTo(c.Author)
		var cmd tea.Cmd
		m.composer, cmd = m.composer.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Comment):
		m.composer = m.composer.SetValue(th.Draft())
		var cmd tea.Cmd
		m.composer, cmd = m.composer.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Delete):
		c, ok := m.selected(list)
		if !ok || !th.Own(c.ID) {
			return m, nil
		}
		th.DeleteComment(c.ID)
		m.cursor = min(m.cursor, max(len(list)-2, 0))
		m.status = "Comment deleted."
	}
	return m, nil
}

func (m Model) updateComposerKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	th := m.session.Thread()
	switch {
	case key.Matches(msg, m.keys.Cancel):
		th.ClearReplyTarget()
		m.composer = m.composer.SetValue("").SetReplyTo("").SetStatus("").Blur()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		th.SetDraft(m.composer.Value())
		cmd, err := th.Submit()
		switch {
		case errors.Is(err, domain.ErrEmptyComment):
			m.status = "Write something before posting."
			return m, nil
		case err != nil:
			m.status = err.Error()
			return m, nil
		case cmd == nil:
			return m, nil
		}
		m.status = ""
		m.composer = m.composer.SetStatus("Posting...")
		return m, cmd

	case key.Matches(msg, m.keys.Editor):
		if th.Submitting() {
			return m, nil
		}
		return m, m.composer.OpenEditor(m.editor)
	}

	var cmd tea.Cmd
	m.composer, cmd = m.composer.Update(msg)
	th.SetDraft(m.composer.Value())
	return m, cmd
}

func (m Model) selected(list []domain.Comment) (domain.Comment, bool) {
	if m.cursor < 0 || m.cursor >= len(list) {
		return domain.Comment{}, false
	}
	return list[m.cursor], true
}
