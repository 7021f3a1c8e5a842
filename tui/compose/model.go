package compose

import (
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/terminalfeed/domain"
)

const (
	defaultWidth  = 72
	defaultHeight = 3
)

// Model is the inline comment composer. It only edits text; posting and
// reply context belong to the comment thread.
type Model struct {
	textarea textarea.Model
	replyTo  string // author being replied to, empty for a top-level comment
	status   string
}

// New creates an unfocused composer.
func New() Model {
	ta := textarea.New()
	ta.Placeholder = "Write a comment..."
	ta.CharLimit = domain.MaxCommentLength
	ta.ShowLineNumbers = false
	ta.SetWidth(defaultWidth)
	ta.SetHeight(defaultHeight)
	ta.Blur()
	return Model{textarea: ta}
}

// Focus gives the composer keyboard input.
func (m Model) Focus() (Model, tea.Cmd) {
	cmd := m.textarea.Focus()
	return m, tea.Batch(cmd, textarea.Blink)
}

// Blur releases keyboard input.
func (m Model) Blur() Model {
	m.textarea.Blur()
	return m
}

func (m Model) Focused() bool { return m.textarea.Focused() }
func (m Model) Value() string { return m.textarea.Value() }

// SetValue replaces the draft and moves the cursor to its end.
func (m Model) SetValue(s string) Model {
	m.textarea.SetValue(s)
	m.textarea.CursorEnd()
	return m
}

// SetReplyTo shows a reply banner for author. Empty clears it.
func (m Model) SetReplyTo(author string) Model {
	m.replyTo = author
	return m
}

// SetStatus sets the line shown under the composer.
func (m Model) SetStatus(s string) Model {
	m.status = s
	return m
}

// SetWidth fits the composer to the terminal.
func (m Model) SetWidth(w int) Model {
	if w > 4 {
		m.textarea.SetWidth(min(w-4, defaultWidth))
	}
	return m
}

// Update feeds input to the textarea while focused.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.textarea.Focused() {
		return m, nil
	}
	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}
