package compose

import (
	"fmt"
	"os/exec"

	tea "github.com/charmbracelet/bubbletea"
)

// Editor prepares an external editor run over a draft. infra/editor
// implements it with $EDITOR.
type Editor interface {
	Cmd(draft, replyTo string) (*exec.Cmd, string, error)
	ReadContent(path string) (string, error)
}

// EditedMsg carries the draft back from the external editor.
type EditedMsg struct {
	Content string
	Err     error
}

// OpenEditor suspends the program and edits the current draft in ed.
// It returns nil when no editor is configured.
func (m Model) OpenEditor(ed Editor) tea.Cmd {
	if ed == nil {
		return nil
	}
	replyTo := ""
	if m.replyTo != "" {
		replyTo = "@" + m.replyTo
	}
	cmd, path, err := ed.Cmd(m.textarea.Value(), replyTo)
	if err != nil {
		return func() tea.Msg {
			return EditedMsg{Err: fmt.Errorf("preparing editor: %w", err)}
		}
	}
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		content, readErr := ed.ReadContent(path)
		if err != nil {
			return EditedMsg{Err: fmt.Errorf("editor: %w", err)}
		}
		return EditedMsg{Content: content, Err: readErr}
	})
}
