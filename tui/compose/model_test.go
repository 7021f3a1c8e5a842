package compose

import (
	"errors"
	"os/exec"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/terminalfeed/domain"
)

func TestNew_StartsBlurredWithLimit(t *testing.T) {
	m := New()
	if m.Focused() {
		t.Fatalf("composer should start blurred")
	}
	if m.textarea.CharLimit != domain.MaxCommentLength {
		t.Fatalf("unexpected char limit: %d", m.textarea.CharLimit)
	}
}

func TestUpdate_IgnoresKeysWhileBlurred(t *testing.T) {
	m := New()
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	if m.Value() != "" {
		t.Fatalf("blurred composer should not accept input: %q", m.Value())
	}
}

func TestUpdate_TypesWhileFocused(t *testing.T) {
	m, _ := New().Focus()
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("hi")})
	if m.Value() != "hi" {
		t.Fatalf("expected typed text, got %q", m.Value())
	}
}

func TestView_ShowsReplyBannerAndCounter(t *testing.T) {
	m := New().SetValue("@user007 ").SetReplyTo("user007")
	out := m.View()
	if !strings.Contains(out, "Replying to @user007") {
		t.Fatalf("expected reply banner: %q", out)
	}
	if !strings.Contains(out, "9/500") {
		t.Fatalf("expected character counter: %q", out)
	}
}

func TestView_StatusReplacesHints(t *testing.T) {
	out := New().SetStatus("Posting...").View()
	if !strings.Contains(out, "Posting...") || strings.Contains(out, "chars") {
		t.Fatalf("status should replace hints: %q", out)
	}
}

type failingEditor struct{ draft, replyTo string }

func (f *failingEditor) Cmd(draft, replyTo string) (*exec.Cmd, string, error) {
	f.draft, f.replyTo = draft, replyTo
	return nil, "", errors.New("no temp dir")
}

func (f *failingEditor) ReadContent(string) (string, error) { return "", nil }

func TestOpenEditor_NilEditorIsNoop(t *testing.T) {
	if cmd := New().OpenEditor(nil); cmd != nil {
		t.Fatalf("expected no command without an editor")
	}
}

func TestOpenEditor_ReportsPrepareFailure(t *testing.T) {
	ed := &failingEditor{}
	m := New().SetValue("@user007 draft").SetReplyTo("user007")
	cmd := m.OpenEditor(ed)
	if cmd == nil {
		t.Fatalf("expected a command")
	}
	msg, ok := cmd().(EditedMsg)
	if !ok || msg.Err == nil {
		t.Fatalf("expected EditedMsg with error, got %#v", msg)
	}
	if ed.draft != "@user007 draft" || ed.replyTo != "@user007" {
		t.Fatalf("editor got draft=%q replyTo=%q", ed.draft, ed.replyTo)
	}
}
