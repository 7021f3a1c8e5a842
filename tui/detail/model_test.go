package detail

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	detailctl "github.com/CrestNiraj12/terminalfeed/app/detail"
	"github.com/CrestNiraj12/terminalfeed/domain"
	"github.com/CrestNiraj12/terminalfeed/tui/compose"
)

type stubSource struct {
	detailErr error
}

func (s *stubSource) FetchPage(context.Context, int) (domain.PostPage, error) {
	return domain.PostPage{}, nil
}

func (s *stubSource) FetchPostDetail(_ context.Context, id int) (domain.PostDetail, error) {
	if s.detailErr != nil {
		return domain.PostDetail{}, s.detailErr
	}
	return domain.PostDetail{
		Post: domain.Post{
			ID:           id,
			Title:        fmt.Sprintf("Post #%d - Travel", id),
			Author:       "user001",
			LikeCount:    10,
			CommentCount: 2,
			CreatedAt:    time.Date(2026, 1, 2, 15, 4, 0, 0, time.UTC),
		},
		Content: "A long walk along the coast.",
		Tags:    []string{"#life", "#tips"},
	}, nil
}

func (s *stubSource) FetchComments(context.Context, int) ([]domain.Comment, error) {
	return []domain.Comment{
		{ID: "a", Author: "user002", AuthorID: 2, Content: "Lovely"},
		{ID: "b", Author: "user003", AuthorID: 3, Content: "Where is this?", LikeCount: 4},
	}, nil
}

type stubService struct{ err error }

func (s *stubService) SubmitComment(context.Context, int, string) error { return s.err }

func runCmd(m Model, cmd tea.Cmd) Model {
	if cmd == nil {
		return m
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			m = runCmd(m, c)
		}
	case spinner.TickMsg:
	default:
		m, _ = m.Update(msg)
	}
	return m
}

func loaded(t *testing.T, src *stubSource, svc *stubService) Model {
	t.Helper()
	m := New(detailctl.New(1, src, svc))
	m = m.SetSize(100, 60)
	m = runCmd(m, m.Init())
	return m
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		m, _ = m.Update(keyRunes(string(r)))
	}
	return m
}

func TestInit_LoadingThenReady(t *testing.T) {
	m := New(detailctl.New(1, &stubSource{}, &stubService{}))
	cmd := m.Init()
	if !strings.Contains(m.View(), "Loading post") {
		t.Fatalf("expected loading view")
	}
	m = runCmd(m, cmd)
	out := m.View()
	for _, want := range []string{"Post #1 - Travel", "#life", "Lovely", "Where is this?", "💬 2"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in view: %q", want, out)
		}
	}
}

func TestLike_TogglesShadowCounter(t *testing.T) {
	m := loaded(t, &stubSource{}, &stubService{})
	m, _ = m.Update(keyRunes("l"))
	if !m.Session().Liked() || !strings.Contains(m.View(), "♥ 11") {
		t.Fatalf("expected liked post with 11 likes")
	}
	m, _ = m.Update(keyRunes("l"))
	if m.Session().Liked() || m.Session().LikeCount() != 10 {
		t.Fatalf("expected like undone")
	}
}

func TestLikeComment_Selected(t *testing.T) {
	m := loaded(t, &stubSource{}, &stubService{})
	m, _ = m.Update(keyRunes("j"))
	m, _ = m.Update(keyRunes("L"))
	c := m.Session().Thread().Comments()[1]
	if !c.Liked || c.LikeCount != 5 {
		t.Fatalf("expected second comment liked: %#v", c)
	}
}

func TestReply_PostsWithTarget(t *testing.T) {
	m := loaded(t, &stubSource{}, &stubService{})
	m, _ = m.Update(keyRunes("j"))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	if !m.Composing() {
		t.Fatalf("reply should focus the composer")
	}
	if got := m.composer.Value(); got != "@user003 " {
		t.Fatalf("expected mention prefix, got %q", got)
	}
	if !strings.Contains(m.View(), "Replying to @user003") {
		t.Fatalf("expected reply banner")
	}

	m = typeText(m, "in Lisbon")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	if cmd == nil {
		t.Fatalf("expected submit command")
	}
	m = runCmd(m, cmd)

	list := m.Session().Thread().Comments()
	last := list[len(list)-1]
	if last.Content != "@user003 in Lisbon" || last.ReplyTo == nil || last.ReplyTo.ID != "b" {
		t.Fatalf("unexpected posted reply: %#v", last)
	}
	if m.Composing() || m.composer.Value() != "" {
		t.Fatalf("composer should reset after posting")
	}
	if m.Session().CommentCount() != 3 {
		t.Fatalf("expected comment count 3, got %d", m.Session().CommentCount())
	}
	if !strings.Contains(m.View(), "Comment posted.") {
		t.Fatalf("expected success status")
	}
}

func TestSubmit_BlankIsRejected(t *testing.T) {
	m := loaded(t, &stubSource{}, &stubService{})
	m, _ = m.Update(keyRunes("c"))
	m = typeText(m, "   ")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	if cmd != nil {
		t.Fatalf("blank draft must not submit")
	}
	if !strings.Contains(m.View(), "Write something before posting.") {
		t.Fatalf("expected validation message")
	}
	if len(m.Session().Thread().Comments()) != 2 {
		t.Fatalf("thread must be unchanged")
	}
}

func TestSubmit_FailureKeepsDraft(t *testing.T) {
	svc := &stubService{err: domain.ErrFetchFailure}
	m := loaded(t, &stubSource{}, svc)
	m, _ = m.Update(keyRunes("c"))
	m = typeText(m, "hello")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	m = runCmd(m, cmd)

	if m.composer.Value() != "hello" || !m.Composing() {
		t.Fatalf("draft should survive a failed submit: %q", m.composer.Value())
	}
	if !strings.Contains(m.View(), "draft was kept") {
		t.Fatalf("expected failure status")
	}
}

func TestCancel_ClearsReplyContext(t *testing.T) {
	m := loaded(t, &stubSource{}, &stubService{})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.Composing() {
		t.Fatalf("esc should leave the composer")
	}
	if _, ok := m.Session().Thread().ReplyTarget(); ok {
		t.Fatalf("esc should drop the reply target")
	}
	if m.Session().Thread().Draft() != "" {
		t.Fatalf("esc should drop the draft")
	}
}

func TestDelete_OnlyOwnComments(t *testing.T) {
	m := loaded(t, &stubSource{}, &stubService{})
	m, _ = m.Update(keyRunes("d"))
	if len(m.Session().Thread().Comments()) != 2 {
		t.Fatalf("seeded comments must not be deletable")
	}

	m, _ = m.Update(keyRunes("c"))
	m = typeText(m, "mine")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	m = runCmd(m, cmd)
	if m.Cursor() != 2 {
		t.Fatalf("cursor should land on the new comment, got %d", m.Cursor())
	}
	m, _ = m.Update(keyRunes("d"))
	if got := len(m.Session().Thread().Comments()); got != 2 {
		t.Fatalf("expected own comment deleted, %d left", got)
	}
	if m.Session().CommentCount() != 2 {
		t.Fatalf("expected count back to 2, got %d", m.Session().CommentCount())
	}
}

func TestFailure_RetryAndNotFound(t *testing.T) {
	src := &stubSource{detailErr: domain.ErrFetchFailure}
	m := loaded(t, src, &stubService{})
	if !strings.Contains(m.View(), "Network connection failed") {
		t.Fatalf("expected failure view: %q", m.View())
	}
	src.detailErr = nil
	m, cmd := m.Update(keyRunes("r"))
	m = runCmd(m, cmd)
	if m.Session().State() != detailctl.StateReady {
		t.Fatalf("expected ready after retry")
	}

	gone := loaded(t, &stubSource{detailErr: domain.ErrNotFound}, &stubService{})
	if !strings.Contains(gone.View(), "does not exist") {
		t.Fatalf("expected not-found view")
	}
	if _, cmd := gone.Update(keyRunes("r")); cmd != nil {
		t.Fatalf("not-found must not retry")
	}
}

func TestBack_EmitsBackMsg(t *testing.T) {
	m := loaded(t, &stubSource{}, &stubService{})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatalf("expected back command")
	}
	if _, ok := cmd().(BackMsg); !ok {
		t.Fatalf("expected BackMsg")
	}
}

type brokenEditor struct{}

func (brokenEditor) Cmd(string, string) (*exec.Cmd, string, error) {
	return nil, "", errors.New("no temp dir")
}

func (brokenEditor) ReadContent(string) (string, error) { return "", nil }

func TestEditor_ResultBecomesDraft(t *testing.T) {
	m := loaded(t, &stubSource{}, &stubService{})
	m, _ = m.Update(keyRunes("c"))
	m = typeText(m, "rough")
	m, _ = m.Update(compose.EditedMsg{Content: "polished thought"})
	if m.composer.Value() != "polished thought" || m.Session().Thread().Draft() != "polished thought" {
		t.Fatalf("expected edited draft, got %q", m.composer.Value())
	}
	m, _ = m.Update(compose.EditedMsg{})
	if m.composer.Value() != "polished thought" {
		t.Fatalf("empty editor result must keep the draft")
	}
}

func TestEditor_FailureKeepsDraft(t *testing.T) {
	m := loaded(t, &stubSource{}, &stubService{})
	m = m.SetEditor(brokenEditor{})
	m, _ = m.Update(keyRunes("c"))
	m = typeText(m, "draft")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlE})
	if cmd == nil {
		t.Fatalf("expected editor command")
	}
	m = runCmd(m, cmd)
	if m.composer.Value() != "draft" || !strings.Contains(m.View(), "Editor failed") {
		t.Fatalf("expected kept draft and failure status, got %q", m.composer.Value())
	}
}

func TestEditor_DisabledWithoutEditor(t *testing.T) {
	m := loaded(t, &stubSource{}, &stubService{})
	m, _ = m.Update(keyRunes("c"))
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlE}); cmd != nil {
		t.Fatalf("ctrl+e should do nothing without an editor")
	}
}
