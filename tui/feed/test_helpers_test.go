package feed

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	feedctl "github.com/CrestNiraj12/terminalfeed/app/feed"
	"github.com/CrestNiraj12/terminalfeed/app/schedule"
	"github.com/CrestNiraj12/terminalfeed/domain"
	"github.com/CrestNiraj12/terminalfeed/tui/common"
)

var categories = []string{"Food", "Travel", "Outfits", "Fitness", "Skincare", "Study", "Home", "Pets", "Photography", "Movies"}

type stubSource struct {
	lastPage int
	failures map[int]int
	calls    []int
}

func newStubSource() *stubSource {
	return &stubSource{lastPage: 5, failures: map[int]int{}}
}

func (s *stubSource) FetchPage(_ context.Context, page int) (domain.PostPage, error) {
	s.calls = append(s.calls, page)
	if s.failures[page] > 0 {
		s.failures[page]--
		return domain.PostPage{}, fmt.Errorf("page %d: %w", page, domain.ErrFetchFailure)
	}
	posts := make([]domain.Post, 0, 10)
	for i := range 10 {
		id := (page-1)*10 + i + 1
		posts = append(posts, domain.Post{
			ID:        id,
			Title:     fmt.Sprintf("Post #%d - %s", id, categories[id%len(categories)]),
			Author:    fmt.Sprintf("user%03d", id),
			CreatedAt: time.Date(2026, 1, 2, 15, 4, 0, 0, time.UTC),
		})
	}
	return domain.PostPage{Number: page, Posts: posts, Last: page >= s.lastPage}, nil
}

func (s *stubSource) FetchPostDetail(context.Context, int) (domain.PostDetail, error) {
	return domain.PostDetail{}, nil
}

func (s *stubSource) FetchComments(context.Context, int) ([]domain.Comment, error) {
	return nil, nil
}

type chanSink chan tea.Msg

func (s chanSink) Send(msg tea.Msg) { s <- msg }

type harness struct {
	sched *schedule.Manual
	sink  chanSink
}

func newTestModel(src *stubSource) (Model, *harness) {
	h := &harness{sched: schedule.NewManual(), sink: make(chanSink, 16)}
	relay := &common.Relay{}
	relay.Attach(h.sink)
	m := New(Deps{
		Controller: feedctl.New(src),
		Scheduler:  h.sched,
		Relay:      relay,
		Debounce:   300 * time.Millisecond,
		Throttle:   200 * time.Millisecond,
	})
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m, h
}

// runCmd executes cmd and applies the resulting messages, skipping spinner
// ticks. Follow-up commands are not executed.
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

func (h *harness) query(t *testing.T) QueryMsg {
	t.Helper()
	select {
	case msg := <-h.sink:
		q, ok := msg.(QueryMsg)
		if !ok {
			t.Fatalf("expected QueryMsg, got %T", msg)
		}
		return q
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for query")
		return QueryMsg{}
	}
}

func (h *harness) noQuery(t *testing.T) {
	t.Helper()
	select {
	case msg := <-h.sink:
		t.Fatalf("unexpected relayed message: %#v", msg)
	case <-time.After(20 * time.Millisecond):
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m Model, keys ...tea.KeyMsg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		m, cmd = m.Update(k)
	}
	return m, cmd
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		m, _ = m.Update(runes(string(r)))
	}
	return m
}
