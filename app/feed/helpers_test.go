package feed

import (
	"context"
	"fmt"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/CrestNiraj12/terminalfeed/domain"
)

type stubSource struct {
	mu       sync.Mutex
	pageSize int
	lastPage int
	calls    []int
	failures map[int]int // page -> remaining forced failures
}

func newStubSource() *stubSource {
	return &stubSource{pageSize: 10, lastPage: 5, failures: map[int]int{}}
}

func (s *stubSource) failNext(page, times int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[page] += times
}

func (s *stubSource) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func (s *stubSource) FetchPage(_ context.Context, page int) (domain.PostPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, page)
	if s.failures[page] > 0 {
		s.failures[page]--
		return domain.PostPage{}, fmt.Errorf("page %d: %w", page, domain.ErrFetchFailure)
	}
	posts := make([]domain.Post, 0, s.pageSize)
	for i := range s.pageSize {
		id := (page-1)*s.pageSize + i + 1
		posts = append(posts, domain.Post{
			ID:     id,
			Title:  fmt.Sprintf("Post #%d - %s", id, categories[id%len(categories)]),
			Author: fmt.Sprintf("user%03d", id),
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

var categories = []string{"Food", "Travel", "Outfits", "Fitness", "Skincare", "Study", "Home", "Pets", "Photography", "Movies"}

// run executes cmd synchronously and feeds the result back into c.
func run(t *testing.T, c *Controller, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd, "expected a fetch command")
	c.Update(cmd())
}

func ids(posts []domain.Post) []int {
	out := make([]int, len(posts))
	for i, p := range posts {
		out[i] = p.ID
	}
	return out
}

type countingRecorder struct {
	pages  []int
	errors int
}

func (r *countingRecorder) PageFetched(page int, err error) {
	r.pages = append(r.pages, page)
	if err != nil {
		r.errors++
	}
}
func (r *countingRecorder) CommentSubmitted(error) {}
func (r *countingRecorder) DetailFetched(error)    {}
