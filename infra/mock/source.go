// Package mock is an in-process stand-in for a feed backend. It serves
// generated posts and comments with configurable latency and failure
// injection and implements app.PostSource and app.CommentService.
package mock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/CrestNiraj12/terminalfeed/domain"
)

var categories = []string{
	"Food", "Travel", "Outfits", "Fitness", "Skincare",
	"Study", "Home", "Pets", "Photography", "Movies",
}

var tagPool = []string{"#life", "#lessons", "#tips", "#daily", "#notes"}

var commentTemplates = []string{
	"This is so useful, saved it!",
	"Learned something new, thanks for sharing!",
	"I had a similar experience, can confirm.",
	"Great photos, what camera do you use?",
	"Looking forward to more posts like this.",
	"Tried your method already and it works!",
	"Same here, totally agree.",
	"Any other tips on this?",
	"Exactly what I needed today.",
	"Really detailed write-up, very helpful.",
	"Fresh angle on this, learned a lot.",
	"Well written, keep it up!",
	"Could you share more details?",
	"I want to try this too.",
	"Makes a lot of sense, bookmarking.",
}

// Config controls generated data and simulated network behavior.
type Config struct {
	PageSize int
	MaxPages int

	PageLatency   time.Duration
	DetailLatency time.Duration
	SubmitLatency time.Duration

	PageFailureRate   float64
	DetailFailureRate float64
	SubmitFailureRate float64

	// Seed fixes the generator. Zero picks a random seed.
	Seed int64
}

// DefaultConfig returns the stock mock behavior.
func DefaultConfig() Config {
	return Config{
		PageSize:          10,
		MaxPages:          5,
		PageLatency:       time.Second,
		DetailLatency:     800 * time.Millisecond,
		SubmitLatency:     500 * time.Millisecond,
		DetailFailureRate: 0.1,
	}
}

// Option configures a Source.
type Option func(*Source)

func WithLogger(l *zap.Logger) Option {
	return func(s *Source) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides the reference time for generated timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Source) {
		if now != nil {
			s.now = now
		}
	}
}

// Source generates posts on first request and serves the same post for the
// same id afterwards. It is safe for concurrent use.
type Source struct {
	cfg    Config
	logger *zap.Logger
	now    func() time.Time

	mu    sync.Mutex
	faker *gofakeit.Faker
	posts map[int]domain.Post
}

// New creates a Source. Non-positive sizes fall back to the defaults.
func New(cfg Config, opts ...Option) *Source {
	def := DefaultConfig()
	if cfg.PageSize <= 0 {
		cfg.PageSize = def.PageSize
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = def.MaxPages
	}
	s := &Source{
		cfg:    cfg,
		logger: zap.NewNop(),
		now:    time.Now,
		faker:  gofakeit.New(cfg.Seed),
		posts:  make(map[int]domain.Post),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FetchPage returns page n. Pages at or past the ceiling are marked last;
// pages beyond it are empty.
func (s *Source) FetchPage(ctx context.Context, page int) (domain.PostPage, error) {
	if page < 1 {
		return domain.PostPage{}, fmt.Errorf("page %d: %w", page, domain.ErrNotFound)
	}
	if err := wait(ctx, s.cfg.PageLatency); err != nil {
		return domain.PostPage{}, fmt.Errorf("fetching page %d: %w", page, err)
	}
	if s.fail(s.cfg.PageFailureRate) {
		s.logger.Debug("injected page failure", zap.Int("page", page))
		return domain.PostPage{}, fmt.Errorf("fetching page %d: %w", page, domain.ErrFetchFailure)
	}

	result := domain.PostPage{Number: page, Last: page >= s.cfg.MaxPages}
	if page > s.cfg.MaxPages {
		result.Posts = []domain.Post{}
		return result, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	result.Posts = make([]domain.Post, 0, s.cfg.PageSize)
	for i := range s.cfg.PageSize {
		result.Posts = append(result.Posts, s.postLocked((page-1)*s.cfg.PageSize+i+1))
	}
	return result, nil
}

// FetchPostDetail returns the full post for id.
func (s *Source) FetchPostDetail(ctx context.Context, id int) (domain.PostDetail, error) {
	if !s.known(id) {
		return domain.PostDetail{}, fmt.Errorf("post %d: %w", id, domain.ErrNotFound)
	}
	if err := wait(ctx, s.cfg.DetailLatency); err != nil {
		return domain.PostDetail{}, fmt.Errorf("fetching post %d: %w", id, err)
	}
	if s.fail(s.cfg.DetailFailureRate) {
		s.logger.Debug("injected detail failure", zap.Int("post_id", id))
		return domain.PostDetail{}, fmt.Errorf("fetching post %d: %w", id, domain.ErrFetchFailure)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.postLocked(id)
	n := s.faker.Number(2, 4)
	return domain.PostDetail{
		Post:    p,
		Content: content(id, s.faker.Sentence(12)),
		Tags:    append([]string(nil), tagPool[:n]...),
	}, nil
}

// FetchComments returns 2 to 9 generated comments for postID.
func (s *Source) FetchComments(ctx context.Context, postID int) ([]domain.Comment, error) {
	if !s.known(postID) {
		return nil, fmt.Errorf("post %d: %w", postID, domain.ErrNotFound)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("fetching comments for %d: %w", postID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	n := s.faker.Number(2, 9)
	out := make([]domain.Comment, 0, n)
	for i := range n {
		out = append(out, domain.Comment{
			ID:        uuid.NewString(),
			Content:   commentTemplates[s.faker.Number(0, len(commentTemplates)-1)],
			Author:    fmt.Sprintf("user%03d", i+1),
			AuthorID:  i + 1,
			CreatedAt: s.faker.DateRange(now.Add(-7*24*time.Hour), now),
			LikeCount: s.faker.Number(0, 49),
			Liked:     s.faker.Float64() < 0.3,
		})
	}
	return out, nil
}

// SubmitComment accepts content for postID after the submit latency.
func (s *Source) SubmitComment(ctx context.Context, postID int, content string) error {
	if !s.known(postID) {
		return fmt.Errorf("post %d: %w", postID, domain.ErrNotFound)
	}
	if err := wait(ctx, s.cfg.SubmitLatency); err != nil {
		return fmt.Errorf("submitting comment: %w", err)
	}
	if s.fail(s.cfg.SubmitFailureRate) {
		return fmt.Errorf("submitting comment: %w", domain.ErrFetchFailure)
	}
	s.logger.Debug("comment accepted", zap.Int("post_id", postID), zap.Int("len", len(content)))
	return nil
}

func (s *Source) known(id int) bool {
	return id >= 1 && id <= s.cfg.PageSize*s.cfg.MaxPages
}

func (s *Source) postLocked(id int) domain.Post {
	if p, ok := s.posts[id]; ok {
		return p
	}
	now := s.now()
	p := domain.Post{
		ID:           id,
		Title:        fmt.Sprintf("Post #%d - %s", id, categories[id%len(categories)]),
		Author:       fmt.Sprintf("user%03d", id),
		LikeCount:    s.faker.Number(10, 1009),
		CommentCount: s.faker.Number(5, 204),
		ImageRef:     fmt.Sprintf("https://picsum.photos/300/%d?random=%d", s.faker.Number(300, 499), id),
		CreatedAt:    s.faker.DateRange(now.Add(-30*24*time.Hour), now),
	}
	s.posts[id] = p
	return p
}

func (s *Source) fail(rate float64) bool {
	if rate <= 0 {
		return false
	}
	if rate >= 1 {
		return true
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.faker.Float64() < rate
}

func content(id int, lead string) string {
	return fmt.Sprintf(`Notes on post %d.

%s

Preparation
- Research before you start
- List everything you need
- Set realistic goals

Doing it
1. Follow the plan step by step
2. Write down problems as they come up
3. Adjust as you go

Looking back
What worked, what did not, and what to try next time.`, id, lead)
}

// wait blocks for d or until ctx is done.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
