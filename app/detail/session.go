// Package detail drives one visit to a post's detail view: it loads the
// post body with its seed comments, keeps shadow like and comment counters
// and owns the post's comment thread.
package detail

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/CrestNiraj12/terminalfeed/app"
	"github.com/CrestNiraj12/terminalfeed/app/comments"
	"github.com/CrestNiraj12/terminalfeed/domain"
)

const defaultFetchTimeout = 10 * time.Second

// State is the load state of a session.
type State int

const (
	StateLoading State = iota
	StateReady
	StateFailed
	StateNotFound
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	case StateNotFound:
		return "not-found"
	default:
		return "unknown"
	}
}

// LoadedMsg carries a detail fetch result back to the session.
type LoadedMsg struct {
	Session  string
	PostID   int
	Gen      int
	Detail   domain.PostDetail
	Comments []domain.Comment
	Err      error
}

// Option configures a Session.
type Option func(*Session)

func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithRecorder(r app.Recorder) Option {
	return func(s *Session) {
		if r != nil {
			s.recorder = r
		}
	}
}

func WithFetchTimeout(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithThreadOptions passes options to the session's comment thread.
func WithThreadOptions(opts ...comments.Option) Option {
	return func(s *Session) { s.threadOpts = append(s.threadOpts, opts...) }
}

// Session is not safe for concurrent use; drive it from the update loop.
type Session struct {
	token      string
	postID     int
	source     app.PostSource
	logger     *zap.Logger
	recorder   app.Recorder
	timeout    time.Duration
	threadOpts []comments.Option

	state     State
	err       error
	detail    domain.PostDetail
	liked     bool
	likeCount int
	thread    *comments.Thread
	loading   bool
	gen       int
}

// New creates a session for postID. Call Load to start fetching.
func New(postID int, source app.PostSource, svc app.CommentService, opts ...Option) *Session {
	s := &Session{
		token:    uuid.NewString(),
		postID:   postID,
		source:   source,
		logger:   zap.NewNop(),
		recorder: app.NopRecorder{},
		timeout:  defaultFetchTimeout,
		state:    StateLoading,
	}
	for _, opt := range opts {
		opt(s)
	}
	threadOpts := append([]comments.Option{
		comments.WithLogger(s.logger),
		comments.WithRecorder(s.recorder),
	}, s.threadOpts...)
	s.thread = comments.New(postID, svc, threadOpts...)
	return s
}

// Load fetches the post and its comments. It returns nil while a load is
// already running or once the session is terminal.
func (s *Session) Load() tea.Cmd {
	if s.loading || s.state == StateNotFound {
		return nil
	}
	s.loading = true
	s.state = StateLoading
	s.err = nil
	s.gen++

	src := s.source
	token := s.token
	id := s.postID
	gen := s.gen
	timeout := s.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		d, err := src.FetchPostDetail(ctx, id)
		if err != nil {
			return LoadedMsg{Session: token, PostID: id, Gen: gen, Err: err}
		}
		cs, err := src.FetchComments(ctx, id)
		if err != nil {
			return LoadedMsg{Session: token, PostID: id, Gen: gen, Err: err}
		}
		return LoadedMsg{Session: token, PostID: id, Gen: gen, Detail: d, Comments: cs}
	}
}

// Retry reloads after a failure. Not-found sessions stay terminal.
func (s *Session) Retry() tea.Cmd {
	if s.state != StateFailed {
		return nil
	}
	return s.Load()
}

// Update applies load results and comment submissions. It reports whether
// the session changed.
func (s *Session) Update(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case LoadedMsg:
		if msg.Session != s.token || msg.PostID != s.postID || msg.Gen != s.gen || !s.loading {
			return false
		}
		s.loading = false
		s.recorder.DetailFetched(msg.Err)
		switch {
		case errors.Is(msg.Err, domain.ErrNotFound):
			s.state = StateNotFound
			s.err = msg.Err
		case msg.Err != nil:
			s.state = StateFailed
			s.err = msg.Err
			s.logger.Warn("detail load failed", zap.Int("post_id", s.postID), zap.Error(msg.Err))
		default:
			s.state = StateReady
			s.detail = msg.Detail
			s.likeCount = msg.Detail.LikeCount
			s.liked = false
			s.thread.Initialize(msg.Comments, msg.Detail.CommentCount)
			s.logger.Debug("detail loaded",
				zap.Int("post_id", s.postID),
				zap.Int("comments", len(msg.Comments)))
		}
		return true
	case comments.SubmittedMsg:
		return s.thread.Update(msg)
	}
	return false
}

// ToggleLike flips the shadow like on a loaded post.
func (s *Session) ToggleLike() bool {
	if s.state != StateReady {
		return false
	}
	if s.liked {
		s.liked = false
		s.likeCount = max(s.likeCount-1, 0)
	} else {
		s.liked = true
		s.likeCount++
	}
	return true
}

func (s *Session) PostID() int               { return s.postID }
func (s *Session) State() State              { return s.state }
func (s *Session) Err() error                { return s.err }
func (s *Session) Loading() bool             { return s.loading }
func (s *Session) Detail() domain.PostDetail { return s.detail }
func (s *Session) Liked() bool               { return s.liked }
func (s *Session) LikeCount() int            { return s.likeCount }
func (s *Session) Thread() *comments.Thread  { return s.thread }

// CommentCount is the thread's running count, which starts at the post's
// reported count.
func (s *Session) CommentCount() int { return s.thread.Count() }
