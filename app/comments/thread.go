// Package comments manages a single post's comment thread with optimistic
// local mutation: add, like, reply and delete are applied to the in-memory
// list immediately and never reconciled against a server copy.
package comments

import (
	"context"
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/CrestNiraj12/terminalfeed/app"
	"github.com/CrestNiraj12/terminalfeed/domain"
)

const defaultSubmitTimeout = 10 * time.Second

// Identity is the author attached to comments written locally.
type Identity struct {
	Name string
	ID   int
}

// DefaultIdentity is used when no identity is configured.
var DefaultIdentity = Identity{Name: "You"}

// SubmittedMsg is delivered when a comment submission completes.
type SubmittedMsg struct {
	Thread  string
	PostID  int
	Content string
	Target  *domain.ReplyTarget
	Err     error
}

// Stats summarizes the thread.
type Stats struct {
	Total       int
	TotalLikes  int
	HasComments bool
}

// Option configures a Thread.
type Option func(*Thread)

func WithLogger(l *zap.Logger) Option {
	return func(t *Thread) {
		if l != nil {
			t.logger = l
		}
	}
}

func WithRecorder(r app.Recorder) Option {
	return func(t *Thread) {
		if r != nil {
			t.recorder = r
		}
	}
}

// WithIdentity sets the author of new comments. An empty name keeps the default.
func WithIdentity(id Identity) Option {
	return func(t *Thread) {
		if id.Name != "" {
			t.identity = id
		}
	}
}

// WithClock overrides the time source for new comments.
func WithClock(now func() time.Time) Option {
	return func(t *Thread) {
		if now != nil {
			t.now = now
		}
	}
}

// WithIDs overrides comment id generation.
func WithIDs(next func() string) Option {
	return func(t *Thread) {
		if next != nil {
			t.newID = next
		}
	}
}

func WithSubmitTimeout(d time.Duration) Option {
	return func(t *Thread) {
		if d > 0 {
			t.timeout = d
		}
	}
}

// Thread owns the comments of one post for one detail session. Like the
// feed controller it is driven from a single update loop.
type Thread struct {
	token    string // distinguishes threads opened on the same post
	postID   int
	service  app.CommentService
	logger   *zap.Logger
	recorder app.Recorder
	identity Identity
	now      func() time.Time
	newID    func() string
	timeout  time.Duration

	comments    []domain.Comment
	own         map[string]bool
	count       int
	initialized bool
	reply       *domain.ReplyTarget
	draft       string
	submitting  bool
	err         error
}

// New creates an empty thread for postID. service confirms submissions; a
// nil service accepts every submission.
func New(postID int, service app.CommentService, opts ...Option) *Thread {
	t := &Thread{
		token:    uuid.NewString(),
		postID:   postID,
		service:  service,
		logger:   zap.NewNop(),
		recorder: app.NopRecorder{},
		identity: DefaultIdentity,
		now:      time.Now,
		newID:    uuid.NewString,
		timeout:  defaultSubmitTimeout,
		own:      make(map[string]bool),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Initialize seeds the thread once. The count starts at reportedCount when
// positive, otherwise at the number of seeded comments. It reports whether
// the seed was applied.
func (t *Thread) Initialize(seed []domain.Comment, reportedCount int) bool {
	if t.initialized {
		return false
	}
	t.initialized = true
	t.comments = cloneComments(seed)
	t.count = len(seed)
	if reportedCount > 0 {
		t.count = reportedCount
	}
	return true
}

// AddComment appends a locally authored comment. Blank or oversized drafts
// are rejected without touching the thread. target wins over the active
// reply context; the reply context is cleared on success.
func (t *Thread) AddComment(draft string, target *domain.ReplyTarget) (domain.Comment, error) {
	content := strings.TrimSpace(draft)
	if err := domain.ValidateComment(content); err != nil {
		return domain.Comment{}, err
	}
	if target == nil {
		target = t.reply
	}

	c := domain.Comment{
		ID:        t.newID(),
		Content:   content,
		Author:    t.identity.Name,
		AuthorID:  t.identity.ID,
		CreatedAt: t.now(),
	}
	if target != nil {
		rt := *target
		c.ReplyTo = &rt
	}
	t.comments = append(t.comments, c)
	t.own[c.ID] = true
	t.count++
	t.reply = nil
	return c, nil
}

// ToggleLike flips the like on the matching comment. It reports whether a
// comment was found.
func (t *Thread) ToggleLike(id string) bool {
	for i := range t.comments {
		c := &t.comments[i]
		if c.ID != id {
			continue
		}
		if c.Liked {
			c.Liked = false
			c.LikeCount = max(c.LikeCount-1, 0)
		} else {
			c.Liked = true
			c.LikeCount++
		}
		return true
	}
	return false
}

// SetReplyTarget makes c the reply context and seeds the draft with a
// mention of its author.
func (t *Thread) SetReplyTarget(c domain.Comment) {
	rt := c.Target()
	t.reply = &rt
	t.draft = "@" + c.Author + " "
}

// ClearReplyTarget drops the reply context together with its draft.
func (t *Thread) ClearReplyTarget() {
	t.reply = nil
	t.draft = ""
}

// ReplyTarget returns the active reply context.
func (t *Thread) ReplyTarget() (domain.ReplyTarget, bool) {
	if t.reply == nil {
		return domain.ReplyTarget{}, false
	}
	return *t.reply, true
}

// DeleteComment removes the matching comment. It reports whether a comment
// was removed.
func (t *Thread) DeleteComment(id string) bool {
	for i, c := range t.comments {
		if c.ID != id {
			continue
		}
		t.comments = slices.Delete(t.comments, i, i+1)
		delete(t.own, id)
		t.count = max(t.count-1, 0)
		if t.reply != nil && t.reply.ID == id {
			t.reply = nil
		}
		return true
	}
	return false
}

func (t *Thread) SetDraft(s string) { t.draft = s }
func (t *Thread) Draft() string     { return t.draft }

// Submit validates the draft and returns a command sending it to the
// comment service. The draft is kept until the service confirms. A second
// Submit while one is pending returns a nil command.
func (t *Thread) Submit() (tea.Cmd, error) {
	if t.submitting {
		return nil, nil
	}
	content := strings.TrimSpace(t.draft)
	if err := domain.ValidateComment(content); err != nil {
		return nil, err
	}
	t.submitting = true
	t.err = nil

	var target *domain.ReplyTarget
	if t.reply != nil {
		rt := *t.reply
		target = &rt
	}
	svc := t.service
	token := t.token
	postID := t.postID
	timeout := t.timeout
	return func() tea.Msg {
		if svc == nil {
			return SubmittedMsg{Thread: token, PostID: postID, Content: content, Target: target}
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		err := svc.SubmitComment(ctx, postID, content)
		return SubmittedMsg{Thread: token, PostID: postID, Content: content, Target: target, Err: err}
	}, nil
}

// Update applies submission results. It reports whether the thread changed.
func (t *Thread) Update(msg tea.Msg) bool {
	m, ok := msg.(SubmittedMsg)
	if !ok || m.Thread != t.token || m.PostID != t.postID || !t.submitting {
		return false
	}
	t.submitting = false
	t.recorder.CommentSubmitted(m.Err)
	if m.Err != nil {
		t.err = m.Err
		t.logger.Warn("comment submit failed", zap.Int("post_id", t.postID), zap.Error(m.Err))
		return true
	}
	c, err := t.AddComment(m.Content, m.Target)
	if err != nil {
		t.err = err
		return true
	}
	t.draft = ""
	t.logger.Debug("comment added", zap.Int("post_id", t.postID), zap.String("comment_id", c.ID))
	return true
}

// Own reports whether the comment with id was written in this thread.
func (t *Thread) Own(id string) bool { return t.own[id] }

// Comments returns a copy of the thread in insertion order.
func (t *Thread) Comments() []domain.Comment {
	return cloneComments(t.comments)
}

// Stats returns totals over the current comments.
func (t *Thread) Stats() Stats {
	likes := 0
	for _, c := range t.comments {
		likes += c.LikeCount
	}
	return Stats{
		Total:       len(t.comments),
		TotalLikes:  likes,
		HasComments: len(t.comments) > 0,
	}
}

func (t *Thread) PostID() int       { return t.postID }
func (t *Thread) Count() int        { return t.count }
func (t *Thread) Initialized() bool { return t.initialized }
func (t *Thread) Submitting() bool  { return t.submitting }
func (t *Thread) Err() error        { return t.err }
func (t *Thread) ClearErr()         { t.err = nil }

func cloneComments(in []domain.Comment) []domain.Comment {
	if in == nil {
		return nil
	}
	out := make([]domain.Comment, len(in))
	for i, c := range in {
		if c.ReplyTo != nil {
			rt := *c.ReplyTo
			c.ReplyTo = &rt
		}
		out[i] = c
	}
	return out
}
