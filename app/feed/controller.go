// Package feed implements the paginated feed controller: incremental page
// loading behind a load-guard, infinite-scroll triggering, local search
// filtering and retry after failure.
package feed

import (
	"context"
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/CrestNiraj12/terminalfeed/app"
	"github.com/CrestNiraj12/terminalfeed/app/search"
	"github.com/CrestNiraj12/terminalfeed/domain"
)

const defaultFetchTimeout = 10 * time.Second

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger. Nil keeps the no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithRecorder sets the outcome recorder. Nil keeps the no-op recorder.
func WithRecorder(r app.Recorder) Option {
	return func(c *Controller) {
		if r != nil {
			c.recorder = r
		}
	}
}

// WithFetchTimeout bounds each page fetch.
func WithFetchTimeout(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// Controller owns the feed state for one feed screen. It is not safe for
// concurrent use: all calls are expected from the Bubble Tea update loop.
// Fetches run inside the returned commands and report back through Update.
type Controller struct {
	source   app.PostSource
	logger   *zap.Logger
	recorder app.Recorder
	timeout  time.Duration

	items       []domain.Post
	page        int
	status      Status
	err         error
	query       string
	inflight    int // page number of the fetch in flight
	failedPage  int
	gen         int // bumped on reset; results from older generations are dropped
	initialized bool
}

// New creates a controller reading from source.
func New(source app.PostSource, opts ...Option) *Controller {
	c := &Controller{
		source:   source,
		logger:   zap.NewNop(),
		recorder: app.NopRecorder{},
		timeout:  defaultFetchTimeout,
		page:     1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Initialize resets the state and loads the first page. Only the first call
// on a controller has any effect, and it starts nothing while a load from
// an earlier LoadPage or Retry is still in flight.
func (c *Controller) Initialize() tea.Cmd {
	if c.initialized {
		c.logger.Debug("feed already initialized")
		return nil
	}
	c.initialized = true
	if c.status == StatusLoading {
		c.logger.Debug("initial load dropped, fetch in flight", zap.Int("inflight", c.inflight))
		return nil
	}
	c.items = nil
	c.page = 1
	c.err = nil
	c.query = ""
	return c.LoadPage(1)
}

// LoadPage starts fetching page n. It returns nil when a load is already in
// flight. Page 1 replaces the items; later pages append.
func (c *Controller) LoadPage(n int) tea.Cmd {
	if c.status == StatusLoading {
		c.logger.Debug("load dropped, fetch in flight",
			zap.Int("requested", n), zap.Int("inflight", c.inflight))
		return nil
	}
	if n < 1 {
		n = 1
	}
	if !c.transition(StatusLoading) {
		return nil
	}
	c.err = nil
	c.page = n
	c.inflight = n
	c.logger.Debug("loading page", zap.Int("page", n), zap.Int("gen", c.gen))
	return c.fetch(n, c.gen)
}

func (c *Controller) fetch(n, gen int) tea.Cmd {
	source := c.source
	timeout := c.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		page, err := source.FetchPage(ctx, n)
		if err != nil {
			return PageErrorMsg{Requested: n, Err: err, Gen: gen}
		}
		return PageLoadedMsg{Requested: n, Page: page, Gen: gen}
	}
}

// OnScrollNearBottom loads the next page unless a load is in flight, the
// feed is exhausted, the last load failed, or a search is active. Search
// only ever filters what has been fetched already.
func (c *Controller) OnScrollNearBottom() tea.Cmd {
	if !c.initialized {
		return nil
	}
	switch c.status {
	case StatusLoading, StatusExhausted, StatusError:
		return nil
	}
	if c.searchActive() {
		return nil
	}
	return c.LoadPage(c.page + 1)
}

// SetSearchQuery replaces the search query. Items and paging are untouched
// and nothing is fetched.
func (c *Controller) SetSearchQuery(q string) {
	c.query = q
}

// Retry restarts the feed from page 1, discarding loaded items. It is
// dropped while a load is in flight.
func (c *Controller) Retry() tea.Cmd {
	if c.status == StatusLoading {
		c.logger.Debug("retry dropped, fetch in flight")
		return nil
	}
	c.gen++
	c.err = nil
	c.items = nil
	c.page = 1
	c.failedPage = 0
	c.logger.Info("feed retry", zap.Int("gen", c.gen))
	return c.LoadPage(1)
}

// RetryLoadMore re-requests the page whose load failed, keeping the items
// already loaded. It is a no-op unless a later page failed.
func (c *Controller) RetryLoadMore() tea.Cmd {
	if c.status != StatusError || len(c.items) == 0 || c.failedPage < 1 {
		return nil
	}
	return c.LoadPage(c.failedPage)
}

// Update applies fetch results. It reports whether the state changed.
func (c *Controller) Update(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case PageLoadedMsg:
		if !c.current(msg.Gen, msg.Requested) {
			c.logger.Debug("stale page dropped", zap.Int("page", msg.Requested), zap.Int("gen", msg.Gen))
			return false
		}
		if msg.Requested == 1 {
			c.items = slices.Clone(msg.Page.Posts)
		} else {
			c.items = append(c.items, msg.Page.Posts...)
		}
		next := StatusIdle
		if msg.Page.Last {
			next = StatusExhausted
		}
		c.transition(next)
		c.recorder.PageFetched(msg.Requested, nil)
		c.logger.Debug("page loaded",
			zap.Int("page", msg.Requested),
			zap.Int("count", len(msg.Page.Posts)),
			zap.Bool("last", msg.Page.Last))
		return true

	case PageErrorMsg:
		if !c.current(msg.Gen, msg.Requested) {
			c.logger.Debug("stale page error dropped", zap.Int("page", msg.Requested), zap.Int("gen", msg.Gen))
			return false
		}
		c.err = msg.Err
		c.failedPage = msg.Requested
		c.transition(StatusError)
		c.recorder.PageFetched(msg.Requested, msg.Err)
		c.logger.Warn("page load failed", zap.Int("page", msg.Requested), zap.Error(msg.Err))
		return true
	}
	return false
}

func (c *Controller) current(gen, requested int) bool {
	return gen == c.gen && c.status == StatusLoading && requested == c.inflight
}

func (c *Controller) transition(next Status) bool {
	if !c.status.CanTransitionTo(next) {
		c.logger.Warn("illegal feed transition",
			zap.Stringer("from", c.status), zap.Stringer("to", next))
		return false
	}
	c.status = next
	return true
}

func (c *Controller) searchActive() bool {
	return strings.TrimSpace(c.query) != ""
}

// Items returns a copy of every loaded post in fetch order.
func (c *Controller) Items() []domain.Post {
	return slices.Clone(c.items)
}

// FilteredItems returns the loaded posts matching the search query.
func (c *Controller) FilteredItems() []domain.Post {
	if !c.searchActive() {
		return c.Items()
	}
	return search.Filter(c.items, c.query)
}

func (c *Controller) Status() Status      { return c.status }
func (c *Controller) Loading() bool       { return c.status == StatusLoading }
func (c *Controller) HasMore() bool       { return c.status != StatusExhausted }
func (c *Controller) Err() error          { return c.err }
func (c *Controller) Page() int           { return c.page }
func (c *Controller) SearchQuery() string { return c.query }
func (c *Controller) Initialized() bool   { return c.initialized }

// State is a point-in-time copy of the controller state.
type State struct {
	Items       []domain.Post
	Page        int
	HasMore     bool
	Loading     bool
	Err         error
	SearchQuery string
	Status      Status
}

// State returns a snapshot of the feed state.
func (c *Controller) State() State {
	return State{
		Items:       c.Items(),
		Page:        c.page,
		HasMore:     c.HasMore(),
		Loading:     c.Loading(),
		Err:         c.err,
		SearchQuery: c.query,
		Status:      c.status,
	}
}
