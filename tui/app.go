package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/CrestNiraj12/terminalfeed/app"
	"github.com/CrestNiraj12/terminalfeed/app/comments"
	detailctl "github.com/CrestNiraj12/terminalfeed/app/detail"
	feedctl "github.com/CrestNiraj12/terminalfeed/app/feed"
	"github.com/CrestNiraj12/terminalfeed/app/schedule"
	"github.com/CrestNiraj12/terminalfeed/tui/common"
	"github.com/CrestNiraj12/terminalfeed/tui/compose"
	"github.com/CrestNiraj12/terminalfeed/tui/detail"
	"github.com/CrestNiraj12/terminalfeed/tui/feed"
)

// Deps holds all dependencies the TUI needs. Plain struct, not a DI container.
type Deps struct {
	Source       app.PostSource
	Comments     app.CommentService
	Recorder     app.Recorder
	Logger       *zap.Logger
	Scheduler    schedule.Scheduler
	Relay        *common.Relay
	Identity     comments.Identity
	Editor       compose.Editor // optional; enables ctrl+e in the composer
	Debounce     time.Duration
	Throttle     time.Duration
	FetchTimeout time.Duration
}

type activeView int

const (
	feedView activeView = iota
	detailView
)

// App is the root Bubble Tea model. It routes between the feed and the
// detail view of a single post.
type App struct {
	deps   Deps
	active activeView
	feed   feed.Model
	detail detail.Model
	open   bool // a detail model exists
	keys   common.KeyMap
	width  int
	height int
}

// NewApp creates the root model with all dependencies wired.
func NewApp(deps Deps) App {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Recorder == nil {
		deps.Recorder = app.NopRecorder{}
	}
	ctl := feedctl.New(deps.Source,
		feedctl.WithLogger(deps.Logger.Named("feed")),
		feedctl.WithRecorder(deps.Recorder),
		feedctl.WithFetchTimeout(deps.FetchTimeout),
	)
	return App{
		deps:   deps,
		active: feedView,
		feed: feed.New(feed.Deps{
			Controller: ctl,
			Scheduler:  deps.Scheduler,
			Relay:      deps.Relay,
			Debounce:   deps.Debounce,
			Throttle:   deps.Throttle,
		}),
		keys: common.DefaultKeyMap(),
	}
}

// Init delegates to the feed.
func (a App) Init() tea.Cmd {
	return a.feed.Init()
}

// Shutdown stops the feed's timers. Call after the program exits.
func (a App) Shutdown() {
	a.feed.Stop()
}

// Update handles messages and routes to the active sub-model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, a.keys.ForceQuit) {
			return a, tea.Quit
		}
		if a.active == feedView && !a.feed.Searching() && key.Matches(msg, a.keys.Quit) {
			return a, tea.Quit
		}

	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		var cmd tea.Cmd
		a.feed, cmd = a.feed.Update(msg)
		if a.open {
			a.detail = a.detail.SetSize(msg.Width, msg.Height)
		}
		return a, cmd

	case spinner.TickMsg:
		// Each spinner only accepts its own ticks, so both can be fed.
		var cmds []tea.Cmd
		var cmd tea.Cmd
		a.feed, cmd = a.feed.Update(msg)
		cmds = append(cmds, cmd)
		if a.open {
			a.detail, cmd = a.detail.Update(msg)
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)

	case feed.OpenPostMsg:
		session := detailctl.New(msg.ID, a.deps.Source, a.deps.Comments,
			detailctl.WithLogger(a.deps.Logger.Named("detail")),
			detailctl.WithRecorder(a.deps.Recorder),
			detailctl.WithFetchTimeout(a.deps.FetchTimeout),
			detailctl.WithThreadOptions(comments.WithIdentity(a.deps.Identity)),
		)
		a.detail = detail.New(session).SetEditor(a.deps.Editor).SetSize(a.width, a.height)
		a.open = true
		a.active = detailView
		return a, a.detail.Init()

	case detail.BackMsg:
		a.active = feedView
		return a, nil

	case detailctl.LoadedMsg, comments.SubmittedMsg, compose.EditedMsg:
		// Results can arrive after the user went back; the session
		// discards anything that is not its own.
		if !a.open {
			return a, nil
		}
		var cmd tea.Cmd
		a.detail, cmd = a.detail.Update(msg)
		return a, cmd

	case feedctl.PageLoadedMsg, feedctl.PageErrorMsg, feed.QueryMsg:
		var cmd tea.Cmd
		a.feed, cmd = a.feed.Update(msg)
		return a, cmd
	}

	switch a.active {
	case feedView:
		var cmd tea.Cmd
		a.feed, cmd = a.feed.Update(msg)
		return a, cmd
	case detailView:
		var cmd tea.Cmd
		a.detail, cmd = a.detail.Update(msg)
		return a, cmd
	}
	return a, nil
}

// View renders the active sub-model.
func (a App) View() string {
	if a.active == detailView && a.open {
		return a.detail.View()
	}
	return a.feed.View()
}
