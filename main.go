package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/CrestNiraj12/terminalfeed/app/schedule"
	"github.com/CrestNiraj12/terminalfeed/infra/config"
	"github.com/CrestNiraj12/terminalfeed/infra/editor"
	"github.com/CrestNiraj12/terminalfeed/infra/logging"
	"github.com/CrestNiraj12/terminalfeed/infra/metrics"
	"github.com/CrestNiraj12/terminalfeed/infra/mock"
	"github.com/CrestNiraj12/terminalfeed/tui"
	"github.com/CrestNiraj12/terminalfeed/tui/common"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type cliMode int

const (
	cliRun cliMode = iota
	cliVersion
	cliHelp
	cliInvalid
)

func parseCLIArgs(args []string) (cliMode, string) {
	if len(args) == 0 {
		return cliRun, ""
	}

	switch args[0] {
	case "--version", "-version", "-v":
		return cliVersion, ""
	case "--help", "-h", "help":
		return cliHelp, ""
	default:
		return cliInvalid, fmt.Sprintf("unexpected argument: %s", strings.Join(args, " "))
	}
}

func usage() string {
	return "Usage: terminalfeed [--version|-version|-v] [--help|-h]\n\nConfigured through TERMINALFEED_* environment variables; set TERMINALFEED_CONFIG to read a YAML file first."
}

func resolveVersionInfo(v, c, d, moduleVersion string, settings map[string]string) (string, string, string) {
	if v == "dev" {
		mv := strings.TrimSpace(moduleVersion)
		if mv != "" && mv != "(devel)" {
			v = mv
		}
	}
	if c == "none" {
		rev := strings.TrimSpace(settings["vcs.revision"])
		if rev != "" {
			if len(rev) > 12 {
				rev = rev[:12]
			}
			c = rev
		}
	}
	if d == "unknown" {
		t := strings.TrimSpace(settings["vcs.time"])
		if t != "" {
			d = t
		}
	}
	return v, c, d
}

func buildSettingsMap(in []debug.BuildSetting) map[string]string {
	out := make(map[string]string, len(in))
	for _, s := range in {
		out[s.Key] = s.Value
	}
	return out
}

func resolvedRuntimeVersionInfo(v, c, d string) (string, string, string) {
	info, ok := debug.ReadBuildInfo()
	if !ok || info == nil {
		return v, c, d
	}
	return resolveVersionInfo(v, c, d, info.Main.Version, buildSettingsMap(info.Settings))
}

func sourceConfig(c config.Source) mock.Config {
	return mock.Config{
		PageSize:          c.PageSize,
		MaxPages:          c.MaxPages,
		PageLatency:       c.PageLatency,
		DetailLatency:     c.DetailLatency,
		SubmitLatency:     c.SubmitLatency,
		PageFailureRate:   c.PageFailureRate,
		DetailFailureRate: c.DetailFailureRate,
		SubmitFailureRate: c.SubmitFailureRate,
		Seed:              c.Seed,
	}
}

// logSummary writes the final request counters into the log.
func logSummary(logger *zap.Logger, rec *metrics.Recorder) {
	summary, err := rec.Summary()
	if err != nil {
		logger.Warn("gathering metrics", zap.Error(err))
		return
	}
	names := make([]string, 0, len(summary))
	for name := range summary {
		names = append(names, name)
	}
	sort.Strings(names)
	fields := make([]zap.Field, 0, len(names))
	for _, name := range names {
		fields = append(fields, zap.Float64(name, summary[name]))
	}
	logger.Info("session summary", fields...)
}

func main() {
	mode, msg := parseCLIArgs(os.Args[1:])
	switch mode {
	case cliVersion:
		v, c, d := resolvedRuntimeVersionInfo(version, commit, date)
		fmt.Printf("TerminalFeed %s\ncommit: %s\nbuilt: %s\n", v, c, d)
		return
	case cliHelp:
		fmt.Println(usage())
		return
	case cliInvalid:
		fmt.Fprintf(os.Stderr, "%s\n%s\n", msg, usage())
		os.Exit(2)
	}

	// 1. Load config from environment (and optional file).
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
		os.Exit(1)
	}

	// 2. Build infrastructure.
	source := mock.New(sourceConfig(cfg.Source), mock.WithLogger(logger.Named("mock")))
	recorder := metrics.New()
	timers := schedule.NewGroup(schedule.Real())
	relay := &common.Relay{}

	// 3. Wire root TUI model.
	rootModel := tui.NewApp(tui.Deps{
		Source:       source,
		Comments:     source,
		Recorder:     recorder,
		Logger:       logger,
		Scheduler:    timers,
		Relay:        relay,
		Editor:       editor.NewEnvEditor(),
		Debounce:     cfg.Feed.Debounce,
		Throttle:     cfg.Feed.Throttle,
		FetchTimeout: cfg.Feed.FetchTimeout,
	})

	// 4. Run. Timer callbacks reach the program through the relay.
	p := tea.NewProgram(rootModel, tea.WithAltScreen())
	relay.Attach(p)
	logger.Info("starting", zap.Int("page_size", cfg.Source.PageSize), zap.Int("max_pages", cfg.Source.MaxPages))

	_, runErr := p.Run()
	rootModel.Shutdown()
	timers.StopAll()
	logSummary(logger, recorder)
	if runErr != nil {
		logger.Error("program exited", zap.Error(runErr))
	}
	_ = logger.Sync()
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "terminalfeed: %v\n", runErr)
		os.Exit(1)
	}
}
