package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// PathEnv names an optional YAML file read before the environment.
const PathEnv = "TERMINALFEED_CONFIG"

// Config holds application-level configuration.
type Config struct {
	Source Source `yaml:"source"`
	Feed   Feed   `yaml:"feed"`
	Log    Log    `yaml:"log"`
}

// Source configures the mock backend.
type Source struct {
	PageSize          int           `yaml:"page_size"           env:"TERMINALFEED_PAGE_SIZE"           env-default:"10"`
	MaxPages          int           `yaml:"max_pages"           env:"TERMINALFEED_MAX_PAGES"           env-default:"5"`
	PageLatency       time.Duration `yaml:"page_latency"        env:"TERMINALFEED_PAGE_LATENCY"        env-default:"1s"`
	DetailLatency     time.Duration `yaml:"detail_latency"      env:"TERMINALFEED_DETAIL_LATENCY"      env-default:"800ms"`
	SubmitLatency     time.Duration `yaml:"submit_latency"      env:"TERMINALFEED_SUBMIT_LATENCY"      env-default:"500ms"`
	PageFailureRate   float64       `yaml:"page_failure_rate"   env:"TERMINALFEED_PAGE_FAILURE_RATE"   env-default:"0"`
	DetailFailureRate float64       `yaml:"detail_failure_rate" env:"TERMINALFEED_DETAIL_FAILURE_RATE" env-default:"0.1"`
	SubmitFailureRate float64       `yaml:"submit_failure_rate" env:"TERMINALFEED_SUBMIT_FAILURE_RATE" env-default:"0"`
	Seed              int64         `yaml:"seed"                env:"TERMINALFEED_SEED"                env-default:"0"`
}

// Feed configures client-side timing.
type Feed struct {
	Debounce     time.Duration `yaml:"debounce"      env:"TERMINALFEED_DEBOUNCE"      env-default:"300ms"`
	Throttle     time.Duration `yaml:"throttle"      env:"TERMINALFEED_THROTTLE"      env-default:"200ms"`
	FetchTimeout time.Duration `yaml:"fetch_timeout" env:"TERMINALFEED_FETCH_TIMEOUT" env-default:"10s"`
}

// Log configures the file logger. An empty File disables logging.
type Log struct {
	Level string `yaml:"level" env:"TERMINALFEED_LOG_LEVEL" env-default:"info"`
	File  string `yaml:"file"  env:"TERMINALFEED_LOG_FILE"`
}

// Load reads configuration from the file named by TERMINALFEED_CONFIG, if
// set, and then from environment variables, which win over the file.
func Load() (Config, error) {
	var cfg Config
	if path := os.Getenv(PathEnv); path != "" {
		if _, err := os.Stat(path); err != nil {
			return Config{}, fmt.Errorf("config file %s: %w", path, err)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("reading env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	s := c.Source
	if s.PageSize < 1 {
		return fmt.Errorf("invalid TERMINALFEED_PAGE_SIZE %d: must be at least 1", s.PageSize)
	}
	if s.MaxPages < 1 {
		return fmt.Errorf("invalid TERMINALFEED_MAX_PAGES %d: must be at least 1", s.MaxPages)
	}
	for name, d := range map[string]time.Duration{
		"TERMINALFEED_PAGE_LATENCY":   s.PageLatency,
		"TERMINALFEED_DETAIL_LATENCY": s.DetailLatency,
		"TERMINALFEED_SUBMIT_LATENCY": s.SubmitLatency,
		"TERMINALFEED_DEBOUNCE":       c.Feed.Debounce,
		"TERMINALFEED_THROTTLE":       c.Feed.Throttle,
	} {
		if d < 0 {
			return fmt.Errorf("invalid %s %s: must not be negative", name, d)
		}
	}
	if c.Feed.FetchTimeout <= 0 {
		return fmt.Errorf("invalid TERMINALFEED_FETCH_TIMEOUT %s: must be positive", c.Feed.FetchTimeout)
	}
	for name, r := range map[string]float64{
		"TERMINALFEED_PAGE_FAILURE_RATE":   s.PageFailureRate,
		"TERMINALFEED_DETAIL_FAILURE_RATE": s.DetailFailureRate,
		"TERMINALFEED_SUBMIT_FAILURE_RATE": s.SubmitFailureRate,
	} {
		if r < 0 || r > 1 {
			return fmt.Errorf("invalid %s %v: must be within [0, 1]", name, r)
		}
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid TERMINALFEED_LOG_LEVEL %q", c.Log.Level)
	}
	return nil
}
