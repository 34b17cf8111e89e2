package watch

import (
	"fmt"
	"log/slog"
	"regexp"
	"time"
)

// DefaultMatch selects the lines that look like failures.
var DefaultMatch = regexp.MustCompile(`(?i)error|fail|exception|refused|denied|fatal|panic|violates|ENOENT|ENOTFOUND`)

// Option configures a Watcher using the functional options pattern.
type Option func(*config)

type config struct {
	file         string
	dir          string
	pattern      string
	pollInterval time.Duration
	poll         bool
	fromStart    bool
	match        *regexp.Regexp
	logger       *slog.Logger
}

func defaultConfig() *config {
	return &config{
		pollInterval: 2 * time.Second,
		match:        DefaultMatch,
	}
}

func applyOptions(opts []Option) *config {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	return cfg
}

func (c *config) validate() error {
	if c.file == "" && c.dir == "" {
		return ErrNoSource
	}
	if c.file != "" && c.dir != "" {
		return ErrBothSources
	}
	if c.pollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %v", c.pollInterval)
	}
	return nil
}

// WithFile watches a single file.
func WithFile(path string) Option {
	return func(c *config) {
		c.file = path
	}
}

// WithDir watches the newest file in dir matching the glob set by
// WithPattern, switching to a newer file when one appears.
func WithDir(dir string) Option {
	return func(c *config) {
		c.dir = dir
	}
}

// WithPattern sets the file glob used with WithDir. Default: "*.log".
func WithPattern(glob string) Option {
	return func(c *config) {
		c.pattern = glob
	}
}

// WithPollInterval sets how often to check for a newer log file.
// Default: 2 seconds.
func WithPollInterval(d time.Duration) Option {
	return func(c *config) {
		c.pollInterval = d
	}
}

// WithPolling makes the tailer poll the file instead of using filesystem
// notifications.
func WithPolling(poll bool) Option {
	return func(c *config) {
		c.poll = poll
	}
}

// WithFromStart translates the existing content before following.
func WithFromStart(fromStart bool) Option {
	return func(c *config) {
		c.fromStart = fromStart
	}
}

// WithMatch sets the filter for lines worth translating.
// A nil regexp translates every non-blank line.
func WithMatch(re *regexp.Regexp) Option {
	return func(c *config) {
		c.match = re
	}
}

// WithLogger sets the debug logger. Default: discard.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}
