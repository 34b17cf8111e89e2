// Package config loads CLI defaults from a YAML file and the environment.
package config

import (
	"fmt"
	"regexp"
	"time"
)

// Output formats.
const (
	FormatJSONL  = "jsonl"
	FormatYAML   = "yaml"
	FormatPretty = "pretty"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// ValidFormats lists all valid output formats.
var ValidFormats = map[string]bool{
	FormatJSONL:  true,
	FormatYAML:   true,
	FormatPretty: true,
}

// Config holds CLI defaults. Flags override these values.
type Config struct {
	Output OutputConfig `koanf:"output"`
	Watch  WatchConfig  `koanf:"watch"`
}

// OutputConfig controls how records are printed.
type OutputConfig struct {
	Format string `koanf:"format"`
	Color  string `koanf:"color"`

	// Width truncates the echoed error text in pretty output
	// (display columns, 0 = no limit).
	Width int `koanf:"width"`
}

// WatchConfig controls the watch command.
type WatchConfig struct {
	PollInterval time.Duration `koanf:"poll_interval"`
	Match        string        `koanf:"match"`
	Pattern      string        `koanf:"pattern"`
}

// DefaultWidth is the pretty-output truncation width when none is set.
const DefaultWidth = 120

// Default returns the built-in defaults.
func Default() *Config {
	cfg := &Config{Output: OutputConfig{Width: DefaultWidth}}
	applyDefaults(cfg)
	return cfg
}

// applyDefaults fills empty fields. Width is left alone because 0 is a
// meaningful value.
func applyDefaults(cfg *Config) {
	if cfg.Output.Format == "" {
		cfg.Output.Format = FormatPretty
	}
	if cfg.Output.Color == "" {
		cfg.Output.Color = ColorAuto
	}
	if cfg.Watch.PollInterval == 0 {
		cfg.Watch.PollInterval = 2 * time.Second
	}
	if cfg.Watch.Pattern == "" {
		cfg.Watch.Pattern = "*.log"
	}
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if !ValidFormats[c.Output.Format] {
		return fmt.Errorf("output.format: unknown format %q (want jsonl, yaml or pretty)", c.Output.Format)
	}
	switch c.Output.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("output.color: unknown mode %q (want auto, always or never)", c.Output.Color)
	}
	if c.Output.Width < 0 {
		return fmt.Errorf("output.width must be non-negative, got %d", c.Output.Width)
	}
	if c.Watch.PollInterval <= 0 {
		return fmt.Errorf("watch.poll_interval must be positive, got %v", c.Watch.PollInterval)
	}
	if c.Watch.Match != "" {
		if _, err := regexp.Compile(c.Watch.Match); err != nil {
			return fmt.Errorf("watch.match: %w", err)
		}
	}
	return nil
}
