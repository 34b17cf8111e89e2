package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the default config location at an empty temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, FormatPretty, cfg.Output.Format)
	assert.Equal(t, ColorAuto, cfg.Output.Color)
	assert.Equal(t, 2*time.Second, cfg.Watch.PollInterval)
	assert.Equal(t, "*.log", cfg.Watch.Pattern)
}

func TestLoad_DefaultPathFile(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "errtriage", "config.yaml"), `
output:
  format: jsonl
  color: never
watch:
  poll_interval: 500ms
`)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, FormatJSONL, cfg.Output.Format)
	assert.Equal(t, ColorNever, cfg.Output.Color)
	assert.Equal(t, 500*time.Millisecond, cfg.Watch.PollInterval)
	assert.Equal(t, 120, cfg.Output.Width)
}

func TestLoad_ExplicitFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, path, `
output:
  format: yaml
  width: 80
watch:
  match: "(?i)panic"
  pattern: "app-*.log"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, cfg.Output.Format)
	assert.Equal(t, 80, cfg.Output.Width)
	assert.Equal(t, "(?i)panic", cfg.Watch.Match)
	assert.Equal(t, "app-*.log", cfg.Watch.Pattern)
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	isolate(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config file")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "output:\n  format: yaml\n")

	t.Setenv("ERRTRIAGE_OUTPUT_FORMAT", "jsonl")
	t.Setenv("ERRTRIAGE_OUTPUT_WIDTH", "60")
	t.Setenv("ERRTRIAGE_WATCH_POLL_INTERVAL", "3s")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, FormatJSONL, cfg.Output.Format)
	assert.Equal(t, 60, cfg.Output.Width)
	assert.Equal(t, 3*time.Second, cfg.Watch.PollInterval)
}

func TestLoad_WidthZeroDisablesTruncation(t *testing.T) {
	t.Run("file", func(t *testing.T) {
		isolate(t)
		path := filepath.Join(t.TempDir(), "config.yaml")
		writeFile(t, path, "output:\n  width: 0\n")

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 0, cfg.Output.Width)
		assert.Equal(t, FormatPretty, cfg.Output.Format)
	})

	t.Run("env", func(t *testing.T) {
		isolate(t)
		t.Setenv("ERRTRIAGE_OUTPUT_WIDTH", "0")

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, 0, cfg.Output.Width)
	})

	t.Run("absent", func(t *testing.T) {
		isolate(t)
		path := filepath.Join(t.TempDir(), "config.yaml")
		writeFile(t, path, "output:\n  color: never\n")

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, DefaultWidth, cfg.Output.Width)
	})
}

func TestLoad_InvalidYAML(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	writeFile(t, path, "output: [unclosed")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoad_ValidationFails(t *testing.T) {
	isolate(t)
	t.Setenv("ERRTRIAGE_OUTPUT_FORMAT", "xml")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output.format")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"bad format", func(c *Config) { c.Output.Format = "csv" }, "output.format"},
		{"bad color", func(c *Config) { c.Output.Color = "sometimes" }, "output.color"},
		{"negative width", func(c *Config) { c.Output.Width = -1 }, "output.width"},
		{"zero poll interval", func(c *Config) { c.Watch.PollInterval = 0 }, "watch.poll_interval"},
		{"bad match", func(c *Config) { c.Watch.Match = "(" }, "watch.match"},
		{"good match", func(c *Config) { c.Watch.Match = `(?i)error` }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"ERRTRIAGE_OUTPUT_FORMAT":       "output.format",
		"ERRTRIAGE_WATCH_POLL_INTERVAL": "watch.poll_interval",
		"ERRTRIAGE_LOGDIR":              "logdir",
	}
	for in, want := range tests {
		assert.Equal(t, want, envKey(in), in)
	}
}
