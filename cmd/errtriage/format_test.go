package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/errtriage/errtriage-go/pkg/errtriage"
	"github.com/errtriage/errtriage-go/pkg/errtriage/diag"
	"github.com/errtriage/errtriage-go/pkg/errtriage/watch"
)

var updateGolden = flag.Bool("update-golden", false, "update golden files")

func mustPrinter(t *testing.T, buf *bytes.Buffer, opts printerOptions) *printer {
	t.Helper()
	p, err := newPrinter(buf, opts)
	require.NoError(t, err)
	return p
}

// TestPrinter_Golden tests output formats using golden files.
// Run with -update-golden to update the golden files.
func TestPrinter_Golden(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		format  string
		explain bool
	}{
		{"pretty_host_not_found", "getaddrinfo ENOTFOUND db.example.com", "pretty", false},
		{"pretty_unique_explain", `duplicate key value violates unique constraint "users_email_key"`, "pretty", true},
		{"jsonl_host_not_found", "getaddrinfo ENOTFOUND db.example.com", "jsonl", false},
	}

	// Support both flag and env var for updating golden files
	update := *updateGolden || os.Getenv("UPDATE_GOLDEN") == "1"

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			p := mustPrinter(t, &buf, printerOptions{format: tt.format, explain: tt.explain, width: 120})
			require.NoError(t, p.Explanation(errtriage.Explain(tt.input)))

			golden := filepath.Join("testdata", "golden", tt.name+".golden")

			if update {
				require.NoError(t, os.MkdirAll(filepath.Dir(golden), 0o755))
				require.NoError(t, os.WriteFile(golden, buf.Bytes(), 0o644))
				t.Logf("updated golden file: %s", golden)
				return
			}

			expected, err := os.ReadFile(golden)
			require.NoError(t, err, "run with -update-golden to create it")

			// Normalize line endings for cross-platform compatibility
			got := bytes.ReplaceAll(buf.Bytes(), []byte("\r\n"), []byte("\n"))
			want := bytes.ReplaceAll(expected, []byte("\r\n"), []byte("\n"))
			assert.Equal(t, string(want), string(got))
		})
	}
}

func TestPrinter_JSONExplain(t *testing.T) {
	var buf bytes.Buffer
	p := mustPrinter(t, &buf, printerOptions{format: "jsonl", explain: true})
	require.NoError(t, p.Explanation(errtriage.Explain(`FATAL: password authentication failed for user "alice"`)))

	var got errtriage.Explanation
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "auth_failed", got.RuleID)
	assert.Equal(t, "authentication", got.Category)
	assert.Equal(t, []string{"alice"}, got.Captures)
	assert.Equal(t, errtriage.SeverityHigh, got.Record.Severity)
}

func TestPrinter_YAMLDocuments(t *testing.T) {
	var buf bytes.Buffer
	p := mustPrinter(t, &buf, printerOptions{format: "yaml"})
	require.NoError(t, p.Explanation(errtriage.Explain("ERROR: permission denied for table orders")))
	require.NoError(t, p.Explanation(errtriage.Explain("something broke")))

	docs := strings.Split(buf.String(), "---\n")
	require.Len(t, docs, 2)

	var first, second diag.Record
	require.NoError(t, yaml.Unmarshal([]byte(docs[0]), &first))
	require.NoError(t, yaml.Unmarshal([]byte(docs[1]), &second))

	assert.Equal(t, "permission denied for table orders", first.OriginalError)
	assert.Equal(t, diag.SeverityMedium, first.Severity)
	assert.Len(t, first.PossibleSolutions, 3)
	assert.Equal(t, "something broke", second.OriginalError)
	assert.Equal(t, diag.SeverityLow, second.Severity)
}

func TestPrinter_Truncate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		width int
	}{
		{"ascii", strings.Repeat("x", 50), 20},
		{"wide", strings.Repeat("日本語", 10), 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &printer{width: tt.width}
			got := p.truncate(tt.input)
			assert.LessOrEqual(t, runewidth.StringWidth(got), tt.width)
			assert.True(t, strings.HasSuffix(got, "..."), "got %q", got)
		})
	}

	p := &printer{width: 0}
	long := strings.Repeat("x", 500)
	assert.Equal(t, long, p.truncate(long), "width 0 disables truncation")
}

func TestPrinter_PrettyTruncatesErrorOnly(t *testing.T) {
	var buf bytes.Buffer
	p := mustPrinter(t, &buf, printerOptions{format: "pretty", width: 20})
	msg := "ENOENT: no such file or directory, open '/very/long/path/to/some/config/file.json'"
	require.NoError(t, p.Explanation(errtriage.Explain(msg)))

	out := buf.String()
	assert.Contains(t, out, `The file or directory "open '/very/long/path/to/some/config/file.json'" doesn't exist.`)
	assert.Contains(t, out, "  error: "+runewidth.Truncate(msg, 20, "...")+"\n")
}

func TestPrinter_PrettyMultiLineError(t *testing.T) {
	var buf bytes.Buffer
	p := mustPrinter(t, &buf, printerOptions{format: "pretty"})
	rec := errtriage.Explanation{Record: errtriage.Record{
		OriginalError:     "line one\nline two",
		FriendlyMessage:   "An unexpected error occurred.",
		PossibleSolutions: []string{},
		Severity:          errtriage.SeverityMedium,
	}}
	require.NoError(t, p.Explanation(rec))

	assert.Equal(t, "[MEDIUM] An unexpected error occurred.\n  error: line one line two\n", buf.String())
}

func TestPrinter_PrettyEmptyRule(t *testing.T) {
	var buf bytes.Buffer
	p := mustPrinter(t, &buf, printerOptions{format: "pretty", explain: true})
	require.NoError(t, p.Explanation(errtriage.Explain("")))

	assert.Contains(t, buf.String(), "  rule: - (unknown)\n")
	assert.Contains(t, buf.String(), "  error: Unknown error\n")
}

func TestPrinter_Diagnosis(t *testing.T) {
	d := watch.Diagnosis{
		Time:        time.Date(2024, 1, 15, 12, 30, 45, 0, time.UTC),
		Path:        "/var/log/app.log",
		Line:        "dial tcp: connection refused",
		Explanation: errtriage.Explain("dial tcp: connection refused"),
	}

	t.Run("pretty", func(t *testing.T) {
		var buf bytes.Buffer
		p := mustPrinter(t, &buf, printerOptions{format: "pretty", explain: true})
		require.NoError(t, p.Diagnosis(d))

		lines := strings.Split(buf.String(), "\n")
		require.GreaterOrEqual(t, len(lines), 3)
		assert.Equal(t, "[12:30:45] /var/log/app.log", lines[0])
		assert.Equal(t, "[HIGH] The database server is refusing connections.", lines[1])
		assert.Contains(t, buf.String(), "rule: connection_refused (connection)")
	})

	t.Run("jsonl", func(t *testing.T) {
		var buf bytes.Buffer
		p := mustPrinter(t, &buf, printerOptions{format: "jsonl"})
		require.NoError(t, p.Diagnosis(d))

		var got watch.Diagnosis
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, d.Path, got.Path)
		assert.Equal(t, d.Line, got.Line)
		assert.True(t, d.Time.Equal(got.Time))
		assert.Equal(t, "connection_refused", got.Explanation.RuleID)
	})
}

func TestPrinter_Color(t *testing.T) {
	var plain, colored bytes.Buffer
	require.NoError(t, mustPrinter(t, &plain, printerOptions{format: "pretty", color: false}).
		Explanation(errtriage.Explain("connection refused")))
	require.NoError(t, mustPrinter(t, &colored, printerOptions{format: "pretty", color: true}).
		Explanation(errtriage.Explain("connection refused")))

	assert.NotContains(t, plain.String(), "\x1b[")
	assert.Contains(t, colored.String(), "\x1b[")
	assert.Contains(t, colored.String(), "[HIGH]")
}

func TestSeverityColors_Distinct(t *testing.T) {
	c := newSeverityColors(true)
	seen := make(map[string]errtriage.Severity)
	for _, s := range append(diag.Severities(), errtriage.Severity("bogus")) {
		got := c.get(s).Sprint("x")
		if prev, ok := seen[got]; ok {
			t.Errorf("severity %q renders like %q", s, prev)
		}
		seen[got] = s
	}
}

func TestUseColor(t *testing.T) {
	assert.True(t, useColor("always", false))
	assert.False(t, useColor("always", true))
	assert.False(t, useColor("never", false))
}

func TestNewPrinter_UnknownFormat(t *testing.T) {
	_, err := newPrinter(&bytes.Buffer{}, printerOptions{format: "xml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestOneLine(t *testing.T) {
	assert.Equal(t, "a b c d", oneLine("a\nb\r\nc\rd"))
	assert.Equal(t, "plain", oneLine("plain"))
}
