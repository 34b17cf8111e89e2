package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"

	"github.com/errtriage/errtriage-go/internal/config"
	"github.com/errtriage/errtriage-go/pkg/errtriage"
	"github.com/errtriage/errtriage-go/pkg/errtriage/watch"
)

// printer writes records in one of the output formats.
type printer struct {
	out     io.Writer
	format  string
	explain bool
	width   int
	colors  severityColors
	faint   *color.Color

	docs int // documents written, for YAML separators
}

type printerOptions struct {
	format  string
	explain bool
	width   int
	color   bool
}

func newPrinter(out io.Writer, opts printerOptions) (*printer, error) {
	if !config.ValidFormats[opts.format] {
		return nil, fmt.Errorf("unknown format: %s", opts.format)
	}
	return &printer{
		out:     out,
		format:  opts.format,
		explain: opts.explain,
		width:   opts.width,
		colors:  newSeverityColors(opts.color),
		faint:   setColor(color.New(color.Faint), opts.color),
	}, nil
}

// useColor resolves a color mode against the --no-color flag.
func useColor(mode string, noColor bool) bool {
	if noColor {
		return false
	}
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		return !color.NoColor
	}
}

// Explanation writes one translated message.
func (p *printer) Explanation(e errtriage.Explanation) error {
	switch p.format {
	case config.FormatJSONL:
		if p.explain {
			return p.encodeJSON(e)
		}
		return p.encodeJSON(e.Record)
	case config.FormatYAML:
		if p.explain {
			return p.encodeYAML(e)
		}
		return p.encodeYAML(e.Record)
	default:
		return p.pretty("", e)
	}
}

// Diagnosis writes one translated log line.
func (p *printer) Diagnosis(d watch.Diagnosis) error {
	switch p.format {
	case config.FormatJSONL:
		return p.encodeJSON(d)
	case config.FormatYAML:
		return p.encodeYAML(d)
	default:
		header := p.faint.Sprintf("[%s] %s", d.Time.Format("15:04:05"), d.Path)
		return p.pretty(header, d.Explanation)
	}
}

func (p *printer) encodeJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(p.out, string(data))
	return err
}

func (p *printer) encodeYAML(v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	if p.docs > 0 {
		if _, err := io.WriteString(p.out, "---\n"); err != nil {
			return err
		}
	}
	p.docs++
	_, err = p.out.Write(data)
	return err
}

// pretty writes a human-readable block:
//
//	[HIGH] Cannot find the database host "db". ...
//	  error: getaddrinfo ENOTFOUND db
//	  try:
//	    1. Check if the database server is running
func (p *printer) pretty(header string, e errtriage.Explanation) error {
	rec := e.Record
	var sb strings.Builder

	if header != "" {
		sb.WriteString(header)
		sb.WriteByte('\n')
	}

	label := "[" + strings.ToUpper(rec.Severity.String()) + "]"
	fmt.Fprintf(&sb, "%s %s\n", p.colors.get(rec.Severity).Sprint(label), rec.FriendlyMessage)
	fmt.Fprintf(&sb, "  error: %s\n", p.truncate(oneLine(rec.OriginalError)))

	if p.explain {
		rule := e.RuleID
		if rule == "" {
			rule = "-"
		}
		fmt.Fprintf(&sb, "  rule: %s (%s)\n", rule, e.Category)
		if len(e.Captures) > 0 {
			fmt.Fprintf(&sb, "  captures: %s\n", strings.Join(e.Captures, ", "))
		}
	}

	if len(rec.PossibleSolutions) > 0 {
		sb.WriteString("  try:\n")
		for i, s := range rec.PossibleSolutions {
			fmt.Fprintf(&sb, "    %d. %s\n", i+1, s)
		}
	}
	for _, link := range rec.DocumentationLinks {
		fmt.Fprintf(&sb, "  docs: %s\n", link)
	}

	_, err := io.WriteString(p.out, sb.String())
	return err
}

// truncate shortens s to the configured display width.
// Wide characters count as two columns.
func (p *printer) truncate(s string) string {
	if p.width <= 0 {
		return s
	}
	return runewidth.Truncate(s, p.width, "...")
}

func oneLine(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	return strings.NewReplacer("\n", " ", "\r", " ").Replace(s)
}
