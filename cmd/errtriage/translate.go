package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/errtriage/errtriage-go/internal/safefile"
	"github.com/errtriage/errtriage-go/pkg/errtriage"
)

const (
	// maxInputFileSize limits --file input.
	maxInputFileSize = 10 * 1024 * 1024 // 10MB

	// maxLineSize limits a single line read from stdin or --file.
	maxLineSize = 1024 * 1024 // 1MB
)

type outputFlags struct {
	cmd     *cobra.Command
	format  string
	width   int
	noColor bool
}

func (f *outputFlags) register(cmd *cobra.Command) {
	f.cmd = cmd
	cmd.Flags().StringVarP(&f.format, "format", "f", "",
		"Output format: jsonl, yaml, pretty (default from config, pretty)")
	cmd.Flags().IntVar(&f.width, "width", 0,
		"Truncate echoed error text in pretty output to this many columns, 0 = no limit (default from config, 120)")
	cmd.Flags().BoolVar(&f.noColor, "no-color", false,
		"Disable colored output")
}

func (f *outputFlags) printer(a *app, out io.Writer, explain bool) (*printer, error) {
	format := f.format
	if format == "" {
		format = a.cfg.Output.Format
	}
	width := a.cfg.Output.Width
	if f.cmd != nil && f.cmd.Flags().Changed("width") {
		if f.width < 0 {
			return nil, fmt.Errorf("--width must be non-negative, got %d", f.width)
		}
		width = f.width
	}
	return newPrinter(out, printerOptions{
		format:  format,
		explain: explain,
		width:   width,
		color:   useColor(a.cfg.Output.Color, f.noColor),
	})
}

func newTranslateCmd(a *app) *cobra.Command {
	var (
		output  outputFlags
		file    string
		explain bool
	)

	cmd := &cobra.Command{
		Use:   "translate [message...]",
		Short: "Translate error messages",
		Long: `Translate each argument as one error message.

With no arguments, or a single "-", messages are read from stdin one per
line. --file reads lines from a regular file instead. Blank lines are
skipped.

Examples:
  # Translate a single message
  errtriage translate 'getaddrinfo ENOTFOUND db.example.com'

  # Translate a log, one JSON object per line
  errtriage translate --file app.log --format jsonl

  # Show which rule matched
  psql -c 'SELEC 1' 2>&1 | errtriage translate --explain`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := output.printer(a, cmd.OutOrStdout(), explain)
			if err != nil {
				return err
			}

			switch {
			case file != "":
				if len(args) > 0 {
					return fmt.Errorf("--file cannot be combined with message arguments")
				}
				data, err := safefile.ReadLimited(file, maxInputFileSize)
				if err != nil {
					return fmt.Errorf("read input file: %w", err)
				}
				a.log.Debug("translating file", "bytes", len(data))
				return translateLines(bytes.NewReader(data), p)
			case len(args) == 0 || (len(args) == 1 && args[0] == "-"):
				return translateLines(cmd.InOrStdin(), p)
			default:
				for _, msg := range args {
					if err := p.Explanation(errtriage.Explain(msg)); err != nil {
						return fmt.Errorf("output error: %w", err)
					}
				}
				return nil
			}
		},
	}

	output.register(cmd)
	cmd.Flags().StringVar(&file, "file", "", "Read messages from a file, one per line")
	cmd.Flags().BoolVar(&explain, "explain", false, "Include the matching rule and its captures")
	return cmd
}

// translateLines translates each non-blank line of r.
func translateLines(r io.Reader, p *printer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := p.Explanation(errtriage.Explain(line)); err != nil {
			return fmt.Errorf("output error: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}
