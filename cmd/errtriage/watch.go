package main

import (
	"context"
	"fmt"
	"os/signal"
	"regexp"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/errtriage/errtriage-go/internal/logfinder"
	"github.com/errtriage/errtriage-go/pkg/errtriage/watch"
)

func newWatchCmd(a *app) *cobra.Command {
	var (
		output       outputFlags
		file         string
		dir          string
		pattern      string
		match        string
		all          bool
		pollInterval time.Duration
		poll         bool
		fromStart    bool
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow a log and translate failure lines",
		Long: `Follow a log file in real time and translate every line that looks
like a failure.

With --dir, the newest file matching --pattern is followed, and the watcher
switches to a newer file when one appears. Without --file or --dir, the
directory in $ERRTRIAGE_LOGDIR is used.

Examples:
  # Follow one file
  errtriage watch --file /var/log/app.log

  # Follow the newest log in a directory, from the beginning
  errtriage watch --dir ./logs --from-start

  # Only PostgreSQL errors, as JSON Lines
  errtriage watch --file pg.log --match 'ERROR|FATAL' --format jsonl`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			p, err := output.printer(a, cmd.OutOrStdout(), true)
			if err != nil {
				return err
			}

			if match == "" {
				match = a.cfg.Watch.Match
			}
			if pattern == "" {
				pattern = a.cfg.Watch.Pattern
			}
			if pollInterval == 0 {
				pollInterval = a.cfg.Watch.PollInterval
			}

			opts := []watch.Option{
				watch.WithPattern(pattern),
				watch.WithPollInterval(pollInterval),
				watch.WithPolling(poll),
				watch.WithFromStart(fromStart),
				watch.WithLogger(a.log),
			}
			switch {
			case all:
				opts = append(opts, watch.WithMatch(nil))
			case match != "":
				re, err := regexp.Compile(match)
				if err != nil {
					return fmt.Errorf("invalid --match: %w", err)
				}
				opts = append(opts, watch.WithMatch(re))
			}
			if file == "" && dir == "" {
				// Fall back to $ERRTRIAGE_LOGDIR.
				envDir, err := logfinder.FindLogDir("")
				if err != nil {
					return fmt.Errorf("no --file or --dir given: %w", err)
				}
				dir = envDir
			}
			if file != "" {
				opts = append(opts, watch.WithFile(file))
			}
			if dir != "" {
				opts = append(opts, watch.WithDir(dir))
			}

			w, err := watch.NewWatcher(opts...)
			if err != nil {
				return err
			}
			defer w.Close()

			return runWatch(ctx, a, w, p)
		},
	}

	output.register(cmd)
	cmd.Flags().StringVar(&file, "file", "", "Log file to follow")
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Directory whose newest log is followed")
	cmd.Flags().StringVar(&pattern, "pattern", "", `File glob used with --dir (default "*.log")`)
	cmd.Flags().StringVar(&match, "match", "", "Only translate lines matching this regexp (default: error keywords)")
	cmd.Flags().BoolVar(&all, "all", false, "Translate every non-blank line")
	cmd.Flags().DurationVar(&pollInterval, "poll-interval", 0, "How often to check for a newer log file (default 2s)")
	cmd.Flags().BoolVar(&poll, "poll", false, "Poll the file instead of using filesystem notifications")
	cmd.Flags().BoolVar(&fromStart, "from-start", false, "Translate existing content before following")
	return cmd
}

// runWatch prints diagnoses until ctx is done. If the watcher stops on its
// own, the last error it reported is returned.
func runWatch(ctx context.Context, a *app, w *watch.Watcher, p *printer) error {
	diagnoses, errs, err := w.Watch(ctx)
	if err != nil {
		return err
	}

	var lastErr error
	for {
		select {
		case d, ok := <-diagnoses:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				// Pick up an error sent just before the channels closed.
				if errs != nil {
					for err := range errs {
						lastErr = err
					}
				}
				return lastErr
			}
			if err := p.Diagnosis(d); err != nil {
				return fmt.Errorf("output error: %w", err)
			}

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			lastErr = err
			a.log.Warn("watch error", "error", err)

		case <-ctx.Done():
			return nil
		}
	}
}
