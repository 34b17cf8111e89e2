// Command errtriage translates raw error messages into structured
// diagnoses with a severity, an explanation and suggested remedies.
package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/errtriage/errtriage-go/internal/config"
)

// app holds state shared by all subcommands.
type app struct {
	verbose    bool
	configPath string

	cfg *config.Config
	log *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "errtriage",
		Short: "Translate raw error messages into friendly diagnoses",
		Long: `errtriage recognizes common infrastructure and database failures
(DNS lookup, refused connections, authentication, permissions, SQL syntax,
constraint violations, missing files) and explains them with a severity and
a ranked list of things to try.

Defaults are read from $XDG_CONFIG_HOME/errtriage/config.yaml (or --config)
and ERRTRIAGE_* environment variables. Flags take precedence.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			a.log = newLogger(cmd.ErrOrStderr(), a.verbose)
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.log.Debug("config loaded",
				"format", cfg.Output.Format,
				"color", cfg.Output.Color,
				"width", cfg.Output.Width)
			return nil
		},
	}

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false,
		"Enable debug logging to stderr")
	root.PersistentFlags().StringVar(&a.configPath, "config", "",
		"Config file (default $XDG_CONFIG_HOME/errtriage/config.yaml)")

	root.AddCommand(
		newTranslateCmd(a),
		newWatchCmd(a),
		newRulesCmd(a),
		newSeverityCmd(a),
		newCompletionCmd(),
	)
	return root
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
