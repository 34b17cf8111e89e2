package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/errtriage/errtriage-go/pkg/errtriage"
	"github.com/errtriage/errtriage-go/pkg/errtriage/diag"
)

func newSeverityCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "severity LEVEL",
		Short: "Print the style token for a severity level",
		Long: `Print the presentation token used to style a severity level
(low, medium, high, critical). Unknown levels print the default token.`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"low", "medium", "high", "critical"},
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := diag.ParseSeverity(args[0])
			if err != nil {
				a.log.Debug("unknown severity, using default token", "level", args[0])
				level = errtriage.Severity(args[0])
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), errtriage.SeverityColorClass(level))
			return err
		},
	}
}
