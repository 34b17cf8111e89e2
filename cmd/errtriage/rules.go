package main

import (
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/errtriage/errtriage-go/internal/config"
	"github.com/errtriage/errtriage-go/pkg/errtriage"
)

func newRulesCmd(a *app) *cobra.Command {
	var output outputFlags

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the translation rules in evaluation order",
		Long: `List the translation rules in the order they are tried.

The first rule whose pattern matches a message produces its diagnosis.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := output.printer(a, cmd.OutOrStdout(), false)
			if err != nil {
				return err
			}
			return printRules(p, errtriage.Rules())
		},
	}

	output.register(cmd)
	return cmd
}

func printRules(p *printer, rs []errtriage.RuleInfo) error {
	switch p.format {
	case config.FormatJSONL:
		for _, r := range rs {
			if err := p.encodeJSON(r); err != nil {
				return err
			}
		}
		return nil
	case config.FormatYAML:
		return p.encodeYAML(rs)
	default:
		return printRuleTable(p, rs)
	}
}

// printRuleTable writes one aligned row per rule.
func printRuleTable(p *printer, rs []errtriage.RuleInfo) error {
	idWidth, catWidth := len("ID"), len("CATEGORY")
	for _, r := range rs {
		idWidth = max(idWidth, runewidth.StringWidth(r.ID))
		catWidth = max(catWidth, runewidth.StringWidth(r.Category))
	}

	row := func(w io.Writer, id, cat, sev, pattern string) error {
		_, err := fmt.Fprintf(w, "%s  %s  %s  %s\n",
			runewidth.FillRight(id, idWidth),
			runewidth.FillRight(cat, catWidth),
			sev,
			pattern)
		return err
	}

	if err := row(p.out, "ID", "CATEGORY", runewidth.FillRight("SEVERITY", 8), "PATTERN"); err != nil {
		return err
	}
	for _, r := range rs {
		sev := p.colors.get(r.Severity).Sprint(runewidth.FillRight(r.Severity.String(), 8))
		if err := row(p.out, r.ID, r.Category, sev, p.truncate(r.Pattern)); err != nil {
			return err
		}
	}
	return nil
}
