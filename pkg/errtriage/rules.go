package errtriage

import "github.com/errtriage/errtriage-go/internal/rules"

// RuleInfo describes one entry of the rule table.
type RuleInfo struct {
	ID       string   `json:"id" yaml:"id"`
	Category string   `json:"category" yaml:"category"`
	Severity Severity `json:"severity" yaml:"severity"`
	Pattern  string   `json:"pattern" yaml:"pattern"`
}

// Rules lists the rule table in evaluation order.
// The returned slice is a copy; the table itself cannot be changed.
func Rules() []RuleInfo {
	table := rules.Table()
	out := make([]RuleInfo, 0, len(table))
	for _, r := range table {
		out = append(out, RuleInfo{
			ID:       r.ID,
			Category: string(r.Category),
			Severity: r.Severity,
			Pattern:  r.Pattern.String(),
		})
	}
	return out
}
