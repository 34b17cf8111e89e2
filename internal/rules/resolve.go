package rules

import "github.com/errtriage/errtriage-go/pkg/errtriage/diag"

// UnmatchedID is the rule ID reported when no rule in the table matched.
// The built-in table ends with a wildcard, so this only happens for an
// empty or misconfigured table.
const UnmatchedID = "unmatched"

// Result is the outcome of resolving one message.
type Result struct {
	Record diag.Record

	// RuleID is the ID of the rule that matched, "" for empty input and
	// UnmatchedID when the scan found nothing.
	RuleID   string
	Category Category
	Captures Captures
}

// Resolve runs message against the built-in table.
//
// Resolve never fails: every input, including the empty string, produces
// exactly one Record.
func Resolve(message string) Result {
	return resolve(table, message)
}

// resolve scans rules in order and returns the first match. Later rules
// are not consulted once a rule has matched.
func resolve(rs []Rule, message string) Result {
	if message == "" {
		return Result{Record: unknownRecord(), Category: CategoryUnknown}
	}

	for _, r := range rs {
		c, ok := r.Find(message)
		if !ok {
			continue
		}
		return Result{
			Record:   r.Apply(c),
			RuleID:   r.ID,
			Category: r.Category,
			Captures: c,
		}
	}

	return Result{
		Record:   unmatchedRecord(message),
		RuleID:   UnmatchedID,
		Category: CategoryUnknown,
		Captures: NewCaptures(message, nil),
	}
}

func unknownRecord() diag.Record {
	return diag.Record{
		OriginalError:   unknownOriginal,
		FriendlyMessage: "An unknown error occurred.",
		PossibleSolutions: []string{
			"Check application logs for more details",
			"Try again after a few moments",
		},
		Severity: diag.SeverityMedium,
	}
}

func unmatchedRecord(message string) diag.Record {
	return diag.Record{
		OriginalError:   message,
		FriendlyMessage: "An unexpected error occurred.",
		PossibleSolutions: []string{
			"Check logs for more information",
			"Consult the documentation",
			"Report this issue to the development team",
		},
		Severity: diag.SeverityMedium,
	}
}
