// Package rules holds the ordered diagnostic rule table and the first-match
// resolver that runs raw error text against it.
package rules

import (
	"regexp"

	"github.com/errtriage/errtriage-go/pkg/errtriage/diag"
)

// Category groups rules by the kind of failure they recognize.
type Category string

// Rule categories.
const (
	CategoryDNS              Category = "dns"
	CategoryConnection       Category = "connection"
	CategoryAuthentication   Category = "authentication"
	CategoryPermission       Category = "permission"
	CategorySyntax           Category = "syntax"
	CategoryUniqueConstraint Category = "unique_constraint"
	CategoryForeignKey       Category = "foreign_key"
	CategoryDatabase         Category = "database"
	CategoryNetwork          Category = "network"
	CategoryFilesystem       Category = "filesystem"
	CategoryUnknown          Category = "unknown"
)

// Captures is the data a pattern extracted from one input.
// Group 0 is the whole match; groups 1..n are the positional sub-matches.
type Captures struct {
	input  string
	groups []string
}

// NewCaptures builds Captures from an input and its submatches, in the
// shape returned by regexp.FindStringSubmatch.
func NewCaptures(input string, groups []string) Captures {
	return Captures{input: input, groups: groups}
}

// Input returns the full text the pattern was run against.
func (c Captures) Input() string {
	return c.input
}

// Match returns the text matched by the whole pattern.
func (c Captures) Match() string {
	return c.Group(0)
}

// Group returns the i-th sub-match, or "" if the group does not exist.
func (c Captures) Group(i int) string {
	if i < 0 || i >= len(c.groups) {
		return ""
	}
	return c.groups[i]
}

// Len returns the number of groups including the whole match.
func (c Captures) Len() int {
	return len(c.groups)
}

// Rule pairs a pattern with the transform that builds a Record from its captures.
type Rule struct {
	ID       string
	Category Category
	Severity diag.Severity
	Pattern  *regexp.Regexp

	// Transform builds the message, solutions and links. The severity is
	// stamped by Apply from the rule, so transforms leave it unset.
	Transform func(Captures) diag.Record
}

// Find runs the rule's pattern against input.
func (r Rule) Find(input string) (Captures, bool) {
	if r.Pattern == nil {
		return Captures{}, false
	}
	m := r.Pattern.FindStringSubmatch(input)
	if m == nil {
		return Captures{}, false
	}
	return NewCaptures(input, m), true
}

// Apply runs the transform and enforces the Record invariants.
func (r Rule) Apply(c Captures) diag.Record {
	var rec diag.Record
	if r.Transform != nil {
		rec = r.Transform(c)
	}
	rec.Severity = r.Severity
	if !rec.Severity.Valid() {
		rec.Severity = diag.SeverityMedium
	}
	if rec.OriginalError == "" {
		rec.OriginalError = c.Input()
	}
	if rec.OriginalError == "" {
		rec.OriginalError = unknownOriginal
	}
	if rec.FriendlyMessage == "" {
		rec.FriendlyMessage = genericMessage
	}
	if rec.PossibleSolutions == nil {
		rec.PossibleSolutions = []string{}
	}
	return rec
}
