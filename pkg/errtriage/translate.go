package errtriage

import (
	"github.com/errtriage/errtriage-go/internal/rules"
	"github.com/errtriage/errtriage-go/pkg/errtriage/diag"
)

// Record is the structured diagnosis returned by Translate.
type Record = diag.Record

// Translate converts a raw error message into a Record.
//
// Translate never fails. An empty message yields the fixed
// "An unknown error occurred." record with medium severity; any other
// message is resolved by the first matching rule.
//
// Example:
//
//	rec := errtriage.Translate("getaddrinfo ENOTFOUND db.example.com")
//	fmt.Println(rec.Severity) // high
func Translate(message string) Record {
	return rules.Resolve(message).Record
}

// TranslateError is Translate for Go errors. A nil err is treated as an
// absent message.
func TranslateError(err error) Record {
	if err == nil {
		return Translate("")
	}
	return Translate(err.Error())
}

// Explanation is a Record together with the rule that produced it.
type Explanation struct {
	Record Record `json:"record" yaml:"record"`

	// RuleID is the matching rule's ID. It is empty for empty input and
	// "unmatched" if no rule matched.
	RuleID   string `json:"rule" yaml:"rule"`
	Category string `json:"category" yaml:"category"`

	// Captures holds the positional sub-matches of the rule's pattern,
	// excluding the whole match.
	Captures []string `json:"captures,omitempty" yaml:"captures,omitempty"`
}

// Explain resolves message like Translate and also reports which rule
// matched and what it captured.
func Explain(message string) Explanation {
	res := rules.Resolve(message)

	var captures []string
	for i := 1; i < res.Captures.Len(); i++ {
		captures = append(captures, res.Captures.Group(i))
	}

	return Explanation{
		Record:   res.Record,
		RuleID:   res.RuleID,
		Category: string(res.Category),
		Captures: captures,
	}
}
