// Package errtriage turns raw error text into structured diagnostic records.
//
// Operators and developers often see nothing but an opaque error string from
// a database driver, an HTTP client or the filesystem. This package matches
// that string against a fixed, ordered table of rules and returns a
// [Record] with a human-readable explanation, a [Severity] and a ranked list
// of possible solutions.
//
// # Basic Usage
//
//	rec := errtriage.Translate(`password authentication failed for user "alice"`)
//	fmt.Println(rec.FriendlyMessage)
//	// Authentication failed for database user "alice". The password might be incorrect.
//	for _, s := range rec.PossibleSolutions {
//	    fmt.Println(" -", s)
//	}
//
// Go errors can be passed directly; a nil error yields the "Unknown error" record:
//
//	if err := db.PingContext(ctx); err != nil {
//	    rec := errtriage.TranslateError(err)
//	    log.Printf("[%s] %s", rec.Severity, rec.FriendlyMessage)
//	}
//
// # Rule Order
//
// Rules are evaluated top to bottom and the first match wins. Specific
// patterns (a named constraint violation, a SQL syntax error) come before
// keyword catch-alls such as any mention of "database", and a wildcard rule
// at the end guarantees every input produces a record. Use [Explain] to see
// which rule matched, and [Rules] to list the catalogue.
//
// # Presentation
//
// [SeverityColorClass] maps a severity to a style token for rendering.
//
// # Concurrency
//
// All functions are safe for concurrent use. The rule table is built once
// and never modified, and patterns use Go's RE2 engine, so matching time is
// linear in the length of the input.
package errtriage
