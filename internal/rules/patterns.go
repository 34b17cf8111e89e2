package rules

import "regexp"

// lineChar matches any character except a line terminator. RE2's "." still
// matches "\r" and U+2028/U+2029, which would leak into captures from CRLF
// driver output.
const lineChar = `[^\r\n\x{2028}\x{2029}]`

// Compiled patterns for the rule table. All patterns are RE2, so a match
// attempt is linear in the length of the input.
var (
	// Matches: "getaddrinfo ENOTFOUND db.example.com"
	// Captures: (1) host name
	hostNotFoundPattern = regexp.MustCompile(`(?i)getaddrinfo\s+ENOTFOUND\s+(` + lineChar + `+)`)

	// Matches: "connect ECONNREFUSED ... Connection refused"
	connectionRefusedPattern = regexp.MustCompile(`(?i)Connection\s+refused`)

	// Matches: `password authentication failed for user "alice"`
	// Captures: (1) user name
	authFailedPattern = regexp.MustCompile(`(?i)password authentication failed for user "(` + lineChar + `+)"`)

	// Matches: "permission denied for table orders"
	// Captures: (1) table name
	permissionDeniedPattern = regexp.MustCompile(`(?i)permission denied for table (\w+)`)

	// Matches: `syntax error at or near "SELEC"`
	// Captures: (1) offending token
	syntaxErrorPattern = regexp.MustCompile(`(?i)syntax error at or near "(` + lineChar + `+)"`)

	// Matches: `duplicate key value violates unique constraint "users_email_key"`
	// Captures: (1) constraint name
	uniqueViolationPattern = regexp.MustCompile(`(?i)violates unique constraint "(` + lineChar + `+)"`)

	// Matches: `insert or update on table "orders" violates foreign key constraint "orders_user_id_fkey"`
	// Captures: (1) constraint name
	foreignKeyViolationPattern = regexp.MustCompile(`(?i)violates foreign key constraint "(` + lineChar + `+)"`)

	// Any mention of a database keyword. Must come after the specific
	// database rules above.
	databaseKeywordPattern = regexp.MustCompile(`(?i)database|db|sql|query|table|column|postgres`)

	// Any mention of an API or network keyword.
	apiKeywordPattern = regexp.MustCompile(`(?i)fetch|api|endpoint|http|status code`)

	// Matches: "ENOENT: no such file or directory, open '/tmp/x'"
	// Captures: (1) operation and path
	fileNotFoundPattern = regexp.MustCompile(`(?i)ENOENT: no such file or directory, (` + lineChar + `+)`)

	// Matches everything up to the first line terminator.
	wildcardPattern = regexp.MustCompile(lineChar + `*`)
)
