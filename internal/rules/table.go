package rules

import (
	"fmt"
	"regexp"

	"github.com/errtriage/errtriage-go/pkg/errtriage/diag"
)

const (
	postgresConstraintsDoc = "https://www.postgresql.org/docs/current/ddl-constraints.html"

	genericMessage  = "An error occurred."
	unknownOriginal = "Unknown error"
)

// table is the rule catalogue in evaluation order. The first matching rule
// wins, so specific patterns come first, keyword catch-alls after them and
// the wildcard last. It is never modified after init.
var table = []Rule{
	{
		ID:       "db_host_not_found",
		Category: CategoryDNS,
		Severity: diag.SeverityHigh,
		Pattern:  hostNotFoundPattern,
		Transform: func(c Captures) diag.Record {
			return diag.Record{
				OriginalError:   c.Match(),
				FriendlyMessage: fmt.Sprintf(`Cannot find the database host "%s". The database server might be down or the connection string might be incorrect.`, c.Group(1)),
				PossibleSolutions: []string{
					"Check if the database server is running",
					"Verify the database connection string",
					"Make sure your network can reach the database server",
					"Check for typos in the host name",
				},
			}
		},
	},
	{
		ID:       "connection_refused",
		Category: CategoryConnection,
		Severity: diag.SeverityHigh,
		Pattern:  connectionRefusedPattern,
		Transform: func(Captures) diag.Record {
			return diag.Record{
				OriginalError:   "Connection refused",
				FriendlyMessage: "The database server is refusing connections.",
				PossibleSolutions: []string{
					"Check if the database server is running",
					"Verify that the server is configured to accept connections on the specified port",
					"Ensure firewall settings allow connections to the database port",
					"Confirm that the maximum number of database connections hasn't been reached",
				},
			}
		},
	},
	{
		ID:       "auth_failed",
		Category: CategoryAuthentication,
		Severity: diag.SeverityHigh,
		Pattern:  authFailedPattern,
		Transform: func(c Captures) diag.Record {
			return diag.Record{
				OriginalError:   c.Match(),
				FriendlyMessage: fmt.Sprintf(`Authentication failed for database user "%s". The password might be incorrect.`, c.Group(1)),
				PossibleSolutions: []string{
					"Check that you're using the correct password",
					"Verify that the user has permission to access the database",
					"Make sure the user hasn't been locked out due to too many failed attempts",
				},
			}
		},
	},
	{
		ID:       "permission_denied",
		Category: CategoryPermission,
		Severity: diag.SeverityMedium,
		Pattern:  permissionDeniedPattern,
		Transform: func(c Captures) diag.Record {
			return diag.Record{
				OriginalError:   c.Match(),
				FriendlyMessage: fmt.Sprintf(`You don't have permission to access the table "%s".`, c.Group(1)),
				PossibleSolutions: []string{
					"Check that the database user has proper permissions",
					`Run "GRANT" statements to give the user access to the table`,
					"Consider connecting with a different user who has the required permissions",
				},
			}
		},
	},
	{
		ID:       "sql_syntax",
		Category: CategorySyntax,
		Severity: diag.SeverityMedium,
		Pattern:  syntaxErrorPattern,
		Transform: func(c Captures) diag.Record {
			return diag.Record{
				OriginalError:   c.Match(),
				FriendlyMessage: fmt.Sprintf(`There's a SQL syntax error near "%s".`, c.Group(1)),
				PossibleSolutions: []string{
					"Check your SQL query for syntax errors",
					"Make sure all keywords, table names, and field names are spelled correctly",
					"Verify that you're using the correct SQL dialect for your database",
				},
			}
		},
	},
	{
		ID:       "unique_violation",
		Category: CategoryUniqueConstraint,
		Severity: diag.SeverityMedium,
		Pattern:  uniqueViolationPattern,
		Transform: func(c Captures) diag.Record {
			return diag.Record{
				OriginalError:   c.Match(),
				FriendlyMessage: "This operation would create a duplicate value for a unique field.",
				PossibleSolutions: []string{
					"Check if the record already exists before inserting",
					"Update the existing record instead of creating a new one",
					"Use a different value for the unique field",
				},
				DocumentationLinks: []string{postgresConstraintsDoc},
			}
		},
	},
	{
		ID:       "foreign_key_violation",
		Category: CategoryForeignKey,
		Severity: diag.SeverityMedium,
		Pattern:  foreignKeyViolationPattern,
		Transform: func(c Captures) diag.Record {
			return diag.Record{
				OriginalError:   c.Match(),
				FriendlyMessage: "This operation references a record that doesn't exist in another table.",
				PossibleSolutions: []string{
					"Create the referenced record first",
					"Check if you're using the correct foreign key value",
					"Make sure the referenced record hasn't been deleted",
				},
				DocumentationLinks: []string{postgresConstraintsDoc},
			}
		},
	},
	{
		ID:       "database_generic",
		Category: CategoryDatabase,
		Severity: diag.SeverityMedium,
		Pattern:  databaseKeywordPattern,
		Transform: func(c Captures) diag.Record {
			return diag.Record{
				OriginalError:   c.Match(),
				FriendlyMessage: "There was an error with the database operation.",
				PossibleSolutions: []string{
					"Check the database connection",
					"Verify that the database structure matches your code expectations",
					"Look for syntax errors in your query",
				},
			}
		},
	},
	{
		ID:       "api_generic",
		Category: CategoryNetwork,
		Severity: diag.SeverityMedium,
		Pattern:  apiKeywordPattern,
		Transform: func(Captures) diag.Record {
			return diag.Record{
				OriginalError:   "API Error",
				FriendlyMessage: "There was an error communicating with an API or web service.",
				PossibleSolutions: []string{
					"Check that the API endpoint is correct",
					"Verify that your API key or authentication is valid",
					"Ensure the API service is online and functioning",
				},
			}
		},
	},
	{
		ID:       "file_not_found",
		Category: CategoryFilesystem,
		Severity: diag.SeverityMedium,
		Pattern:  fileNotFoundPattern,
		Transform: func(c Captures) diag.Record {
			return diag.Record{
				OriginalError:   c.Match(),
				FriendlyMessage: fmt.Sprintf(`The file or directory "%s" doesn't exist.`, c.Group(1)),
				PossibleSolutions: []string{
					"Check if the file path is correct",
					"Make sure the file hasn't been deleted",
					"Verify file permissions",
				},
			}
		},
	},
	{
		ID:       "fallback",
		Category: CategoryUnknown,
		Severity: diag.SeverityLow,
		Pattern:  wildcardPattern,
		Transform: func(c Captures) diag.Record {
			// The wildcard stops at the first newline and may match nothing.
			original := c.Match()
			if original == "" {
				original = c.Input()
			}
			return diag.Record{
				OriginalError:   original,
				FriendlyMessage: genericMessage,
				PossibleSolutions: []string{
					"Check application logs for more details",
					"Try restarting the application",
					"Look for recent code changes that might have caused this issue",
				},
			}
		},
	},
}

// Table returns a copy of the rule catalogue in evaluation order. Each
// copy has its own compiled Pattern, so calling a mutating method such as
// Longest on it does not affect Resolve.
func Table() []Rule {
	out := make([]Rule, len(table))
	copy(out, table)
	for i := range out {
		if out[i].Pattern != nil {
			out[i].Pattern = regexp.MustCompile(out[i].Pattern.String())
		}
	}
	return out
}
