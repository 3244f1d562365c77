package filter

import (
	"log/slog"
	"strings"

	"github.com/hugr-lab/pushdown-go/expressions"
)

// Encoder converts V2 predicates to SQL strings.
// Implementations handle dialect-specific syntax (DuckDB, PostgreSQL, etc.).
type Encoder interface {
	// Encode converts a single expression to SQL.
	// Returns empty string if expression is unsupported.
	Encode(expr expressions.Expression) string

	// EncodeFilters converts predicates to a WHERE clause body.
	// Returns the condition portion without "WHERE" keyword.
	// Returns empty string if no predicates can be encoded.
	EncodeFilters(preds []expressions.Predicate) string
}

// EncoderOptions configures encoding behavior.
type EncoderOptions struct {
	// ColumnMapping maps column paths (dotted, as produced by
	// identifier.Join) to target column names.
	// Columns not in the map use their original names.
	ColumnMapping map[string]string

	// ColumnExpressions maps column paths to SQL expressions.
	// Takes precedence over ColumnMapping.
	// Use for computed columns or complex transformations.
	ColumnExpressions map[string]string

	// Logger receives a debug record for every node that cannot be encoded.
	// OPTIONAL: slog.Default() is used if nil.
	Logger *slog.Logger
}

// escapeString escapes single quotes in a string value for SQL.
func escapeString(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// quoteLiteral returns a SQL string literal with proper escaping.
func quoteLiteral(s string) string {
	return "'" + escapeString(s) + "'"
}

// quoteIdentifier returns a quoted identifier if needed.
// DuckDB uses double quotes for identifiers.
func quoteIdentifier(name string) string {
	if needsQuoting(name) {
		return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
	}
	return name
}

// needsQuoting returns true if the identifier is not a plain lower-risk name.
func needsQuoting(name string) bool {
	if len(name) == 0 {
		return true
	}

	c := name[0]
	if !isLetter(c) && c != '_' {
		return true
	}
	for i := 1; i < len(name); i++ {
		c = name[i]
		if !isLetter(c) && !isDigit(c) && c != '_' {
			return true
		}
	}

	// Check for reserved words (simplified list)
	switch strings.ToUpper(name) {
	case "SELECT", "FROM", "WHERE", "AND", "OR", "NOT", "NULL", "TRUE", "FALSE",
		"IN", "IS", "LIKE", "BETWEEN", "EXISTS", "CASE", "WHEN", "THEN", "ELSE", "END",
		"ORDER", "BY", "GROUP", "HAVING", "LIMIT", "OFFSET", "UNION", "ALL", "DISTINCT",
		"AS", "ON", "JOIN", "TABLE", "CAST", "INTERVAL", "DATE", "TIME", "TIMESTAMP",
		"DEFAULT", "CHECK", "PRIMARY", "KEY", "REFERENCES", "ASC", "DESC",
		"INNER", "OUTER", "LEFT", "RIGHT", "FULL", "CROSS", "USING", "WITH", "INTO", "CREATE":
		return true
	}
	return false
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
