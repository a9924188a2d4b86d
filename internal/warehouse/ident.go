package warehouse

import (
	"regexp"
	"strings"
)

var unquotedIdent = regexp.MustCompile(`^[A-Z_][A-Z0-9_$]*$`)

// reservedWords are Snowflake keywords that cannot be used as unquoted identifiers
var reservedWords = map[string]bool{
	"ACCOUNT": true, "ALL": true, "ALTER": true, "AND": true, "ANY": true, "AS": true,
	"BETWEEN": true, "BY": true, "CASE": true, "CAST": true, "CHECK": true, "COLUMN": true,
	"CONNECT": true, "CONNECTION": true, "CONSTRAINT": true, "CREATE": true, "CROSS": true,
	"CURRENT": true, "CURRENT_DATE": true, "CURRENT_TIME": true, "CURRENT_TIMESTAMP": true,
	"CURRENT_USER": true, "DATABASE": true, "DELETE": true, "DISTINCT": true, "DROP": true,
	"ELSE": true, "EXISTS": true, "FALSE": true, "FOLLOWING": true, "FOR": true, "FROM": true,
	"FULL": true, "GRANT": true, "GROUP": true, "GSCLUSTER": true, "HAVING": true, "ILIKE": true,
	"IN": true, "INCREMENT": true, "INNER": true, "INSERT": true, "INTERSECT": true, "INTO": true,
	"IS": true, "ISSUE": true, "JOIN": true, "LATERAL": true, "LEFT": true, "LIKE": true,
	"LOCALTIME": true, "LOCALTIMESTAMP": true, "MINUS": true, "NATURAL": true, "NOT": true,
	"NULL": true, "OF": true, "ON": true, "OR": true, "ORDER": true, "ORGANIZATION": true,
	"QUALIFY": true, "REGEXP": true, "REVOKE": true, "RIGHT": true, "RLIKE": true, "ROW": true,
	"ROWS": true, "SAMPLE": true, "SCHEMA": true, "SELECT": true, "SET": true, "SOME": true,
	"START": true, "TABLE": true, "TABLESAMPLE": true, "THEN": true, "TO": true, "TRIGGER": true,
	"TRUE": true, "TRY_CAST": true, "UNION": true, "UNIQUE": true, "UPDATE": true, "USING": true,
	"VALUES": true, "VIEW": true, "WHEN": true, "WHENEVER": true, "WHERE": true, "WITH": true,
}

// Ident upper-cases name and renders it as a Snowflake identifier. Names that
// are not plain identifiers, or are reserved words, are double-quoted.
func Ident(name string) string {
	upper := strings.ToUpper(name)
	if unquotedIdent.MatchString(upper) && !reservedWords[upper] {
		return upper
	}
	return `"` + strings.ReplaceAll(upper, `"`, `""`) + `"`
}

// SchemaName returns the per-domain schema identifier, e.g. BIRD_FINANCIAL
func SchemaName(domain string) string {
	return Ident("BIRD_" + domain)
}

// TableName joins the non-empty parts with "_" and renders the result as an identifier
func TableName(prefix, dbID, table string) string {
	var parts []string
	for _, p := range []string{prefix, dbID, table} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return Ident(strings.Join(parts, "_"))
}
