// Package warehouse projects extracted catalogs into Snowflake DDL: column type
// mapping, identifier rendering, CREATE TABLE statements, the domain schema
// script and bulk-load instructions.
package warehouse

import (
	"regexp"
	"strconv"
	"strings"
)

// Snowflake type names produced by MapType
const (
	TypeText      = "VARCHAR(16777216)"
	TypeInteger   = "INTEGER"
	TypeFloat     = "FLOAT"
	TypeDecimal   = "DECIMAL(15,2)"
	TypeNumeric   = "NUMERIC(38,2)"
	TypeVariant   = "VARIANT"
	TypeBoolean   = "BOOLEAN"
	TypeTimestamp = "TIMESTAMP"
	TypeDate      = "DATE"
)

// Limits of the parameterized types Snowflake accepts as written
const (
	maxVarcharLength    = 16777216
	maxNumericPrecision = 38
)

type typeMapping struct {
	keyword string
	target  string
}

// typeMappings is checked in order; the first keyword contained in the
// upper-cased declared type wins.
var typeMappings = []typeMapping{
	{"INTEGER", TypeInteger},
	{"INT", TypeInteger},
	{"CHAR", TypeText},
	{"CLOB", TypeText},
	{"TEXT", TypeText},
	{"BLOB", TypeVariant},
	{"REAL", TypeFloat},
	{"FLOA", TypeFloat},
	{"DOUB", TypeFloat},
	{"DECIMAL", TypeDecimal},
	{"NUMERIC", TypeNumeric},
	{"NUMBER", TypeNumeric},
	{"BOOL", TypeBoolean},
	{"DATETIME", TypeTimestamp},
	{"TIMESTAMP", TypeTimestamp},
	{"DATE", TypeDate},
}

var (
	sizedTextType    = regexp.MustCompile(`(?i)^(VARCHAR|NVARCHAR|CHAR|CHARACTER)\s*\(\s*(\d+)\s*\)$`)
	sizedNumericType = regexp.MustCompile(`(?i)^(DECIMAL|NUMERIC|NUMBER)\s*\(\s*(\d+)\s*(?:,\s*(\d+)\s*)?\)$`)
)

// MapType converts a SQLite declared type to a Snowflake column type. It never
// fails: parameterized text and numeric types Snowflake accepts are returned
// as written, known keywords map through typeMappings, anything else becomes
// TypeText.
func MapType(declared string) string {
	trimmed := strings.TrimSpace(declared)
	if passThrough(trimmed) {
		return trimmed
	}

	upper := strings.ToUpper(trimmed)
	for _, m := range typeMappings {
		if strings.Contains(upper, m.keyword) {
			return m.target
		}
	}

	return TypeText
}

// passThrough reports whether a parameterized type is valid in Snowflake as is
func passThrough(declared string) bool {
	if m := sizedTextType.FindStringSubmatch(declared); m != nil {
		n, err := strconv.Atoi(m[2])
		return err == nil && n >= 1 && n <= maxVarcharLength
	}

	if m := sizedNumericType.FindStringSubmatch(declared); m != nil {
		precision, err := strconv.Atoi(m[2])
		if err != nil || precision < 1 || precision > maxNumericPrecision {
			return false
		}
		if m[3] == "" {
			return true
		}
		scale, err := strconv.Atoi(m[3])
		return err == nil && scale <= precision
	}

	return false
}
