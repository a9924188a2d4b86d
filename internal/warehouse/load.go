package warehouse

import (
	"fmt"
	"strings"

	"github.com/tordrt/birdmap/internal/schema"
)

// ColumnMapping pairs a source column with its warehouse column
type ColumnMapping struct {
	Position      int    `json:"column_position"`
	Source        string `json:"column_name"`
	Target        string `json:"target_column"`
	DeclaredType  string `json:"column_type"`
	TargetType    string `json:"target_type"`
	PrimaryKey    bool   `json:"is_primary_key"`
	ForeignKey    bool   `json:"is_foreign_key"`
	ForeignTable  string `json:"foreign_table,omitempty"`
	ForeignColumn string `json:"foreign_column,omitempty"`
}

// ColumnMappings returns one mapping per column in source order
func ColumnMappings(t schema.Table) []ColumnMapping {
	mappings := make([]ColumnMapping, 0, len(t.Columns))
	for i, col := range t.Columns {
		m := ColumnMapping{
			Position:     i,
			Source:       col.Name,
			Target:       Ident(col.Name),
			DeclaredType: col.DeclaredType,
			TargetType:   MapType(col.DeclaredType),
			PrimaryKey:   col.IsPrimaryKey,
		}
		if fk := t.ForeignKeyFor(col.Name); fk != nil {
			m.ForeignKey = true
			m.ForeignTable = fk.TargetTable
			m.ForeignColumn = fk.TargetColumn
		}
		mappings = append(mappings, m)
	}
	return mappings
}

// CopyInto returns a COPY INTO statement loading a staged CSV file with a
// header row into target. Columns are matched by position.
func CopyInto(target, stage, file string) string {
	if !strings.HasPrefix(stage, "@") {
		stage = "@" + stage
	}
	location := strings.TrimSuffix(stage, "/") + "/" + strings.TrimPrefix(file, "/")

	return fmt.Sprintf("COPY INTO %s\nFROM %s\n"+
		"FILE_FORMAT = (TYPE = CSV SKIP_HEADER = 1 FIELD_OPTIONALLY_ENCLOSED_BY = '\"' EMPTY_FIELD_AS_NULL = TRUE)\n"+
		"ON_ERROR = ABORT_STATEMENT;", target, location)
}
