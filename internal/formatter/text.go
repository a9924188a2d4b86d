package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/tordrt/birdmap/internal/schema"
	"github.com/tordrt/birdmap/internal/warehouse"
)

// TextFormatter formats databases as compact text
type TextFormatter struct {
	writer io.Writer
}

// NewTextFormatter creates a new text formatter
func NewTextFormatter(w io.Writer) *TextFormatter {
	return &TextFormatter{writer: w}
}

// Format writes one database in compact text format
func (f *TextFormatter) Format(d Database) error {
	c := d.Catalog
	tables, columns, fks, rows := c.Totals()

	_, _ = fmt.Fprintf(f.writer, "DATABASE %s\n", c.DBID)
	_, _ = fmt.Fprintf(f.writer, "  domain: %s (score %d)\n", d.Domain, d.DomainScore)
	_, _ = fmt.Fprintf(f.writer, "  tables: %d, columns: %d, foreign keys: %d, rows: %d\n", tables, columns, fks, rows)
	_, _ = fmt.Fprintf(f.writer, "  complexity: %.1f\n", d.Complexity)

	for _, table := range c.Tables {
		_, _ = fmt.Fprintln(f.writer)
		f.formatTable(table)
	}

	if c.Partial() {
		_, _ = fmt.Fprintln(f.writer)
		_, _ = fmt.Fprintln(f.writer, "ISSUES:")
		for _, issue := range c.Issues {
			_, _ = fmt.Fprintf(f.writer, "  %s (%s): %v\n", issue.Table, issue.Stage, issue.Err)
		}
	}

	return nil
}

// FormatAll writes several databases separated by blank lines
func (f *TextFormatter) FormatAll(dbs []Database) error {
	for i, d := range dbs {
		if i > 0 {
			_, _ = fmt.Fprintln(f.writer)
		}
		if err := f.Format(d); err != nil {
			return err
		}
	}
	return nil
}

func (f *TextFormatter) formatTable(table schema.Table) {
	if table.Incomplete {
		_, _ = fmt.Fprintf(f.writer, "TABLE %s (incomplete)\n", table.Name)
		return
	}

	// Table header with primary key
	pkStr := ""
	if pk := table.PrimaryKey(); len(pk) > 0 {
		pkStr = fmt.Sprintf(" (PK: %s)", strings.Join(pk, ", "))
	}
	_, _ = fmt.Fprintf(f.writer, "TABLE %s%s [%d rows]\n", table.Name, pkStr, table.RowCount)

	for _, col := range table.Columns {
		_, _ = fmt.Fprintf(f.writer, "  %s\n", formatColumn(col))
	}

	if len(table.ForeignKeys) > 0 {
		_, _ = fmt.Fprintln(f.writer)
		_, _ = fmt.Fprintln(f.writer, "  RELATIONS:")
		for _, fk := range table.ForeignKeys {
			_, _ = fmt.Fprintf(f.writer, "    %s → %s.%s\n", fk.SourceColumn, fk.TargetTable, fk.TargetColumn)
		}
	}
}

func formatColumn(col schema.Column) string {
	declared := col.DeclaredType
	if declared == "" {
		declared = "(none)"
	}

	parts := []string{col.Name + ":", declared, "→", warehouse.MapType(col.DeclaredType)}
	if col.IsPrimaryKey {
		parts = append(parts, "PK")
	}

	return strings.Join(parts, " ")
}
