package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/tordrt/birdmap/internal/schema"
	"github.com/tordrt/birdmap/internal/warehouse"
)

// MarkdownFormatter formats databases as markdown
type MarkdownFormatter struct {
	writer io.Writer
}

// NewMarkdownFormatter creates a new markdown formatter
func NewMarkdownFormatter(w io.Writer) *MarkdownFormatter {
	return &MarkdownFormatter{writer: w}
}

// Format writes one database in markdown format
func (f *MarkdownFormatter) Format(d Database) error {
	c := d.Catalog
	tables, columns, fks, rows := c.Totals()

	_, _ = fmt.Fprintf(f.writer, "# %s\n\n", c.DBID)
	_, _ = fmt.Fprintf(f.writer, "- **Domain:** %s (score %d)\n", d.Domain, d.DomainScore)
	_, _ = fmt.Fprintf(f.writer, "- **Tables:** %d\n", tables)
	_, _ = fmt.Fprintf(f.writer, "- **Columns:** %d\n", columns)
	_, _ = fmt.Fprintf(f.writer, "- **Foreign keys:** %d\n", fks)
	_, _ = fmt.Fprintf(f.writer, "- **Rows:** %d\n", rows)
	_, _ = fmt.Fprintf(f.writer, "- **Complexity:** %.1f\n\n", d.Complexity)

	for _, table := range c.Tables {
		f.formatTable(d, table)
	}

	if c.Partial() {
		_, _ = fmt.Fprintln(f.writer, "## Issues")
		_, _ = fmt.Fprintln(f.writer)
		for _, issue := range c.Issues {
			_, _ = fmt.Fprintf(f.writer, "- `%s` (%s): %v\n", issue.Table, issue.Stage, issue.Err)
		}
		_, _ = fmt.Fprintln(f.writer)
	}

	return nil
}

// FormatAll writes several databases one after another
func (f *MarkdownFormatter) FormatAll(dbs []Database) error {
	for _, d := range dbs {
		if err := f.Format(d); err != nil {
			return err
		}
	}
	return nil
}

func (f *MarkdownFormatter) formatTable(d Database, table schema.Table) {
	target := warehouse.TableName("", d.Catalog.DBID, table.Name)

	if table.Incomplete {
		_, _ = fmt.Fprintf(f.writer, "## %s\n\n", table.Name)
		_, _ = fmt.Fprintln(f.writer, "_Introspection failed; no column detail available._")
		_, _ = fmt.Fprintln(f.writer)
		return
	}

	_, _ = fmt.Fprintf(f.writer, "## %s\n\n", table.Name)
	_, _ = fmt.Fprintf(f.writer, "Warehouse table `%s`, %d rows.\n\n", target, table.RowCount)

	_, _ = fmt.Fprintln(f.writer, "### Columns")
	_, _ = fmt.Fprintln(f.writer)
	_, _ = fmt.Fprintln(f.writer, "| Column | Declared type | Warehouse type | Key |")
	_, _ = fmt.Fprintln(f.writer, "|---|---|---|---|")
	for _, m := range warehouse.ColumnMappings(table) {
		_, _ = fmt.Fprintf(f.writer, "| %s | %s | %s | %s |\n",
			escapeCell(m.Source),
			escapeCell(m.DeclaredType),
			m.TargetType,
			keyMarker(m))
	}
	_, _ = fmt.Fprintln(f.writer)

	if len(table.ForeignKeys) > 0 {
		_, _ = fmt.Fprintln(f.writer, "### References")
		_, _ = fmt.Fprintln(f.writer)
		for _, fk := range table.ForeignKeys {
			_, _ = fmt.Fprintf(f.writer, "- %s → %s.%s\n", fk.SourceColumn, fk.TargetTable, fk.TargetColumn)
		}
		_, _ = fmt.Fprintln(f.writer)
	}

	if incoming := findIncomingRelations(table.Name, d.Catalog); len(incoming) > 0 {
		_, _ = fmt.Fprintln(f.writer, "### Referenced by")
		_, _ = fmt.Fprintln(f.writer)
		for _, rel := range incoming {
			_, _ = fmt.Fprintf(f.writer, "- %s.%s → %s\n", rel.SourceTable, rel.SourceColumn, rel.TargetColumn)
		}
		_, _ = fmt.Fprintln(f.writer)
	}
}

func keyMarker(m warehouse.ColumnMapping) string {
	var keys []string
	if m.PrimaryKey {
		keys = append(keys, "PK")
	}
	if m.ForeignKey {
		keys = append(keys, "FK")
	}
	return strings.Join(keys, ", ")
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
