package warehouse

import (
	"fmt"
	"strings"

	"github.com/tordrt/birdmap/internal/schema"
)

// Statement is one generated CREATE TABLE statement
type Statement struct {
	DBID   string
	Table  string
	Target string
	SQL    string
}

// Projector turns catalogs into CREATE TABLE statements
type Projector struct {
	TablePrefix string
}

// NewProjector creates a new projector; prefix may be empty
func NewProjector(prefix string) *Projector {
	return &Projector{TablePrefix: prefix}
}

// TargetName returns the warehouse table identifier for a source table
func (p *Projector) TargetName(dbID, table string) string {
	return TableName(p.TablePrefix, dbID, table)
}

// CreateTable renders a CREATE OR REPLACE TABLE statement for one table.
// Columns keep their source order; each primary key column gets its own
// PRIMARY KEY marker and no foreign key constraints are emitted.
func (p *Projector) CreateTable(dbID string, t schema.Table) (Statement, error) {
	target := p.TargetName(dbID, t.Name)
	if t.Incomplete {
		return Statement{}, fmt.Errorf("table %s was not fully introspected", t.Name)
	}
	if len(t.Columns) == 0 {
		return Statement{}, fmt.Errorf("table %s has no columns", t.Name)
	}

	seen := make(map[string]string, len(t.Columns))
	columnLines := make([]string, 0, len(t.Columns))
	for _, col := range t.Columns {
		ident := Ident(col.Name)
		if prev, ok := seen[ident]; ok {
			return Statement{}, fmt.Errorf("columns %q and %q both map to %s", prev, col.Name, ident)
		}
		seen[ident] = col.Name

		line := fmt.Sprintf("    %s %s", ident, MapType(col.DeclaredType))
		if col.IsPrimaryKey {
			line += " PRIMARY KEY"
		}
		columnLines = append(columnLines, line)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "CREATE OR REPLACE TABLE %s (\n", target)
	b.WriteString(strings.Join(columnLines, ",\n"))
	b.WriteString("\n);")

	return Statement{DBID: dbID, Table: t.Name, Target: target, SQL: b.String()}, nil
}

// Project renders every table of the catalog. Tables that cannot be rendered,
// or whose target name repeats an earlier one, are reported as ddl errors and
// skipped; the remaining tables are still returned.
func (p *Projector) Project(c *schema.Catalog) ([]Statement, []*schema.Error) {
	var stmts []Statement
	var errs []*schema.Error
	targets := make(map[string]string)

	for _, t := range c.Tables {
		subject := c.DBID + "." + t.Name

		stmt, err := p.CreateTable(c.DBID, t)
		if err != nil {
			errs = append(errs, schema.NewError(schema.KindDDL, subject, err))
			continue
		}
		if prev, ok := targets[stmt.Target]; ok {
			errs = append(errs, schema.NewError(schema.KindDDL, subject,
				fmt.Errorf("target %s already used by %s", stmt.Target, prev)))
			continue
		}
		targets[stmt.Target] = subject
		stmts = append(stmts, stmt)
	}

	return stmts, errs
}
