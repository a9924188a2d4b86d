package warehouse

import (
	"fmt"
	"strings"

	"github.com/tordrt/birdmap/internal/schema"
)

// ScriptOptions configures the schema creation script
type ScriptOptions struct {
	Database string
	Schema   string
	// TablePrefix is prepended to every generated table name
	TablePrefix string
	// MaxDatabasesPerDomain limits how many databases of a domain get tables; 0 means all
	MaxDatabasesPerDomain int
}

// Script accumulates a Snowflake script that creates one schema per domain
// and the tables of that domain's databases.
type Script struct {
	opts      ScriptOptions
	projector *Projector
	lines     []string
	tables    int
	errs      []*schema.Error
}

// NewScript starts a script with its header and USE statements
func NewScript(opts ScriptOptions) *Script {
	s := &Script{opts: opts, projector: NewProjector(opts.TablePrefix)}
	s.lines = append(s.lines,
		"-- BIRD Dataset Domain-Specific Schema Creation Script",
		"-- Generated by birdmap",
		"",
		fmt.Sprintf("USE DATABASE %s;", Ident(opts.Database)),
		fmt.Sprintf("USE SCHEMA %s;", Ident(opts.Schema)),
		"",
	)
	return s
}

// AddDomain appends the schema for a domain followed by the CREATE TABLE
// statements of its first MaxDatabasesPerDomain catalogs. Per-table failures
// are collected and do not stop the domain.
func (s *Script) AddDomain(domain, description string, catalogs []*schema.Catalog) {
	if len(catalogs) == 0 {
		return
	}

	schemaName := SchemaName(domain)
	s.lines = append(s.lines,
		fmt.Sprintf("-- %s (%d databases)", description, len(catalogs)),
		fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s;", schemaName),
		fmt.Sprintf("USE SCHEMA %s;", schemaName),
		"",
	)

	limit := len(catalogs)
	if s.opts.MaxDatabasesPerDomain > 0 && s.opts.MaxDatabasesPerDomain < limit {
		limit = s.opts.MaxDatabasesPerDomain
	}

	// Target names are unique per schema, so collisions are tracked per domain.
	targets := make(map[string]string)
	for _, c := range catalogs[:limit] {
		s.lines = append(s.lines, fmt.Sprintf("-- Tables for database: %s", c.DBID))

		stmts, errs := s.projector.Project(c)
		s.errs = append(s.errs, errs...)
		for _, stmt := range stmts {
			subject := stmt.DBID + "." + stmt.Table
			if prev, ok := targets[stmt.Target]; ok {
				s.errs = append(s.errs, schema.NewError(schema.KindDDL, subject,
					fmt.Errorf("target %s.%s already used by %s", schemaName, stmt.Target, prev)))
				continue
			}
			targets[stmt.Target] = subject
			s.lines = append(s.lines, stmt.SQL)
			s.tables++
		}

		s.lines = append(s.lines, "")
	}
}

// TableCount returns the number of CREATE TABLE statements written
func (s *Script) TableCount() int {
	return s.tables
}

// Errors returns the per-table failures collected so far
func (s *Script) Errors() []*schema.Error {
	return s.errs
}

// String returns the script text
func (s *Script) String() string {
	return strings.Join(s.lines, "\n")
}
