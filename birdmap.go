// Package birdmap inspects a directory of SQLite databases, classifies each
// one into a business domain, scores its complexity and projects its tables
// into Snowflake DDL.
//
// # Quick Start
//
// Map every database in a directory and write the JSON report and the
// schema creation script:
//
//	result, err := birdmap.MapDirectory(ctx, "dev_databases", &birdmap.Options{Recursive: true})
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := result.WriteReport("bird_database_mapping.json"); err != nil {
//		log.Fatal(err)
//	}
//	ddlErrs, err := result.WriteSchemaScript("bird_schema.sql", birdmap.ScriptOptions{
//		Database:              "BIRD_DB",
//		Schema:                "PUBLIC",
//		MaxDatabasesPerDomain: 3,
//	})
//
// # Failure model
//
// Batch operations never stop at the first bad input. A file that is not a
// SQLite database, cannot be opened, or repeats an earlier db_id is recorded
// as a failure in the report. A table whose detail cannot be read stays in
// its catalog flagged as incomplete. A table that cannot be rendered as DDL
// is returned as a per-table error while the rest of the script is written.
package birdmap

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/tordrt/birdmap/internal/classify"
	"github.com/tordrt/birdmap/internal/console"
	"github.com/tordrt/birdmap/internal/db"
	"github.com/tordrt/birdmap/internal/formatter"
	"github.com/tordrt/birdmap/internal/report"
	"github.com/tordrt/birdmap/internal/schema"
	"github.com/tordrt/birdmap/internal/warehouse"
)

// ScriptOptions configures the schema creation script
type ScriptOptions = warehouse.ScriptOptions

// Options configures analysis.
//
// All fields are optional:
//   - Taxonomy: nil uses the built-in domain taxonomy
//   - Logger: nil discards progress output
//   - Recursive: false only looks at files directly inside the directory
type Options struct {
	Taxonomy  *classify.Taxonomy
	Logger    *console.Logger
	Recursive bool
}

func (o *Options) taxonomy() *classify.Taxonomy {
	if o == nil || o.Taxonomy == nil {
		return classify.DefaultTaxonomy()
	}
	return o.Taxonomy
}

func (o *Options) logger() *console.Logger {
	if o == nil {
		return nil
	}
	return o.Logger
}

// Database is one analyzed database
type Database struct {
	Catalog        *schema.Catalog
	Classification classify.Classification
	Complexity     float64
}

// Record returns the report entry for the database
func (d *Database) Record() report.Record {
	return report.NewRecord(d.Catalog, d.Classification.Domain, d.Classification.Score)
}

func (d *Database) view() formatter.Database {
	return formatter.Database{
		Catalog:     d.Catalog,
		Domain:      d.Classification.Domain,
		DomainScore: d.Classification.Score,
		Complexity:  d.Complexity,
	}
}

// AnalyzeFile extracts, classifies and scores a single database file.
// Errors are *schema.Error values; a catalog with incomplete tables is
// still a success.
func AnalyzeFile(ctx context.Context, path string, opts *Options) (*Database, error) {
	catalog, err := db.ExtractFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return analyzeCatalog(catalog, opts.taxonomy()), nil
}

func analyzeCatalog(c *schema.Catalog, t *classify.Taxonomy) *Database {
	return &Database{
		Catalog:        c,
		Classification: classify.ClassifyCatalog(t, c),
		Complexity:     report.CatalogScore(c),
	}
}

// Result is the outcome of a batch run
type Result struct {
	Databases []*Database
	Failures  []report.Failure
	Tally     *classify.Tally

	taxonomy *classify.Taxonomy
	byID     map[string]*Database
}

// MapDirectory analyzes every database file found in dir. Only a missing or
// unreadable directory is an error; per-file failures are collected in the
// result.
func MapDirectory(ctx context.Context, dir string, opts *Options) (*Result, error) {
	recursive := opts != nil && opts.Recursive
	paths, err := db.FindDatabases(dir, recursive)
	if err != nil {
		return nil, err
	}

	opts.logger().Info("Found %d database files in %s", len(paths), dir)
	return AnalyzeFiles(ctx, paths, opts), nil
}

// AnalyzeFiles analyzes the given files one at a time, in order
func AnalyzeFiles(ctx context.Context, paths []string, opts *Options) *Result {
	log := opts.logger()
	t := opts.taxonomy()

	r := &Result{
		Tally:    classify.NewTally(t),
		taxonomy: t,
		byID:     make(map[string]*Database),
	}

	for i, path := range paths {
		log.Info("[%d/%d] Analyzing %s", i+1, len(paths), path)

		catalog, err := db.ExtractFile(ctx, path)
		if err != nil {
			log.Error("Skipping %s: %v", path, err)
			r.Failures = append(r.Failures, report.NewFailure(path, err))
			continue
		}

		d := analyzeCatalog(catalog, t)
		id := d.Catalog.DBID
		if prev, ok := r.byID[id]; ok {
			err := schema.NewError(schema.KindDuplicateID, path,
				fmt.Errorf("db_id %q already read from %s", id, prev.Catalog.Path))
			log.Error("Skipping %s: %v", path, err)
			r.Failures = append(r.Failures, report.NewFailure(path, err))
			continue
		}

		for _, issue := range d.Catalog.Issues {
			log.Warn("%v", schema.NewError(schema.KindIntrospect, id+"."+issue.Table,
				fmt.Errorf("%s: %w", issue.Stage, issue.Err)))
		}

		r.byID[id] = d
		r.Databases = append(r.Databases, d)
		r.Tally.Add(d.Classification.Domain, id)
	}

	log.Success("Analyzed %d databases, %d failed", len(r.Databases), len(r.Failures))
	return r
}

// Database returns the analyzed database with the given id, or nil
func (r *Result) Database(dbID string) *Database {
	return r.byID[dbID]
}

// Report builds the JSON mapping report
func (r *Result) Report() *report.Mapping {
	b := report.NewBuilder()
	for _, d := range r.Databases {
		b.AddRecord(d.Record())
	}
	for _, f := range r.Failures {
		b.AddFailure(f)
	}
	return b.Build(r.description)
}

// WriteReport writes the JSON mapping report to path
func (r *Result) WriteReport(path string) error {
	return r.Report().WriteFile(path)
}

// SchemaScript builds the schema creation script, one schema per domain in
// taxonomy order with the fallback domain last.
func (r *Result) SchemaScript(opts ScriptOptions) *warehouse.Script {
	s := warehouse.NewScript(opts)
	for _, domain := range r.Tally.Domains() {
		s.AddDomain(domain, r.description(domain), r.catalogs(domain))
	}
	return s
}

// WriteSchemaScript writes the schema creation script to path and returns
// the tables that could not be rendered.
func (r *Result) WriteSchemaScript(path string, opts ScriptOptions) ([]*schema.Error, error) {
	s := r.SchemaScript(opts)
	if err := os.WriteFile(path, []byte(s.String()+"\n"), 0644); err != nil {
		return nil, fmt.Errorf("failed to write schema script: %w", err)
	}
	return s.Errors(), nil
}

// Groups returns the analyzed databases grouped by domain
func (r *Result) Groups() []formatter.DomainGroup {
	var groups []formatter.DomainGroup
	for _, domain := range r.Tally.Domains() {
		g := formatter.DomainGroup{Domain: domain, Description: r.description(domain)}
		for _, id := range r.Tally.Databases(domain) {
			g.Databases = append(g.Databases, r.byID[id].view())
		}
		groups = append(groups, g)
	}
	return groups
}

// WriteDocs writes an overview and one file per database into dir
func (r *Result) WriteDocs(dir, format string) error {
	return formatter.NewMultiFileFormatter(dir, format).Format(r.Groups())
}

func (r *Result) catalogs(domain string) []*schema.Catalog {
	var out []*schema.Catalog
	for _, id := range r.Tally.Databases(domain) {
		out = append(out, r.byID[id].Catalog)
	}
	return out
}

func (r *Result) description(domain string) string {
	return r.taxonomy.Description(domain)
}

// FormatDatabases renders databases as "text" or "markdown"
func FormatDatabases(w io.Writer, format string, dbs ...*Database) error {
	views := make([]formatter.Database, len(dbs))
	for i, d := range dbs {
		views[i] = d.view()
	}

	switch format {
	case formatter.FormatText:
		return formatter.NewTextFormatter(w).FormatAll(views)
	case formatter.FormatMarkdown:
		return formatter.NewMarkdownFormatter(w).FormatAll(views)
	default:
		return fmt.Errorf("invalid format: %s (must be 'text' or 'markdown')", format)
	}
}

// CreateTables renders CREATE TABLE statements for one database
func CreateTables(d *Database, tablePrefix string) ([]warehouse.Statement, []*schema.Error) {
	return warehouse.NewProjector(tablePrefix).Project(d.Catalog)
}
