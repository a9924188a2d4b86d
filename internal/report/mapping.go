package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/tordrt/birdmap/internal/schema"
)

// Record is the per-database entry of the report
type Record struct {
	DBID             string   `json:"db_id"`
	Domain           string   `json:"domain"`
	DomainScore      int      `json:"domain_score"`
	TableCount       int      `json:"table_count"`
	TotalColumns     int      `json:"total_columns"`
	TotalForeignKeys int      `json:"total_foreign_keys"`
	TotalRows        int64    `json:"total_rows"`
	ComplexityScore  float64  `json:"complexity_score"`
	SizeMB           float64  `json:"size_mb"`
	Tables           []string `json:"tables"`
	IncompleteTables []string `json:"incomplete_tables,omitempty"`
}

// NewRecord builds a record from a catalog and its classification
func NewRecord(c *schema.Catalog, domain string, domainScore int) Record {
	tables, columns, fks, rows := c.Totals()

	var incomplete []string
	for _, t := range c.Tables {
		if t.Incomplete {
			incomplete = append(incomplete, t.Name)
		}
	}

	return Record{
		DBID:             c.DBID,
		Domain:           domain,
		DomainScore:      domainScore,
		TableCount:       tables,
		TotalColumns:     columns,
		TotalForeignKeys: fks,
		TotalRows:        rows,
		ComplexityScore:  Score(tables, columns, fks),
		SizeMB:           float64(c.SizeBytes) / (1024 * 1024),
		Tables:           c.TableNames(),
		IncompleteTables: incomplete,
	}
}

// DomainSummary aggregates the databases assigned to one domain
type DomainSummary struct {
	Count         int      `json:"count"`
	Databases     []string `json:"databases"`
	Description   string   `json:"description"`
	AvgComplexity float64  `json:"avg_complexity"`
	TotalTables   int      `json:"total_tables"`
	TotalRows     int64    `json:"total_rows"`
}

// Failure describes an input that could not be processed
type Failure struct {
	File    string `json:"file"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// NewFailure converts an error into a report failure entry
func NewFailure(file string, err error) Failure {
	f := Failure{File: file, Kind: string(schema.KindOf(err)), Message: err.Error()}
	var se *schema.Error
	if errors.As(err, &se) && se.Err != nil {
		f.Message = se.Err.Error()
	}
	return f
}

// Mapping is the full report of one run
type Mapping struct {
	RunID              string                   `json:"run_id"`
	GeneratedAt        time.Time                `json:"generated_at"`
	DomainSummary      map[string]DomainSummary `json:"domain_summary"`
	ComplexityAnalysis Analysis                 `json:"complexity_analysis"`
	TotalDatabases     int                      `json:"total_databases"`
	Succeeded          int                      `json:"succeeded"`
	Failed             int                      `json:"failed"`
	Failures           []Failure                `json:"failures"`
	DatabaseList       []Record                 `json:"database_list"`
}

// Builder accumulates records and failures in processing order
type Builder struct {
	records  []Record
	failures []Failure
}

// NewBuilder creates an empty builder
func NewBuilder() *Builder {
	return &Builder{}
}

// AddRecord appends a successfully analyzed database
func (b *Builder) AddRecord(r Record) {
	b.records = append(b.records, r)
}

// AddFailure appends a skipped input
func (b *Builder) AddFailure(f Failure) {
	b.failures = append(b.failures, f)
}

// Records returns the records added so far
func (b *Builder) Records() []Record {
	return b.records
}

// Build assembles the report. describe supplies domain descriptions.
func (b *Builder) Build(describe func(domain string) string) *Mapping {
	m := &Mapping{
		RunID:          uuid.NewString(),
		GeneratedAt:    time.Now().UTC(),
		DomainSummary:  make(map[string]DomainSummary),
		TotalDatabases: len(b.records),
		Succeeded:      len(b.records),
		Failed:         len(b.failures),
		Failures:       b.failures,
		DatabaseList:   b.records,
	}
	if m.Failures == nil {
		m.Failures = []Failure{}
	}
	if m.DatabaseList == nil {
		m.DatabaseList = []Record{}
	}

	scores := make([]Scored, 0, len(b.records))
	for _, r := range b.records {
		scores = append(scores, Scored{DBID: r.DBID, Score: r.ComplexityScore})

		s := m.DomainSummary[r.Domain]
		if s.Count == 0 && describe != nil {
			s.Description = describe(r.Domain)
		}
		s.Count++
		s.Databases = append(s.Databases, r.DBID)
		s.AvgComplexity += r.ComplexityScore
		s.TotalTables += r.TableCount
		s.TotalRows += r.TotalRows
		m.DomainSummary[r.Domain] = s
	}

	for domain, s := range m.DomainSummary {
		s.AvgComplexity /= float64(s.Count)
		m.DomainSummary[domain] = s
	}

	m.ComplexityAnalysis = Analyze(scores)
	return m
}

// Encode writes the report as indented JSON
func (m *Mapping) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

// WriteFile writes the report to path
func (m *Mapping) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}

	if err := m.Encode(f); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
