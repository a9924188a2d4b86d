package formatter

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/tordrt/birdmap/internal/warehouse"
)

const (
	FormatMarkdown = "markdown"
	FormatText     = "text"
)

// overviewName is the base name of the overview file; no database may use it
const overviewName = "_overview"

// MultiFileFormatter writes an overview and one file per database into a directory
type MultiFileFormatter struct {
	OutputDir    string
	OutputFormat string // "text" or "markdown"
}

// NewMultiFileFormatter creates a new multi-file formatter
func NewMultiFileFormatter(outputDir, format string) *MultiFileFormatter {
	return &MultiFileFormatter{
		OutputDir:    outputDir,
		OutputFormat: format,
	}
}

// Format writes the overview and the per-database files
func (f *MultiFileFormatter) Format(groups []DomainGroup) error {
	for _, g := range groups {
		for _, d := range g.Databases {
			if d.Catalog.DBID == overviewName {
				return fmt.Errorf("database id %q collides with the overview file", d.Catalog.DBID)
			}
		}
	}

	if err := os.MkdirAll(f.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := f.writeOverview(groups); err != nil {
		return fmt.Errorf("failed to write overview: %w", err)
	}

	for _, g := range groups {
		for _, d := range g.Databases {
			if err := f.writeDatabaseFile(d); err != nil {
				return fmt.Errorf("failed to write file for %s: %w", d.Catalog.DBID, err)
			}
		}
	}

	return nil
}

func (f *MultiFileFormatter) writeOverview(groups []DomainGroup) error {
	filename := filepath.Join(f.OutputDir, overviewName+f.getFileExtension())

	var buf bytes.Buffer
	if f.OutputFormat == FormatMarkdown {
		f.writeMarkdownOverview(&buf, groups)
	} else {
		f.writeTextOverview(&buf, groups)
	}
	return os.WriteFile(filename, buf.Bytes(), 0644)
}

func (f *MultiFileFormatter) writeMarkdownOverview(w io.Writer, groups []DomainGroup) {
	_, _ = fmt.Fprintf(w, "# Database Overview\n\n")
	_, _ = fmt.Fprintf(w, "Each database has a corresponding file: `<db_id>%s`\n\n", f.getFileExtension())

	for _, g := range groups {
		if len(g.Databases) == 0 {
			continue
		}
		_, _ = fmt.Fprintf(w, "## %s\n\n", g.Domain)
		if g.Description != "" {
			_, _ = fmt.Fprintf(w, "%s. Warehouse schema `%s`.\n\n", g.Description, warehouse.SchemaName(g.Domain))
		}
		for _, d := range g.Databases {
			tables, _, _, rows := d.Catalog.Totals()
			_, _ = fmt.Fprintf(w, "- **%s** (%d tables, %d rows, complexity %.1f)\n", d.Catalog.DBID, tables, rows, d.Complexity)
		}
		_, _ = fmt.Fprintln(w)
	}
}

func (f *MultiFileFormatter) writeTextOverview(w io.Writer, groups []DomainGroup) {
	_, _ = fmt.Fprintf(w, "DATABASE OVERVIEW\n")
	_, _ = fmt.Fprintf(w, "Each database has a file: <db_id>%s\n", f.getFileExtension())

	for _, g := range groups {
		if len(g.Databases) == 0 {
			continue
		}
		_, _ = fmt.Fprintf(w, "\n%s (%d)\n", g.Domain, len(g.Databases))
		for _, d := range g.Databases {
			tables, _, _, rows := d.Catalog.Totals()
			_, _ = fmt.Fprintf(w, "  %s tables=%d rows=%d complexity=%.1f\n", d.Catalog.DBID, tables, rows, d.Complexity)
		}
	}
}

func (f *MultiFileFormatter) writeDatabaseFile(d Database) error {
	filename := filepath.Join(f.OutputDir, d.Catalog.DBID+f.getFileExtension())

	var buf bytes.Buffer
	var err error
	if f.OutputFormat == FormatMarkdown {
		err = NewMarkdownFormatter(&buf).Format(d)
	} else {
		err = NewTextFormatter(&buf).Format(d)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(filename, buf.Bytes(), 0644)
}

func (f *MultiFileFormatter) getFileExtension() string {
	if f.OutputFormat == FormatMarkdown {
		return ".md"
	}
	return ".txt"
}
