package formatter

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tordrt/birdmap/internal/schema"
)

func bankDatabase(dbID string) Database {
	return Database{
		Catalog: &schema.Catalog{
			DBID: dbID,
			Tables: []schema.Table{
				{
					Name: "customers",
					Columns: []schema.Column{
						{Name: "customer_id", DeclaredType: "INTEGER", IsPrimaryKey: true},
						{Name: "name", DeclaredType: "TEXT"},
					},
					RowCount: 3,
				},
				{
					Name: "accounts",
					Columns: []schema.Column{
						{Name: "account_id", DeclaredType: "INTEGER", IsPrimaryKey: true},
						{Name: "customer_id", DeclaredType: "INTEGER"},
						{Name: "balance", DeclaredType: "DECIMAL(15,2)"},
					},
					ForeignKeys: []schema.ForeignKey{
						{SourceColumn: "customer_id", TargetTable: "customers", TargetColumn: "customer_id"},
					},
					RowCount: 4,
				},
			},
		},
		Domain:      "financial",
		DomainScore: 15,
		Complexity:  9.0,
	}
}

func TestTextFormatter(t *testing.T) {
	var buf bytes.Buffer
	if err := NewTextFormatter(&buf).Format(bankDatabase("sample_financial")); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"DATABASE sample_financial",
		"domain: financial (score 15)",
		"tables: 2, columns: 5, foreign keys: 1, rows: 7",
		"TABLE customers (PK: customer_id) [3 rows]",
		"  name: TEXT → VARCHAR(16777216)",
		"  balance: DECIMAL(15,2) → DECIMAL(15,2)",
		"    customer_id → customers.customer_id",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestTextFormatterPartial(t *testing.T) {
	d := bankDatabase("city_bank")
	d.Catalog.Tables = append(d.Catalog.Tables, schema.Table{Name: "ledger", Incomplete: true})
	d.Catalog.Issues = []schema.TableIssue{{Table: "ledger", Stage: "columns", Err: errors.New("malformed")}}

	var buf bytes.Buffer
	if err := NewTextFormatter(&buf).Format(d); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "TABLE ledger (incomplete)") {
		t.Errorf("incomplete table not flagged:\n%s", out)
	}
	if !strings.Contains(out, "ledger (columns): malformed") {
		t.Errorf("issue not listed:\n%s", out)
	}
}

func TestMarkdownFormatter(t *testing.T) {
	var buf bytes.Buffer
	if err := NewMarkdownFormatter(&buf).FormatAll([]Database{bankDatabase("sample_financial")}); err != nil {
		t.Fatalf("FormatAll() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"# sample_financial",
		"- **Domain:** financial (score 15)",
		"## accounts",
		"Warehouse table `SAMPLE_FINANCIAL_ACCOUNTS`, 4 rows.",
		"| account_id | INTEGER | INTEGER | PK |",
		"| customer_id | INTEGER | INTEGER | FK |",
		"### Referenced by",
		"- accounts.customer_id → customer_id",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestMultiFileFormatter(t *testing.T) {
	tests := []struct {
		format   string
		ext      string
		overview string
	}{
		{FormatMarkdown, ".md", "## financial"},
		{FormatText, ".txt", "financial (2)"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "docs")
			groups := []DomainGroup{
				{Domain: "financial", Description: "Financial services and banking",
					Databases: []Database{bankDatabase("city_bank"), bankDatabase("hometown_bank")}},
				{Domain: "sports", Description: "Sports"},
			}

			if err := NewMultiFileFormatter(dir, tt.format).Format(groups); err != nil {
				t.Fatalf("Format() error = %v", err)
			}

			overview, err := os.ReadFile(filepath.Join(dir, "_overview"+tt.ext))
			if err != nil {
				t.Fatalf("overview not written: %v", err)
			}
			if !strings.Contains(string(overview), tt.overview) {
				t.Errorf("overview missing %q:\n%s", tt.overview, overview)
			}
			if strings.Contains(string(overview), "sports") {
				t.Errorf("empty domain listed in overview:\n%s", overview)
			}

			for _, id := range []string{"city_bank", "hometown_bank"} {
				if _, err := os.Stat(filepath.Join(dir, id+tt.ext)); err != nil {
					t.Errorf("database file for %s not written: %v", id, err)
				}
			}
		})
	}
}

func TestMultiFileFormatterErrors(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T, dir string)
		dbIDs   []string
		wantErr string
	}{
		{
			name:    "overview name taken by a database",
			dbIDs:   []string{"city_bank", "_overview"},
			wantErr: "collides with the overview file",
		},
		{
			name: "overview not writable",
			setup: func(t *testing.T, dir string) {
				t.Helper()
				if err := os.MkdirAll(filepath.Join(dir, "_overview.md"), 0755); err != nil {
					t.Fatal(err)
				}
			},
			dbIDs:   []string{"city_bank"},
			wantErr: "failed to write overview",
		},
		{
			name: "database file not writable",
			setup: func(t *testing.T, dir string) {
				t.Helper()
				if err := os.MkdirAll(filepath.Join(dir, "city_bank.md"), 0755); err != nil {
					t.Fatal(err)
				}
			},
			dbIDs:   []string{"city_bank"},
			wantErr: "failed to write file for city_bank",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "docs")
			if tt.setup != nil {
				tt.setup(t, dir)
			}
			var dbs []Database
			for _, id := range tt.dbIDs {
				dbs = append(dbs, bankDatabase(id))
			}
			groups := []DomainGroup{{Domain: "financial", Databases: dbs}}

			err := NewMultiFileFormatter(dir, FormatMarkdown).Format(groups)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Format() error = %v, want %q", err, tt.wantErr)
			}
			if tt.setup == nil {
				if _, err := os.Stat(filepath.Join(dir, "_overview.md")); !os.IsNotExist(err) {
					t.Errorf("overview written despite collision (stat err: %v)", err)
				}
			}
		})
	}
}
