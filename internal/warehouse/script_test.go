package warehouse

import (
	"strings"
	"testing"

	"github.com/tordrt/birdmap/internal/schema"
)

func TestScriptLayout(t *testing.T) {
	s := NewScript(ScriptOptions{Database: "BIRD_DB", Schema: "PUBLIC", MaxDatabasesPerDomain: 3})
	s.AddDomain("financial", "Financial services and banking", []*schema.Catalog{bankCatalog("city_bank")})
	out := s.String()

	ordered := []string{
		"USE DATABASE BIRD_DB;",
		"USE SCHEMA PUBLIC;",
		"-- Financial services and banking (1 databases)",
		"CREATE SCHEMA IF NOT EXISTS BIRD_FINANCIAL;",
		"USE SCHEMA BIRD_FINANCIAL;",
		"-- Tables for database: city_bank",
		"CREATE OR REPLACE TABLE CITY_BANK_CUSTOMERS (",
		"CREATE OR REPLACE TABLE CITY_BANK_ACCOUNTS (",
	}
	pos := 0
	for _, want := range ordered {
		idx := strings.Index(out[pos:], want)
		if idx < 0 {
			t.Fatalf("script missing %q after offset %d:\n%s", want, pos, out)
		}
		pos += idx + len(want)
	}

	if s.TableCount() != 2 {
		t.Errorf("TableCount() = %d, want 2", s.TableCount())
	}
	if len(s.Errors()) != 0 {
		t.Errorf("Errors() = %v, want none", s.Errors())
	}
}

func TestScriptLimitsDatabasesPerDomain(t *testing.T) {
	catalogs := []*schema.Catalog{
		bankCatalog("bank_a"), bankCatalog("bank_b"), bankCatalog("bank_c"), bankCatalog("bank_d"),
	}

	tests := []struct {
		max  int
		want int
	}{
		{3, 3},
		{1, 1},
		{0, 4},
		{10, 4},
	}

	for _, tt := range tests {
		s := NewScript(ScriptOptions{Database: "BIRD_DB", Schema: "PUBLIC", MaxDatabasesPerDomain: tt.max})
		s.AddDomain("financial", "Financial services and banking", catalogs)
		out := s.String()

		if got := strings.Count(out, "-- Tables for database:"); got != tt.want {
			t.Errorf("max %d: databases written = %d, want %d", tt.max, got, tt.want)
		}
		if !strings.Contains(out, "(4 databases)") {
			t.Errorf("max %d: domain comment should count every database", tt.max)
		}
	}
}

func TestScriptSkipsEmptyDomain(t *testing.T) {
	s := NewScript(ScriptOptions{Database: "BIRD_DB", Schema: "PUBLIC"})
	s.AddDomain("sports", "Sports", nil)
	if strings.Contains(s.String(), "BIRD_SPORTS") {
		t.Error("empty domain should not produce a schema")
	}
}

func TestScriptCollectsErrors(t *testing.T) {
	broken := bankCatalog("city_bank")
	broken.Tables[0].Incomplete = true

	// bank and bank_x collide on BANK_X_ACCOUNTS once joined
	a := &schema.Catalog{DBID: "bank", Tables: []schema.Table{
		{Name: "x_accounts", Columns: []schema.Column{{Name: "id", DeclaredType: "INTEGER"}}},
	}}
	b := &schema.Catalog{DBID: "bank_x", Tables: []schema.Table{
		{Name: "accounts", Columns: []schema.Column{{Name: "id", DeclaredType: "INTEGER"}}},
	}}

	s := NewScript(ScriptOptions{Database: "BIRD_DB", Schema: "PUBLIC"})
	s.AddDomain("financial", "Financial services and banking", []*schema.Catalog{broken, a, b})

	errs := s.Errors()
	if len(errs) != 2 {
		t.Fatalf("Errors() returned %d, want 2: %v", len(errs), errs)
	}
	if errs[0].Subject != "city_bank.customers" {
		t.Errorf("first error subject = %s", errs[0].Subject)
	}
	if errs[1].Subject != "bank_x.accounts" {
		t.Errorf("second error subject = %s", errs[1].Subject)
	}
	if s.TableCount() != 2 {
		t.Errorf("TableCount() = %d, want 2", s.TableCount())
	}
}
