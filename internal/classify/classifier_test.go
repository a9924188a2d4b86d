package classify

import (
	"testing"

	"github.com/tordrt/birdmap/internal/schema"
)

func scoreOf(t *testing.T, scores []DomainScore, domain string) int {
	t.Helper()
	for _, s := range scores {
		if s.Domain == domain {
			return s.Score
		}
	}
	t.Fatalf("domain %s not scored", domain)
	return 0
}

func TestClassify(t *testing.T) {
	tax := DefaultTaxonomy()

	tests := []struct {
		name       string
		dbID       string
		tables     []string
		columns    []string
		wantDomain string
		wantScore  int
	}{
		{
			name:       "tie between financial and government goes to financial",
			dbID:       "city_bank_accounts",
			wantDomain: "financial",
			wantScore:  10,
		},
		{
			name:       "sample financial database",
			dbID:       "sample_financial",
			tables:     []string{"customers", "accounts"},
			columns:    []string{"customer_id", "name", "account_id", "customer_id", "balance"},
			wantDomain: "financial",
			wantScore:  15,
		},
		{
			name:       "no keywords anywhere",
			dbID:       "qqq",
			tables:     []string{"t1"},
			columns:    []string{"c1", "zz"},
			wantDomain: General,
			wantScore:  0,
		},
		{
			name:       "empty input",
			wantDomain: General,
			wantScore:  0,
		},
		{
			name:       "id match is case-insensitive",
			dbID:       "BANK",
			wantDomain: "financial",
			wantScore:  10,
		},
		{
			name:       "table pattern and keyword both count",
			dbID:       "x",
			tables:     []string{"patient_visits"},
			wantDomain: "healthcare",
			wantScore:  8,
		},
		{
			name:       "repeated column names each count",
			dbID:       "x",
			columns:    []string{"player_id", "player_id"},
			wantDomain: "sports",
			wantScore:  2,
		},
		{
			name:       "domain without table patterns",
			dbID:       "x",
			tables:     []string{"software_apps"},
			wantDomain: "technology",
			wantScore:  6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tax, tt.dbID, tt.tables, tt.columns)
			if got.Domain != tt.wantDomain || got.Score != tt.wantScore {
				t.Errorf("Classify() = %+v, want {%s %d}", got, tt.wantDomain, tt.wantScore)
			}
		})
	}
}

func TestClassifyTieBreakFollowsTaxonomyOrder(t *testing.T) {
	scores := Scores(DefaultTaxonomy(), "city_bank_accounts", nil, nil)
	if scoreOf(t, scores, "financial") != 10 || scoreOf(t, scores, "government") != 10 {
		t.Fatalf("expected financial and government to tie at 10: %+v", scores)
	}

	reversed, err := NewTaxonomy([]Domain{
		{Name: "government", Keywords: []string{"city"}},
		{Name: "financial", Keywords: []string{"bank"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	got := Classify(reversed, "city_bank_accounts", nil, nil)
	if got.Domain != "government" || got.Score != 10 {
		t.Errorf("Classify() with government first = %+v, want {government 10}", got)
	}
}

func TestClassifyDeterministic(t *testing.T) {
	tax := DefaultTaxonomy()
	tables := []string{"races", "drivers", "constructors", "results"}
	columns := []string{"raceId", "driverId", "position", "points", "team"}

	first := Classify(tax, "formula_1", tables, columns)
	for i := 0; i < 20; i++ {
		if got := Classify(tax, "formula_1", tables, columns); got != first {
			t.Fatalf("run %d: Classify() = %+v, first = %+v", i, got, first)
		}
	}
}

func TestScoresOrder(t *testing.T) {
	tax := DefaultTaxonomy()
	scores := Scores(tax, "", nil, nil)
	names := tax.Names()
	if len(scores) != len(names) {
		t.Fatalf("got %d scores for %d domains", len(scores), len(names))
	}
	for i := range names {
		if scores[i].Domain != names[i] || scores[i].Score != 0 {
			t.Errorf("scores[%d] = %+v, want {%s 0}", i, scores[i], names[i])
		}
	}
}

func TestClassifyCatalog(t *testing.T) {
	c := &schema.Catalog{
		DBID: "sample_financial",
		Tables: []schema.Table{
			{Name: "customers", Columns: []schema.Column{{Name: "customer_id"}, {Name: "name"}}},
			{Name: "accounts", Columns: []schema.Column{{Name: "account_id"}, {Name: "customer_id"}, {Name: "balance"}}},
		},
	}
	got := ClassifyCatalog(DefaultTaxonomy(), c)
	if got.Domain != "financial" || got.Score != 15 {
		t.Errorf("ClassifyCatalog() = %+v, want {financial 15}", got)
	}
}
