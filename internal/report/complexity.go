// Package report scores catalog complexity and builds the JSON mapping report.
package report

import "github.com/tordrt/birdmap/internal/schema"

// Complexity weights
const (
	TableWeight      = 1.0
	ColumnWeight     = 0.1
	ForeignKeyWeight = 2.0
)

// Score returns tables*1.0 + columns*0.1 + foreignKeys*2.0
func Score(tables, columns, foreignKeys int) float64 {
	return float64(tables)*TableWeight + float64(columns)*ColumnWeight + float64(foreignKeys)*ForeignKeyWeight
}

// CatalogScore scores a catalog from its totals
func CatalogScore(c *schema.Catalog) float64 {
	tables, columns, fks, _ := c.Totals()
	return Score(tables, columns, fks)
}

// Scored is a database identifier paired with its complexity score
type Scored struct {
	DBID  string
	Score float64
}

// Analysis holds complexity statistics over a set of databases
type Analysis struct {
	Min           float64 `json:"min_complexity"`
	Max           float64 `json:"max_complexity"`
	Avg           float64 `json:"avg_complexity"`
	MostComplex   string  `json:"most_complex"`
	LeastComplex  string  `json:"least_complex"`
	DatabaseCount int     `json:"database_count"`
}

// Analyze computes min, max and average complexity. Ties for most and least
// complex go to the first entry in the given order. An empty input yields a
// zero Analysis.
func Analyze(scores []Scored) Analysis {
	if len(scores) == 0 {
		return Analysis{}
	}

	a := Analysis{
		Min:           scores[0].Score,
		Max:           scores[0].Score,
		MostComplex:   scores[0].DBID,
		LeastComplex:  scores[0].DBID,
		DatabaseCount: len(scores),
	}

	var sum float64
	for _, s := range scores {
		sum += s.Score
		if s.Score > a.Max {
			a.Max = s.Score
			a.MostComplex = s.DBID
		}
		if s.Score < a.Min {
			a.Min = s.Score
			a.LeastComplex = s.DBID
		}
	}
	a.Avg = sum / float64(len(scores))

	return a
}
