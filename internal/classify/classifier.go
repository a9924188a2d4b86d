package classify

import (
	"strings"

	"github.com/tordrt/birdmap/internal/schema"
)

// Points awarded per substring match
const (
	dbIDKeywordPoints   = 10
	tablePatternPoints  = 5
	tableKeywordPoints  = 3
	columnKeywordPoints = 1
)

// Classification is the domain assigned to one database
type Classification struct {
	Domain string
	Score  int
}

// DomainScore is the score of a single domain
type DomainScore struct {
	Domain string
	Score  int
}

// Scores returns the score of every domain in taxonomy order.
// Matching is plain substring containment on lower-cased names; every
// occurrence counts, including repeated column names.
func Scores(t *Taxonomy, dbID string, tableNames, columnNames []string) []DomainScore {
	dbIDLower := strings.ToLower(dbID)
	tables := lowerAll(tableNames)
	columns := lowerAll(columnNames)

	scores := make([]DomainScore, len(t.domains))
	for i, d := range t.domains {
		score := 0

		for _, kw := range d.Keywords {
			if strings.Contains(dbIDLower, kw) {
				score += dbIDKeywordPoints
			}
		}

		for _, table := range tables {
			for _, pattern := range d.TablePatterns {
				if strings.Contains(table, pattern) {
					score += tablePatternPoints
				}
			}
			for _, kw := range d.Keywords {
				if strings.Contains(table, kw) {
					score += tableKeywordPoints
				}
			}
		}

		for _, column := range columns {
			for _, kw := range d.Keywords {
				if strings.Contains(column, kw) {
					score += columnKeywordPoints
				}
			}
		}

		scores[i] = DomainScore{Domain: d.Name, Score: score}
	}

	return scores
}

// Classify picks the highest scoring domain. Ties go to the domain listed
// first in the taxonomy; a best score of zero yields General.
func Classify(t *Taxonomy, dbID string, tableNames, columnNames []string) Classification {
	best := Classification{Domain: General}
	for _, s := range Scores(t, dbID, tableNames, columnNames) {
		if s.Score > best.Score {
			best = Classification{Domain: s.Domain, Score: s.Score}
		}
	}
	return best
}

// ClassifyCatalog classifies a catalog by its id, table names and column names
func ClassifyCatalog(t *Taxonomy, c *schema.Catalog) Classification {
	return Classify(t, c.DBID, c.TableNames(), c.ColumnNames())
}
