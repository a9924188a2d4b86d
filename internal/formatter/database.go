// Package formatter renders analyzed databases as text or markdown.
package formatter

import (
	"github.com/tordrt/birdmap/internal/schema"
)

// Database is a catalog together with its analysis results
type Database struct {
	Catalog     *schema.Catalog
	Domain      string
	DomainScore int
	Complexity  float64
}

// DomainGroup is a domain and the databases assigned to it, in processing order
type DomainGroup struct {
	Domain      string
	Description string
	Databases   []Database
}

// IncomingRelation represents a foreign key pointing to a table
type IncomingRelation struct {
	SourceTable  string
	SourceColumn string
	TargetColumn string
}

// findIncomingRelations finds all foreign keys pointing to tableName
func findIncomingRelations(tableName string, c *schema.Catalog) []IncomingRelation {
	var incoming []IncomingRelation

	for _, table := range c.Tables {
		for _, fk := range table.ForeignKeys {
			if fk.TargetTable == tableName {
				incoming = append(incoming, IncomingRelation{
					SourceTable:  table.Name,
					SourceColumn: fk.SourceColumn,
					TargetColumn: fk.TargetColumn,
				})
			}
		}
	}

	return incoming
}
