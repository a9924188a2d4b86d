package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tordrt/birdmap/internal/schema"
)

// Introspection stages recorded in schema.TableIssue.Stage
const (
	StageColumns     = "columns"
	StageRowCount    = "row_count"
	StageForeignKeys = "foreign_keys"
)

// CatalogExtractor builds a schema.Catalog from an open SQLite database
type CatalogExtractor struct {
	q Querier
}

// NewCatalogExtractor creates a new extractor over the client's connection
func NewCatalogExtractor(client *SQLiteClient) *CatalogExtractor {
	return &CatalogExtractor{q: client.GetDB()}
}

// NewCatalogExtractorWithQuerier creates an extractor over any Querier
func NewCatalogExtractorWithQuerier(q Querier) *CatalogExtractor {
	return &CatalogExtractor{q: q}
}

// newFileExtractor builds the extractor ExtractFile runs over an opened client
var newFileExtractor = NewCatalogExtractor

// ExtractFile opens the database at path, extracts its catalog and closes it again.
// The handle is released on every return path. Failures are *schema.Error values
// of kind invalid_file, open or list_tables; per-table failures are recorded on
// the catalog instead.
func ExtractFile(ctx context.Context, path string) (*schema.Catalog, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, schema.NewError(schema.KindOpen, path, err)
	}

	client, err := NewSQLiteClient(ctx, path)
	if err != nil {
		kind := schema.KindOpen
		if errors.Is(err, schema.ErrNotSQLite) {
			kind = schema.KindInvalidFile
		}
		return nil, schema.NewError(kind, path, err)
	}
	defer func() { _ = client.Close() }()

	catalog, err := newFileExtractor(client).Extract(ctx, DBIDFromPath(path))
	if err != nil {
		return nil, schema.NewError(schema.KindListTables, path, err)
	}
	catalog.Path = path
	catalog.SizeBytes = info.Size()

	return catalog, nil
}

// DBIDFromPath derives a database id from the file name without its extension
func DBIDFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Extract walks every user table. It fails only if the table list itself
// cannot be read; a table whose detail cannot be read is kept by name,
// flagged Incomplete and recorded in Catalog.Issues.
func (e *CatalogExtractor) Extract(ctx context.Context, dbID string) (*schema.Catalog, error) {
	tableNames, err := e.getTableNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get table names: %w", err)
	}

	catalog := &schema.Catalog{DBID: dbID}
	for _, tableName := range tableNames {
		table, stage, err := e.extractTable(ctx, tableName)
		if err != nil {
			catalog.Issues = append(catalog.Issues, schema.TableIssue{Table: tableName, Stage: stage, Err: err})
			catalog.Tables = append(catalog.Tables, schema.Table{Name: tableName, Incomplete: true})
			continue
		}
		catalog.Tables = append(catalog.Tables, *table)
	}

	resolveImplicitTargets(catalog)

	return catalog, nil
}

// getTableNames returns user tables in the order sqlite_master stores them
func (e *CatalogExtractor) getTableNames(ctx context.Context) ([]string, error) {
	query := `
		SELECT name
		FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite\_%' ESCAPE '\'
	`

	rows, err := e.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tableList []string
	for rows.Next() {
		var tableName string
		if err := rows.Scan(&tableName); err != nil {
			return nil, err
		}
		tableList = append(tableList, tableName)
	}

	return tableList, rows.Err()
}

// extractTable runs the three introspection queries for a table. On failure it
// returns the stage that failed.
func (e *CatalogExtractor) extractTable(ctx context.Context, tableName string) (*schema.Table, string, error) {
	table := &schema.Table{Name: tableName}

	columns, err := e.extractColumns(ctx, tableName)
	if err != nil {
		return nil, StageColumns, fmt.Errorf("failed to extract columns: %w", err)
	}
	table.Columns = columns

	rowCount, err := e.countRows(ctx, tableName)
	if err != nil {
		return nil, StageRowCount, fmt.Errorf("failed to count rows: %w", err)
	}
	table.RowCount = rowCount

	fks, err := e.extractForeignKeys(ctx, tableName)
	if err != nil {
		return nil, StageForeignKeys, fmt.Errorf("failed to extract foreign keys: %w", err)
	}
	table.ForeignKeys = fks

	return table, "", nil
}

// extractColumns extracts column information in ordinal order
func (e *CatalogExtractor) extractColumns(ctx context.Context, tableName string) ([]schema.Column, error) {
	query := fmt.Sprintf("PRAGMA table_info(%s)", quoteIdent(tableName))

	rows, err := e.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []schema.Column
	for rows.Next() {
		var cid int
		var name, colType string
		var notNull, pk int
		var defaultValue sql.NullString

		if err := rows.Scan(&cid, &name, &colType, &notNull, &defaultValue, &pk); err != nil {
			return nil, err
		}

		// pk is the 1-based position within the primary key, 0 if not part of it
		columns = append(columns, schema.Column{
			Name:         name,
			DeclaredType: colType,
			IsPrimaryKey: pk > 0,
		})
	}

	return columns, rows.Err()
}

// countRows returns an exact COUNT(*) of the table
func (e *CatalogExtractor) countRows(ctx context.Context, tableName string) (int64, error) {
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteIdent(tableName))

	rows, err := e.q.QueryContext(ctx, query)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var count int64
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return 0, err
		}
	}

	return count, rows.Err()
}

// extractForeignKeys extracts foreign key references, one per referencing column
func (e *CatalogExtractor) extractForeignKeys(ctx context.Context, tableName string) ([]schema.ForeignKey, error) {
	query := fmt.Sprintf("PRAGMA foreign_key_list(%s)", quoteIdent(tableName))

	rows, err := e.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fks []schema.ForeignKey
	for rows.Next() {
		var id, seq int
		var targetTable, fromCol, onUpdate, onDelete, match string
		var toCol sql.NullString

		if err := rows.Scan(&id, &seq, &targetTable, &fromCol, &toCol, &onUpdate, &onDelete, &match); err != nil {
			return nil, err
		}

		fks = append(fks, schema.ForeignKey{
			SourceColumn: fromCol,
			TargetTable:  targetTable,
			TargetColumn: toCol.String,
		})
	}

	return fks, rows.Err()
}

// resolveImplicitTargets fills in the target column of "REFERENCES t" clauses
// that name no column, using t's primary key when it is a single column.
func resolveImplicitTargets(c *schema.Catalog) {
	for i := range c.Tables {
		for j := range c.Tables[i].ForeignKeys {
			fk := &c.Tables[i].ForeignKeys[j]
			if fk.TargetColumn != "" {
				continue
			}
			target := findTableFold(c, fk.TargetTable)
			if target == nil {
				continue
			}
			if pk := target.PrimaryKey(); len(pk) == 1 {
				fk.TargetColumn = pk[0]
			}
		}
	}
}

// findTableFold looks a table up case-insensitively, as SQLite resolves names
func findTableFold(c *schema.Catalog, name string) *schema.Table {
	for i := range c.Tables {
		if strings.EqualFold(c.Tables[i].Name, name) {
			return &c.Tables[i]
		}
	}
	return nil
}

// quoteIdent renders name as a double-quoted SQLite identifier
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
