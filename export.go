package birdmap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tordrt/birdmap/internal/db"
	"github.com/tordrt/birdmap/internal/schema"
	"github.com/tordrt/birdmap/internal/warehouse"
)

// ExportOptions configures ExportDatabase
type ExportOptions struct {
	TablePrefix string
	// Stage is the Snowflake stage the CSV files are uploaded to, e.g. @bird_stage
	Stage string
}

// LoadStep describes how one table reaches the warehouse
type LoadStep struct {
	Table     string
	Target    string
	File      string
	Rows      int64
	Columns   []warehouse.ColumnMapping
	CreateSQL string
	CopySQL   string
}

// ExportDatabase writes every complete table of the database at path to a
// CSV file in outDir and returns the matching CREATE TABLE and COPY INTO
// statements. Tables that cannot be exported are returned as export or ddl
// errors; the remaining tables are still written.
func ExportDatabase(ctx context.Context, path, outDir string, opts ExportOptions) ([]LoadStep, []*schema.Error, error) {
	client, err := db.NewSQLiteClient(ctx, path)
	if err != nil {
		kind := schema.KindOpen
		if errors.Is(err, schema.ErrNotSQLite) {
			kind = schema.KindInvalidFile
		}
		return nil, nil, schema.NewError(kind, path, err)
	}
	defer func() { _ = client.Close() }()

	dbID := db.DBIDFromPath(path)
	catalog, err := db.NewCatalogExtractor(client).Extract(ctx, dbID)
	if err != nil {
		return nil, nil, schema.NewError(schema.KindListTables, path, err)
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	stmts, errs := warehouse.NewProjector(opts.TablePrefix).Project(catalog)

	var steps []LoadStep
	used := make(map[string]bool)
	for _, stmt := range stmts {
		file := exportFileName(stmt.Target, used)
		rows, err := exportTable(ctx, client, stmt.Table, filepath.Join(outDir, file))
		if err != nil {
			errs = append(errs, schema.NewError(schema.KindExport, dbID+"."+stmt.Table, err))
			continue
		}

		step := LoadStep{
			Table:     stmt.Table,
			Target:    stmt.Target,
			File:      file,
			Rows:      rows,
			Columns:   warehouse.ColumnMappings(*catalog.Table(stmt.Table)),
			CreateSQL: stmt.SQL,
		}
		if opts.Stage != "" {
			step.CopySQL = warehouse.CopyInto(stmt.Target, opts.Stage, file)
		}
		steps = append(steps, step)
	}

	return steps, errs, nil
}

func exportTable(ctx context.Context, client *db.SQLiteClient, table, path string) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}

	rows, err := db.ExportTableCSV(ctx, client.GetDB(), table, f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		// A truncated file must not be picked up by a later COPY INTO.
		_ = os.Remove(path)
		return rows, err
	}
	return rows, nil
}

// exportFileName turns a target identifier into a lower-case file name not yet in used
func exportFileName(target string, used map[string]bool) string {
	name := strings.ToLower(strings.Trim(target, `"`))
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '_'
		}
	}, name)

	file := name + ".csv"
	for i := 2; used[file]; i++ {
		file = fmt.Sprintf("%s_%d.csv", name, i)
	}
	used[file] = true
	return file
}
