package db

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"

	_ "github.com/mattn/go-sqlite3"

	"github.com/tordrt/birdmap/internal/schema"
)

// sqliteHeader is the fixed 16-byte prefix of every SQLite 3 database file
var sqliteHeader = []byte("SQLite format 3\x00")

// Querier is the subset of *sql.DB the extractor needs
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// CheckHeader verifies that the file at path starts with the SQLite magic header.
// It reads only the header bytes.
func CheckHeader(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	buf := make([]byte, len(sqliteHeader))
	if _, err := io.ReadFull(f, buf); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return schema.ErrNotSQLite
		}
		return err
	}
	if !bytes.Equal(buf, sqliteHeader) {
		return schema.ErrNotSQLite
	}
	return nil
}

// SQLiteClient manages a read-only connection to one SQLite file
type SQLiteClient struct {
	db   *sql.DB
	path string
}

// NewSQLiteClient checks the file header and opens the database read-only
func NewSQLiteClient(ctx context.Context, path string) (*SQLiteClient, error) {
	if err := CheckHeader(path); err != nil {
		return nil, err
	}

	// The DSN is a URI; '#' and '%' in the path must not be read as a fragment or escape.
	dsn := "file:" + (&url.URL{Path: path}).EscapedPath() + "?mode=ro"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One handle per file; the extractor owns it exclusively.
	db.SetMaxOpenConns(1)

	// Test the connection
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteClient{db: db, path: path}, nil
}

// Close closes the database connection
func (c *SQLiteClient) Close() error {
	return c.db.Close()
}

// GetDB returns the underlying database connection
func (c *SQLiteClient) GetDB() *sql.DB {
	return c.db
}

// Path returns the file the client was opened on
func (c *SQLiteClient) Path() string {
	return c.path
}
