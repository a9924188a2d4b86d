package db

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"
)

// createFixture builds a SQLite file in dir by running the statements in order
func createFixture(t *testing.T, dir, name string, statements ...string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("open fixture %s: %v", name, err)
	}
	defer conn.Close()

	for _, stmt := range statements {
		if _, err := conn.Exec(stmt); err != nil {
			t.Fatalf("fixture %s: %q: %v", name, stmt, err)
		}
	}
	return path
}

// bankFixture is the customers/accounts database used across tests
func bankFixture(t *testing.T, dir, name string) string {
	t.Helper()
	return createFixture(t, dir, name,
		`CREATE TABLE customers (customer_id INTEGER PRIMARY KEY, name TEXT)`,
		`CREATE TABLE accounts (
			account_id INTEGER PRIMARY KEY,
			customer_id INTEGER REFERENCES customers(customer_id),
			balance DECIMAL(15,2)
		)`,
		`INSERT INTO customers VALUES (1, 'Ada'), (2, 'Grace'), (3, 'Linus')`,
		`INSERT INTO accounts VALUES (10, 1, 100.5), (11, 1, 20), (12, 2, 0), (13, 3, 999.99)`,
	)
}

// countRows runs an independent COUNT(*) on a fresh connection
func countRows(t *testing.T, path, table string) int64 {
	t.Helper()

	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	var n int64
	if err := conn.QueryRow("SELECT COUNT(*) FROM " + quoteIdent(table)).Scan(&n); err != nil {
		t.Fatal(err)
	}
	return n
}

// failingQuerier fails any query that mentions one of the given fragments
type failingQuerier struct {
	q         Querier
	fragments []string
	err       error
}

func (f *failingQuerier) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	for _, frag := range f.fragments {
		if strings.Contains(query, frag) {
			return nil, f.err
		}
	}
	return f.q.QueryContext(ctx, query, args...)
}

// findTable is a helper function to find a table by name in the catalog
func findTable(t *testing.T, tables []string, name string) bool {
	t.Helper()
	for _, n := range tables {
		if n == name {
			return true
		}
	}
	return false
}
