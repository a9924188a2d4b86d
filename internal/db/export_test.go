package db

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/csv"
	"testing"
)

func TestExportTableCSV(t *testing.T) {
	ctx := context.Background()
	path := createFixture(t, t.TempDir(), "shop.sqlite",
		`CREATE TABLE "order items" ("item-id" INTEGER, "unit price" REAL, note TEXT, raw BLOB)`,
		`INSERT INTO "order items" VALUES (1, 2.5, 'first, with comma', x'00ff'), (2, 10, NULL, x'6869')`,
	)

	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	var buf bytes.Buffer
	n, err := ExportTableCSV(ctx, conn, "order items", &buf)
	if err != nil {
		t.Fatalf("ExportTableCSV() error: %v", err)
	}
	if n != 2 {
		t.Errorf("rows written = %d, want 2", n)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}

	want := [][]string{
		{"ITEM_ID", "UNIT_PRICE", "NOTE", "RAW"},
		{"1", "2.5", "first, with comma", "00ff"},
		{"2", "10", "", "hi"},
	}
	if len(records) != len(want) {
		t.Fatalf("records = %v, want %v", records, want)
	}
	for i := range want {
		for j := range want[i] {
			if records[i][j] != want[i][j] {
				t.Errorf("record[%d][%d] = %q, want %q", i, j, records[i][j], want[i][j])
			}
		}
	}
}
