package datastore

import (
	"path/filepath"
	"testing"
)

func TestSQLiteStore_CreateTableAndInsert(t *testing.T) {
	dbPath := "file::memory:?cache=shared"
	store := NewSQLiteStore(dbPath)
	if err := store.Connect(); err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	defer func() { _ = store.Close() }()

	schema := `CREATE TABLE IF NOT EXISTS test_table (
		id INTEGER PRIMARY KEY,
		name TEXT,
		value INTEGER
	)`
	if err := store.CreateTable(schema); err != nil {
		t.Fatalf("failed to create table: %v", err)
	}

	records := []map[string]any{
		{"id": 1, "name": "foo", "value": 42},
		{"id": 2, "name": "bar", "value": 99},
	}
	if err := store.BatchInsert("keepers", "test_table", records); err != nil {
		t.Fatalf("failed to batch insert: %v", err)
	}

	rows, err := store.db.Query("SELECT id, name, value FROM test_table ORDER BY id")
	if err != nil {
		t.Fatalf("failed to query: %v", err)
	}
	defer func() { _ = rows.Close() }()

	var count int
	for rows.Next() {
		var id, value int
		var name string
		if err := rows.Scan(&id, &name, &value); err != nil {
			t.Fatalf("failed to scan: %v", err)
		}
		count++
	}
	if count != 2 {
		t.Errorf("expected 2 rows, got %d", count)
	}
}

func TestSQLiteStore_TruncateReplacesRows(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "keepers.db"))
	if err := store.Connect(); err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	defer func() { _ = store.Close() }()

	columns := ColumnNames([]string{"Player", "Recent Fee"})
	if err := store.CreateTable(TextTableSchema("stats", columns)); err != nil {
		t.Fatalf("failed to create table: %v", err)
	}

	first := []map[string]any{{"player": "A", "recent_fee": "€1.00m"}, {"player": "B", "recent_fee": ""}}
	if err := store.BatchInsert("keepers", "stats", first); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if err := store.Truncate("keepers", "stats"); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	second := []map[string]any{{"player": "C", "recent_fee": "free transfer"}}
	if err := store.BatchInsert("keepers", "stats", second); err != nil {
		t.Fatalf("second insert: %v", err)
	}

	var count int
	if err := store.db.QueryRow(`SELECT COUNT(*) FROM "stats"`).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 row after truncate, got %d", count)
	}
}

func TestSQLiteStore_TruncateMissingTable(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "keepers.db"))
	if err := store.Connect(); err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.Truncate("keepers", "not_there"); err != nil {
		t.Errorf("expected no error for missing table, got %v", err)
	}
}
