package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
)

func TestRun(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "demo.db")
	configPath := filepath.Join(dir, "db.yml")
	if err := os.WriteFile(configPath, []byte("busy_timeout: 1s\nforeign_keys: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	// Running twice replaces the rows rather than appending.
	for i := 0; i < 2; i++ {
		if err := run(dbPath, configPath, 20, 3.0, logger); err != nil {
			t.Fatalf("run returned error: %v", err)
		}
	}

	db := sqlx.MustConnect("sqlite3", dbPath)
	defer db.Close()
	var count int
	if err := db.Get(&count, "SELECT COUNT(*) FROM test"); err != nil {
		t.Fatalf("Failed to count rows: %v", err)
	}
	if count != 20 {
		t.Errorf("Expected 20 rows, got %d", count)
	}
	var version int
	if err := db.Get(&version, "SELECT version FROM _versions WHERE type = 'test'"); err != nil {
		t.Fatalf("Failed to read schema version: %v", err)
	}
	if version != 1 {
		t.Errorf("Expected schema version 1, got %d", version)
	}
}

func TestRunBadConfig(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if err := run(":memory:", filepath.Join(t.TempDir(), "missing.yml"), 1, 1, logger); err == nil {
		t.Error("Expected error for missing config file")
	}
}
