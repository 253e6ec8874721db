package db

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMigrations(t *testing.T) {
	dir := t.TempDir()

	files := map[string]string{
		"001_init.sql":    "CREATE TABLE doctors (doctor_id INTEGER PRIMARY KEY);",
		"002_indexes.sql": "CREATE INDEX idx_appt_doctor ON appointments (doctor_id);",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("failed to write test file %s: %v", name, err)
		}
	}

	migrator := NewMigrator(nil, dir, "healthtech")
	migrations, err := migrator.LoadMigrations()
	if err != nil {
		t.Fatalf("LoadMigrations() error: %v", err)
	}

	if len(migrations) != 2 {
		t.Fatalf("expected 2 migrations, got %d", len(migrations))
	}
	if migrations[0].Version != 1 || migrations[0].Name != "001_init.sql" {
		t.Errorf("unexpected first migration: %+v", migrations[0])
	}
	if migrations[0].SQL != files["001_init.sql"] {
		t.Errorf("unexpected SQL content: %s", migrations[0].SQL)
	}
	if migrations[1].Version != 2 {
		t.Errorf("expected version 2, got %d", migrations[1].Version)
	}
}

func TestLoadMigrations_SortOrder(t *testing.T) {
	dir := t.TempDir()

	// Written out of order to exercise sorting
	for _, f := range []struct{ name, content string }{
		{"010_late.sql", "SELECT 10;"},
		{"001_first.sql", "SELECT 1;"},
		{"005_middle.sql", "SELECT 5;"},
	} {
		if err := os.WriteFile(filepath.Join(dir, f.name), []byte(f.content), 0644); err != nil {
			t.Fatalf("failed to write test file %s: %v", f.name, err)
		}
	}

	migrator := NewMigrator(nil, dir, "healthtech")
	migrations, err := migrator.LoadMigrations()
	if err != nil {
		t.Fatalf("LoadMigrations() error: %v", err)
	}

	versions := make([]int, len(migrations))
	for i, m := range migrations {
		versions[i] = m.Version
	}
	if versions[0] != 1 || versions[1] != 5 || versions[2] != 10 {
		t.Errorf("expected versions [1 5 10], got %v", versions)
	}
}

func TestLoadMigrations_SkipsNonMigrationFiles(t *testing.T) {
	dir := t.TempDir()

	for name, content := range map[string]string{
		"001_init.sql": "SELECT 1;",
		"README.md":    "not sql",
		"notes.sql":    "no numeric prefix",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("failed to write test file %s: %v", name, err)
		}
	}

	migrator := NewMigrator(nil, dir, "healthtech")
	migrations, err := migrator.LoadMigrations()
	if err != nil {
		t.Fatalf("LoadMigrations() error: %v", err)
	}
	if len(migrations) != 1 {
		t.Fatalf("expected 1 migration, got %d", len(migrations))
	}
}

func TestLoadMigrations_MissingDirectory(t *testing.T) {
	migrator := NewMigrator(nil, filepath.Join(t.TempDir(), "absent"), "healthtech")
	if _, err := migrator.LoadMigrations(); err == nil {
		t.Fatal("expected error for missing migrations directory")
	}
}
