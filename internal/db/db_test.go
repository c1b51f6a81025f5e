package db

import "testing"

func TestOpenMemory(t *testing.T) {
	d, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer d.Close()

	// The topics table should exist after migration.
	var name string
	err = d.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='topics'`).Scan(&name)
	if err != nil {
		t.Fatalf("querying sqlite_master: %v", err)
	}
	if name != "topics" {
		t.Errorf("expected topics table, got %q", name)
	}
}

func TestMigrateIdempotent(t *testing.T) {
	d, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer d.Close()

	if err := d.migrate(); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
}
