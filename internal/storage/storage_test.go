package storage

import (
	"path/filepath"
	"testing"

	"github.com/Cecato-BMar/calculadoradoconstrutor/internal/db"
	"github.com/Cecato-BMar/calculadoradoconstrutor/internal/migrations"
)

func newSQLiteTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	database, err := db.Open(filepath.Join(t.TempDir(), "blobs-test.db"))
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close()
	})

	if err := migrations.Up(database, nil); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	return NewSQLiteStore(database)
}

func exerciseBlobStore(t *testing.T, s BlobStore) {
	t.Helper()

	if _, ok, err := s.Get("settings"); err != nil || ok {
		t.Fatalf("Get on empty store: ok=%v err=%v", ok, err)
	}

	if err := s.Set("settings", `{"currency":"BRL"}`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set("settings", `{"currency":"USD"}`); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}

	got, ok, err := s.Get("settings")
	if err != nil || !ok {
		t.Fatalf("Get after Set: ok=%v err=%v", ok, err)
	}
	if got != `{"currency":"USD"}` {
		t.Fatalf("Get=%q, want overwritten value", got)
	}

	if err := s.Remove("settings"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := s.Remove("settings"); err != nil {
		t.Fatalf("Remove of absent key: %v", err)
	}
	if _, ok, _ := s.Get("settings"); ok {
		t.Fatalf("expected key to be gone after Remove")
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseBlobStore(t, NewMemoryStore())
}

func TestSQLiteStore(t *testing.T) {
	exerciseBlobStore(t, newSQLiteTestStore(t))
}

func TestSQLiteStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")

	first, err := db.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := migrations.Up(first, nil); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := NewSQLiteStore(first).Set("obracalc-budget-history", "[]"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	first.Close()

	second, err := db.Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()

	got, ok, err := NewSQLiteStore(second).Get("obracalc-budget-history")
	if err != nil || !ok || got != "[]" {
		t.Fatalf("Get after reopen: got=%q ok=%v err=%v", got, ok, err)
	}
}
