package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/robalobadob/lexique/internal/favorites"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(MemoryDSN)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	if err := Migrate(db); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
	var n int
	if err := db.QueryRow(`SELECT COUNT(1) FROM _migrations`).Scan(&n); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 recorded migration, got %d", n)
	}
}

func TestDeviceKV(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	a, b := NewDeviceKV(db, "a"), NewDeviceKV(db, "b")

	if _, ok, err := a.Get(ctx, "k"); err != nil || ok {
		t.Fatalf("missing key: ok=%v err=%v", ok, err)
	}
	if err := a.Set(ctx, "k", "1"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := a.Set(ctx, "k", "2"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	v, ok, err := a.Get(ctx, "k")
	if err != nil || !ok || v != "2" {
		t.Fatalf("get = %q %v %v", v, ok, err)
	}
	if _, ok, _ := b.Get(ctx, "k"); ok {
		t.Fatalf("device b sees device a's value")
	}
}

func TestFavoritesOnSQLite(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "lexique.db")
	db, err := Open(path)
	if err != nil {
		t.Fatalf("open file db: %v", err)
	}
	reg := favorites.NewRegistry(Factory(db))
	s, err := reg.For(ctx, "device-1")
	if err != nil {
		t.Fatalf("load favorites: %v", err)
	}
	if _, err := s.Toggle(ctx, "3"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if _, err := s.Toggle(ctx, "1"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	db.Close()

	db, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()
	reloaded, err := favorites.Load(ctx, NewDeviceKV(db, "device-1"))
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got := reloaded.IDs(); len(got) != 2 || got[0] != "3" || got[1] != "1" {
		t.Fatalf("reloaded ids = %v", got)
	}
}
