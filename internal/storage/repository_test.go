package storage_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"fishlog/internal/core"
	"fishlog/internal/storage"
	"fishlog/internal/storage/storagetest"
)

func openSQLite(t *testing.T) *storage.SQLiteRepository {
	t.Helper()
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "data", "fishlog.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSQLiteRepository(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.CatchStore {
		return openSQLite(t)
	})
}

func TestSQLiteRepository_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "fishlog.db")

	repo, err := storage.NewSQLiteRepository(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	id, err := repo.Create(ctx, storagetest.Catch("Alice", "Worm"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	repo.Close()

	// Migrations are idempotent and committed rows survive a restart.
	repo, err = storage.NewSQLiteRepository(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer repo.Close()

	got, err := repo.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
	if got.Catcher != "Alice" {
		t.Fatalf("unexpected record: %+v", got)
	}
	all, err := repo.ListAll(ctx)
	if err != nil || len(all) != 1 {
		t.Fatalf("ListAll after reopen = %d records, %v", len(all), err)
	}
}

func TestSQLiteRepository_ClosedIsUnavailable(t *testing.T) {
	ctx := context.Background()
	repo := openSQLite(t)
	repo.Close()

	if _, err := repo.ListAll(ctx); !errors.Is(err, core.ErrStoreUnavailable) {
		t.Fatalf("ListAll: expected ErrStoreUnavailable, got %v", err)
	}
	if _, err := repo.Create(ctx, storagetest.Catch("Alice", "Worm")); !errors.Is(err, core.ErrStoreUnavailable) {
		t.Fatalf("Create: expected ErrStoreUnavailable, got %v", err)
	}
	if err := repo.DeleteByID(ctx, 1); !errors.Is(err, core.ErrStoreUnavailable) {
		t.Fatalf("DeleteByID: expected ErrStoreUnavailable, got %v", err)
	}
	if err := repo.Ping(ctx); !errors.Is(err, core.ErrStoreUnavailable) {
		t.Fatalf("Ping: expected ErrStoreUnavailable, got %v", err)
	}
}

func TestSQLiteRepository_OpaqueDateTime(t *testing.T) {
	ctx := context.Background()
	repo := openSQLite(t)

	in := storagetest.Catch("Alice", "Worm")
	in.DateOfCatch = "2024"
	in.TimeOfCatch = "sunrise"
	id, err := repo.Create(ctx, in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := repo.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.DateOfCatch != "2024" || got.TimeOfCatch != "sunrise" {
		t.Fatalf("date/time not passed through: %q %q", got.DateOfCatch, got.TimeOfCatch)
	}
}
