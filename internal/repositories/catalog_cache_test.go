package repositories

import (
	"database/sql"
	"errors"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/desertthunder/chorus/internal/models"
	"github.com/desertthunder/chorus/internal/shared"
)

func newTestCache(t *testing.T) *CatalogCache {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return NewCatalogCache(db)
}

func strptr(s string) *string { return &s }
func intptr(i int) *int       { return &i }

func TestCatalogCache(t *testing.T) {
	fixture := []models.Music{
		{ID: 1, Title: "One", Artist: "Alpha", Album: strptr("First"), Year: intptr(1999), Duration: intptr(215)},
		{ID: 2, Title: "Two", Artist: "Beta"},
	}

	t.Run("Put Then List Round Trips", func(t *testing.T) {
		cache := newTestCache(t)
		if err := cache.Put(fixture); err != nil {
			t.Fatalf("failed to put entries: %v", err)
		}

		entries, err := cache.List()
		if err != nil {
			t.Fatalf("failed to list: %v", err)
		}
		if len(entries) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(entries))
		}
		if entries[0].Title != "One" || entries[0].Album == nil || *entries[0].Album != "First" {
			t.Errorf("unexpected first entry: %+v", entries[0])
		}
		if entries[1].Album != nil {
			t.Errorf("expected nil album for sparse entry, got %v", *entries[1].Album)
		}
	})

	t.Run("Put Updates Existing Rows", func(t *testing.T) {
		cache := newTestCache(t)
		if err := cache.Put(fixture); err != nil {
			t.Fatalf("failed to put entries: %v", err)
		}
		if err := cache.Put([]models.Music{{ID: 1, Title: "One (Remastered)", Artist: "Alpha"}}); err != nil {
			t.Fatalf("failed to refresh entry: %v", err)
		}

		entry, err := cache.Get(1)
		if err != nil {
			t.Fatalf("failed to get: %v", err)
		}
		if entry.Title != "One (Remastered)" {
			t.Errorf("expected refreshed title, got %q", entry.Title)
		}

		entries, _ := cache.List()
		if len(entries) != 2 {
			t.Errorf("refresh must not duplicate rows, got %d", len(entries))
		}
	})

	t.Run("Get Missing Returns NoRows", func(t *testing.T) {
		cache := newTestCache(t)
		if _, err := cache.Get(404); !errors.Is(err, sql.ErrNoRows) {
			t.Errorf("expected sql.ErrNoRows, got %v", err)
		}
	})

	t.Run("Comment Count Round Trips", func(t *testing.T) {
		cache := newTestCache(t)
		if err := cache.Put(fixture); err != nil {
			t.Fatalf("failed to put entries: %v", err)
		}
		if err := cache.SetCommentCount(1, 7); err != nil {
			t.Fatalf("failed to set count: %v", err)
		}

		count, err := cache.CommentCount(1)
		if err != nil {
			t.Fatalf("failed to read count: %v", err)
		}
		if count != 7 {
			t.Errorf("expected 7, got %d", count)
		}
	})

	t.Run("Prune Drops Unlisted Entries", func(t *testing.T) {
		cache := newTestCache(t)
		if err := cache.Put(fixture); err != nil {
			t.Fatalf("failed to put entries: %v", err)
		}
		removed, err := cache.Prune([]int64{2})
		if err != nil {
			t.Fatalf("failed to prune: %v", err)
		}
		if removed != 1 {
			t.Errorf("expected 1 removed, got %d", removed)
		}

		entries, _ := cache.List()
		if len(entries) != 1 || entries[0].ID != 2 {
			t.Errorf("expected only entry 2 to survive, got %+v", entries)
		}
	})

	t.Run("Clear Empties The Snapshot", func(t *testing.T) {
		cache := newTestCache(t)
		if err := cache.Put(fixture); err != nil {
			t.Fatalf("failed to put entries: %v", err)
		}
		if err := cache.Clear(); err != nil {
			t.Fatalf("failed to clear: %v", err)
		}

		entries, _ := cache.List()
		if len(entries) != 0 {
			t.Errorf("expected empty cache, got %d entries", len(entries))
		}
	})
}
