package views

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/desertthunder/chorus/internal/models"
)

func collectionFixture() []models.CollectionEntry {
	return []models.CollectionEntry{
		{ID: 1, MusicID: 10, Status: models.StatusNone},
		{ID: 2, MusicID: 20, Status: models.StatusLike},
		{ID: 3, MusicID: 30, Status: models.StatusNone},
	}
}

func TestCollectionChangeStatus(t *testing.T) {
	t.Run("Replaces Entry In Place", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch {
			case r.Method == http.MethodGet && r.URL.Path == "/get_collection":
				json.NewEncoder(w).Encode(collectionFixture())
			case r.Method == http.MethodPut && r.URL.Path == "/collection/2":
				json.NewEncoder(w).Encode(models.CollectionEntry{ID: 2, MusicID: 20, Status: models.StatusFavourite})
			default:
				http.NotFound(w, r)
			}
		}))
		defer server.Close()

		ctrl := NewCollectionController(newViewClient(t, server.URL))
		if err := ctrl.Load(context.Background()); err != nil {
			t.Fatalf("load failed: %v", err)
		}

		if err := ctrl.ChangeStatus(context.Background(), 2, models.StatusFavourite); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		entries := ctrl.Entries()
		if len(entries) != 3 {
			t.Fatalf("expected 3 entries, got %d", len(entries))
		}
		if entries[1].ID != 2 {
			t.Errorf("entry must keep its position, got id %d at index 1", entries[1].ID)
		}
		if entries[1].Status != models.StatusFavourite {
			t.Errorf("expected server status applied, got %q", entries[1].Status)
		}
	})

	t.Run("Failure Leaves List Untouched", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet {
				json.NewEncoder(w).Encode(collectionFixture())
				return
			}
			http.Error(w, `{"detail":"not yours"}`, http.StatusForbidden)
		}))
		defer server.Close()

		ctrl := NewCollectionController(newViewClient(t, server.URL))
		if err := ctrl.Load(context.Background()); err != nil {
			t.Fatalf("load failed: %v", err)
		}

		if err := ctrl.ChangeStatus(context.Background(), 2, models.StatusDislike); err == nil {
			t.Fatal("expected error")
		}
		if ctrl.Entries()[1].Status != models.StatusLike {
			t.Error("failed update must not change the entry")
		}
	})

	t.Run("Invalid Status Rejected Before Network", func(t *testing.T) {
		var calls int
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			http.NotFound(w, r)
		}))
		defer server.Close()

		ctrl := NewCollectionController(newViewClient(t, server.URL))
		if err := ctrl.ChangeStatus(context.Background(), 2, "loved"); err == nil {
			t.Fatal("expected validation error")
		}
		if calls != 0 {
			t.Errorf("invalid status must not reach the server, saw %d calls", calls)
		}
	})
}

func TestCollectionRemoveEntry(t *testing.T) {
	t.Run("Removes After Server Confirms", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch {
			case r.Method == http.MethodGet:
				json.NewEncoder(w).Encode(collectionFixture())
			case r.Method == http.MethodDelete && r.URL.Path == "/remove_collection/2":
				w.WriteHeader(http.StatusNoContent)
			default:
				http.NotFound(w, r)
			}
		}))
		defer server.Close()

		ctrl := NewCollectionController(newViewClient(t, server.URL))
		if err := ctrl.Load(context.Background()); err != nil {
			t.Fatalf("load failed: %v", err)
		}

		if err := ctrl.RemoveEntry(context.Background(), 2); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		entries := ctrl.Entries()
		if len(entries) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(entries))
		}
		for _, e := range entries {
			if e.ID == 2 {
				t.Error("removed entry still present")
			}
		}
	})

	t.Run("Failure Keeps Entry", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet {
				json.NewEncoder(w).Encode(collectionFixture())
				return
			}
			http.Error(w, `{"detail":"gone already"}`, http.StatusNotFound)
		}))
		defer server.Close()

		ctrl := NewCollectionController(newViewClient(t, server.URL))
		if err := ctrl.Load(context.Background()); err != nil {
			t.Fatalf("load failed: %v", err)
		}

		if err := ctrl.RemoveEntry(context.Background(), 2); err == nil {
			t.Fatal("expected error")
		}
		if len(ctrl.Entries()) != 3 {
			t.Error("failed removal must leave the list untouched")
		}
	})
}

func TestCollectionLoadForUser(t *testing.T) {
	t.Run("Loads Another Users Collection", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/collection/7" {
				http.NotFound(w, r)
				return
			}
			json.NewEncoder(w).Encode([]models.CollectionEntry{{ID: 5, UserID: 7, MusicID: 50}})
		}))
		defer server.Close()

		ctrl := NewCollectionController(newViewClient(t, server.URL))
		if err := ctrl.LoadForUser(context.Background(), 7); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		entries := ctrl.Entries()
		if len(entries) != 1 || entries[0].UserID != 7 {
			t.Errorf("expected user 7's collection, got %+v", entries)
		}
	})
}
