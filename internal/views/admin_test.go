package views

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/desertthunder/chorus/internal/models"
)

func TestAdminAccessDenied(t *testing.T) {
	t.Run("Forbidden Load Flags Denial", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"detail":"admin required"}`, http.StatusForbidden)
		}))
		defer server.Close()

		ctrl := NewAdminController(newViewClient(t, server.URL))
		if err := ctrl.Load(context.Background()); err == nil {
			t.Fatal("expected error")
		}
		if !ctrl.AccessDenied() {
			t.Error("403 must render as access denied, not a generic failure")
		}
	})

	t.Run("Other Failures Are Not Denial", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"detail":"boom"}`, http.StatusInternalServerError)
		}))
		defer server.Close()

		ctrl := NewAdminController(newViewClient(t, server.URL))
		if err := ctrl.Load(context.Background()); err == nil {
			t.Fatal("expected error")
		}
		if ctrl.AccessDenied() {
			t.Error("500 is a generic failure, not access denied")
		}
	})

	t.Run("Forbidden Mutation Flags Denial", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet {
				json.NewEncoder(w).Encode([]models.Music{{ID: 1, Title: "One"}})
				return
			}
			http.Error(w, `{"detail":"admin required"}`, http.StatusForbidden)
		}))
		defer server.Close()

		ctrl := NewAdminController(newViewClient(t, server.URL))
		if err := ctrl.Load(context.Background()); err != nil {
			t.Fatalf("load failed: %v", err)
		}

		if err := ctrl.Delete(context.Background(), 1); err == nil {
			t.Fatal("expected error")
		}
		if !ctrl.AccessDenied() {
			t.Error("forbidden delete must flag access denied")
		}
		if len(ctrl.Items()) != 1 {
			t.Error("failed delete must keep the entry")
		}
	})
}

func TestAdminMutations(t *testing.T) {
	listing := []models.Music{{ID: 1, Title: "One"}, {ID: 2, Title: "Two"}}

	t.Run("Create Prepends Canonical Entry", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch {
			case r.Method == http.MethodGet:
				json.NewEncoder(w).Encode(listing)
			case r.Method == http.MethodPost && r.URL.Path == "/music":
				var draft models.MusicDraft
				json.NewDecoder(r.Body).Decode(&draft)
				json.NewEncoder(w).Encode(models.Music{ID: 3, Title: draft.Title, Artist: draft.Artist})
			default:
				http.NotFound(w, r)
			}
		}))
		defer server.Close()

		ctrl := NewAdminController(newViewClient(t, server.URL))
		if err := ctrl.Load(context.Background()); err != nil {
			t.Fatalf("load failed: %v", err)
		}

		created, err := ctrl.Create(context.Background(), models.MusicDraft{Title: "Three", Artist: "Band"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if created.ID != 3 {
			t.Errorf("expected server-assigned id, got %d", created.ID)
		}

		items := ctrl.Items()
		if len(items) != 3 {
			t.Fatalf("expected 3 items, got %d", len(items))
		}
		if items[0].ID != 3 {
			t.Errorf("first element must be the server's canonical entry, got id %d", items[0].ID)
		}
	})

	t.Run("Update Replaces In Place", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch {
			case r.Method == http.MethodGet:
				json.NewEncoder(w).Encode(listing)
			case r.Method == http.MethodPut && r.URL.Path == "/update_music/2":
				json.NewEncoder(w).Encode(models.Music{ID: 2, Title: "Two (Remastered)"})
			default:
				http.NotFound(w, r)
			}
		}))
		defer server.Close()

		ctrl := NewAdminController(newViewClient(t, server.URL))
		if err := ctrl.Load(context.Background()); err != nil {
			t.Fatalf("load failed: %v", err)
		}

		if _, err := ctrl.Update(context.Background(), 2, models.MusicDraft{Title: "Two (Remastered)"}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		items := ctrl.Items()
		if items[1].ID != 2 || items[1].Title != "Two (Remastered)" {
			t.Errorf("entry must be replaced in place, got %+v", items[1])
		}
	})

	t.Run("Delete Removes After Confirm", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch {
			case r.Method == http.MethodGet:
				json.NewEncoder(w).Encode(listing)
			case r.Method == http.MethodDelete && r.URL.Path == "/delete_music/1":
				w.WriteHeader(http.StatusNoContent)
			default:
				http.NotFound(w, r)
			}
		}))
		defer server.Close()

		ctrl := NewAdminController(newViewClient(t, server.URL))
		if err := ctrl.Load(context.Background()); err != nil {
			t.Fatalf("load failed: %v", err)
		}

		if err := ctrl.Delete(context.Background(), 1); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		items := ctrl.Items()
		if len(items) != 1 || items[0].ID != 2 {
			t.Errorf("expected only entry 2 to remain, got %+v", items)
		}
	})
}
