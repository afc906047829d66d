package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/desertthunder/chorus/internal/models"
	"github.com/desertthunder/chorus/internal/shared"
	tu "github.com/desertthunder/chorus/internal/testing"
)

func newTestClient(t *testing.T, baseURL string, strategy Strategy, creds CredentialSource) *Client {
	t.Helper()
	return NewClient(ClientOpts{
		BaseURL:  baseURL,
		Strategy: strategy,
		Creds:    creds,
	})
}

func TestDo(t *testing.T) {
	t.Run("OAuth Without Token Fails Before Network Call", func(t *testing.T) {
		transport := tu.NewMockRoundTripper(nil, errors.New("must not be reached"))
		client := NewClient(ClientOpts{
			BaseURL:    "http://example.com",
			Strategy:   StrategyOAuth,
			Creds:      &tu.StaticCreds{},
			HTTPClient: &http.Client{Transport: transport},
		})

		_, err := client.Do(context.Background(), http.MethodGet, "/get_collection", nil, true)
		if !errors.Is(err, shared.ErrUnauthenticated) {
			t.Fatalf("expected ErrUnauthenticated, got %v", err)
		}
		if len(transport.Requests) != 0 {
			t.Errorf("expected no network call, saw %d", len(transport.Requests))
		}
	})

	t.Run("OAuth Attaches Bearer Token", func(t *testing.T) {
		var gotAuth, gotUserID string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			gotUserID = r.Header.Get(UserIDHeader)
			w.Write([]byte(`[]`))
		}))
		defer server.Close()

		client := newTestClient(t, server.URL, StrategyOAuth, &tu.StaticCreds{Token: "t1"})
		if _, err := client.Do(context.Background(), http.MethodGet, "/list_music", nil, true); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if gotAuth != "Bearer t1" {
			t.Errorf("expected bearer token, got %q", gotAuth)
		}
		if gotUserID != "" {
			t.Errorf("expected no user id header, got %q", gotUserID)
		}
	})

	t.Run("Impersonation Attaches User ID Header", func(t *testing.T) {
		var gotAuth, gotUserID string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			gotUserID = r.Header.Get(UserIDHeader)
			w.Write([]byte(`[]`))
		}))
		defer server.Close()

		creds := &tu.StaticCreds{UserID: 7, HasID: true}
		client := newTestClient(t, server.URL, StrategyImpersonation, creds)
		if _, err := client.Do(context.Background(), http.MethodGet, "/get_collection", nil, true); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if gotUserID != "7" {
			t.Errorf("expected X-User-ID 7, got %q", gotUserID)
		}
		if gotAuth != "" {
			t.Errorf("expected no Authorization header, got %q", gotAuth)
		}
	})

	t.Run("Impersonation Without Selection Proceeds Unauthenticated", func(t *testing.T) {
		var sawUserID bool
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, sawUserID = r.Header[UserIDHeader]
			w.Write([]byte(`[]`))
		}))
		defer server.Close()

		client := newTestClient(t, server.URL, StrategyImpersonation, &tu.StaticCreds{})
		if _, err := client.Do(context.Background(), http.MethodGet, "/get_collection", nil, true); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if sawUserID {
			t.Error("expected no X-User-ID header when no user is selected")
		}
	})

	t.Run("204 Resolves To Nil", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		client := newTestClient(t, server.URL, StrategyImpersonation, &tu.StaticCreds{UserID: 1, HasID: true})
		raw, err := client.Do(context.Background(), http.MethodDelete, "/delete_music/1", nil, true)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if raw != nil {
			t.Errorf("expected nil body, got %s", raw)
		}
	})

	t.Run("Non-2xx Maps To HTTPError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"detail":"Admin access required"}`))
		}))
		defer server.Close()

		client := newTestClient(t, server.URL, StrategyOAuth, &tu.StaticCreds{Token: "t1"})
		_, err := client.Do(context.Background(), http.MethodPost, "/music", models.MusicDraft{Title: "A", Artist: "B"}, true)

		var httpErr *HTTPError
		if !errors.As(err, &httpErr) {
			t.Fatalf("expected HTTPError, got %v", err)
		}
		if httpErr.StatusCode != http.StatusForbidden {
			t.Errorf("expected status 403, got %d", httpErr.StatusCode)
		}
		if !httpErr.AccessDenied() {
			t.Error("expected AccessDenied to be true")
		}
		if !strings.Contains(httpErr.Body, "Admin access required") {
			t.Errorf("expected raw body preserved, got %q", httpErr.Body)
		}
	})

	t.Run("Transport Failure Maps To NetworkError", func(t *testing.T) {
		transport := tu.NewMockRoundTripper(nil, errors.New("connection refused"))
		client := NewClient(ClientOpts{
			BaseURL:    "http://example.com",
			Strategy:   StrategyOAuth,
			Creds:      &tu.StaticCreds{Token: "t1"},
			HTTPClient: &http.Client{Transport: transport},
		})

		_, err := client.Do(context.Background(), http.MethodGet, "/list_music", nil, true)
		if !IsNetworkError(err) {
			t.Fatalf("expected NetworkError, got %v", err)
		}
		if IsAccessDenied(err) {
			t.Error("network failure must not read as access denied")
		}
	})

	t.Run("JSON Content Type Set On Bodied Requests", func(t *testing.T) {
		var gotContentType string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotContentType = r.Header.Get("Content-Type")
			w.Write([]byte(`{"id":1,"title":"A","artist":"B"}`))
		}))
		defer server.Close()

		client := newTestClient(t, server.URL, StrategyOAuth, &tu.StaticCreds{Token: "t1"})
		draft := models.MusicDraft{Title: "A", Artist: "B"}
		if _, err := client.CreateMusic(context.Background(), draft); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if gotContentType != "application/json" {
			t.Errorf("expected JSON content type, got %q", gotContentType)
		}
	})
}

func TestEndpoints(t *testing.T) {
	t.Run("ListMusic Decodes Catalog", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/list_music" {
				t.Errorf("expected path /list_music, got %s", r.URL.Path)
			}
			w.Write([]byte(`[{"id":1,"title":"A","artist":"X"}]`))
		}))
		defer server.Close()

		client := newTestClient(t, server.URL, StrategyImpersonation, &tu.StaticCreds{})
		items, err := client.ListMusic(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(items) != 1 || items[0].Title != "A" {
			t.Errorf("unexpected catalog: %+v", items)
		}
	})

	t.Run("ExchangeCode Posts Code And Redirect URI", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/auth/token" || r.Method != http.MethodPost {
				t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			}
			w.Write([]byte(`{"access_token":"t1","refresh_token":"r1"}`))
		}))
		defer server.Close()

		client := newTestClient(t, server.URL, StrategyOAuth, &tu.StaticCreds{})
		pair, err := client.ExchangeCode(context.Background(), "abc123", "http://localhost:5173/callback")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if pair.AccessToken != "t1" || pair.RefreshToken != "r1" {
			t.Errorf("unexpected token pair: %+v", pair)
		}
	})

	t.Run("ListComments Is Public", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "" {
				t.Error("comment listing must not attach a credential")
			}
			w.Write([]byte(`[]`))
		}))
		defer server.Close()

		// No token stored; a public call must still succeed under OAuth.
		client := newTestClient(t, server.URL, StrategyOAuth, &tu.StaticCreds{})
		if _, err := client.ListComments(context.Background(), 3); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("AddComment Rejects Blank Content Locally", func(t *testing.T) {
		client := newTestClient(t, "http://example.com", StrategyOAuth, &tu.StaticCreds{Token: "t1"})
		_, err := client.AddComment(context.Background(), models.CommentDraft{MusicID: 1, Content: "   "})
		if err == nil {
			t.Fatal("expected validation error for blank content")
		}
	})

	t.Run("AddToCollection Defaults Status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"id":5,"user_id":1,"music_id":2,"status":"none","music":{"id":2,"title":"A","artist":"X"}}`))
		}))
		defer server.Close()

		client := newTestClient(t, server.URL, StrategyOAuth, &tu.StaticCreds{Token: "t1"})
		entry, err := client.AddToCollection(context.Background(), 2, "")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if entry.Status != models.StatusNone {
			t.Errorf("expected default status none, got %s", entry.Status)
		}
	})
}
