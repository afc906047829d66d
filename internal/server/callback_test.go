package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCallbackServer(t *testing.T) {
	t.Run("Delivers Code Once", func(t *testing.T) {
		srv, err := NewCallbackServer("http://localhost:5173/callback", "")
		if err != nil {
			t.Fatalf("failed to create server: %v", err)
		}

		req := httptest.NewRequest(http.MethodGet, "/callback?code=abc123", nil)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Sign-in Complete") {
			t.Error("expected completion page")
		}

		result := <-srv.Result()
		if result.Error() != nil {
			t.Fatalf("expected no error, got %v", result.Error())
		}
		if result.Code != "abc123" {
			t.Errorf("expected code abc123, got %q", result.Code)
		}

		// Channel closes after the single delivery.
		if _, open := <-srv.Result(); open {
			t.Error("expected closed result channel")
		}
	})

	t.Run("Second Hit Is Rejected", func(t *testing.T) {
		srv, err := NewCallbackServer("http://localhost:5173/callback", "")
		if err != nil {
			t.Fatalf("failed to create server: %v", err)
		}

		first := httptest.NewRecorder()
		srv.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/callback?code=one", nil))

		second := httptest.NewRecorder()
		srv.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/callback?code=two", nil))

		if second.Code != http.StatusBadRequest {
			t.Errorf("expected 400 on replay, got %d", second.Code)
		}

		result := <-srv.Result()
		if result.Code != "one" {
			t.Errorf("replay must not override the first code, got %q", result.Code)
		}
	})

	t.Run("State Mismatch Fails", func(t *testing.T) {
		srv, err := NewCallbackServer("http://localhost:5173/callback", "expected-state")
		if err != nil {
			t.Fatalf("failed to create server: %v", err)
		}

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/callback?code=abc&state=wrong", nil))

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
		result := <-srv.Result()
		if result.Error() == nil {
			t.Error("expected state validation error")
		}
	})

	t.Run("Provider Error Is Propagated", func(t *testing.T) {
		srv, err := NewCallbackServer("http://localhost:5173/callback", "")
		if err != nil {
			t.Fatalf("failed to create server: %v", err)
		}

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/callback?error=access_denied&error_description=user+cancelled", nil))

		result := <-srv.Result()
		if result.Error() == nil {
			t.Fatal("expected error result")
		}
		if !strings.Contains(result.Error().Error(), "access_denied") {
			t.Errorf("expected provider error preserved, got %v", result.Error())
		}
	})

	t.Run("Invalid Redirect URI Is Rejected", func(t *testing.T) {
		if _, err := NewCallbackServer("://not-a-url", ""); err == nil {
			t.Error("expected error for invalid redirect URI")
		}
	})
}
