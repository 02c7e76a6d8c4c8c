package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestFetchAccessToken(t *testing.T) {
	t.Run("successful fetch", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != tokenPath {
				t.Errorf("path = %q, want %q", r.URL.Path, tokenPath)
			}
			if r.URL.Query().Get("grant_type") != "client_credentials" {
				t.Errorf("grant_type = %q, want %q", r.URL.Query().Get("grant_type"), "client_credentials")
			}
			if r.Header.Get("Authorization") != "Basic dGVzdA==" {
				t.Errorf("authorization = %q, want %q", r.Header.Get("Authorization"), "Basic dGVzdA==")
			}
			json.NewEncoder(w).Encode(TokenResponse{
				AccessToken: "token-123",
				TokenType:   "BearerToken",
				ExpiresIn:   "43199",
			})
		}))
		defer server.Close()

		c := NewClient(server.URL, "dGVzdA==", "key")
		resp, err := c.FetchAccessToken(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.AccessToken != "token-123" {
			t.Errorf("AccessToken = %q, want %q", resp.AccessToken, "token-123")
		}
	})

	t.Run("credential already prefixed", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Basic dGVzdA==" {
				t.Errorf("authorization = %q, want %q", r.Header.Get("Authorization"), "Basic dGVzdA==")
			}
			json.NewEncoder(w).Encode(TokenResponse{AccessToken: "token-123"})
		}))
		defer server.Close()

		c := NewClient(server.URL, "Basic dGVzdA==", "key")
		if _, err := c.FetchAccessToken(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("missing credential", func(t *testing.T) {
		c := NewClient("https://api.example.com", "", "key")
		if _, err := c.FetchAccessToken(context.Background()); err == nil {
			t.Fatal("expected error for missing credential, got nil")
		}
	})

	t.Run("missing access_token in response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]string{"error": "invalid_client"})
		}))
		defer server.Close()

		c := NewClient(server.URL, "dGVzdA==", "key")
		if _, err := c.FetchAccessToken(context.Background()); err == nil {
			t.Fatal("expected error, got nil")
		}
	})
}

func TestEnsureToken(t *testing.T) {
	t.Run("caches token across calls", func(t *testing.T) {
		var fetches int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&fetches, 1)
			json.NewEncoder(w).Encode(TokenResponse{
				AccessToken: "token-123",
				ExpiresIn:   "43199",
			})
		}))
		defer server.Close()

		c := NewClient(server.URL, "dGVzdA==", "key")

		for i := 0; i < 3; i++ {
			token, err := c.ensureToken(context.Background())
			if err != nil {
				t.Fatalf("ensureToken call %d: %v", i, err)
			}
			if token != "token-123" {
				t.Errorf("token = %q, want %q", token, "token-123")
			}
		}

		if fetches != 1 {
			t.Errorf("token endpoint hit %d times, want 1", fetches)
		}
	})

	t.Run("refreshes expired token", func(t *testing.T) {
		var fetches int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			n := atomic.AddInt32(&fetches, 1)
			json.NewEncoder(w).Encode(TokenResponse{
				AccessToken: "token-" + string(rune('0'+n)),
				ExpiresIn:   "43199",
			})
		}))
		defer server.Close()

		c := NewClient(server.URL, "dGVzdA==", "key")

		if _, err := c.ensureToken(context.Background()); err != nil {
			t.Fatalf("first ensureToken: %v", err)
		}

		// Force expiry.
		c.tokenMu.Lock()
		c.tokenExpiry = time.Now().Add(-time.Minute)
		c.tokenMu.Unlock()

		token, err := c.ensureToken(context.Background())
		if err != nil {
			t.Fatalf("second ensureToken: %v", err)
		}
		if token != "token-2" {
			t.Errorf("token = %q, want %q", token, "token-2")
		}
		if fetches != 2 {
			t.Errorf("token endpoint hit %d times, want 2", fetches)
		}
	})

	t.Run("invalidate forces refetch", func(t *testing.T) {
		var fetches int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&fetches, 1)
			json.NewEncoder(w).Encode(TokenResponse{AccessToken: "token-123", ExpiresIn: "43199"})
		}))
		defer server.Close()

		c := NewClient(server.URL, "dGVzdA==", "key")

		if _, err := c.ensureToken(context.Background()); err != nil {
			t.Fatalf("ensureToken: %v", err)
		}
		c.InvalidateToken()
		if _, err := c.ensureToken(context.Background()); err != nil {
			t.Fatalf("ensureToken after invalidate: %v", err)
		}

		if fetches != 2 {
			t.Errorf("token endpoint hit %d times, want 2", fetches)
		}
	})
}
