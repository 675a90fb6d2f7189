package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"billsplit/internal/auth"
)

func TestRequireAuth(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	handler := RequireAuth(jwtManager)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(GetUsername(r.Context())))
	}))

	rejected := func(t *testing.T, header string) {
		t.Helper()
		req := httptest.NewRequest(http.MethodGet, "/api/groups", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q, want application/json", ct)
		}
		var body struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("response is not valid JSON: %v (body %q)", err, rec.Body.String())
		}
		if body.Error == "" {
			t.Error("expected a non-empty error message")
		}
	}

	t.Run("missing header yields a JSON error", func(t *testing.T) {
		rejected(t, "")
	})

	t.Run("malformed header yields a JSON error", func(t *testing.T) {
		rejected(t, "Token abc")
	})

	t.Run("garbage token yields a JSON error", func(t *testing.T) {
		rejected(t, "Bearer not.a.token")
	})

	t.Run("valid token passes the username through", func(t *testing.T) {
		token, err := jwtManager.Generate("alice")
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}

		req := httptest.NewRequest(http.MethodGet, "/api/groups", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if got := rec.Body.String(); got != "alice" {
			t.Errorf("context username = %q, want alice", got)
		}
	})
}
