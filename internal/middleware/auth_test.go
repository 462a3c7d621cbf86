package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/eliteshop/eliteshop/internal/auth"
)

func TestAuthenticate(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret")
	token, err := issuer.Issue(42, "jo@example.com")
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	var gotUserID int64
	handler := Authenticate(issuer)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = AuthenticatedUser(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		authHeader string
		wantUserID int64
	}{
		{"valid bearer token", "Bearer " + token, 42},
		{"no header", "", 0},
		{"malformed header", "Token " + token, 0},
		{"garbage token", "Bearer garbage", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotUserID = -1
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			// Requests always pass through; only the context differs.
			if w.Code != http.StatusOK {
				t.Errorf("status = %d, want 200", w.Code)
			}
			if gotUserID != tt.wantUserID {
				t.Errorf("user ID = %d, want %d", gotUserID, tt.wantUserID)
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetRequestID(r.Context()) == "" {
			t.Error("request ID missing from context")
		}
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("generates an ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if w.Header().Get(RequestIDHeader) == "" {
			t.Error("response is missing the request ID header")
		}
	})

	t.Run("honors an upstream ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "upstream-id")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if got := w.Header().Get(RequestIDHeader); got != "upstream-id" {
			t.Errorf("request ID = %q, want upstream-id", got)
		}
	})
}
