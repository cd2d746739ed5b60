package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/greatwilliams57-droid/westmark-bank-backend/internal/domain"
	"github.com/greatwilliams57-droid/westmark-bank-backend/internal/token"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	return body
}

func TestRequireAuth(t *testing.T) {
	issuer := token.NewIssuer("test-secret")
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			t.Fatal("expected claims in context")
		}
		w.Write([]byte(claims.UserID))
	})
	handler := RequireAuth(issuer)(next)

	t.Run("missing token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		body := decodeEnvelope(t, rec)
		if body["success"] != false {
			t.Fatal("expected success=false envelope")
		}
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Token abc123")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer not.a.jwt")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("valid token reaches the handler", func(t *testing.T) {
		signed, err := issuer.Issue("user-42", "bob@foo.com", domain.RoleUser)
		if err != nil {
			t.Fatalf("issue failed: %v", err)
		}
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if rec.Body.String() != "user-42" {
			t.Fatalf("expected claims user id, got %q", rec.Body.String())
		}
	})
}

func TestRequireAdmin(t *testing.T) {
	issuer := token.NewIssuer("test-secret")
	var reached bool
	handler := RequireAdmin(issuer)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
	}))

	do := func(t *testing.T, authHeader string) *httptest.ResponseRecorder {
		t.Helper()
		reached = false
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if authHeader != "" {
			req.Header.Set("Authorization", authHeader)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	t.Run("missing token", func(t *testing.T) {
		if rec := do(t, ""); rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("user role refused", func(t *testing.T) {
		signed, _ := issuer.Issue("user-1", "bob@foo.com", domain.RoleUser)
		rec := do(t, "Bearer "+signed)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
		if reached {
			t.Fatal("downstream handler must not run")
		}
	})

	t.Run("admin role passes", func(t *testing.T) {
		signed, _ := issuer.Issue("user-2", "admin@financialplatform.com", domain.RoleAdmin)
		if rec := do(t, "Bearer "+signed); rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if !reached {
			t.Fatal("expected downstream handler to run")
		}
	})

	t.Run("legacy token without role claim derives from email", func(t *testing.T) {
		signed, _ := issuer.Issue("user-3", "xadminx@foo.com", "")
		if rec := do(t, "Bearer "+signed); rec.Code != http.StatusOK {
			t.Fatalf("expected 200 via email derivation, got %d", rec.Code)
		}

		signed, _ = issuer.Issue("user-4", "bob@foo.com", "")
		if rec := do(t, "Bearer "+signed); rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403 for plain user email, got %d", rec.Code)
		}
	})
}
