/**
 * @description
 * Authentication middleware for the HTTP router. RequireAuth verifies the
 * bearer token and stores its claims on the request context; RequireAdmin
 * additionally gates on the admin role. Both short-circuit before the
 * downstream handler runs.
 */

package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/greatwilliams57-droid/westmark-bank-backend/internal/domain"
	"github.com/greatwilliams57-droid/westmark-bank-backend/internal/token"
)

// claimsContextKey is a custom type for the context key to avoid collisions.
type claimsContextKey string

const claimsKey claimsContextKey = "tokenClaims"

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. Returns "" when the header is absent or malformed.
func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// RequireAuth verifies the bearer token and attaches its claims to the
// request context.
func RequireAuth(issuer *token.Issuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				writeError(w, http.StatusUnauthorized, "Authentication token required")
				return
			}
			claims, err := issuer.Verify(raw)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "Invalid token")
				return
			}
			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin verifies the bearer token and refuses callers whose derived
// role is not admin.
func RequireAdmin(issuer *token.Issuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				writeError(w, http.StatusUnauthorized, "Admin token required")
				return
			}
			claims, err := issuer.Verify(raw)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "Invalid admin token")
				return
			}
			if token.DerivedRole(claims, domain.RoleForEmail) != domain.RoleAdmin {
				writeError(w, http.StatusForbidden, "Admin access required")
				return
			}
			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext retrieves the verified token claims set by the middleware.
func ClaimsFromContext(ctx context.Context) (*token.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*token.Claims)
	return claims, ok
}
