package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/eliteshop/eliteshop/internal/auth"
)

// UserIDContextKey is the context key carrying the authenticated user's ID.
const UserIDContextKey contextKey = "user_id"

// Authenticate validates a Bearer token when one is present and stores the
// user ID in the request context. Requests without a token pass through
// unauthenticated; anonymous cart traffic must still work.
func Authenticate(issuer *auth.TokenIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			userID, err := issuer.Verify(raw)
			if err != nil {
				// An invalid token is treated as no token. Endpoints that
				// require auth reject the anonymous request themselves.
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDContextKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AuthenticatedUser returns the user ID stored by Authenticate, or zero when
// the request is anonymous.
func AuthenticatedUser(ctx context.Context) int64 {
	if id, ok := ctx.Value(UserIDContextKey).(int64); ok {
		return id
	}
	return 0
}
