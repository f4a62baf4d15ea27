package transport

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// ErrUnauthorized indicates invalid or missing credentials.
var ErrUnauthorized = errors.New("unauthorized")

type userKey struct{}

// KeyResolver resolves an API key to the user id that owns it.
type KeyResolver interface {
	Resolve(ctx context.Context, key string) (int64, error)
}

// UserFromContext returns the authenticated user id, if present.
func UserFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userKey{}).(int64)
	return userID, ok
}

// AuthMiddleware enforces bearer API key authentication.
func AuthMiddleware(resolver KeyResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			key := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
			if key == "" {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
				return
			}

			userID, err := resolver.Resolve(r.Context(), key)
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid bearer token"})
				return
			}

			ctx := context.WithValue(r.Context(), userKey{}, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
