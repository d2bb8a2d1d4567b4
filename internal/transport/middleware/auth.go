package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/picotan/picotan-backend/pkg/ctxutil"
)

type tokenValidator interface {
	ValidateToken(ctx context.Context, token string) (string, error)
}

// RequireAuth rejects requests without a valid bearer token: 401 when
// the token is missing, 403 when it fails verification. On success the
// username is stored in the request context.
func RequireAuth(validator tokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				http.Error(w, "unauthorized: no token provided", http.StatusUnauthorized)
				return
			}
			username, err := validator.ValidateToken(r.Context(), token)
			if err != nil {
				http.Error(w, "forbidden: invalid token", http.StatusForbidden)
				return
			}
			ctx := ctxutil.WithUsername(r.Context(), username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(auth, "Bearer ")
}
