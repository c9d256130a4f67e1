package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/earl-cod3/purity-ui-rbac/internal/models"
	"github.com/earl-cod3/purity-ui-rbac/internal/session"
)

type userContextKey struct{}

// SessionMiddleware resolves the bearer token into the request context.
// Requests without a valid session pass through anonymous; each handler
// decides whether a user is required.
func SessionMiddleware(sessions session.Store, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := sessionTokenFromRequest(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}
		user, err := sessions.Lookup(r.Context(), token)
		if err != nil {
			// Unknown or expired token: treat as anonymous, not an error.
			next.ServeHTTP(w, r)
			return
		}
		ctx := context.WithValue(r.Context(), userContextKey{}, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserFromContext returns the authenticated user, or nil for anonymous
// requests. The pointer form feeds directly into the routes evaluator.
func UserFromContext(ctx context.Context) *models.User {
	value := ctx.Value(userContextKey{})
	if value == nil {
		return nil
	}
	user, ok := value.(models.User)
	if !ok {
		return nil
	}
	return &user
}

func sessionTokenFromRequest(r *http.Request) string {
	if token := bearerToken(r.Header.Get("Authorization")); token != "" {
		return token
	}
	return strings.TrimSpace(r.Header.Get("X-Session-Token"))
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.Fields(header)
	if len(parts) != 2 {
		return ""
	}
	if strings.ToLower(parts[0]) != "bearer" {
		return ""
	}
	return parts[1]
}
