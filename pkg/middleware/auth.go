package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/andika/rekber-backend/pkg/identity"
	"github.com/andika/rekber-backend/pkg/models"
	"github.com/andika/rekber-backend/pkg/storage"
)

type callerKey struct{}

// WithCaller returns a context carrying the authenticated user.
func WithCaller(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, callerKey{}, user)
}

// CallerFrom returns the authenticated user stored on the context.
func CallerFrom(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(callerKey{}).(*models.User)
	return user, ok
}

// Authenticator resolves bearer session tokens into users.
type Authenticator struct {
	Sessions *identity.SessionCache
	Users    storage.UserStore
}

// Middleware rejects requests without a valid session and stores the caller
// on the request context.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if token == "" {
			http.Error(w, "Missing session token", http.StatusUnauthorized)
			return
		}

		userID, err := a.Sessions.ResolveSession(r.Context(), token)
		if err != nil {
			http.Error(w, "Failed to resolve session", http.StatusInternalServerError)
			return
		}
		if userID == "" {
			http.Error(w, "Session expired or unknown", http.StatusUnauthorized)
			return
		}

		user, err := a.Users.GetUser(r.Context(), userID)
		if err != nil {
			http.Error(w, "Failed to resolve user", http.StatusInternalServerError)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), user)))
	})
}

// RequireAdmin rejects callers without the admin role. It must run after the
// Authenticator.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := CallerFrom(r.Context())
		if !ok || user.Role != models.RoleAdmin {
			http.Error(w, "Admin access required", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
