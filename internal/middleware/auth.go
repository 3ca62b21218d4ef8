package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/jswan/mercantile/internal/auth"
	"github.com/jswan/mercantile/internal/domain"
)

type contextKey string

// UserContextKey is the context key for storing the authenticated user
const UserContextKey contextKey = "user"

// UserLoader resolves an authenticated user ID to a full user record.
type UserLoader interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// WithUser verifies the Authorization bearer token and, when valid, loads
// the user into the request context. Requests without a token (or with a
// bad one) continue anonymously; route protection belongs to RequireAuth
// and RequireRole.
func WithUser(tokens *auth.TokenManager, users UserLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			user, err := users.GetUserByID(r.Context(), claims.UserID)
			if err != nil || !user.Active {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), UserContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth ensures the request carries a valid authenticated user.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetUserFromContext(r.Context()) == nil {
			respondUnauthorized(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole ensures the authenticated user holds one of the given roles.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := GetUserFromContext(r.Context())
			if user == nil {
				respondUnauthorized(w, r)
				return
			}

			for _, role := range roles {
				if user.RoleName == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			respondForbidden(w, r)
		})
	}
}

// RequireStaff ensures the authenticated user holds a back-office role.
func RequireStaff(next http.Handler) http.Handler {
	return RequireRole(domain.RoleEmployee, domain.RoleAdmin)(next)
}

// GetUserFromContext retrieves the user from the request context.
// Returns nil if no user is authenticated.
func GetUserFromContext(ctx context.Context) *domain.User {
	user, ok := ctx.Value(UserContextKey).(*domain.User)
	if !ok {
		return nil
	}
	return user
}
