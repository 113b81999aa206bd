package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"blog-backend/internal/models"
	"blog-backend/internal/token"
	"blog-backend/utils/response"
)

type contextKey string

const userContextKey contextKey = "user"

// TokenVerifier validates a signed token and returns its subject.
type TokenVerifier interface {
	Verify(tokenString string) (uuid.UUID, error)
}

// UserResolver maps a token subject to a live user. Implementations must
// exclude soft-deleted users so that deactivation revokes outstanding
// tokens.
type UserResolver interface {
	GetActiveUserByID(id uuid.UUID) (*models.User, error)
}

type AuthMiddleware struct {
	tokens TokenVerifier
	users  UserResolver
}

func NewAuthMiddleware(tokens TokenVerifier, users UserResolver) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, users: users}
}

// RequireAuth admits only requests carrying a valid bearer token whose
// subject resolves to an active user. The user is attached to the
// request context for downstream handlers.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, errMsg := m.authenticate(r)
		if user == nil {
			response.Error(w, http.StatusUnauthorized, errMsg)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

// RequireAdmin is RequireAuth plus an admin role check. A valid
// non-admin token gets 403, not 401.
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := GetUserFromContext(r.Context())
		if user == nil || !user.IsAdmin() {
			response.Error(w, http.StatusForbidden, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	}))
}

// OptionalAuth resolves the user when a valid token is present and lets
// the request through anonymously otherwise. Used where visibility
// depends on who is asking but nobody is turned away.
func (m *AuthMiddleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user, _ := m.authenticate(r); user != nil {
			r = r.WithContext(WithUser(r.Context(), user))
		}
		next.ServeHTTP(w, r)
	})
}

func (m *AuthMiddleware) authenticate(r *http.Request) (*models.User, string) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, "Authorization header required"
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, "Invalid token format"
	}

	userID, err := m.tokens.Verify(parts[1])
	if err != nil {
		if errors.Is(err, token.ErrExpired) {
			return nil, "Token expired"
		}
		return nil, "Invalid token"
	}

	user, err := m.users.GetActiveUserByID(userID)
	if err != nil {
		return nil, "Invalid token"
	}
	return user, ""
}

// CheckOwnership reports whether the user may operate on a resource
// owned by ownerID: admins always, everyone else only on their own.
func CheckOwnership(ownerID uuid.UUID, user *models.User) bool {
	if user == nil {
		return false
	}
	return user.IsAdmin() || user.ID == ownerID
}

// WithUser returns a context carrying the authenticated user.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// GetUserFromContext returns the authenticated user, or nil for
// anonymous requests.
func GetUserFromContext(ctx context.Context) *models.User {
	user, ok := ctx.Value(userContextKey).(*models.User)
	if !ok {
		return nil
	}
	return user
}
