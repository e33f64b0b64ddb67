// Package middleware provides the authentication guard for protected routes.
package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/restfold/restfold/internal/api"
	"github.com/restfold/restfold/internal/domain"
	"github.com/restfold/restfold/internal/service/auth"
	"github.com/restfold/restfold/internal/store"
)

type contextKey string

const principalContextKey contextKey = "principal"

// PrincipalResolver resolves an authenticated user ID to a live record.
type PrincipalResolver interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// AuthMiddleware guards protected routes with bearer-token authentication.
type AuthMiddleware struct {
	jwtService auth.JWTService
	users      PrincipalResolver
	logger     *slog.Logger
}

// NewAuthMiddleware creates an AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService, users PrincipalResolver, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		users:      users,
		logger:     logger,
	}
}

// Authenticate validates the bearer token, resolves the embedded principal
// to a live record, and attaches it to the request context. A missing,
// invalid, or expired token rejects with 401, as does a token for a
// principal that no longer exists; an infrastructure failure during
// resolution is a 500, never an authorization decision.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rr := api.NewRestRequest(w, r, m.logger, nil)

		token, err := bearerToken(r)
		if err != nil {
			rr.WithError(auth.ErrNotAuthorized).Respond()
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), token)
		if err != nil {
			m.logger.Debug("rejected bearer token", "error", err)
			rr.WithError(auth.ErrNotAuthorized).Respond()
			return
		}

		principal, err := m.users.FindByID(r.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				rr.WithError(auth.ErrNotAuthorized).Respond()
				return
			}
			rr.WithError(err).Respond()
			return
		}

		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
	})
}

// bearerToken extracts the credential from the Authorization header.
func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", auth.ErrMissingToken
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", auth.ErrInvalidToken
	}
	return parts[1], nil
}

// WithPrincipal returns a context carrying the authenticated principal.
func WithPrincipal(ctx context.Context, principal *domain.User) context.Context {
	return context.WithValue(ctx, principalContextKey, principal)
}

// PrincipalFromContext returns the authenticated principal attached by
// Authenticate, if any.
func PrincipalFromContext(ctx context.Context) (*domain.User, bool) {
	principal, ok := ctx.Value(principalContextKey).(*domain.User)
	return principal, ok
}
