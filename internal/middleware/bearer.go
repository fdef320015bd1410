// Package middleware provides HTTP middlewares for authentication and logging.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/atinyakov/FleetKeeper/internal/auth"
	"github.com/atinyakov/FleetKeeper/internal/httperr"
	"github.com/atinyakov/FleetKeeper/internal/models"
	"go.uber.org/zap"
)

type ctxKey string

const principalKey ctxKey = "principal"

// CredentialsError is the message of every rejected bearer token.
const CredentialsError = "Could not validate credentials"

// TokenResolver maps a bearer token to the calling principal.
type TokenResolver interface {
	ResolveToken(ctx context.Context, token string) (*models.User, error)
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header. The scheme is matched case-insensitively.
func BearerToken(r *http.Request) (string, bool) {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// BearerAuth rejects requests without a resolvable bearer token before they
// reach next. Every failure kind is answered with the same 401; the kind is
// only logged. The resolved principal is stored in the request context.
func BearerAuth(resolver TokenResolver, log *zap.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := BearerToken(r)
			if !ok {
				httperr.Write(w, httperr.Unauthorized(CredentialsError))
				return
			}

			user, err := resolver.ResolveToken(r.Context(), token)
			if err != nil {
				if !auth.IsAuthError(err) {
					log.Error("resolve token", zap.Error(err))
					httperr.Write(w, httperr.Internal())
					return
				}
				log.Info("bearer rejected", zap.String("path", r.URL.Path), zap.Error(err))
				httperr.Write(w, httperr.Unauthorized(CredentialsError))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), user)))
		})
	}
}

// WithPrincipal returns a copy of ctx carrying user.
func WithPrincipal(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, principalKey, user)
}

// GetPrincipalFromContext returns the principal stored by BearerAuth, or nil.
func GetPrincipalFromContext(ctx context.Context) *models.User {
	u, _ := ctx.Value(principalKey).(*models.User)
	return u
}
