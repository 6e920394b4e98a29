package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/dtroode/todo-server/internal/logger"
	"github.com/dtroode/todo-server/internal/model"
)

// AuthHeader carries the raw session token on requests and on issuing responses.
const AuthHeader = "x-auth"

// TokenResolver resolves a raw token to the principal it authenticates.
type TokenResolver interface {
	ResolveToken(ctx context.Context, token string) (model.Principal, error)
}

// Authenticate rejects requests without an active token and attaches the
// principal to the context of the rest.
type Authenticate struct {
	resolver       TokenResolver
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewAuthenticate(resolver TokenResolver, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{resolver: resolver, contextManager: contextManager, logger: logger}
}

// Handle wraps next. Missing, malformed and revoked tokens get a 401 with an
// empty body; next is not called.
func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, err := m.resolver.ResolveToken(r.Context(), r.Header.Get(AuthHeader))
		if err != nil {
			if errors.Is(err, model.ErrUnauthorized) {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			m.logger.Error("Authenticate middleware: failed to resolve token",
				"path", r.URL.Path,
				"error", err.Error())
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		ctx := m.contextManager.SetPrincipalToContext(r.Context(), principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
