package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/abdelaziz2003vvb/Smart-University-Project-Management-Platform/internal/adapters/http/dto"
	"github.com/abdelaziz2003vvb/Smart-University-Project-Management-Platform/internal/domain"
	"github.com/abdelaziz2003vvb/Smart-University-Project-Management-Platform/internal/ports"
)

// actorKey is the context key for storing the authenticated actor.
type actorKey struct{}

// WithActor returns a new context with the authenticated actor stored in it.
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext extracts the authenticated actor from the context. The
// second return value is false when no actor is stored, which means the
// auth middleware did not run for this request.
func ActorFromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(domain.Actor)
	return actor, ok
}

// Auth returns middleware that authenticates each request. It expects an
// Authorization header carrying a bearer token, resolves it through the
// given resolver, and stores the resulting actor in the request context.
// Requests without a valid token are rejected with a 401 before reaching
// the handler.
func Auth(resolver ports.ActorResolver, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := bearerToken(r)
			if err != nil {
				dto.WriteErrorResponse(w, r, err)
				return
			}

			actor, err := resolver.Resolve(r.Context(), token)
			if err != nil {
				logger.DebugContext(r.Context(), "token rejected",
					slog.Any("error", err),
				)
				dto.WriteErrorResponse(w, r, err)
				return
			}

			ctx := WithActor(r.Context(), actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the token from the Authorization header. Errors wrap
// domain.ErrUnauthenticated so they map to 401.
func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", fmt.Errorf("missing authorization header: %w", domain.ErrUnauthenticated)
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", fmt.Errorf("malformed authorization header: %w", domain.ErrUnauthenticated)
	}
	return token, nil
}
