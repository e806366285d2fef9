// Package auth resolves bearer tokens into domain actors. Tokens are issued
// by the external auth system; this adapter verifies signatures only and
// never issues credentials.
package auth

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/abdelaziz2003vvb/Smart-University-Project-Management-Platform/internal/domain"
	"github.com/abdelaziz2003vvb/Smart-University-Project-Management-Platform/internal/ports"
)

// Compile-time interface check.
var _ ports.ActorResolver = (*JWTResolver)(nil)

// Claims carries the actor identity transmitted via a JWT. The subject is
// the actor id; the role claim names the actor's role.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// JWTResolver verifies HS256-signed tokens against a shared secret.
type JWTResolver struct {
	secret []byte
}

// NewJWTResolver creates a resolver for the given signing secret.
func NewJWTResolver(secret []byte) *JWTResolver {
	return &JWTResolver{secret: secret}
}

// Resolve parses and verifies the token and returns the actor it names.
// Any verification failure wraps domain.ErrUnauthenticated.
func (r *JWTResolver) Resolve(_ context.Context, token string) (domain.Actor, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return r.secret, nil
	})
	if err != nil {
		return domain.Actor{}, fmt.Errorf("%w: %w", domain.ErrUnauthenticated, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || claims.Subject == "" {
		return domain.Actor{}, fmt.Errorf("%w: token has no subject", domain.ErrUnauthenticated)
	}

	role := domain.Role(claims.Role)
	if !role.IsValid() {
		return domain.Actor{}, fmt.Errorf("%w: unknown role %q", domain.ErrUnauthenticated, claims.Role)
	}

	return domain.Actor{ID: claims.Subject, Role: role}, nil
}
