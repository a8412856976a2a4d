package auth

import (
	"context"
	"errors"
)

var ErrInvalidToken = errors.New("invalid token")

// AuthVerifier verifica un token y devuelve claims o error.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// IdentityResolver mapea claims verificados a un usuario local (crea o actualiza).
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, claims Claims) (Identity, error)
}
