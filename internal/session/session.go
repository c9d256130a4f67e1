// Package session tracks opaque bearer tokens for authenticated users.
package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"

	"github.com/earl-cod3/purity-ui-rbac/internal/models"
)

var ErrSessionNotFound = errors.New("session not found")

// Store maps live session tokens to the user they were issued for. The user
// record is snapshotted at Create time and immutable for the session's
// lifetime. Revoke of an unknown token is a no-op.
type Store interface {
	Create(ctx context.Context, user models.User) (string, error)
	Lookup(ctx context.Context, token string) (models.User, error)
	Revoke(ctx context.Context, token string) error
}

const tokenBytes = 32

// NewToken returns a fresh bearer token: 256 bits from crypto/rand,
// base64url without padding. Collisions between live tokens are negligible
// at this entropy.
func NewToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
