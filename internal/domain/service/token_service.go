package service

import (
	"postboard/internal/domain/entity"

	"github.com/pkg/errors"
)

// ErrInvalidToken is returned for any token that fails structural, signature or claim checks.
// Callers treat it exactly like a missing token.
var ErrInvalidToken = errors.New("invalid session token")

// TokenService issues and verifies self-contained session tokens.
// Tokens carry no expiry and there is no revocation: a token stays valid until the secret rotates.
type TokenService interface {
	// Issue signs the identity into a token.
	Issue(identity entity.Identity) (string, error)

	// Verify checks the signature and decodes the identity, or returns ErrInvalidToken.
	Verify(token string) (entity.Identity, error)
}
