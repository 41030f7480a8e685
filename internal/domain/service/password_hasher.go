// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

import "github.com/pkg/errors"

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

// ErrPasswordTooLong is returned by Hash for passwords over MaxPasswordBytes bytes.
var ErrPasswordTooLong = errors.New("password exceeds 72 bytes")

// PasswordHasher defines the interface for password hashing and verification.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password. Two calls with
	// the same input return different hashes that both verify. Passwords
	// longer than MaxPasswordBytes fail with ErrPasswordTooLong.
	Hash(password string) (string, error)

	// Check compares a plaintext password with a stored hash. A malformed hash
	// never matches.
	Check(password, hash string) bool
}
