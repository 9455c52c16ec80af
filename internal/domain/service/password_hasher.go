// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

import "errors"

// ErrMalformedDigest is returned by Verify when the stored digest cannot be
// parsed. It is distinct from a plain mismatch.
var ErrMalformedDigest = errors.New("malformed password digest")

// PasswordHasher defines the interface for password hashing and verification.
// This abstracts the underlying hashing algorithm (e.g., bcrypt), keeping the domain pure.
type PasswordHasher interface {
	// Hash generates a salted digest from a plaintext password. Two calls with
	// the same input produce different digests.
	Hash(password string) (string, error)

	// Verify reports whether password matches digest.
	Verify(password, digest string) (bool, error)

	// ValidatePasswordStrength checks the password against the configured policy.
	ValidatePasswordStrength(password string) error
}
