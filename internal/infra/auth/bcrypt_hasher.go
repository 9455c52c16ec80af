// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"erp/config"
	domainerrors "erp/internal/domain/errors"
	"erp/internal/domain/service"
)

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost     int
	strength *config.PasswordStrengthConfig
}

// NewBcryptHasher builds the hasher from the auth and password strength sections.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	cost := bcrypt.DefaultCost
	if cfg.Auth != nil && cfg.Auth.BcryptCost != 0 {
		cost = cfg.Auth.BcryptCost
	}

	strength := cfg.PasswordStrength
	if strength == nil {
		strength = config.DefaultPasswordStrength()
	}

	return &bcryptHasher{cost: cost, strength: strength}
}

// NewBcryptHasherWithCost creates a hasher with an explicit cost and the default strength policy.
func NewBcryptHasherWithCost(cost int) service.PasswordHasher {
	return &bcryptHasher{cost: cost, strength: config.DefaultPasswordStrength()}
}

// Hash generates a salted hash from a plaintext password using bcrypt.
// bcrypt generates a fresh salt per call and embeds it, with the cost, in the digest.
func (h *bcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	return string(bytes), nil
}

// Verify compares a plaintext password with a bcrypt digest. A mismatch is
// (false, nil); a digest that is not valid bcrypt is ErrMalformedDigest.
func (h *bcryptHasher) Verify(password, digest string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword),
		errors.Is(err, bcrypt.ErrPasswordTooLong):
		return false, nil
	default:
		return false, errors.Wrap(service.ErrMalformedDigest, err.Error())
	}
}

// ValidatePasswordStrength applies the configured policy.
func (h *bcryptHasher) ValidatePasswordStrength(password string) error {
	s := h.strength
	switch {
	case len([]rune(password)) < s.MinLength:
		return domainerrors.ErrPasswordStrength.WithDetails("must be at least " + strconv.Itoa(s.MinLength) + " characters long")
	case s.MaxLength > 0 && len(password) > s.MaxLength:
		return domainerrors.ErrPasswordStrength.WithDetails("must be at most " + strconv.Itoa(s.MaxLength) + " bytes long")
	case s.RequireUppercase && !h.hasUppercase(password):
		return domainerrors.ErrPasswordStrength.WithDetails("must contain at least one uppercase letter")
	case s.RequireLowercase && !h.hasLowercase(password):
		return domainerrors.ErrPasswordStrength.WithDetails("must contain at least one lowercase letter")
	case s.RequireNumbers && !h.hasNumbers(password):
		return domainerrors.ErrPasswordStrength.WithDetails("must contain at least one number")
	}

	return nil
}

func (h *bcryptHasher) hasUppercase(s string) bool {
	return strings.IndexFunc(s, unicode.IsUpper) >= 0
}

func (h *bcryptHasher) hasLowercase(s string) bool {
	return strings.IndexFunc(s, unicode.IsLower) >= 0
}

func (h *bcryptHasher) hasNumbers(s string) bool {
	return strings.IndexFunc(s, unicode.IsDigit) >= 0
}
