package service

import (
	"time"

	"erp/internal/domain/entity"
)

// TokenIssuer mints signed bearer assertions.
type TokenIssuer interface {
	// Issue signs an assertion for subject valid from now for ttl.
	// A zero ttl selects DefaultTTL.
	Issue(subject string, now time.Time, ttl time.Duration) (*entity.Assertion, error)

	DefaultTTL() time.Duration
}

// TokenVerifier checks an assertion's signature and lifetime without touching
// any store. It returns the verified subject and expiry.
type TokenVerifier interface {
	Verify(raw string, now time.Time) (*entity.Assertion, error)
}

// TokenService is implemented by anything that both issues and verifies tokens.
type TokenService interface {
	TokenIssuer
	TokenVerifier
}
