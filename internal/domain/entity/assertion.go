package entity

import "time"

// TokenTypeBearer is the only token type this service issues.
const TokenTypeBearer = "bearer"

// Assertion is a signed, time-bounded claim that Subject is authenticated.
// The server keeps no record of issued assertions; they end by expiry or by the holder discarding them.
type Assertion struct {
	Token     string    // Compact serialized form presented by the client.
	Subject   string    // Username of the principal.
	IssuedAt  time.Time // Second precision, UTC.
	ExpiresAt time.Time // Always strictly after IssuedAt.
}

// ValidAt reports whether the assertion has not yet expired at now.
func (a *Assertion) ValidAt(now time.Time) bool {
	return now.Before(a.ExpiresAt)
}
