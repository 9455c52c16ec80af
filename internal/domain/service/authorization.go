package service

import (
	"erp/internal/domain/entity"
	domainerrors "erp/internal/domain/errors"

	"github.com/google/uuid"
)

// OwnedRecord is any resource that carries an owner reference.
type OwnedRecord interface {
	OwnerRef() uuid.UUID
}

// DenyReason explains a negative Decision.
type DenyReason string

// DenyNotOwner is the only deny reason: the principal does not own the record.
const DenyNotOwner DenyReason = "not_owner"

// Decision is the outcome of Authorize.
type Decision struct {
	Allowed bool
	Reason  DenyReason
}

// Err converts a deny into the boundary error; an allow yields nil.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}

	return domainerrors.ErrNotOwner
}

// Authorize allows the principal to act on record only when it owns it.
// Existence is the caller's concern: lookups return not-found before this runs.
func Authorize(principal *entity.User, record OwnedRecord) Decision {
	if principal == nil || record == nil || principal.ID != record.OwnerRef() {
		return Decision{Reason: DenyNotOwner}
	}

	return Decision{Allowed: true}
}
