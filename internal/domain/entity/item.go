package entity

import (
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	ItemNameMaxLength        = 100
	ItemDescriptionMaxLength = 500
)

var (
	ErrItemNameInvalid        = errors.New("name must be between 1 and 100 characters")
	ErrItemDescriptionInvalid = errors.New("description must be at most 500 characters")
	ErrItemQuantityInvalid    = errors.New("quantity must not be negative")
	ErrItemPriceInvalid       = errors.New("price must be greater than zero")
)

// InventoryItem is a stock record owned by exactly one user.
type InventoryItem struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID // Fixed to the creating user, never reassigned.
	Name        string
	Description *string
	Quantity    int
	Price       float64
	CreatedAt   time.Time
	UpdatedAt   *time.Time // nil until the first update.
}

// OwnerRef returns the ID of the user that owns the item.
func (i *InventoryItem) OwnerRef() uuid.UUID {
	return i.OwnerID
}

// Validate checks the field constraints shared by create and update.
func (i *InventoryItem) Validate() error {
	if n := utf8.RuneCountInString(i.Name); n < 1 || n > ItemNameMaxLength {
		return ErrItemNameInvalid
	}
	if i.Description != nil && utf8.RuneCountInString(*i.Description) > ItemDescriptionMaxLength {
		return ErrItemDescriptionInvalid
	}
	if i.Quantity < 0 {
		return ErrItemQuantityInvalid
	}
	if i.Price <= 0 {
		return ErrItemPriceInvalid
	}

	return nil
}

// ItemPatch lists the item fields a partial update may touch.
// Nil fields are left unchanged; owner and timestamps are not patchable.
type ItemPatch struct {
	Name        *string
	Description *string
	Quantity    *int
	Price       *float64
}

// IsEmpty reports whether the patch would change nothing.
func (p ItemPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Quantity == nil && p.Price == nil
}

// Apply merges the set fields into item one by one.
func (p ItemPatch) Apply(item *InventoryItem) {
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.Description != nil {
		description := *p.Description
		item.Description = &description
	}
	if p.Quantity != nil {
		item.Quantity = *p.Quantity
	}
	if p.Price != nil {
		item.Price = *p.Price
	}
}
