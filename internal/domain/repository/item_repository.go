package repository

import (
	"context"
	"errors"

	"erp/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrItemNotFound is returned when an inventory item does not exist.
var ErrItemNotFound = errors.New("item not found")

// ItemRepository persists inventory items.
type ItemRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.InventoryItem, error)

	// ListByOwner returns the owner's items ordered by creation time.
	ListByOwner(ctx context.Context, ownerID uuid.UUID, skip, limit int) ([]*entity.InventoryItem, error)

	Create(ctx context.Context, item *entity.InventoryItem) error
	Update(ctx context.Context, item *entity.InventoryItem) error
	Delete(ctx context.Context, id uuid.UUID) error
}
