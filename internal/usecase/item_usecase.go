package usecase

import (
	"context"

	"erp/internal/domain/entity"

	"github.com/google/uuid"
)

const (
	DefaultItemListLimit = 100
	MaxItemListLimit     = 100
)

// CreateItemInput defines a new inventory item. The owner is always the caller.
type CreateItemInput struct {
	Name        string
	Description *string
	Quantity    int
	Price       float64
}

// ItemUsecase defines inventory operations. Every lookup reports not-found
// before ownership is checked.
type ItemUsecase interface {
	CreateItem(ctx context.Context, principal *entity.User, input *CreateItemInput) (*entity.InventoryItem, error)
	ListItems(ctx context.Context, principal *entity.User, skip, limit int) ([]*entity.InventoryItem, error)
	GetItem(ctx context.Context, principal *entity.User, id uuid.UUID) (*entity.InventoryItem, error)
	UpdateItem(ctx context.Context, principal *entity.User, id uuid.UUID, patch entity.ItemPatch) (*entity.InventoryItem, error)
	DeleteItem(ctx context.Context, principal *entity.User, id uuid.UUID) error
}
