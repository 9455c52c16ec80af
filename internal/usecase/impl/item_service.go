package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "erp/internal/delivery/context"
	"erp/internal/domain/entity"
	domainerrors "erp/internal/domain/errors"
	"erp/internal/domain/repository"
	"erp/internal/domain/service"
	"erp/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// itemService implements the ItemUsecase interface.
type itemService struct {
	txManager repository.TransactionManager
	itemRepo  repository.ItemRepository
	logger    *slog.Logger
	now       func() time.Time
}

// ItemServiceParams holds dependencies for ItemService, injected by Fx.
type ItemServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	ItemRepo  repository.ItemRepository
	Logger    *slog.Logger
}

// NewItemService is the constructor for itemService.
func NewItemService(params ItemServiceParams) usecase.ItemUsecase {
	return &itemService{
		txManager: params.TxManager,
		itemRepo:  params.ItemRepo,
		logger:    params.Logger,
		now:       time.Now,
	}
}

func (srv *itemService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.LoggerFrom(ctx, srv.logger)
}

// CreateItem stores a new item owned by the principal.
func (srv *itemService) CreateItem(ctx context.Context, principal *entity.User, input *usecase.CreateItemInput) (*entity.InventoryItem, error) {
	item := &entity.InventoryItem{
		OwnerID:     principal.ID,
		Name:        input.Name,
		Description: input.Description,
		Quantity:    input.Quantity,
		Price:       input.Price,
		CreatedAt:   srv.now().UTC(),
	}
	if err := item.Validate(); err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	if err := srv.itemRepo.Create(ctx, item); err != nil {
		return nil, errors.Wrap(err, "failed to create item")
	}

	srv.log(ctx).Debug("Item created", slog.Any("itemID", item.ID), slog.Any("ownerID", principal.ID))

	return item, nil
}

// ListItems returns a page of the principal's own items.
func (srv *itemService) ListItems(ctx context.Context, principal *entity.User, skip, limit int) ([]*entity.InventoryItem, error) {
	if skip < 0 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("skip must not be negative")
	}
	if limit <= 0 || limit > usecase.MaxItemListLimit {
		limit = usecase.DefaultItemListLimit
	}

	items, err := srv.itemRepo.ListByOwner(ctx, principal.ID, skip, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list items")
	}

	return items, nil
}

// GetItem returns the item if it exists and belongs to the principal.
func (srv *itemService) GetItem(ctx context.Context, principal *entity.User, id uuid.UUID) (*entity.InventoryItem, error) {
	return srv.loadOwned(ctx, srv.itemRepo, principal, id)
}

// UpdateItem applies patch to an owned item. Lookup, ownership check and
// write happen in one transaction.
func (srv *itemService) UpdateItem(ctx context.Context, principal *entity.User, id uuid.UUID, patch entity.ItemPatch) (*entity.InventoryItem, error) {
	var updated *entity.InventoryItem

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		itemRepo := repoFactory.NewItemRepository()

		item, err := srv.loadOwned(ctx, itemRepo, principal, id)
		if err != nil {
			return err
		}

		patch.Apply(item)
		if err := item.Validate(); err != nil {
			return domainerrors.ErrValidationFailed.WithDetails(err.Error())
		}

		updatedAt := srv.now().UTC()
		item.UpdatedAt = &updatedAt

		if err := itemRepo.Update(ctx, item); err != nil {
			return errors.Wrap(err, "failed to update item")
		}
		updated = item

		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteItem removes an owned item.
func (srv *itemService) DeleteItem(ctx context.Context, principal *entity.User, id uuid.UUID) error {
	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		itemRepo := repoFactory.NewItemRepository()

		if _, err := srv.loadOwned(ctx, itemRepo, principal, id); err != nil {
			return err
		}

		if err := itemRepo.Delete(ctx, id); err != nil {
			return errors.Wrap(err, "failed to delete item")
		}

		return nil
	})
}

// loadOwned reports not-found before ownership so absent and foreign items stay distinguishable.
func (srv *itemService) loadOwned(ctx context.Context, itemRepo repository.ItemRepository, principal *entity.User, id uuid.UUID) (*entity.InventoryItem, error) {
	item, err := itemRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return nil, errors.Wrap(domainerrors.ErrItemNotFound, "load item")
		}

		return nil, errors.Wrap(err, "failed to load item")
	}

	if err := service.Authorize(principal, item).Err(); err != nil {
		srv.log(ctx).Warn("Item access denied", slog.Any("itemID", id), slog.Any("principalID", principal.ID))

		return nil, errors.Wrap(err, "load item")
	}

	return item, nil
}
