package impl

import (
	"context"
	"testing"

	"erp/internal/domain/entity"
	domainerrors "erp/internal/domain/errors"
	"erp/internal/domain/repository"
	mockRepo "erp/internal/mocks/repository"
	"erp/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type itemServiceFixtures struct {
	service   usecase.ItemUsecase
	txManager *mockRepo.MockTransactionManager
	itemRepo  *mockRepo.MockItemRepository
}

func createTestItemService(t *testing.T) itemServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	itemRepo := mockRepo.NewMockItemRepository(t)

	svc := NewItemService(ItemServiceParams{
		TxManager: txManager,
		ItemRepo:  itemRepo,
		Logger:    newDiscardLogger(),
	})
	svc.(*itemService).now = fixedClock

	return itemServiceFixtures{service: svc, txManager: txManager, itemRepo: itemRepo}
}

// inTransaction makes the mocked transaction manager run fn against txItemRepo.
func inTransaction(t *testing.T, fx itemServiceFixtures, txItemRepo *mockRepo.MockItemRepository) {
	fx.txManager.EXPECT().
		Execute(mock.Anything, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			factory := mockRepo.NewMockRepositoryFactory(t)
			factory.EXPECT().NewItemRepository().Return(txItemRepo)

			return fn(factory)
		})
}

func newOwnedItem(owner *entity.User) *entity.InventoryItem {
	return &entity.InventoryItem{
		ID:        uuid.New(),
		OwnerID:   owner.ID,
		Name:      "bolts",
		Quantity:  10,
		Price:     0.25,
		CreatedAt: fixedNow,
	}
}

func TestItemService_CreateItem_PinsOwner(t *testing.T) {
	fx := createTestItemService(t)
	ctx := context.Background()
	alice := newActiveUser("alice")

	fx.itemRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.InventoryItem")).
		Run(func(_ context.Context, item *entity.InventoryItem) {
			assert.Equal(t, alice.ID, item.OwnerID)
			assert.Equal(t, fixedNow, item.CreatedAt)
			assert.Nil(t, item.UpdatedAt)
		}).
		Return(nil)

	item, err := fx.service.CreateItem(ctx, alice, &usecase.CreateItemInput{Name: "bolts", Quantity: 10, Price: 0.25})

	require.NoError(t, err)
	assert.Equal(t, alice.ID, item.OwnerRef())
}

func TestItemService_CreateItem_Validation(t *testing.T) {
	fx := createTestItemService(t)
	alice := newActiveUser("alice")

	for name, input := range map[string]*usecase.CreateItemInput{
		"empty name":     {Name: "", Quantity: 1, Price: 1},
		"negative stock": {Name: "bolts", Quantity: -1, Price: 1},
		"zero price":     {Name: "bolts", Quantity: 1, Price: 0},
	} {
		_, err := fx.service.CreateItem(context.Background(), alice, input)

		var appErr domainerrors.AppError
		require.True(t, errors.As(err, &appErr), name)
		assert.Equal(t, domainerrors.ErrValidationFailed.ErrorCode(), appErr.ErrorCode(), name)
	}
}

func TestItemService_ListItems_ClampsLimit(t *testing.T) {
	fx := createTestItemService(t)
	ctx := context.Background()
	alice := newActiveUser("alice")

	fx.itemRepo.EXPECT().ListByOwner(ctx, alice.ID, 0, usecase.DefaultItemListLimit).Return([]*entity.InventoryItem{}, nil).Twice()

	_, err := fx.service.ListItems(ctx, alice, 0, 0)
	require.NoError(t, err)
	_, err = fx.service.ListItems(ctx, alice, 0, 1000)
	require.NoError(t, err)

	_, err = fx.service.ListItems(ctx, alice, -1, 10)
	assert.Error(t, err)
}

func TestItemService_GetItem_NotFoundBeforeOwnership(t *testing.T) {
	fx := createTestItemService(t)
	ctx := context.Background()
	alice := newActiveUser("alice")
	bob := newActiveUser("bob")
	bobItem := newOwnedItem(bob)
	missing := uuid.New()

	fx.itemRepo.EXPECT().FindByID(ctx, missing).Return(nil, repository.ErrItemNotFound)
	fx.itemRepo.EXPECT().FindByID(ctx, bobItem.ID).Return(bobItem, nil)

	_, err := fx.service.GetItem(ctx, alice, missing)
	assert.True(t, errors.Is(err, domainerrors.ErrItemNotFound))

	_, err = fx.service.GetItem(ctx, alice, bobItem.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrNotOwner))

	item, err := fx.service.GetItem(ctx, bob, bobItem.ID)
	require.NoError(t, err)
	assert.Equal(t, bobItem.ID, item.ID)
}

func TestItemService_UpdateItem(t *testing.T) {
	fx := createTestItemService(t)
	ctx := context.Background()
	alice := newActiveUser("alice")
	item := newOwnedItem(alice)
	txItemRepo := mockRepo.NewMockItemRepository(t)
	inTransaction(t, fx, txItemRepo)

	quantity := 0
	txItemRepo.EXPECT().FindByID(ctx, item.ID).Return(item, nil)
	txItemRepo.EXPECT().Update(ctx, item).Return(nil)

	updated, err := fx.service.UpdateItem(ctx, alice, item.ID, entity.ItemPatch{Quantity: &quantity})

	require.NoError(t, err)
	assert.Equal(t, 0, updated.Quantity)
	assert.Equal(t, "bolts", updated.Name)
	require.NotNil(t, updated.UpdatedAt)
	assert.Equal(t, fixedNow, *updated.UpdatedAt)
}

func TestItemService_UpdateItem_ForeignItemIsForbidden(t *testing.T) {
	fx := createTestItemService(t)
	ctx := context.Background()
	alice := newActiveUser("alice")
	bobItem := newOwnedItem(newActiveUser("bob"))
	txItemRepo := mockRepo.NewMockItemRepository(t)
	inTransaction(t, fx, txItemRepo)

	name := "stolen"
	txItemRepo.EXPECT().FindByID(ctx, bobItem.ID).Return(bobItem, nil)

	_, err := fx.service.UpdateItem(ctx, alice, bobItem.ID, entity.ItemPatch{Name: &name})

	assert.True(t, errors.Is(err, domainerrors.ErrNotOwner))
	assert.Equal(t, "bolts", bobItem.Name)
}

func TestItemService_UpdateItem_InvalidPatch(t *testing.T) {
	fx := createTestItemService(t)
	ctx := context.Background()
	alice := newActiveUser("alice")
	item := newOwnedItem(alice)
	txItemRepo := mockRepo.NewMockItemRepository(t)
	inTransaction(t, fx, txItemRepo)

	price := -1.0
	txItemRepo.EXPECT().FindByID(ctx, item.ID).Return(item, nil)

	_, err := fx.service.UpdateItem(ctx, alice, item.ID, entity.ItemPatch{Price: &price})

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, domainerrors.ErrValidationFailed.ErrorCode(), appErr.ErrorCode())
}

func TestItemService_DeleteItem(t *testing.T) {
	ctx := context.Background()
	alice := newActiveUser("alice")

	t.Run("owner deletes", func(t *testing.T) {
		fx := createTestItemService(t)
		item := newOwnedItem(alice)
		txItemRepo := mockRepo.NewMockItemRepository(t)
		inTransaction(t, fx, txItemRepo)

		txItemRepo.EXPECT().FindByID(ctx, item.ID).Return(item, nil)
		txItemRepo.EXPECT().Delete(ctx, item.ID).Return(nil)

		require.NoError(t, fx.service.DeleteItem(ctx, alice, item.ID))
	})

	t.Run("missing item", func(t *testing.T) {
		fx := createTestItemService(t)
		missing := uuid.New()
		txItemRepo := mockRepo.NewMockItemRepository(t)
		inTransaction(t, fx, txItemRepo)

		txItemRepo.EXPECT().FindByID(ctx, missing).Return(nil, repository.ErrItemNotFound)

		err := fx.service.DeleteItem(ctx, alice, missing)
		assert.True(t, errors.Is(err, domainerrors.ErrItemNotFound))
	})
}
