package service

import (
	"testing"

	"erp/internal/domain/entity"
	domainerrors "erp/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAuthorize(t *testing.T) {
	alice := &entity.User{ID: uuid.New(), Username: "alice"}
	bob := &entity.User{ID: uuid.New(), Username: "bob"}
	item := &entity.InventoryItem{ID: uuid.New(), OwnerID: alice.ID, Name: "bolts"}

	t.Run("owner is allowed", func(t *testing.T) {
		decision := Authorize(alice, item)
		assert.True(t, decision.Allowed)
		assert.NoError(t, decision.Err())
	})

	t.Run("other principal is denied", func(t *testing.T) {
		decision := Authorize(bob, item)
		assert.False(t, decision.Allowed)
		assert.Equal(t, DenyNotOwner, decision.Reason)
		assert.ErrorIs(t, decision.Err(), domainerrors.ErrNotOwner)
	})

	t.Run("missing principal is denied", func(t *testing.T) {
		decision := Authorize(nil, item)
		assert.False(t, decision.Allowed)
	})
}
