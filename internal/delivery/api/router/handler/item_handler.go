package handler

import (
	"net/http"

	apimiddleware "erp/internal/delivery/api/middleware"
	"erp/internal/delivery/api/response"
	domainerrors "erp/internal/domain/errors"
	"erp/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ItemHandler serves the inventory endpoints. Every route sits behind Authenticate.
type ItemHandler struct {
	uc usecase.ItemUsecase
}

// NewItemHandler is the constructor for ItemHandler, injected by Fx.
func NewItemHandler(uc usecase.ItemUsecase) *ItemHandler {
	return &ItemHandler{uc: uc}
}

// List returns the caller's items, paginated by skip and limit.
func (h *ItemHandler) List(c echo.Context) error {
	principal, err := apimiddleware.Principal(c)
	if err != nil {
		return err
	}

	skip, limit := 0, usecase.DefaultItemListLimit
	if err := echo.QueryParamsBinder(c).
		Int("skip", &skip).
		Int("limit", &limit).
		BindError(); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("skip and limit must be integers")
	}

	items, err := h.uc.ListItems(c.Request().Context(), principal, skip, limit)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newItemResponses(items))
}

// Create adds an item owned by the caller.
func (h *ItemHandler) Create(c echo.Context) error {
	principal, err := apimiddleware.Principal(c)
	if err != nil {
		return err
	}

	var req createItemRequest
	if err := c.Bind(&req); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("invalid item input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	item, err := h.uc.CreateItem(c.Request().Context(), principal, &usecase.CreateItemInput{
		Name:        req.Name,
		Description: req.Description,
		Quantity:    req.Quantity,
		Price:       req.Price,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, newItemResponse(item))
}

// Get returns a single item: 404 when absent, 403 when owned by someone else.
func (h *ItemHandler) Get(c echo.Context) error {
	principal, err := apimiddleware.Principal(c)
	if err != nil {
		return err
	}
	id, err := itemID(c)
	if err != nil {
		return err
	}

	item, err := h.uc.GetItem(c.Request().Context(), principal, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newItemResponse(item))
}

// Update applies a partial update; absent fields are left unchanged.
func (h *ItemHandler) Update(c echo.Context) error {
	principal, err := apimiddleware.Principal(c)
	if err != nil {
		return err
	}
	id, err := itemID(c)
	if err != nil {
		return err
	}

	var req updateItemRequest
	if err := c.Bind(&req); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("invalid item input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	item, err := h.uc.UpdateItem(c.Request().Context(), principal, id, req.patch())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newItemResponse(item))
}

// Delete removes an item and answers 204.
func (h *ItemHandler) Delete(c echo.Context) error {
	principal, err := apimiddleware.Principal(c)
	if err != nil {
		return err
	}
	id, err := itemID(c)
	if err != nil {
		return err
	}

	if err := h.uc.DeleteItem(c.Request().Context(), principal, id); err != nil {
		return errors.WithStack(err)
	}

	return response.NoContent(c)
}

func itemID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, domainerrors.ErrValidationFailed.WithDetails("id must be a UUID")
	}

	return id, nil
}
