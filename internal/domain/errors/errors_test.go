package errors

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestTokenRejections_AreIndistinguishableAtTheBoundary(t *testing.T) {
	kinds := []*BaseError{ErrMalformedToken, ErrExpiredToken, ErrPrincipalNotFound}

	for _, kind := range kinds {
		assert.Equal(t, http.StatusUnauthorized, kind.HTTPCode())
		assert.Equal(t, CodeInvalidToken, kind.ErrorCode())
		assert.Equal(t, ErrMalformedToken.Message(), kind.Message())
		assert.True(t, IsTokenRejection(kind.WrapMessage("resolve")))
	}

	// Internally they stay distinct.
	assert.False(t, errors.Is(ErrExpiredToken.WrapMessage("x"), ErrMalformedToken))
	assert.False(t, errors.Is(ErrPrincipalNotFound.WrapMessage("x"), ErrExpiredToken))
}

func TestBoundaryKinds_StayDistinct(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, ErrInactiveAccount.HTTPCode())
	assert.Equal(t, http.StatusForbidden, ErrNotOwner.HTTPCode())
	assert.Equal(t, http.StatusNotFound, ErrItemNotFound.HTTPCode())
	assert.Equal(t, http.StatusConflict, ErrDuplicateIdentity.HTTPCode())
	assert.Equal(t, http.StatusServiceUnavailable, ErrAuthUnavailable.HTTPCode())
	assert.False(t, IsTokenRejection(ErrInactiveAccount))
	assert.False(t, IsTokenRejection(ErrAuthUnavailable))
}

func TestAppError_SurvivesWrapping(t *testing.T) {
	err := errors.Wrap(ErrNotOwner.WrapMessage("delete item"), "handler")

	var appErr AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, "NOT_OWNER", appErr.ErrorCode())
	assert.True(t, errors.Is(err, ErrNotOwner))
}

func TestDatabaseExecuteError_Unwraps(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewDatabaseExecuteError(cause, "failed to find user")

	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, http.StatusInternalServerError, err.HTTPCode())
	assert.Equal(t, "failed to find user", err.Details())
}
