package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	deliverycontext "erp/internal/delivery/context"
	"erp/internal/domain/entity"
	domainerrors "erp/internal/domain/errors"
	mockusecase "erp/internal/mocks/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc.def.ghi", "abc.def.ghi", true},
		{"bearer abc", "abc", true},
		{"  Bearer   abc  ", "abc", true},
		{"Basic dXNlcjpwYXNz", "", false},
		{"Bearer", "", false},
		{"Bearer ", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		token, ok := bearerToken(tt.header)
		assert.Equal(t, tt.ok, ok, tt.header)
		assert.Equal(t, tt.token, token, tt.header)
	}
}

func newAuthContext(header string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestAuthenticate_StoresPrincipal(t *testing.T) {
	uc := mockusecase.NewMockAuthUsecase(t)
	alice := &entity.User{Username: "alice", IsActive: true}
	uc.EXPECT().Resolve(mock.Anything, "tok", mock.AnythingOfType("time.Time")).Return(alice, nil)

	m := NewAuthMiddleware(uc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	c, _ := newAuthContext("Bearer tok")

	var got *entity.User
	err := m.Authenticate(func(c echo.Context) error {
		got, _ = deliverycontext.GetPrincipal(c)

		return nil
	})(c)

	require.NoError(t, err)
	assert.Same(t, alice, got)
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	uc := mockusecase.NewMockAuthUsecase(t)
	m := NewAuthMiddleware(uc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	c, _ := newAuthContext("")

	err := m.Authenticate(func(echo.Context) error { return nil })(c)

	assert.True(t, errors.Is(err, domainerrors.ErrMissingToken))
}

func TestAuthenticate_PropagatesResolveFailure(t *testing.T) {
	uc := mockusecase.NewMockAuthUsecase(t)
	uc.EXPECT().Resolve(mock.Anything, "tok", mock.Anything).Return(nil, domainerrors.ErrExpiredToken)

	m := NewAuthMiddleware(uc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	m.now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }
	c, _ := newAuthContext("Bearer tok")

	called := false
	err := m.Authenticate(func(echo.Context) error {
		called = true

		return nil
	})(c)

	assert.True(t, errors.Is(err, domainerrors.ErrExpiredToken))
	assert.False(t, called)
}

func TestErrorMiddleware_RendersEnvelope(t *testing.T) {
	m := NewErrorMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))

	c, rec := newAuthContext("")
	m.HandleHTTPError(errors.Wrap(domainerrors.ErrPrincipalNotFound, "lookup"), c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
	assert.Contains(t, rec.Body.String(), `"code":"INVALID_TOKEN"`)

	c, rec = newAuthContext("")
	m.HandleHTTPError(errors.New("boom"), c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "boom")
}
