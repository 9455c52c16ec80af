package context

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"erp/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEchoContext() echo.Context {
	return echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
}

func TestAttach(t *testing.T) {
	c := newEchoContext()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	Attach(c, "req-1", logger)

	assert.Equal(t, "req-1", RequestID(c))
	assert.Equal(t, "req-1", c.Response().Header().Get(HeaderXRequestID))
	assert.Equal(t, "req-1", RequestIDFrom(c.Request().Context()))
	assert.Same(t, logger, LoggerFrom(c.Request().Context(), nil))
}

func TestRequestValuesOutsideMiddleware(t *testing.T) {
	fallback := slog.New(slog.NewTextHandler(io.Discard, nil))

	assert.Empty(t, RequestID(newEchoContext()))
	assert.Empty(t, RequestIDFrom(context.Background()))
	assert.Same(t, fallback, LoggerFrom(context.Background(), fallback))
}

func TestPrincipal(t *testing.T) {
	c := newEchoContext()

	_, ok := GetPrincipal(c)
	assert.False(t, ok)

	user := &entity.User{Username: "alice"}
	SetPrincipal(c, user)

	got, ok := GetPrincipal(c)
	require.True(t, ok)
	assert.Same(t, user, got)
}
