package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	deliverycontext "erp/internal/delivery/context"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func serve(t *testing.T, mw echo.MiddlewareFunc, header string, handler echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	e.Use(mw)
	e.GET("/", handler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(deliverycontext.HeaderXRequestID, header)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func TestRequestIDMiddleware_PropagatesCallerID(t *testing.T) {
	mw := NewRequestIDMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))

	var seen string
	var hasLogger bool
	rec := serve(t, mw.Process, "abc-123", func(c echo.Context) error {
		seen = deliverycontext.RequestIDFrom(c.Request().Context())
		hasLogger = deliverycontext.LoggerFrom(c.Request().Context(), nil) != nil

		return c.NoContent(http.StatusOK)
	})

	assert.Equal(t, "abc-123", seen)
	assert.True(t, hasLogger)
	assert.Equal(t, "abc-123", rec.Header().Get(deliverycontext.HeaderXRequestID))
}

func TestRequestIDMiddleware_ReplacesOversizedID(t *testing.T) {
	mw := NewRequestIDMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))

	rec := serve(t, mw.Process, strings.Repeat("x", maxRequestIDLength+1), func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	got := rec.Header().Get(deliverycontext.HeaderXRequestID)
	assert.NotEmpty(t, got)
	assert.LessOrEqual(t, len(got), maxRequestIDLength)
}

func TestTiming_SetsHeaderOnErrors(t *testing.T) {
	rec := serve(t, Timing, "", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusTeapot, "nope")
	})

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.True(t, strings.HasSuffix(rec.Header().Get(HeaderXProcessTime), "ms"))
}
