package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

// HeaderXProcessTime reports the server-side handling time, e.g. "3.14ms".
const HeaderXProcessTime = "X-Process-Time"

// Timing stamps every response with X-Process-Time. The header is written
// just before the response commits, so it is present on error responses too.
func Timing(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		c.Response().Before(func() {
			elapsed := float64(time.Since(start).Microseconds()) / 1000
			c.Response().Header().Set(HeaderXProcessTime, strconv.FormatFloat(elapsed, 'f', 2, 64)+"ms")
		})

		return next(c)
	}
}
