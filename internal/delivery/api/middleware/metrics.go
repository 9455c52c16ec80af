package middleware

import (
	"strconv"
	"time"

	"erp/internal/infra/metrics"

	"github.com/labstack/echo/v4"
)

// MetricsMiddleware records request latency by route template.
type MetricsMiddleware struct {
	metrics *metrics.AuthMetrics
}

// NewMetricsMiddleware accepts a nil collector, in which case it only forwards.
func NewMetricsMiddleware(m *metrics.AuthMetrics) *MetricsMiddleware {
	return &MetricsMiddleware{metrics: m}
}

// Observe must run inside the error handler's reach so the final status is known;
// it therefore calls c.Error itself for failed requests.
func (m *MetricsMiddleware) Observe(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		err := next(c)
		if err != nil {
			c.Error(err)
		}

		route := c.Path()
		if route == "" {
			route = "unmatched"
		}
		m.metrics.ObserveRequest(c.Request().Method, route, strconv.Itoa(c.Response().Status), time.Since(start))

		return nil
	}
}
