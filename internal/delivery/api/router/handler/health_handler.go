package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"erp/config"
	"erp/internal/delivery/api/response"
	deliverycontext "erp/internal/delivery/context"
	"erp/internal/domain/repository"

	"github.com/labstack/echo/v4"
)

const (
	healthStatusHealthy  = "healthy"
	healthStatusDegraded = "degraded"

	healthPingTimeout = 2 * time.Second
)

// HealthResponse describes the service and its database connection.
type HealthResponse struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Environment string    `json:"environment"`
	Database    string    `json:"database"`
	Error       string    `json:"error,omitempty"`
}

// HealthHandler answers liveness probes.
type HealthHandler struct {
	db     repository.DatabaseHealth
	env    string
	logger *slog.Logger
	now    func() time.Time
}

// NewHealthHandler is the constructor for HealthHandler, injected by Fx.
func NewHealthHandler(db repository.DatabaseHealth, cfg *config.Config, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		db:     db,
		env:    cfg.Env.Env,
		logger: logger,
		now:    time.Now,
	}
}

// Check always answers 200; a failed database ping downgrades the status
// instead of failing the probe.
func (h *HealthHandler) Check(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthPingTimeout)
	defer cancel()

	resp := HealthResponse{
		Status:      healthStatusHealthy,
		Timestamp:   h.now().UTC(),
		Environment: h.env,
		Database:    h.db.Driver(),
	}

	if err := h.db.Ping(ctx); err != nil {
		deliverycontext.LoggerFrom(ctx, h.logger).Warn("Health check database ping failed", slog.Any("error", err))
		resp.Status = healthStatusDegraded
		resp.Error = "database unreachable"
	}

	return response.Success(c, http.StatusOK, resp)
}
