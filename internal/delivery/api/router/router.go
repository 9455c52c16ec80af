// Package router wires handlers and middleware onto echo routes.
package router

import (
	"erp/config"
	"erp/internal/delivery/api/middleware"
	"erp/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	ItemHandler    *handler.ItemHandler
	HealthHandler  *handler.HealthHandler
	AuthMiddleware *middleware.AuthMiddleware
	Gatherer       prometheus.Gatherer `optional:"true"`
	Config         *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	itemHandler    *handler.ItemHandler
	healthHandler  *handler.HealthHandler
	authMiddleware *middleware.AuthMiddleware
	gatherer       prometheus.Gatherer
	config         *config.Config
}

// NewRouter is the constructor for the Router.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		itemHandler:    params.ItemHandler,
		healthHandler:  params.HealthHandler,
		authMiddleware: params.AuthMiddleware,
		gatherer:       params.Gatherer,
		config:         params.Config,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api")

	api.GET("/health", r.healthHandler.Check)

	// Public authentication routes
	api.POST("/token", r.authHandler.Token)
	api.POST("/register", r.authHandler.Register)

	users := api.Group("/users", r.authMiddleware.Authenticate)
	{
		users.GET("/me", r.authHandler.Me)
		users.PATCH("/me", r.authHandler.UpdateMe)
	}

	items := api.Group("/items", r.authMiddleware.Authenticate)
	{
		items.GET("/", r.itemHandler.List)
		items.GET("", r.itemHandler.List)
		items.POST("/", r.itemHandler.Create)
		items.POST("", r.itemHandler.Create)
		items.GET("/:id", r.itemHandler.Get)
		items.PUT("/:id", r.itemHandler.Update)
		items.DELETE("/:id", r.itemHandler.Delete)
	}

	if r.gatherer != nil && r.config.Metrics != nil && r.config.Metrics.Enabled {
		e.GET(r.config.Metrics.Path, echo.WrapHandler(promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})))
	}
}
