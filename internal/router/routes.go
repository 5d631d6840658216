package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/octobees/autoschema/internal/config"
	"github.com/octobees/autoschema/internal/handler"
	middlewarepkg "github.com/octobees/autoschema/internal/middleware"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Schema *handler.SchemaHandler
	Saved  *handler.SavedSchemasHandler
}

// Register wires all HTTP routes for the API.
func Register(e *echo.Echo, cfg *config.Config, handlers Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return handler.Success(c, http.StatusOK, "service healthy", map[string]any{"status": "ok", "store": cfg.StoreBackend})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.GET("/placeholder", handlers.Schema.Placeholder)

	schema := e.Group("/schema")
	schema.POST("/generate", handlers.Schema.Generate)
	schema.POST("/validate", handlers.Schema.Validate)
	schema.POST("/render", handlers.Schema.Render)
	schema.POST("/export", handlers.Schema.Export)

	saved := e.Group("/saved", middlewarepkg.WriteRateLimiter(cfg.RateLimitWrite))
	saved.GET("", handlers.Saved.List)
	saved.POST("", handlers.Saved.Create)
	saved.GET("/:id", handlers.Saved.Get)
	saved.PUT("/:id", handlers.Saved.Update)
	saved.DELETE("/:id", handlers.Saved.Delete)
	saved.POST("/:id/duplicate", handlers.Saved.Duplicate)
	saved.GET("/:id/render", handlers.Saved.Render)
	saved.GET("/:id/export", handlers.Saved.Export)
}
