// Package server wires the HTTP API: middleware, routes, and the services
// behind them.
package server

import (
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"erpviz/internal/config"
	"erpviz/server/handlers"
	"erpviz/server/middleware"
	"erpviz/server/services"
)

// New builds the gin engine with the full route table.
func New(cfg *config.Config) *gin.Engine {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	sessions := services.NewSessionService(cfg.MaxSessions)
	analytics := services.NewAnalyticsService(sessions)

	datasetHandler := handlers.NewDatasetHandler(sessions, analytics, cfg.MaxUploadBytes())
	chartHandler := handlers.NewChartHandler(analytics)
	exportHandler := handlers.NewExportHandler(analytics, nil)

	r := gin.New()
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	if cfg.RateLimitRPS > 0 {
		r.Use(middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).Middleware())
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"sessions": sessions.Count(),
		})
	})

	api := r.Group("/api/v1")
	{
		api.POST("/datasets", datasetHandler.Upload)
		api.PUT("/datasets/:id", datasetHandler.Reload)
		api.GET("/datasets/:id", datasetHandler.Summary)
		api.POST("/datasets/:id/charts/:kind", chartHandler.Chart)
		api.POST("/datasets/:id/export", exportHandler.Export)
	}

	return r
}
