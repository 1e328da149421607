package api

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"hybrid-dispatch/internal/api/handlers"
	"hybrid-dispatch/internal/api/middleware"
	"hybrid-dispatch/internal/config"
	"hybrid-dispatch/internal/metrics"
	"hybrid-dispatch/internal/telemetry"
)

// NewRouter wires all routes and middleware.
func NewRouter(cfg *config.Config, sink telemetry.Sink) *gin.Engine {
	if os.Getenv("APP_ENV") != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(metrics.Middleware())

	simulateHandler := handlers.NewSimulateHandler(cfg, sink)
	catalogHandler := handlers.NewCatalogHandler(cfg)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/simulate", simulateHandler.RunSimulation)
		v1.POST("/sweep", simulateHandler.RunSweep)
		v1.GET("/datasets", catalogHandler.ListDatasets)
		v1.GET("/plants", catalogHandler.ListPlants)
	}

	return router
}
