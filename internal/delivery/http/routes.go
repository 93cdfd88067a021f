package http

import (
	"github.com/g-vidhulakripali/Barcode-Scanner-API/config"
	"github.com/g-vidhulakripali/Barcode-Scanner-API/internal/core"
	"github.com/gin-gonic/gin"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	if core.ParseEnvironment(cfg.Server.Environment).IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	// Logger and metrics wrap recovery so panics are still logged and counted.
	router.Use(RequestIDMiddleware())
	router.Use(LoggerMiddleware())
	if handler.metrics != nil {
		router.Use(handler.metrics.Middleware())
	}
	router.Use(RecoveryMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	router.GET("/health", handler.HealthCheck)
	if handler.metrics != nil {
		router.GET("/metrics", handler.metrics.Handler())
	}

	router.POST("/fetch-product-details", handler.FetchProductDetailsPost)
	router.GET("/fetch-product-details", handler.FetchProductDetailsGet)

	return router
}
