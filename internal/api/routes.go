// internal/api/routes.go
package api

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/girder/swarm-logs-server/docs"
	"github.com/girder/swarm-logs-server/internal/config"
	"github.com/girder/swarm-logs-server/internal/templates"
)

// SetupRoutes applies middleware and defines all endpoints.
func SetupRoutes(router *gin.Engine, h *Handlers) error {
	if err := templates.LoadTemplates(router); err != nil {
		return err
	}

	router.Use(RequestIDMiddleware(), MetricsMiddleware())

	if origins := config.AppConfig.AllowedOrigins(); len(origins) > 0 {
		log.Infof("CORS enabled for origins: %v", origins)
		router.Use(CORSMiddleware(origins))
	} else {
		log.Warn("CORS_ALLOWED_ORIGINS is empty; cross-origin requests will not be allowed")
	}

	router.Use(ErrorMapperMiddleware())
	router.NoRoute(NotFoundHandler)

	// Log streaming endpoint
	router.GET("/", h.GetServiceLogsHandler)

	// Health check endpoints
	router.GET("/health", h.HealthCheckHandler)
	if config.AppConfig.SystemMetricsEnabled {
		router.GET("/health/metrics", h.SystemMetricsHandler)
	}

	// Prometheus exposition
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger documentation route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	// ReDoc documentation route
	router.GET("/redoc", func(c *gin.Context) {
		c.HTML(http.StatusOK, "redoc.html", nil)
	})

	return nil
}
