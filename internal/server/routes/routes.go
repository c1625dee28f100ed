package routes

import (
	"strings"

	"github.com/altai/formrelay/internal/api/handlers"
	"github.com/altai/formrelay/internal/api/middleware"
	"github.com/altai/formrelay/internal/logging"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Setup configures all routes
func Setup(router *gin.Engine, h *Handlers, m *Middleware) {
	logger := logging.GetGlobalLogger()

	SetupHealthRoutes(router, h.Health)
	SetupMetricsRoutes(router, h.Metrics)
	SetupLeadRoutes(router, h.Leads, m)

	router.NoMethod(handlers.MethodNotAllowed)
	router.NoRoute(handlers.NotFound)

	for _, lead := range h.Leads {
		logger.Info("Form %s served at %s", lead.Name(), strings.Join(lead.Paths(), ", "))
	}
	logger.Info("All routes have been set up successfully")
}

// SetupGlobalMiddleware configures middleware that applies to all routes
func SetupGlobalMiddleware(router *gin.Engine, logger *logging.Logger, serviceName, allowedOrigin string) {
	router.Use(otelgin.Middleware(serviceName))
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CORS(allowedOrigin))
}

