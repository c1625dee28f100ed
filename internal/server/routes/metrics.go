package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetupMetricsRoutes exposes the Prometheus scrape endpoint when enabled
func SetupMetricsRoutes(router *gin.Engine, metrics http.Handler) {
	if metrics == nil {
		return
	}
	router.GET("/metrics", gin.WrapH(metrics))
}
