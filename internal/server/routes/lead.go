package routes

import (
	"github.com/altai/formrelay/internal/api/handlers"
	"github.com/altai/formrelay/internal/api/middleware"

	"github.com/gin-gonic/gin"
)

// SetupLeadRoutes publishes every form profile under each of its paths.
// All paths of a profile share one rate limiter. Preflight needs no route:
// the global CORS middleware answers OPTIONS on the method-not-allowed chain.
func SetupLeadRoutes(router *gin.Engine, leads []*handlers.LeadHandler, m *Middleware) {
	for _, lead := range leads {
		limiter := middleware.RateLimitMiddleware(m.RateLimit)
		decode := middleware.DecodeSubmission(m.MaxBodySize)

		for _, path := range lead.Paths() {
			router.POST(path, limiter, decode, lead.Submit)
		}
	}
}
