package routes

import (
	"net/http"

	"github.com/altai/formrelay/internal/api/handlers"
	"github.com/altai/formrelay/internal/api/middleware"
)

// Handlers contains all the route handlers
type Handlers struct {
	Leads   []*handlers.LeadHandler
	Health  *handlers.HealthHandler
	Metrics http.Handler
}

// Middleware contains the per-route middleware settings
type Middleware struct {
	RateLimit   middleware.RateLimitConfig
	MaxBodySize int64
}
