package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/altai/formrelay/internal/api/handlers"
	"github.com/altai/formrelay/internal/api/middleware"
	"github.com/altai/formrelay/internal/api/validation"
	"github.com/altai/formrelay/internal/config"
	"github.com/altai/formrelay/internal/logging"
	"github.com/altai/formrelay/internal/models"
	"github.com/altai/formrelay/internal/observability/metrics"
	"github.com/altai/formrelay/internal/server/routes"
	"github.com/altai/formrelay/internal/service"
	"github.com/altai/formrelay/internal/telemetry"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 10 * time.Second

// Server represents the HTTP server
type Server struct {
	router   *gin.Engine
	cfg      *config.Config
	logger   *logging.Logger
	registry *prometheus.Registry
}

// NewServer wires the services, handlers and routes for cfg
func NewServer(cfg *config.Config, logger *logging.Logger) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Disable Gin's default logger entirely because we're using our custom logger
	gin.DisableConsoleColor()
	gin.DefaultWriter = io.Discard

	// Create a new engine without default middleware
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.RemoteIPHeaders = []string{"X-Forwarded-For", "X-Real-IP"}
	// nil trusts no proxy, so ClientIP falls back to the peer address
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	relayMetrics := metrics.NewRelayMetrics(registry)

	client := telemetry.NewHTTPClient(cfg.HTTPTimeout)

	recaptchaService := service.NewRecaptchaService(service.RecaptchaConfig{
		SecretKey: cfg.RecaptchaSecretKey,
		VerifyURL: cfg.RecaptchaVerifyURL,
		MinScore:  cfg.RecaptchaMinScore,
	}, client, relayMetrics)

	salesforceService := service.NewSalesforceService(service.SalesforceConfig{
		URL: cfg.SalesforceURL,
		OID: cfg.SalesforceOID,
	}, client, relayMetrics)

	leadService := service.NewLeadService(recaptchaService, salesforceService, logger, relayMetrics)

	validate := validation.New()
	h := &routes.Handlers{
		Health: handlers.NewHealthHandler(),
	}
	for _, profile := range models.DefaultProfiles(cfg.DocumentURL, cfg.NameMinLength) {
		h.Leads = append(h.Leads, handlers.NewLeadHandler(leadService, service.NewForm(validate, profile)))
	}
	if cfg.MetricsEnabled {
		h.Metrics = promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})
	}

	routes.SetupGlobalMiddleware(router, logger, cfg.ServiceName, cfg.AllowedOrigin)
	routes.Setup(router, h, &routes.Middleware{
		RateLimit: middleware.RateLimitConfig{
			RPS:   cfg.RateLimitRPS,
			Burst: cfg.RateLimitBurst,
		},
		MaxBodySize: middleware.DefaultMaxBodySize,
	})

	return &Server{
		router:   router,
		cfg:      cfg,
		logger:   logger,
		registry: registry,
	}, nil
}

// Handler returns the root http.Handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Registry returns the Prometheus registry the relay metrics live in
func (s *Server) Registry() *prometheus.Registry {
	return s.registry
}

// Start serves until ctx is cancelled, then drains in-flight requests
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              net.JoinHostPort("", s.cfg.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      2 * s.cfg.HTTPTimeout,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return logging.WrapError(err, "http server")
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return logging.WrapError(err, "http server shutdown")
	}
	s.logger.Info("HTTP server stopped")
	return nil
}
