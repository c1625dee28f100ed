package telemetry

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/altai/formrelay/internal/version"
)

const instrumentationName = "github.com/altai/formrelay"

// ShutdownFunc flushes and stops the tracer provider
type ShutdownFunc func(context.Context) error

// TracingConfig selects the exporter. An empty Endpoint keeps the global
// no-op provider.
type TracingConfig struct {
	Endpoint    string
	ServiceName string
	Environment string
}

// InitTracing installs the global tracer provider exporting over OTLP/gRPC.
func InitTracing(ctx context.Context, cfg TracingConfig) (ShutdownFunc, error) {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	if cfg.Endpoint == "" {
		return func(context.Context) error { return nil }, nil
	}

	var opt otlptracegrpc.Option
	if strings.Contains(cfg.Endpoint, "://") {
		opt = otlptracegrpc.WithEndpointURL(cfg.Endpoint)
	} else {
		opt = otlptracegrpc.WithEndpoint(cfg.Endpoint)
	}

	exporter, err := otlptracegrpc.New(ctx, opt, otlptracegrpc.WithInsecure())
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
	}

	res := resource.NewSchemaless(
		attribute.String("service.name", cfg.ServiceName),
		attribute.String("service.version", version.Version),
		attribute.String("deployment.environment", cfg.Environment),
	)

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	return tp.Shutdown, nil
}

// Tracer returns the tracer used for pipeline spans
func Tracer() trace.Tracer {
	return otel.Tracer(instrumentationName)
}

// NewHTTPClient returns an http.Client whose requests carry client spans
// and trace headers.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}
