package tracing

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	envcfg "clip-summarize/pkg/config"
)

// Config holds OpenTelemetry trace export configuration.
type Config struct {
	Enabled        bool
	ServiceName    string
	ServiceVersion string
	// OTLPEndpoint is the collector base URL; "/v1/traces" is appended.
	OTLPEndpoint   string
}

// ConfigFromEnv reads OTEL_ENABLED (default false), OTEL_SERVICE_NAME and
// OTEL_EXPORTER_OTLP_ENDPOINT.
func ConfigFromEnv(version string) Config {
	return Config{
		Enabled:        envcfg.GetEnvBool("OTEL_ENABLED", false),
		ServiceName:    envcfg.GetEnvString("OTEL_SERVICE_NAME", TracerName),
		ServiceVersion: version,
		OTLPEndpoint:   envcfg.GetEnvString("OTEL_EXPORTER_OTLP_ENDPOINT", "http://localhost:4318"),
	}
}

// ShutdownFunc flushes and stops the installed provider.
type ShutdownFunc func(context.Context) error

// InitProvider installs a global tracer provider exporting over OTLP/HTTP.
// When cfg.Enabled is false nothing is installed and spans stay no-ops.
func InitProvider(ctx context.Context, cfg Config) (ShutdownFunc, error) {
	if !cfg.Enabled {
		return func(context.Context) error { return nil }, nil
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.ServiceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpointURL(cfg.OTLPEndpoint+"/v1/traces"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(5*time.Second)),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return tp.Shutdown, nil
}
