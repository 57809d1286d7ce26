// Package tracing builds the OpenTelemetry tracer provider from explicit
// configuration. Tracing is opt-in: an absent endpoint yields a no-op provider
// and nothing is ever read from ambient process state.
package tracing

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

type Config struct {
	// Endpoint is the OTLP/HTTP collector endpoint (host:port). Empty disables
	// tracing entirely.
	Endpoint    string
	APIKey      string
	ServiceName string
	Insecure    bool
}

// ShutdownFunc flushes and stops the provider. Safe to call on the disabled
// provider.
type ShutdownFunc func(context.Context) error

// NewProvider builds a tracer provider from cfg. With an empty endpoint it
// returns a no-op provider and a no-op shutdown.
func NewProvider(ctx context.Context, cfg Config) (trace.TracerProvider, ShutdownFunc, error) {
	if strings.TrimSpace(cfg.Endpoint) == "" {
		return noop.NewTracerProvider(), func(context.Context) error { return nil }, nil
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "industrybrief"
	}

	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(cfg.Endpoint)}
	if cfg.APIKey != "" {
		opts = append(opts, otlptracehttp.WithHeaders(map[string]string{"x-api-key": cfg.APIKey}))
	}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("create otlp exporter: %w", err)
	}

	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
	))
	if err != nil {
		return nil, nil, fmt.Errorf("build resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	return tp, tp.Shutdown, nil
}
