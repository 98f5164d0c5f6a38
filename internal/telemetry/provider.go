// Package telemetry registers the process-wide OpenTelemetry tracer provider that the
// bridge reports call spans through.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Config controls span export. Tracing is on only when Enabled is set and Endpoint
// names an OTLP/HTTP collector.
type Config struct {
	Enabled  bool   `env:"ENABLED" envDefault:"true"`
	Endpoint string `env:"ENDPOINT"`
}

// Active reports whether Setup would register a provider.
func (c Config) Active() bool {
	return c.Enabled && c.Endpoint != ""
}

// Setup exports spans for serviceName to the configured collector and installs the
// provider globally. When tracing is inactive it returns a no-op shutdown and leaves
// the global provider alone.
//
// The returned shutdown flushes pending spans and should be deferred by the caller.
func Setup(ctx context.Context, cfg Config, serviceName string) (shutdown func(context.Context) error, err error) {
	noop := func(context.Context) error { return nil }
	if !cfg.Active() {
		return noop, nil
	}

	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(cfg.Endpoint))
	if err != nil {
		return noop, fmt.Errorf("telemetry: create exporter: %w", err)
	}

	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(serviceName)))
	if err != nil {
		return noop, fmt.Errorf("telemetry: build resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}
