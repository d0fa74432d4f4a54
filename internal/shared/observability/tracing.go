package observability

import (
	"context"
	"fmt"

	"layoutlint/internal/shared/version"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const serviceName = "layoutlint"

// Tracer is a no-op until SetupTracing installs an exporting provider.
var Tracer = otel.Tracer(serviceName)

// SetupTracing exports spans over OTLP/gRPC to endpoint. An empty endpoint
// leaves tracing disabled. The returned func flushes and stops the exporter.
func SetupTracing(ctx context.Context, endpoint string) (func(context.Context) error, error) {
	if endpoint == "" {
		return func(context.Context) error { return nil }, nil
	}

	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("create otlp exporter: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", serviceName),
			attribute.String("service.version", version.Version),
		)),
	)
	otel.SetTracerProvider(provider)
	return provider.Shutdown, nil
}
