package tracing

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gitlab.com/deployo/ai-backend/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

type ShutdownFunc func(context.Context) error

// Init installs an OTLP/gRPC tracer provider. Without an endpoint nothing is
// exported and the global provider stays a no-op.
func Init(ctx context.Context, cfg config.Config) (ShutdownFunc, bool, error) {
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		),
	)
	if cfg.OtelConfig.Endpoint == "" {
		return func(context.Context) error { return nil }, false, nil
	}

	exp, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(cfg.OtelConfig.Endpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, false, errors.Wrap(err, "create otlp exporter")
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(cfg.Server.Name),
			attribute.String("deployment.environment", cfg.Env),
		),
	)
	if err != nil {
		return nil, false, errors.Wrap(err, "build otel resource")
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithBatcher(exp,
			sdktrace.WithBatchTimeout(2*time.Second),
		),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.AlwaysSample())),
	)
	otel.SetTracerProvider(tp)

	return tp.Shutdown, true, nil
}
