// Package telemetry provides OpenTelemetry instrumentation for distributed tracing.
// Пакет telemetry предоставляет инструментацию OpenTelemetry для распределённой трассировки.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentationName names the tracer used by services and middleware.
// InstrumentationName - имя трассировщика сервисов и middleware.
const InstrumentationName = "github.com/Twit-Snap/users-service"

// Config holds telemetry configuration.
// Config содержит конфигурацию телеметрии.
type Config struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	OTLPEndpoint   string
	Enabled        bool
}

// Provider wraps OpenTelemetry providers.
// Provider оборачивает провайдеры OpenTelemetry.
type Provider struct {
	TracerProvider *sdktrace.TracerProvider
	Tracer         trace.Tracer
}

// InitTelemetry initializes OpenTelemetry with the given configuration.
// InitTelemetry инициализирует OpenTelemetry с заданной конфигурацией.
//
// When disabled, an SDK provider without exporters is installed so spans are
// still created and carry trace ids into logs.
// При отключении устанавливается SDK-провайдер без экспортёров, поэтому
// спаны создаются и передают trace id в логи.
func InitTelemetry(ctx context.Context, cfg Config) (*Provider, error) {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	if !cfg.Enabled {
		tp := sdktrace.NewTracerProvider()
		otel.SetTracerProvider(tp)
		return &Provider{TracerProvider: tp, Tracer: tp.Tracer(InstrumentationName)}, nil
	}

	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(cfg.OTLPEndpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.ServiceVersion),
			attribute.String("environment", cfg.Environment),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.AlwaysSample())),
	)
	otel.SetTracerProvider(tp)

	return &Provider{TracerProvider: tp, Tracer: tp.Tracer(InstrumentationName)}, nil
}

// Shutdown gracefully shuts down the telemetry provider.
// Shutdown корректно завершает провайдер телеметрии.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.TracerProvider != nil {
		return p.TracerProvider.Shutdown(ctx)
	}
	return nil
}

// StartSpan starts a span on the global tracer provider.
// StartSpan запускает спан на глобальном провайдере трассировки.
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(InstrumentationName).Start(ctx, name, trace.WithAttributes(attrs...))
}

// EndSpan records err on the span, if any, and ends it.
// EndSpan записывает ошибку в спан, если она есть, и завершает его.
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// Common attribute keys.
// Общие ключи атрибутов.
var (
	AttrUserID      = attribute.Key("user.id")
	AttrUsername    = attribute.Key("user.username")
	AttrPayloadType = attribute.Key("auth.payload_type")
	AttrAuthMethod  = attribute.Key("auth.method")
	AttrResource    = attribute.Key("authz.resource")
	AttrAction      = attribute.Key("authz.action")
	AttrAllowed     = attribute.Key("authz.allowed")
)
