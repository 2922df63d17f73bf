package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

// MetricsConfig holds configuration for the metrics provider.
type MetricsConfig struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	OTLPEndpoint   string // Empty string disables OTLP export
}

// MetricsProvider wraps the OpenTelemetry meter provider with shutdown
// capabilities.
type MetricsProvider struct {
	provider *sdkmetric.MeterProvider
}

// InitMetrics initializes the OpenTelemetry meter provider. Returns a
// MetricsProvider that must be shut down on exit.
func InitMetrics(ctx context.Context, cfg MetricsConfig) (*MetricsProvider, error) {
	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.ServiceVersion),
		semconv.DeploymentEnvironment(cfg.Environment),
	)

	opts := []sdkmetric.Option{sdkmetric.WithResource(res)}

	if cfg.OTLPEndpoint != "" {
		exporter, err := otlpmetricgrpc.New(ctx,
			otlpmetricgrpc.WithEndpoint(cfg.OTLPEndpoint),
			otlpmetricgrpc.WithInsecure(),
		)
		if err != nil {
			return nil, fmt.Errorf("create OTLP metric exporter: %w", err)
		}
		opts = append(opts, sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter)))
	}

	provider := sdkmetric.NewMeterProvider(opts...)

	otel.SetMeterProvider(provider)

	return &MetricsProvider{provider: provider}, nil
}

// Shutdown flushes any remaining metrics and shuts down the provider.
func (mp *MetricsProvider) Shutdown(ctx context.Context) error {
	if mp.provider == nil {
		return nil
	}
	return mp.provider.Shutdown(ctx)
}

// Meter returns a meter for the given instrumentation name.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// TimelineMetrics holds the instruments describing a built timeline.
type TimelineMetrics struct {
	stepsBuilt      metric.Int64Counter
	boundariesFound metric.Int64Counter
}

// NewTimelineMetrics creates the timeline construction instruments.
func NewTimelineMetrics(meter metric.Meter) (*TimelineMetrics, error) {
	stepsBuilt, err := meter.Int64Counter("schedule.steps.built",
		metric.WithDescription("Report steps appended to the timeline"))
	if err != nil {
		return nil, fmt.Errorf("create steps counter: %w", err)
	}
	boundariesFound, err := meter.Int64Counter("schedule.boundaries.indexed",
		metric.WithDescription("Calendar boundary steps recorded per granularity"))
	if err != nil {
		return nil, fmt.Errorf("create boundaries counter: %w", err)
	}
	return &TimelineMetrics{stepsBuilt: stepsBuilt, boundariesFound: boundariesFound}, nil
}

// RecordBuild records the outcome of one timeline construction.
func (m *TimelineMetrics) RecordBuild(ctx context.Context, steps, monthBoundaries, yearBoundaries int) {
	m.stepsBuilt.Add(ctx, int64(steps))
	m.boundariesFound.Add(ctx, int64(monthBoundaries),
		metric.WithAttributes(attribute.String("granularity", "month")))
	m.boundariesFound.Add(ctx, int64(yearBoundaries),
		metric.WithAttributes(attribute.String("granularity", "year")))
}
