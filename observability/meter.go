package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/streamkit/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string
	// ServiceVersion is the version of the service.
	ServiceVersion string
	// Environment is the deployment environment (dev, staging, prod).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "1.0.0",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, config MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// StreamMetrics holds the metric instruments recorded by the signal
// package's Metered tap.
type StreamMetrics struct {
	subscriptionsActive metric.Int64UpDownCounter
	valueTotal          metric.Int64Counter
	failureTotal        metric.Int64Counter
	completionTotal     metric.Int64Counter
	disposalTotal       metric.Int64Counter
}

// NewStreamMetrics creates metric instruments on the given meter.
func NewStreamMetrics(meter metric.Meter) (*StreamMetrics, error) {
	subscriptionsActive, err := meter.Int64UpDownCounter("signal.subscriptions.active",
		metric.WithDescription("Number of currently active signal subscriptions"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating signal.subscriptions.active gauge: %w", err)
	}

	valueTotal, err := meter.Int64Counter("signal.values.total",
		metric.WithDescription("Total values delivered by signals"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating signal.values.total counter: %w", err)
	}

	failureTotal, err := meter.Int64Counter("signal.failures.total",
		metric.WithDescription("Total signal subscriptions terminated by an error"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating signal.failures.total counter: %w", err)
	}

	completionTotal, err := meter.Int64Counter("signal.completions.total",
		metric.WithDescription("Total signal subscriptions completed successfully"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating signal.completions.total counter: %w", err)
	}

	disposalTotal, err := meter.Int64Counter("signal.disposals.total",
		metric.WithDescription("Total signal subscriptions cancelled before a terminal event"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating signal.disposals.total counter: %w", err)
	}

	return &StreamMetrics{
		subscriptionsActive: subscriptionsActive,
		valueTotal:          valueTotal,
		failureTotal:        failureTotal,
		completionTotal:     completionTotal,
		disposalTotal:       disposalTotal,
	}, nil
}

// RecordSubscribe increments the active subscription count for name.
func (m *StreamMetrics) RecordSubscribe(ctx context.Context, name string) {
	m.subscriptionsActive.Add(ctx, 1, signalAttrs(name))
}

// RecordValue counts one delivered value.
func (m *StreamMetrics) RecordValue(ctx context.Context, name string) {
	m.valueTotal.Add(ctx, 1, signalAttrs(name))
}

// RecordFailure counts an error-terminated subscription and decrements the
// active count.
func (m *StreamMetrics) RecordFailure(ctx context.Context, name string) {
	m.subscriptionsActive.Add(ctx, -1, signalAttrs(name))
	m.failureTotal.Add(ctx, 1, signalAttrs(name))
}

// RecordCompletion counts a completed subscription and decrements the active
// count.
func (m *StreamMetrics) RecordCompletion(ctx context.Context, name string) {
	m.subscriptionsActive.Add(ctx, -1, signalAttrs(name))
	m.completionTotal.Add(ctx, 1, signalAttrs(name))
}

// RecordDisposal counts a subscription cancelled before any terminal event
// and decrements the active count.
func (m *StreamMetrics) RecordDisposal(ctx context.Context, name string) {
	m.subscriptionsActive.Add(ctx, -1, signalAttrs(name))
	m.disposalTotal.Add(ctx, 1, signalAttrs(name))
}

func signalAttrs(name string) metric.MeasurementOption {
	return metric.WithAttributes(attribute.String("signal", name))
}
