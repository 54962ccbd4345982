package bootstrap

import (
	"context"
	"fmt"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/streamkit/config"
	"github.com/kbukum/streamkit/logger"
	"github.com/kbukum/streamkit/observability"
)

// Runtime holds the initialized diagnostics stack. Metrics is nil when metric
// export is disabled in config.
type Runtime struct {
	Config  *config.DiagnosticsConfig
	Logger  *logger.Logger
	Metrics *observability.StreamMetrics

	meterProvider  *sdkmetric.MeterProvider
	tracerProvider *sdktrace.TracerProvider
}

// Init loads configuration for serviceName, initializes the logger, and
// starts the meter and tracer providers that config enables.
func Init(ctx context.Context, serviceName string, opts ...Option) (*Runtime, error) {
	o := resolveOptions(opts)

	cfg := o.cfg
	if cfg == nil {
		cfg = &config.DiagnosticsConfig{}
		if err := config.Load(serviceName, cfg, o.loaderOpts...); err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		if cfg.Name == "" {
			cfg.Name = serviceName
		}
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	rt := &Runtime{Config: cfg}

	if o.logger != nil {
		rt.Logger = o.logger
	} else {
		logger.Init(&cfg.Logging)
		rt.Logger = logger.GetGlobalLogger().WithComponent(cfg.Name)
	}
	logger.Register(cfg.Name, rt.Logger)

	if cfg.Metrics.Enabled {
		mc := observability.DefaultMeterConfig(cfg.Name)
		mc.Environment = cfg.Environment
		mc.Endpoint = cfg.Metrics.Endpoint
		mc.Insecure = cfg.Metrics.Insecure
		mc.Interval = cfg.Metrics.Interval
		if cfg.Version != "" {
			mc.ServiceVersion = cfg.Version
		}

		mp, err := observability.InitMeter(ctx, mc)
		if err != nil {
			return nil, fmt.Errorf("initializing meter: %w", err)
		}
		rt.meterProvider = mp

		metrics, err := observability.NewStreamMetrics(observability.Meter(cfg.Name))
		if err != nil {
			return nil, fmt.Errorf("creating stream metrics: %w", err)
		}
		rt.Metrics = metrics
	}

	if cfg.Tracing.Enabled {
		tc := observability.DefaultTracerConfig(cfg.Name)
		tc.Environment = cfg.Environment
		tc.Endpoint = cfg.Tracing.Endpoint
		tc.Insecure = cfg.Tracing.Insecure
		tc.SampleRate = cfg.Tracing.SampleRate
		if cfg.Version != "" {
			tc.ServiceVersion = cfg.Version
		}

		tp, err := observability.InitTracer(ctx, tc)
		if err != nil {
			return nil, fmt.Errorf("initializing tracer: %w", err)
		}
		rt.tracerProvider = tp
	}

	rt.Logger.Info("diagnostics initialized", logger.Fields(
		"service", cfg.Name,
		"environment", cfg.Environment,
		"metrics", cfg.Metrics.Enabled,
		"tracing", cfg.Tracing.Enabled,
	))
	return rt, nil
}

// Tracer returns a named tracer from the global provider. It is a noop tracer
// when tracing was not enabled.
func (r *Runtime) Tracer(name string) trace.Tracer {
	return observability.Tracer(name)
}

// Shutdown flushes and stops the telemetry providers.
func (r *Runtime) Shutdown(ctx context.Context) error {
	var shutdownErr error

	if r.tracerProvider != nil {
		if err := r.tracerProvider.Shutdown(ctx); err != nil {
			r.Logger.Error("tracer shutdown error", logger.Fields(logger.FieldError, err.Error()))
			shutdownErr = err
		}
	}
	if r.meterProvider != nil {
		if err := r.meterProvider.Shutdown(ctx); err != nil {
			r.Logger.Error("meter shutdown error", logger.Fields(logger.FieldError, err.Error()))
			if shutdownErr == nil {
				shutdownErr = err
			}
		}
	}

	r.Logger.Info("diagnostics shutdown complete")
	return shutdownErr
}
