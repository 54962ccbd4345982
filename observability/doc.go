// Package observability provides OpenTelemetry tracing and metrics
// integration for streamkit diagnostics.
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("my-service"))
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewStreamMetrics(observability.Meter("my-service"))
//	instrumented := signal.Metered(sig, metrics, "search")
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("my-service"))
//	defer tp.Shutdown(ctx)
//
//	traced := signal.Traced(sig, observability.Tracer("my-service"), "search")
package observability
