// Package bootstrap wires up the streamkit diagnostics stack in one call:
// configuration loading, the structured logger, and the optional OpenTelemetry
// meter and tracer providers.
//
//	rt, err := bootstrap.Init(ctx, "my-service")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer rt.Shutdown(ctx)
//
//	instrumented := signal.Metered(sig, rt.Metrics, "search")
package bootstrap
