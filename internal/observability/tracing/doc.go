// Package tracing provides OpenTelemetry tracing for summarize runs.
//
// Each run is wrapped in a "summarize.file" span carrying the note path and,
// on failure, the application error code as "error.code". Export is off by
// default; set OTEL_ENABLED=true to ship spans to an OTLP/HTTP collector.
//
// Example usage:
//
//	shutdown, err := tracing.InitProvider(ctx, tracing.ConfigFromEnv(version))
//	if err != nil {
//	    return err
//	}
//	defer shutdown(context.Background())
package tracing
