// Package observability groups the logging, metrics and tracing support used by
// the summarize pipeline.
//
// Subpackages:
//   - logging: slog construction and context propagation
//   - metrics: Prometheus counters and histograms for summarize runs
//   - tracing: OpenTelemetry spans around summarize runs
package observability
