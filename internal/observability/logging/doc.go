// Package logging provides structured logging utilities with context propagation.
//
// Key features:
//   - JSON and text output formats
//   - Operation ID propagation for summarize runs
//   - Context-aware logging
//
// Example usage:
//
//	logger := logging.NewLogger(os.Stderr, cfg.Observe.LogLevel, cfg.Observe.LogFormat)
//	ctx := logging.WithLogger(context.Background(), logger)
//
//	ctx, opID := logging.WithOperationID(ctx)
//	logging.FromContext(ctx).Info("summarizing", slog.String("path", path))
package logging
