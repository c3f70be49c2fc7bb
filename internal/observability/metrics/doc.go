// Package metrics defines the Prometheus collectors for summarize runs and
// watch events.
//
// Collectors are registered with the default registry through promauto and
// exposed by the watch command on /metrics. Recorder adapts the package
// functions to the summarize use case:
//
//	svc := summarize.NewService(store, settings, factory, notifier,
//	    summarize.Options{Recorder: metrics.Recorder{}})
package metrics
