// Package metrics provides centralized Prometheus metrics for summarize runs.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Run results used as the "result" label.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Summarize metrics track end-to-end runs of the summarize use case
var (
	// RunsTotal counts summarize runs by result
	RunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clip_summarize_runs_total",
			Help: "Total number of summarize runs",
		},
		[]string{"result"}, // result: success, failure
	)

	// ErrorsTotal counts failed runs by error code and category
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clip_summarize_errors_total",
			Help: "Total number of summarize errors by code",
		},
		[]string{"code", "category"},
	)

	// RunDuration measures a summarize run from read to write
	RunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "clip_summarize_duration_seconds",
			Help:    "Time taken by one summarize run",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 10),
		},
	)
)

// Watch metrics track vault events seen in watch mode
var (
	// WatchEventsTotal counts new-file events by outcome
	WatchEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clip_summarize_watch_events_total",
			Help: "Total number of new-note events handled in watch mode",
		},
		[]string{"outcome"}, // outcome: summarized, skipped, failed
	)
)
