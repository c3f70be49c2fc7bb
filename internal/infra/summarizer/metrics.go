package summarizer

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsRecorder records provider-level summarization metrics.
// Tests inject a fake; production uses PrometheusMetrics.
type MetricsRecorder interface {
	// RecordLength records the length of a generated summary in runes.
	RecordLength(length int)

	// RecordDuration records the time taken by one completion call.
	RecordDuration(provider string, duration time.Duration)

	// RecordFailure counts a failed completion call.
	RecordFailure(provider string)
}

// PrometheusMetrics implements MetricsRecorder using Prometheus metrics.
type PrometheusMetrics struct {
	lengthHistogram   prometheus.Histogram
	durationHistogram *prometheus.HistogramVec
	failureCounter    *prometheus.CounterVec
}

var (
	prometheusMetricsInstance *PrometheusMetrics
	prometheusMetricsOnce     sync.Once
)

// getOrCreate registers c, or returns the collector already registered under
// the same descriptor.
func getOrCreate[T prometheus.Collector](c T) T {
	if err := prometheus.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing
			}
		}
	}
	return c
}

// NewPrometheusMetrics returns the process-wide Prometheus recorder.
// Uses a singleton to avoid duplicate registration in tests.
func NewPrometheusMetrics() *PrometheusMetrics {
	prometheusMetricsOnce.Do(func() {
		prometheusMetricsInstance = &PrometheusMetrics{
			lengthHistogram: getOrCreate(prometheus.NewHistogram(prometheus.HistogramOpts{
				Name:    "clip_summarize_summary_length_runes",
				Help:    "Distribution of generated summary lengths in characters (Unicode runes)",
				Buckets: []float64{100, 250, 500, 750, 1000, 1500, 2000, 3000},
			})),
			durationHistogram: getOrCreate(prometheus.NewHistogramVec(prometheus.HistogramOpts{
				Name:    "clip_summarize_completion_duration_seconds",
				Help:    "Time taken by a single completion API call",
				Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
			}, []string{"provider"})),
			failureCounter: getOrCreate(prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "clip_summarize_completion_failures_total",
				Help: "Total number of failed completion API calls",
			}, []string{"provider"})),
		}
	})
	return prometheusMetricsInstance
}

// RecordLength implements MetricsRecorder.
func (p *PrometheusMetrics) RecordLength(length int) {
	p.lengthHistogram.Observe(float64(length))
}

// RecordDuration implements MetricsRecorder.
func (p *PrometheusMetrics) RecordDuration(provider string, duration time.Duration) {
	p.durationHistogram.WithLabelValues(provider).Observe(duration.Seconds())
}

// RecordFailure implements MetricsRecorder.
func (p *PrometheusMetrics) RecordFailure(provider string) {
	p.failureCounter.WithLabelValues(provider).Inc()
}
