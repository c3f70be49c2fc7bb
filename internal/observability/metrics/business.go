package metrics

import (
	"time"

	"clip-summarize/internal/apperror"
	"clip-summarize/internal/observability/slo"
)

// RecordRun records the result and duration of one summarize run.
func RecordRun(success bool, duration time.Duration) {
	result := ResultSuccess
	if !success {
		result = ResultFailure
	}
	RunsTotal.WithLabelValues(result).Inc()
	RunDuration.Observe(duration.Seconds())
	slo.Observe(success)
}

// RecordError records a failed run under its error code.
func RecordError(code apperror.Code) {
	ErrorsTotal.WithLabelValues(string(code), string(code.Category())).Inc()
}

// RecordWatchEvent records how a new-note event was handled.
// Outcome should be one of "summarized", "skipped" or "failed".
func RecordWatchEvent(outcome string) {
	WatchEventsTotal.WithLabelValues(outcome).Inc()
}

// Recorder adapts the package-level functions to the recorder interface the
// summarize use case depends on.
type Recorder struct{}

// RecordRun implements the use case recorder.
func (Recorder) RecordRun(success bool, duration time.Duration) { RecordRun(success, duration) }

// RecordError implements the use case recorder.
func (Recorder) RecordError(code apperror.Code) { RecordError(code) }

// RecordWatchEvent implements the use case recorder.
func (Recorder) RecordWatchEvent(outcome string) { RecordWatchEvent(outcome) }
