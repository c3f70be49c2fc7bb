// Package slo tracks the summarize success ratio against its objective.
package slo

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SuccessSLO is the target ratio of summarize runs that end with a summary
// written to the note.
const SuccessSLO = 0.95

var (
	// SLOSuccessRatio tracks the success ratio of runs since process start (0-1)
	SLOSuccessRatio = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "clip_summarize_slo_success_ratio",
			Help: "Ratio of successful summarize runs since start, target: 0.95",
		},
	)

	// SLOBudgetRemaining is the share of the error budget still unspent (may go negative)
	SLOBudgetRemaining = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "clip_summarize_slo_error_budget_remaining_ratio",
			Help: "Remaining error budget as a ratio of the allowed failures",
		},
	)
)

// Tracker accumulates run outcomes. The zero value is ready to use.
type Tracker struct {
	mu     sync.Mutex
	total  uint64
	failed uint64
}

// Observe records one run outcome and returns the updated success ratio.
func (t *Tracker) Observe(success bool) float64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.total++
	if !success {
		t.failed++
	}
	return t.ratioLocked()
}

// Ratio returns the current success ratio, or 1 before any run.
func (t *Tracker) Ratio() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ratioLocked()
}

// BudgetRemaining returns 1 - failureRatio/(1-SuccessSLO).
func (t *Tracker) BudgetRemaining() float64 {
	return budgetRemaining(t.Ratio())
}

func (t *Tracker) ratioLocked() float64 {
	if t.total == 0 {
		return 1
	}
	return float64(t.total-t.failed) / float64(t.total)
}

func budgetRemaining(ratio float64) float64 {
	return 1 - (1-ratio)/(1-SuccessSLO)
}

var process Tracker

// Observe records a run on the process-wide tracker and updates the gauges.
func Observe(success bool) {
	ratio := process.Observe(success)
	SLOSuccessRatio.Set(ratio)
	SLOBudgetRemaining.Set(budgetRemaining(ratio))
}
