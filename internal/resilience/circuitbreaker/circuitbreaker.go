// Package circuitbreaker guards completion API calls with
// github.com/sony/gobreaker so that a failing provider is rejected quickly
// instead of being called on every new note.
package circuitbreaker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
)

// Config holds the configuration for a circuit breaker.
type Config struct {
	// Name identifies the breaker in logs and health output
	Name string

	// MaxRequests is the number of trial requests let through while half-open
	MaxRequests uint32

	// Interval clears the closed-state counts; zero never clears them
	Interval time.Duration

	// Timeout is how long the breaker stays open
	Timeout time.Duration

	// FailureThreshold is the failure ratio that opens the breaker
	FailureThreshold float64

	// MinRequests must be reached before the ratio is evaluated
	MinRequests uint32

	// IsSuccessful reports whether a returned error should count as a success.
	// Nil counts every non-nil error as a failure.
	IsSuccessful func(err error) bool
}

// providerConfig is shared by the completion providers. Summaries are
// requested one note at a time, so the thresholds are kept small.
func providerConfig(name string) Config {
	return Config{
		Name:             name,
		MaxRequests:      1,
		Interval:         5 * time.Minute,
		Timeout:          60 * time.Second,
		FailureThreshold: 0.6,
		MinRequests:      3,
		IsSuccessful:     IgnoreCanceled,
	}
}

// ClaudeAPIConfig returns configuration for Anthropic messages API calls.
func ClaudeAPIConfig() Config { return providerConfig("claude-api") }

// OpenAIAPIConfig returns configuration for OpenAI chat completion calls.
func OpenAIAPIConfig() Config { return providerConfig("openai-api") }

// IgnoreCanceled counts caller cancellation as a success so that a user
// aborting a request does not push the circuit towards open.
func IgnoreCanceled(err error) bool {
	return err == nil || errors.Is(err, context.Canceled)
}

// IsRejected reports whether err was produced by the breaker itself rather
// than by the guarded call.
func IsRejected(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

// CircuitBreaker wraps gobreaker.CircuitBreaker.
type CircuitBreaker struct {
	breaker *gobreaker.CircuitBreaker
	name    string
}

// New creates a circuit breaker. State changes are logged at warn level.
func New(cfg Config) *CircuitBreaker {
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= cfg.FailureThreshold
		},
		IsSuccessful: cfg.IsSuccessful,
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			slog.Warn("circuit breaker state changed",
				slog.String("circuit", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	}

	return &CircuitBreaker{
		breaker: gobreaker.NewCircuitBreaker(settings),
		name:    cfg.Name,
	}
}

// Call runs fn through the breaker and returns its text result.
func (cb *CircuitBreaker) Call(fn func() (string, error)) (string, error) {
	result, err := cb.breaker.Execute(func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

func (cb *CircuitBreaker) State() gobreaker.State {
	return cb.breaker.State()
}

func (cb *CircuitBreaker) Name() string {
	return cb.name
}

// IsOpen reports whether requests are currently rejected without a call.
func (cb *CircuitBreaker) IsOpen() bool {
	return cb.breaker.State() == gobreaker.StateOpen
}
