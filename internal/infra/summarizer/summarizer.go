// Package summarizer provides note summarization backed by completion APIs.
// It includes adapters for the OpenAI chat completions API and the Anthropic
// messages API, each wrapped in a circuit breaker, plus an offline NoOp
// implementation. Requests are sent once; failures are returned to the caller
// for classification.
package summarizer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"clip-summarize/internal/domain/entity"
	"clip-summarize/internal/i18n"
)

// Summarizer produces a summary of a document text.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

var (
	// ErrEmptyResponse is returned when the API answers without any summary text.
	ErrEmptyResponse = fmt.Errorf("completion api returned empty response: %w", entity.ErrEmptySummary)

	// ErrUnexpectedResponse is returned when the API answers with a content
	// type other than text.
	ErrUnexpectedResponse = fmt.Errorf("completion api returned unexpected response type: %w", entity.ErrUnexpectedSummary)

	// ErrCircuitOpen is returned while a provider's circuit breaker rejects requests.
	ErrCircuitOpen = errors.New("completion api unavailable: circuit breaker open")

	// ErrMissingAPIKey is returned by New for providers that need credentials.
	ErrMissingAPIKey = errors.New("api key is not set")

	// ErrUnknownProvider is returned by New for an unsupported provider.
	ErrUnknownProvider = errors.New("unknown summarizer provider")
)

const (
	// DefaultMaxTokens caps the length of a generated summary.
	DefaultMaxTokens = 1000

	// DefaultTemperature keeps summaries close to the source text.
	DefaultTemperature = 0.3

	// DefaultTimeout bounds a single completion call.
	DefaultTimeout = 60 * time.Second
)

// Config holds the parameters shared by all providers.
type Config struct {
	// Model is the provider's model identifier.
	Model string

	// Length selects the length phrase inserted into the prompt.
	Length entity.SummaryLength

	// Language selects the prompt catalog.
	Language i18n.Language

	// MaxTokens is the maximum number of tokens for the API response.
	MaxTokens int

	// Temperature is the sampling temperature.
	Temperature float64

	// Timeout is the maximum duration for a single summarization API call.
	// Zero disables the per-call timeout.
	Timeout time.Duration

	// BaseURL overrides the provider endpoint (proxies, tests).
	BaseURL string

	// HTTPClient overrides the HTTP client used by the provider SDK.
	HTTPClient *http.Client
}

// DefaultConfig returns the request parameters used unless overridden.
func DefaultConfig() Config {
	return Config{
		Model:       entity.DefaultOpenAIModel,
		Length:      entity.LengthMedium,
		Language:    i18n.DefaultLanguage,
		MaxTokens:   DefaultMaxTokens,
		Temperature: DefaultTemperature,
		Timeout:     DefaultTimeout,
	}
}

// Validate checks the configuration and returns an error if invalid.
func (c Config) Validate() error {
	if c.Model == "" {
		return fmt.Errorf("model cannot be empty")
	}
	if !c.Length.Valid() {
		return fmt.Errorf("invalid summary length %q", c.Length)
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max tokens must be positive, got %d", c.MaxTokens)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("temperature must be within [0, 2], got %v", c.Temperature)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %v", c.Timeout)
	}
	return nil
}

// New builds the summarizer selected by settings.Provider. Model, length and
// language come from settings; the remaining parameters come from cfg.
func New(settings entity.Settings, cfg Config) (Summarizer, error) {
	cfg.Model = settings.Provider.ModelFor(settings.Model)
	cfg.Length = settings.SummaryLength
	cfg.Language = settings.Language

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid summarizer configuration: %w", err)
	}

	if settings.Provider.RequiresAPIKey() && !settings.HasAPIKey() {
		return nil, fmt.Errorf("%s: %w", settings.Provider, ErrMissingAPIKey)
	}

	switch settings.Provider {
	case entity.ProviderOpenAI:
		return NewOpenAI(settings.APIKey, cfg), nil
	case entity.ProviderAnthropic:
		return NewClaude(settings.APIKey, cfg), nil
	case entity.ProviderNoop:
		return NewNoOp(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, settings.Provider)
	}
}
