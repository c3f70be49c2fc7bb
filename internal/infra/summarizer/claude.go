package summarizer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/google/uuid"

	"clip-summarize/internal/resilience/circuitbreaker"
	"clip-summarize/internal/utils/text"
)

const providerAnthropic = "anthropic"

// Claude implements Summarizer using Anthropic's messages API.
type Claude struct {
	client          anthropic.Client
	circuitBreaker  *circuitbreaker.CircuitBreaker
	config          Config
	metricsRecorder MetricsRecorder
}

// NewClaude creates a Claude summarizer with the given API key.
// SDK retries are disabled; a failed request is reported immediately.
func NewClaude(apiKey string, cfg Config) *Claude {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	}

	slog.Debug("initialized claude summarizer",
		slog.String("model", cfg.Model),
		slog.String("summary_length", string(cfg.Length)),
		slog.String("language", string(cfg.Language)))

	return &Claude{
		client:          anthropic.NewClient(opts...),
		circuitBreaker:  circuitbreaker.New(circuitbreaker.ClaudeAPIConfig()),
		config:          cfg,
		metricsRecorder: NewPrometheusMetrics(),
	}
}

// WithMetricsRecorder replaces the metrics recorder. Used by tests.
func (c *Claude) WithMetricsRecorder(r MetricsRecorder) *Claude {
	c.metricsRecorder = r
	return c
}

// Summarize generates a summary of text through the circuit breaker.
func (c *Claude) Summarize(ctx context.Context, text string) (string, error) {
	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	summary, err := c.circuitBreaker.Call(func() (string, error) {
		return c.doSummarize(ctx, text)
	})
	if circuitbreaker.IsRejected(err) {
		slog.WarnContext(ctx, "claude api circuit breaker open, request rejected",
			slog.String("service", c.circuitBreaker.Name()),
			slog.String("state", c.circuitBreaker.State().String()))
		return "", fmt.Errorf("%w: %w", ErrCircuitOpen, err)
	}
	return summary, err
}

// doSummarize performs the API call without the circuit breaker.
func (c *Claude) doSummarize(ctx context.Context, input string) (string, error) {
	requestID := uuid.NewString()
	prompt := BuildPrompt(c.config.Language, c.config.Length, input)

	slog.InfoContext(ctx, "starting summarization",
		slog.String("provider", providerAnthropic),
		slog.String("request_id", requestID),
		slog.String("model", c.config.Model),
		slog.Int("input_length", text.CountRunes(input)))

	start := time.Now()

	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(c.config.Model),
		MaxTokens:   int64(c.config.MaxTokens),
		Temperature: anthropic.Float(c.config.Temperature),
		System:      []anthropic.TextBlockParam{{Text: prompt.System}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt.User)),
		},
	})

	duration := time.Since(start)
	c.metricsRecorder.RecordDuration(providerAnthropic, duration)

	if err != nil {
		c.metricsRecorder.RecordFailure(providerAnthropic)
		slog.ErrorContext(ctx, "summarization failed",
			slog.String("provider", providerAnthropic),
			slog.String("request_id", requestID),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("claude api error: %w", err)
	}

	if len(message.Content) == 0 {
		c.metricsRecorder.RecordFailure(providerAnthropic)
		slog.ErrorContext(ctx, "claude api returned empty response",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration))
		return "", ErrEmptyResponse
	}

	textBlock, ok := message.Content[0].AsAny().(anthropic.TextBlock)
	if !ok {
		c.metricsRecorder.RecordFailure(providerAnthropic)
		slog.ErrorContext(ctx, "claude api returned unexpected response type",
			slog.String("request_id", requestID),
			slog.String("type", message.Content[0].Type),
			slog.Duration("duration", duration))
		return "", ErrUnexpectedResponse
	}
	if text.IsBlank(textBlock.Text) {
		c.metricsRecorder.RecordFailure(providerAnthropic)
		return "", ErrEmptyResponse
	}

	summary := textBlock.Text
	summaryLength := text.CountRunes(summary)
	c.metricsRecorder.RecordLength(summaryLength)

	slog.InfoContext(ctx, "summarization completed",
		slog.String("provider", providerAnthropic),
		slog.String("request_id", requestID),
		slog.Int("summary_length", summaryLength),
		slog.Duration("duration", duration))

	return summary, nil
}
