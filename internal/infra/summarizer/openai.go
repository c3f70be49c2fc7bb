package summarizer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"

	"clip-summarize/internal/resilience/circuitbreaker"
	"clip-summarize/internal/utils/text"
)

const providerOpenAI = "openai"

// OpenAI implements Summarizer using the OpenAI chat completions API.
type OpenAI struct {
	client          *openai.Client
	circuitBreaker  *circuitbreaker.CircuitBreaker
	config          Config
	metricsRecorder MetricsRecorder
}

// NewOpenAI creates an OpenAI summarizer with the given API key.
func NewOpenAI(apiKey string, cfg Config) *OpenAI {
	clientConfig := openai.DefaultConfig(apiKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	if cfg.HTTPClient != nil {
		clientConfig.HTTPClient = cfg.HTTPClient
	}

	slog.Debug("initialized openai summarizer",
		slog.String("model", cfg.Model),
		slog.String("summary_length", string(cfg.Length)),
		slog.String("language", string(cfg.Language)))

	return &OpenAI{
		client:          openai.NewClientWithConfig(clientConfig),
		circuitBreaker:  circuitbreaker.New(circuitbreaker.OpenAIAPIConfig()),
		config:          cfg,
		metricsRecorder: NewPrometheusMetrics(),
	}
}

// WithMetricsRecorder replaces the metrics recorder. Used by tests.
func (o *OpenAI) WithMetricsRecorder(r MetricsRecorder) *OpenAI {
	o.metricsRecorder = r
	return o
}

// Summarize generates a summary of text through the circuit breaker.
// The request is sent once.
func (o *OpenAI) Summarize(ctx context.Context, text string) (string, error) {
	if o.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.config.Timeout)
		defer cancel()
	}

	summary, err := o.circuitBreaker.Call(func() (string, error) {
		return o.doSummarize(ctx, text)
	})
	if circuitbreaker.IsRejected(err) {
		slog.WarnContext(ctx, "openai api circuit breaker open, request rejected",
			slog.String("service", o.circuitBreaker.Name()),
			slog.String("state", o.circuitBreaker.State().String()))
		return "", fmt.Errorf("%w: %w", ErrCircuitOpen, err)
	}
	return summary, err
}

// doSummarize performs the API call without the circuit breaker.
func (o *OpenAI) doSummarize(ctx context.Context, input string) (string, error) {
	requestID := uuid.NewString()
	prompt := BuildPrompt(o.config.Language, o.config.Length, input)

	slog.InfoContext(ctx, "starting summarization",
		slog.String("provider", providerOpenAI),
		slog.String("request_id", requestID),
		slog.String("model", o.config.Model),
		slog.Int("input_length", text.CountRunes(input)))

	start := time.Now()

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.System},
			{Role: openai.ChatMessageRoleUser, Content: prompt.User},
		},
		Temperature: float32(o.config.Temperature),
		MaxTokens:   o.config.MaxTokens,
	})

	duration := time.Since(start)
	o.metricsRecorder.RecordDuration(providerOpenAI, duration)

	if err != nil {
		o.metricsRecorder.RecordFailure(providerOpenAI)
		slog.ErrorContext(ctx, "summarization failed",
			slog.String("provider", providerOpenAI),
			slog.String("request_id", requestID),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("openai api error: %w", err)
	}

	if len(resp.Choices) == 0 || text.IsBlank(resp.Choices[0].Message.Content) {
		o.metricsRecorder.RecordFailure(providerOpenAI)
		slog.ErrorContext(ctx, "openai api returned empty response",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration))
		return "", ErrEmptyResponse
	}

	summary := resp.Choices[0].Message.Content
	summaryLength := text.CountRunes(summary)
	o.metricsRecorder.RecordLength(summaryLength)

	slog.InfoContext(ctx, "summarization completed",
		slog.String("provider", providerOpenAI),
		slog.String("request_id", requestID),
		slog.Int("summary_length", summaryLength),
		slog.Duration("duration", duration))

	return summary, nil
}
