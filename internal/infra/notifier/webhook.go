package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// webhook posts JSON payloads to one chat webhook, one attempt per notice.
type webhook struct {
	channel string // "discord", "slack"
	service string // display name used in error messages
	url     string
	client  *http.Client
	limiter *RateLimiter
}

func newWebhook(channel, service, url string, timeout time.Duration, limiter *RateLimiter) *webhook {
	return &webhook{
		channel: channel,
		service: service,
		url:     url,
		client:  &http.Client{Timeout: timeout},
		limiter: limiter,
	}
}

// deliver waits for the rate limiter and posts payload once. Every delivery
// carries a request ID for log correlation.
func (w *webhook) deliver(ctx context.Context, payload any) error {
	requestID := uuid.NewString()
	ctx = context.WithValue(ctx, requestIDKey, requestID)
	logger := slog.With(
		slog.String("channel", w.channel),
		slog.String("request_id", requestID))

	if err := w.limiter.Allow(ctx); err != nil {
		logger.ErrorContext(ctx, "rate limiter error", slog.Any("error", err))
		return fmt.Errorf("rate limiter error: %w", err)
	}

	if err := w.post(ctx, payload); err != nil {
		logger.WarnContext(ctx, "webhook notification failed", slog.Any("error", err))
		return fmt.Errorf("%s notification: %w", w.channel, err)
	}

	logger.DebugContext(ctx, "webhook notification sent")
	return nil
}

func (w *webhook) post(ctx context.Context, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("execute http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	return webhookError(w.service, resp, body)
}
