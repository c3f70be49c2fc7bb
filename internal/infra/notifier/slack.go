package notifier

import (
	"context"
	"time"
)

// SlackConfig contains configuration for Slack webhook notifications.
type SlackConfig struct {
	// WebhookURL is the Slack Incoming Webhook URL (includes authentication token)
	WebhookURL string

	// Timeout is the HTTP request timeout for Slack API calls
	Timeout time.Duration
}

// SlackNotifier mirrors notices to Slack via Incoming Webhook.
type SlackNotifier struct {
	config SlackConfig
	hook   *webhook
}

// NewSlackNotifier creates a SlackNotifier limited to 1 message per second.
func NewSlackNotifier(config SlackConfig) *SlackNotifier {
	return &SlackNotifier{
		config: config,
		hook:   newWebhook("slack", "Slack", config.WebhookURL, config.Timeout, NewRateLimiter(1.0, 1)),
	}
}

// SlackWebhookPayload represents the JSON payload sent to a Slack webhook.
type SlackWebhookPayload struct {
	Text   string       `json:"text"`
	Blocks []SlackBlock `json:"blocks,omitempty"`
}

// SlackBlock represents a Slack Block Kit block.
type SlackBlock struct {
	Type string           `json:"type"`
	Text *SlackTextObject `json:"text,omitempty"`
}

// SlackTextObject represents a text object in Slack Block Kit.
type SlackTextObject struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

const (
	// Slack Block Kit limits
	maxSectionTextLength = 3000
	maxFallbackLength    = 150
)

// buildPayload renders message as a single plain-text section with a
// shortened fallback for mobile notifications.
func (s *SlackNotifier) buildPayload(message string) SlackWebhookPayload {
	return SlackWebhookPayload{
		Text: truncateMessage(message, maxFallbackLength, truncationSuffix),
		Blocks: []SlackBlock{{
			Type: "section",
			Text: &SlackTextObject{
				Type: "plain_text",
				Text: truncateMessage(message, maxSectionTextLength, truncationSuffix),
			},
		}},
	}
}

// Notify sends message to the webhook once.
func (s *SlackNotifier) Notify(ctx context.Context, message string) error {
	return s.hook.deliver(ctx, s.buildPayload(message))
}
