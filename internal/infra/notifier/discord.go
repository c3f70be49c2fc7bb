package notifier

import (
	"context"
	"time"
)

// DiscordConfig contains configuration for Discord webhook notifications.
type DiscordConfig struct {
	// WebhookURL is the Discord webhook URL (includes authentication token)
	WebhookURL string

	// Username overrides the webhook's display name when set
	Username string

	// Timeout is the HTTP request timeout for Discord API calls
	Timeout time.Duration
}

// DiscordNotifier mirrors notices to a Discord channel via webhook.
type DiscordNotifier struct {
	config DiscordConfig
	hook   *webhook
}

// NewDiscordNotifier creates a DiscordNotifier. Requests are limited to
// 0.5 req/s with a burst of 3 (Discord allows 30 webhook calls per minute).
func NewDiscordNotifier(config DiscordConfig) *DiscordNotifier {
	return &DiscordNotifier{
		config: config,
		hook:   newWebhook("discord", "Discord", config.WebhookURL, config.Timeout, NewRateLimiter(0.5, 3)),
	}
}

// DiscordWebhookPayload represents the JSON payload sent to a Discord webhook.
type DiscordWebhookPayload struct {
	Content  string `json:"content"`
	Username string `json:"username,omitempty"`
}

const (
	// maxDiscordContentLength is Discord's limit for message content.
	maxDiscordContentLength = 2000
	truncationSuffix        = "..."
)

func (d *DiscordNotifier) buildPayload(message string) DiscordWebhookPayload {
	return DiscordWebhookPayload{
		Content:  truncateMessage(message, maxDiscordContentLength, truncationSuffix),
		Username: d.config.Username,
	}
}

// Notify sends message to the webhook once.
func (d *DiscordNotifier) Notify(ctx context.Context, message string) error {
	return d.hook.deliver(ctx, d.buildPayload(message))
}
