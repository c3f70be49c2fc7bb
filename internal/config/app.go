// Package config loads the process-level configuration of clip-summarize from
// environment variables. User-facing preferences (API key, model, insertion
// position and so on) live in the settings store instead.
package config

import (
	"fmt"
	"strings"
	"time"

	"clip-summarize/internal/domain/entity"
	envcfg "clip-summarize/pkg/config"
)

// Defaults applied when the corresponding variable is unset.
const (
	DefaultSettleDelay     = time.Second
	DefaultRequestTimeout  = 60 * time.Second
	DefaultMaxContentRunes = 100000
	DefaultNotifyTimeout   = 10 * time.Second
	DefaultMetricsPort     = 9090

	// maxSettleDelay bounds how long a new file waits before it is read.
	maxSettleDelay = time.Minute
)

// AppConfig holds configuration for one clip-summarize process.
type AppConfig struct {
	// VaultDir is the root directory of the note vault.
	// Default: "."
	VaultDir string

	// SettingsFile overrides the settings store location.
	// Empty means the per-user default path.
	SettingsFile string

	// SettleDelay is how long a newly created note is left alone before it
	// is read, so the writer can finish. Zero disables the wait.
	// Default: 1s
	SettleDelay time.Duration

	// MaxContentRunes rejects documents longer than this before any
	// completion request is sent.
	// Default: 100000
	MaxContentRunes int

	Summarizer SummarizerConfig
	Notify     NotifyConfig
	Observe    ObservabilityConfig
}

// SummarizerConfig holds transport overrides for the completion providers.
type SummarizerConfig struct {
	// RequestTimeout bounds a single completion request. Default: 60s
	RequestTimeout   time.Duration
	// OpenAIBaseURL overrides the OpenAI endpoint (proxies, gateways).
	OpenAIBaseURL    string
	// AnthropicBaseURL overrides the Anthropic endpoint.
	AnthropicBaseURL string
}

// NotifyConfig holds the optional webhook sinks. Console output is always on.
type NotifyConfig struct {
	DiscordWebhookURL string
	SlackWebhookURL   string
	// Timeout for a single webhook POST. Default: 10s
	Timeout           time.Duration
}

// ObservabilityConfig holds logging and metrics settings.
type ObservabilityConfig struct {
	// LogLevel is one of debug, info, warn, error. Default: "info"
	LogLevel    string
	// LogFormat is json or text. Default: "json"
	LogFormat   string
	// MetricsPort for the watch-mode /metrics server. Zero disables it.
	// Default: 9090
	MetricsPort int
}

// LoadAppConfig loads configuration from environment variables and validates it.
func LoadAppConfig() (*AppConfig, error) {
	cfg := &AppConfig{
		VaultDir:        envcfg.GetEnvString("CLIP_VAULT_DIR", "."),
		SettingsFile:    envcfg.GetEnvString("CLIP_SETTINGS_FILE", ""),
		SettleDelay:     envcfg.GetEnvDuration("CLIP_SETTLE_DELAY", DefaultSettleDelay),
		MaxContentRunes: envcfg.GetEnvInt("CLIP_MAX_CONTENT_CHARS", DefaultMaxContentRunes),
		Summarizer: SummarizerConfig{
			RequestTimeout:   envcfg.GetEnvDuration("CLIP_REQUEST_TIMEOUT", DefaultRequestTimeout),
			OpenAIBaseURL:    envcfg.GetEnvString("OPENAI_BASE_URL", ""),
			AnthropicBaseURL: envcfg.GetEnvString("ANTHROPIC_BASE_URL", ""),
		},
		Notify: NotifyConfig{
			DiscordWebhookURL: envcfg.GetEnvString("DISCORD_WEBHOOK_URL", ""),
			SlackWebhookURL:   envcfg.GetEnvString("SLACK_WEBHOOK_URL", ""),
			Timeout:           envcfg.GetEnvDuration("NOTIFY_TIMEOUT", DefaultNotifyTimeout),
		},
		Observe: ObservabilityConfig{
			LogLevel:    strings.ToLower(envcfg.GetEnvString("LOG_LEVEL", "info")),
			LogFormat:   strings.ToLower(envcfg.GetEnvString("LOG_FORMAT", "json")),
			MetricsPort: envcfg.GetEnvInt("METRICS_PORT", DefaultMetricsPort),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks configuration correctness.
func (c *AppConfig) Validate() error {
	if c.VaultDir == "" {
		return fmt.Errorf("CLIP_VAULT_DIR cannot be empty")
	}

	if err := envcfg.ValidateDurationRange(c.SettleDelay, 0, maxSettleDelay); err != nil {
		return fmt.Errorf("CLIP_SETTLE_DELAY: %w", err)
	}

	if c.MaxContentRunes <= 0 {
		return fmt.Errorf("CLIP_MAX_CONTENT_CHARS must be positive")
	}

	if err := envcfg.ValidatePositiveDuration(c.Summarizer.RequestTimeout); err != nil {
		return fmt.Errorf("CLIP_REQUEST_TIMEOUT: %w", err)
	}

	if err := envcfg.ValidatePositiveDuration(c.Notify.Timeout); err != nil {
		return fmt.Errorf("NOTIFY_TIMEOUT: %w", err)
	}

	optionalURLs := []struct {
		name  string
		value string
	}{
		{"OPENAI_BASE_URL", c.Summarizer.OpenAIBaseURL},
		{"ANTHROPIC_BASE_URL", c.Summarizer.AnthropicBaseURL},
		{"DISCORD_WEBHOOK_URL", c.Notify.DiscordWebhookURL},
		{"SLACK_WEBHOOK_URL", c.Notify.SlackWebhookURL},
	}
	for _, u := range optionalURLs {
		if u.value == "" {
			continue
		}
		if err := entity.ValidateURL(u.name, u.value); err != nil {
			return err
		}
	}

	switch c.Observe.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error")
	}

	switch c.Observe.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or text")
	}

	if err := envcfg.ValidatePort(c.Observe.MetricsPort); err != nil {
		return fmt.Errorf("METRICS_PORT: %w", err)
	}

	return nil
}
