package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clip-summarize/internal/domain/entity"
)

var appEnvKeys = []string{
	"CLIP_VAULT_DIR", "CLIP_SETTINGS_FILE", "CLIP_SETTLE_DELAY", "CLIP_REQUEST_TIMEOUT",
	"CLIP_MAX_CONTENT_CHARS", "OPENAI_BASE_URL", "ANTHROPIC_BASE_URL",
	"DISCORD_WEBHOOK_URL", "SLACK_WEBHOOK_URL", "NOTIFY_TIMEOUT", "METRICS_PORT",
	"LOG_LEVEL", "LOG_FORMAT",
}

func clearAppEnv(t *testing.T) {
	t.Helper()
	for _, k := range appEnvKeys {
		t.Setenv(k, "")
	}
}

func TestLoadAppConfig_Defaults(t *testing.T) {
	clearAppEnv(t)

	cfg, err := LoadAppConfig()
	require.NoError(t, err)

	assert.Equal(t, ".", cfg.VaultDir)
	assert.Empty(t, cfg.SettingsFile)
	assert.Equal(t, time.Second, cfg.SettleDelay)
	assert.Equal(t, 100000, cfg.MaxContentRunes)
	assert.Equal(t, 60*time.Second, cfg.Summarizer.RequestTimeout)
	assert.Empty(t, cfg.Summarizer.OpenAIBaseURL)
	assert.Empty(t, cfg.Notify.DiscordWebhookURL)
	assert.Equal(t, 10*time.Second, cfg.Notify.Timeout)
	assert.Equal(t, "info", cfg.Observe.LogLevel)
	assert.Equal(t, "json", cfg.Observe.LogFormat)
	assert.Equal(t, 9090, cfg.Observe.MetricsPort)
}

func TestLoadAppConfig_FromEnv(t *testing.T) {
	clearAppEnv(t)
	t.Setenv("CLIP_VAULT_DIR", "/srv/vault")
	t.Setenv("CLIP_SETTINGS_FILE", "/etc/clip/settings.yaml")
	t.Setenv("CLIP_SETTLE_DELAY", "0s")
	t.Setenv("CLIP_REQUEST_TIMEOUT", "90s")
	t.Setenv("CLIP_MAX_CONTENT_CHARS", "5000")
	t.Setenv("OPENAI_BASE_URL", "https://proxy.internal/v1")
	t.Setenv("SLACK_WEBHOOK_URL", "https://hooks.slack.com/services/T/B/X")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("METRICS_PORT", "0")

	cfg, err := LoadAppConfig()
	require.NoError(t, err)

	assert.Equal(t, "/srv/vault", cfg.VaultDir)
	assert.Equal(t, "/etc/clip/settings.yaml", cfg.SettingsFile)
	assert.Zero(t, cfg.SettleDelay)
	assert.Equal(t, 90*time.Second, cfg.Summarizer.RequestTimeout)
	assert.Equal(t, 5000, cfg.MaxContentRunes)
	assert.Equal(t, "https://proxy.internal/v1", cfg.Summarizer.OpenAIBaseURL)
	assert.Equal(t, "https://hooks.slack.com/services/T/B/X", cfg.Notify.SlackWebhookURL)
	assert.Equal(t, "debug", cfg.Observe.LogLevel)
	assert.Equal(t, "text", cfg.Observe.LogFormat)
	assert.Zero(t, cfg.Observe.MetricsPort)
}

func TestLoadAppConfig_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "settle delay too long", key: "CLIP_SETTLE_DELAY", value: "2m"},
		{name: "negative settle delay", key: "CLIP_SETTLE_DELAY", value: "-1s"},
		{name: "zero request timeout", key: "CLIP_REQUEST_TIMEOUT", value: "0s"},
		{name: "zero max content", key: "CLIP_MAX_CONTENT_CHARS", value: "0"},
		{name: "bad base url", key: "ANTHROPIC_BASE_URL", value: "ftp://example.com"},
		{name: "webhook without host", key: "DISCORD_WEBHOOK_URL", value: "https://"},
		{name: "unknown log level", key: "LOG_LEVEL", value: "verbose"},
		{name: "unknown log format", key: "LOG_FORMAT", value: "xml"},
		{name: "port out of range", key: "METRICS_PORT", value: "70000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearAppEnv(t)
			t.Setenv(tt.key, tt.value)

			cfg, err := LoadAppConfig()
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), "invalid configuration")
		})
	}
}

func TestAppConfig_Validate_URLErrorIsValidationError(t *testing.T) {
	clearAppEnv(t)
	cfg, err := LoadAppConfig()
	require.NoError(t, err)

	cfg.Notify.DiscordWebhookURL = "discord.com/api/webhooks/1"
	err = cfg.Validate()

	var verr *entity.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "DISCORD_WEBHOOK_URL", verr.Field)
}
