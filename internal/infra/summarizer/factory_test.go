package summarizer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clip-summarize/internal/domain/entity"
)

type stubSummarizer struct{ id int }

func (s *stubSummarizer) Summarize(context.Context, string) (string, error) { return "", nil }

func TestFactory_ReusesUntilSettingsChange(t *testing.T) {
	calls := 0
	f := NewFactory(DefaultConfig())
	f.build = func(entity.Settings, Config) (Summarizer, error) {
		calls++
		return &stubSummarizer{id: calls}, nil
	}

	settings := entity.DefaultSettings()
	settings.Provider = entity.ProviderNoop

	first, err := f.For(settings)
	require.NoError(t, err)
	second, err := f.For(settings)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, calls)

	settings.SummaryLength = entity.LengthLong
	third, err := f.For(settings)
	require.NoError(t, err)
	assert.NotSame(t, first, third)
	assert.Equal(t, 2, calls)
}

func TestFactory_ErrorIsNotCached(t *testing.T) {
	f := NewFactory(DefaultConfig())

	settings := entity.DefaultSettings()
	settings.Provider = entity.ProviderOpenAI
	settings.APIKey = ""

	_, err := f.For(settings)
	require.ErrorIs(t, err, ErrMissingAPIKey)

	settings.APIKey = "sk-test"
	s, err := f.For(settings)
	require.NoError(t, err)
	assert.IsType(t, &OpenAI{}, s)
}

func TestFactory_BuildError(t *testing.T) {
	boom := errors.New("boom")
	f := NewFactory(DefaultConfig())
	f.build = func(entity.Settings, Config) (Summarizer, error) { return nil, boom }

	_, err := f.For(entity.DefaultSettings())
	assert.ErrorIs(t, err, boom)
}

func TestFactory_Status(t *testing.T) {
	f := NewFactory(DefaultConfig())

	_, ok := f.Status()
	assert.False(t, ok, "nothing built yet")

	settings := entity.DefaultSettings()
	settings.APIKey = "sk-test"
	_, err := f.For(settings)
	require.NoError(t, err)

	status, ok := f.Status()
	require.True(t, ok)
	assert.Equal(t, "openai-api", status.Name)
	assert.Equal(t, "closed", status.State)
	assert.False(t, status.Open)

	settings.Provider = entity.ProviderNoop
	_, err = f.For(settings)
	require.NoError(t, err)
	_, ok = f.Status()
	assert.False(t, ok, "noop has no breaker")
}

func TestFactory_WithBaseURL(t *testing.T) {
	var got []string
	f := NewFactory(DefaultConfig()).
		WithBaseURL(entity.ProviderOpenAI, "http://proxy.local/v1").
		WithBaseURL(entity.ProviderAnthropic, "")
	f.build = func(_ entity.Settings, cfg Config) (Summarizer, error) {
		got = append(got, cfg.BaseURL)
		return &stubSummarizer{id: len(got)}, nil
	}

	settings := entity.DefaultSettings()
	_, err := f.For(settings)
	require.NoError(t, err)

	settings.Provider = entity.ProviderAnthropic
	_, err = f.For(settings)
	require.NoError(t, err)

	assert.Equal(t, []string{"http://proxy.local/v1", ""}, got)
}
