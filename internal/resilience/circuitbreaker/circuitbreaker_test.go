package circuitbreaker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		Name:             "test-circuit",
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          50 * time.Millisecond,
		FailureThreshold: 0.6,
		MinRequests:      3,
	}
}

func fail(cb *CircuitBreaker, n int, err error) {
	for i := 0; i < n; i++ {
		_, _ = cb.Call(func() (string, error) { return "", err })
	}
}

func TestProviderConfigs(t *testing.T) {
	for name, cfg := range map[string]Config{
		"openai-api": OpenAIAPIConfig(),
		"claude-api": ClaudeAPIConfig(),
	} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, name, cfg.Name)
			assert.Equal(t, uint32(3), cfg.MinRequests)
			assert.Equal(t, 60*time.Second, cfg.Timeout)
			require.NotNil(t, cfg.IsSuccessful)
			assert.True(t, cfg.IsSuccessful(context.Canceled))
		})
	}
}

func TestCircuitBreaker_Call(t *testing.T) {
	cb := New(testConfig())
	assert.Equal(t, "test-circuit", cb.Name())
	assert.Equal(t, gobreaker.StateClosed, cb.State())

	got, err := cb.Call(func() (string, error) { return "summary", nil })
	require.NoError(t, err)
	assert.Equal(t, "summary", got)

	boom := errors.New("boom")
	got, err = cb.Call(func() (string, error) { return "partial", boom })
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, got, "result is dropped on error")
	assert.False(t, IsRejected(err))
}

func TestCircuitBreaker_OpensAfterThreshold(t *testing.T) {
	cb := New(testConfig())
	boom := errors.New("boom")

	fail(cb, 2, boom)
	assert.False(t, cb.IsOpen(), "below MinRequests")

	fail(cb, 1, boom)
	require.True(t, cb.IsOpen())

	called := false
	_, err := cb.Call(func() (string, error) {
		called = true
		return "", nil
	})
	assert.False(t, called, "open circuit must not run the call")
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.True(t, IsRejected(err))
}

func TestCircuitBreaker_FailureRatio(t *testing.T) {
	cb := New(testConfig())
	boom := errors.New("boom")

	// 1 of 3 failed: ratio below threshold
	_, _ = cb.Call(func() (string, error) { return "ok", nil })
	_, _ = cb.Call(func() (string, error) { return "ok", nil })
	fail(cb, 1, boom)
	assert.False(t, cb.IsOpen())

	// 3 of 5
	fail(cb, 2, boom)
	assert.True(t, cb.IsOpen())
}

func TestCircuitBreaker_HalfOpenRecovers(t *testing.T) {
	cb := New(testConfig())
	fail(cb, 3, errors.New("boom"))
	require.True(t, cb.IsOpen())

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, gobreaker.StateHalfOpen, cb.State())

	got, err := cb.Call(func() (string, error) { return "back", nil })
	require.NoError(t, err)
	assert.Equal(t, "back", got)
	assert.Equal(t, gobreaker.StateClosed, cb.State())
}

func TestCircuitBreaker_CancellationDoesNotTrip(t *testing.T) {
	cfg := testConfig()
	cfg.IsSuccessful = IgnoreCanceled
	cb := New(cfg)

	for i := 0; i < 5; i++ {
		_, err := cb.Call(func() (string, error) { return "", context.Canceled })
		require.ErrorIs(t, err, context.Canceled)
	}
	assert.Equal(t, gobreaker.StateClosed, cb.State())

	// 8 of 13 requests failed
	fail(cb, 8, context.DeadlineExceeded)
	assert.True(t, cb.IsOpen(), "timeouts still count as failures")
}

func TestIgnoreCanceled(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, true},
		{context.Canceled, true},
		{errors.Join(errors.New("wrapped"), context.Canceled), true},
		{context.DeadlineExceeded, false},
		{errors.New("boom"), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IgnoreCanceled(tt.err), "%v", tt.err)
	}
}
