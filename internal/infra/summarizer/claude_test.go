package summarizer_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clip-summarize/internal/apperror"
	"clip-summarize/internal/domain/entity"
	"clip-summarize/internal/infra/summarizer"
)

// claudeRequest mirrors the fields of a messages request the tests inspect.
type claudeRequest struct {
	Model       string  `json:"model"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
	System      []struct {
		Text string `json:"text"`
	} `json:"system"`
	Messages []struct {
		Role    string `json:"role"`
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"messages"`
}

func claudeMessage(content string) string {
	return `{
		"id": "msg_01",
		"type": "message",
		"role": "assistant",
		"model": "claude-sonnet-4-5-20250929",
		"content": ` + content + `,
		"stop_reason": "end_turn",
		"usage": {"input_tokens": 100, "output_tokens": 5}
	}`
}

func newClaudeServer(t *testing.T, handler http.HandlerFunc) (*summarizer.Claude, *fakeRecorder) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := summarizer.DefaultConfig()
	cfg.BaseURL = server.URL
	cfg.Model = entity.DefaultAnthropicModel
	cfg.Length = entity.LengthLong
	cfg.Language = "ja"

	rec := newFakeRecorder()
	return summarizer.NewClaude("sk-ant-test", cfg).WithMetricsRecorder(rec), rec
}

func TestClaude_Summarize_Success(t *testing.T) {
	var got claudeRequest

	s, rec := newClaudeServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "sk-ant-test", r.Header.Get("X-Api-Key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		writeJSON(w, http.StatusOK, claudeMessage(`[{"type":"text","text":"要約です。"}]`))
	})

	summary, err := s.Summarize(context.Background(), "ノート本文")
	require.NoError(t, err)
	assert.Equal(t, "要約です。", summary)

	assert.Equal(t, entity.DefaultAnthropicModel, got.Model)
	assert.Equal(t, 1000, got.MaxTokens)
	assert.InDelta(t, 0.3, got.Temperature, 1e-9)
	require.Len(t, got.System, 1)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
	require.Len(t, got.Messages[0].Content, 1)

	prompt := summarizer.BuildPrompt("ja", entity.LengthLong, "ノート本文")
	assert.Equal(t, prompt.System, got.System[0].Text)
	assert.Equal(t, prompt.User, got.Messages[0].Content[0].Text)

	assert.Equal(t, []int{5}, rec.lengths)
	assert.Equal(t, 1, rec.durations["anthropic"])
}

func TestClaude_Summarize_ResponseShapes(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"no content blocks", `[]`, summarizer.ErrEmptyResponse},
		{"blank text", `[{"type":"text","text":"   "}]`, summarizer.ErrEmptyResponse},
		{"tool use block", `[{"type":"tool_use","id":"toolu_01","name":"lookup","input":{}}]`, summarizer.ErrUnexpectedResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, rec := newClaudeServer(t, func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, http.StatusOK, claudeMessage(tt.content))
			})

			_, err := s.Summarize(context.Background(), "text")
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 1, rec.failures["anthropic"])
		})
	}
}

func TestClaude_Summarize_APIErrorIsSentOnce(t *testing.T) {
	var calls atomic.Int32
	s, rec := newClaudeServer(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		writeJSON(w, http.StatusTooManyRequests,
			`{"type":"error","error":{"type":"rate_limit_error","message":"Number of requests has exceeded your rate limit"}}`)
	})

	_, err := s.Summarize(context.Background(), "text")
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load(), "SDK retries must be disabled")
	assert.Equal(t, 1, rec.failures["anthropic"])

	var apiErr *anthropic.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)

	code, details := apperror.ClassifyError(err, "ja")
	assert.Equal(t, apperror.APIRateLimit, code)
	assert.NotEmpty(t, details)
}

func TestClaude_Summarize_Unauthorized(t *testing.T) {
	s, _ := newClaudeServer(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusUnauthorized,
			`{"type":"error","error":{"type":"authentication_error","message":"invalid x-api-key"}}`)
	})

	_, err := s.Summarize(context.Background(), "text")
	require.Error(t, err)

	code, _ := apperror.ClassifyError(err, "en")
	assert.Equal(t, apperror.APIAuthenticationError, code)
}
