package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"biaslens/internal/domain"
	"biaslens/internal/llm"
)

func newTestClient(t *testing.T, url string) *Client {
	t.Helper()
	c, err := NewClient(Config{
		BaseURL:     url,
		APIKey:      "sk-test",
		Model:       "test-model",
		Temperature: 0.2,
		Timeout:     5 * time.Second,
		MaxRetries:  2,
		RetryBase:   time.Millisecond,
	})
	require.NoError(t, err)
	return c
}

func writeCompletion(w http.ResponseWriter, content string) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"choices": []any{map[string]any{"message": map[string]string{"role": "assistant", "content": content}}},
	})
}

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient(Config{})
	assert.Error(t, err)
}

func TestSummarizeSendsInstructionAndTemperature(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeCompletion(w, "  - point one\n- point two\n")
	}))
	defer srv.Close()

	out, err := newTestClient(t, srv.URL).Summarize(context.Background(), "The council met on Tuesday.")
	require.NoError(t, err)
	assert.Equal(t, "- point one\n- point two", out)

	assert.Equal(t, "test-model", got.Model)
	assert.InDelta(t, 0.2, got.Temperature, 1e-9)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, message{Role: "system", Content: llm.Instruction}, got.Messages[0])
	assert.Equal(t, llm.UserPrompt("The council met on Tuesday."), got.Messages[1].Content)
}

func TestSummarizeRetriesRateLimit(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		writeCompletion(w, "- ok")
	}))
	defer srv.Close()

	out, err := newTestClient(t, srv.URL).Summarize(context.Background(), "text")
	require.NoError(t, err)
	assert.Equal(t, "- ok", out)
	assert.Equal(t, int32(2), calls.Load())
}

func TestSummarizeDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"invalid api key"}}`))
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).Summarize(context.Background(), "text")
	var upstream *domain.UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, http.StatusUnauthorized, upstream.Status)
	assert.Contains(t, err.Error(), "invalid api key")
	assert.Equal(t, int32(1), calls.Load())
}

func TestSummarizeGivesUpAfterRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).Summarize(context.Background(), "text")
	require.Error(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestSummarizeRejectsEmptyCompletion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeCompletion(w, "   ")
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).Summarize(context.Background(), "text")
	var parseErr *domain.ParseError
	assert.True(t, errors.As(err, &parseErr))
}

func TestParseRetryAfter(t *testing.T) {
	assert.Equal(t, time.Duration(0), parseRetryAfter(""))
	assert.Equal(t, 3*time.Second, parseRetryAfter("3"))
	assert.Equal(t, maxRetryAfter, parseRetryAfter("3600"))
	assert.Equal(t, time.Duration(0), parseRetryAfter("garbage"))
}
