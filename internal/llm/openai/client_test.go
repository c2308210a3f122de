package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"procura/internal/llm"
)

func testConfig() llm.Config {
	return llm.Config{
		Provider: "openai",
		APIKey:   "test-key",
		Model:    "gpt-4o-mini",
	}
}

func TestCompleteSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "gpt-4o-mini", body["model"])
		messages := body["messages"].([]any)
		require.Len(t, messages, 2)
		assert.Equal(t, "system", messages[0].(map[string]any)["role"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"vendor_name:ACME"}}]}`))
	}))
	defer server.Close()

	client := NewClientWithEndpoint(testConfig(), server.URL)
	out, err := client.Complete(context.Background(), llm.CompletionRequest{
		System: "You extract offers.",
		Prompt: "parse this",
	})
	require.NoError(t, err)
	assert.Equal(t, "vendor_name:ACME", out)
}

func TestCompleteRateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limit"}}`))
	}))
	defer server.Close()

	client := NewClientWithEndpoint(testConfig(), server.URL)
	_, err := client.Complete(context.Background(), llm.CompletionRequest{Prompt: "x"})
	require.Error(t, err)

	var rle *llm.RateLimitError
	require.ErrorAs(t, err, &rle)
	assert.Equal(t, "openai", rle.Provider)
	assert.Equal(t, float64(30), rle.RetryAfter.Seconds())
	assert.ErrorIs(t, err, llm.ErrModelUnavailable)
}

func TestCompleteServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClientWithEndpoint(testConfig(), server.URL)
	_, err := client.Complete(context.Background(), llm.CompletionRequest{Prompt: "x"})
	assert.ErrorIs(t, err, llm.ErrModelUnavailable)
}

func TestCompleteEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := NewClientWithEndpoint(testConfig(), server.URL)
	_, err := client.Complete(context.Background(), llm.CompletionRequest{Prompt: "x"})
	assert.ErrorIs(t, err, llm.ErrModelUnavailable)
}

func TestCompleteConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClientWithEndpoint(testConfig(), server.URL)
	_, err := client.Complete(context.Background(), llm.CompletionRequest{Prompt: "x"})
	assert.ErrorIs(t, err, llm.ErrModelUnavailable)
}

func TestFactoryRegistration(t *testing.T) {
	client, err := llm.NewClient(testConfig())
	require.NoError(t, err)
	assert.IsType(t, &Client{}, client)
}
