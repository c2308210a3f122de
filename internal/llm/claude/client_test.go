package claude

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
		Provider: "claude",
		APIKey:   "test-key",
		Model:    "claude-sonnet-4-20250514",
	}
}

func TestCompleteSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "You extract offers.", body["system"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"category:029|name:Hardware"}]}`))
	}))
	defer server.Close()

	client := NewClientWithEndpoint(testConfig(), server.URL)
	out, err := client.Complete(context.Background(), llm.CompletionRequest{
		System: "You extract offers.",
		Prompt: "classify this",
	})
	require.NoError(t, err)
	assert.Equal(t, "category:029|name:Hardware", out)
}

func TestCompleteJoinsTextBlocks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"part one "},{"type":"text","text":"part two"}]}`))
	}))
	defer server.Close()

	client := NewClientWithEndpoint(testConfig(), server.URL)
	out, err := client.Complete(context.Background(), llm.CompletionRequest{Prompt: "x"})
	require.NoError(t, err)
	assert.Equal(t, "part one part two", out)
}

func TestCompleteRateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "10")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClientWithEndpoint(testConfig(), server.URL)
	_, err := client.Complete(context.Background(), llm.CompletionRequest{Prompt: "x"})

	var rle *llm.RateLimitError
	require.ErrorAs(t, err, &rle)
	assert.Equal(t, "claude", rle.Provider)
	assert.ErrorIs(t, err, llm.ErrModelUnavailable)
}

func TestCompleteAuthFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"type":"authentication_error"}}`))
	}))
	defer server.Close()

	client := NewClientWithEndpoint(testConfig(), server.URL)
	_, err := client.Complete(context.Background(), llm.CompletionRequest{Prompt: "x"})
	assert.ErrorIs(t, err, llm.ErrModelUnavailable)
}

func TestCompleteNoTextContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"content":[]}`))
	}))
	defer server.Close()

	client := NewClientWithEndpoint(testConfig(), server.URL)
	_, err := client.Complete(context.Background(), llm.CompletionRequest{Prompt: "x"})
	assert.ErrorIs(t, err, llm.ErrModelUnavailable)
}

func TestFactoryRegistration(t *testing.T) {
	client, err := llm.NewClient(testConfig())
	require.NoError(t, err)
	assert.IsType(t, &Client{}, client)
}
