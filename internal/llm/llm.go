// Package llm abstracts chat-completion model providers behind a single
// interface. Concrete providers live in subpackages and register
// themselves with the factory.
package llm

import "context"

// CompletionRequest is a single prompt exchange with a model.
type CompletionRequest struct {
	System      string
	Prompt      string
	Model       string
	MaxTokens   int
	Temperature float64
}

// Client sends completion requests to one model provider.
type Client interface {
	// Complete returns the model's text answer. Transport, auth, quota
	// and timeout failures wrap ErrModelUnavailable.
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// Config holds provider settings. Provider selects the registered
// factory ("openai" or "claude").
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64
	TimeoutSecs int
}

// Configured reports whether the config names a usable provider.
func (c Config) Configured() bool {
	return c.Provider != "" && c.APIKey != ""
}
