package llm

import (
	"context"
	"fmt"
)

// Provider defines the interface for LLM providers.
// One call is one system message plus one user message; no history, no streaming.
type Provider interface {
	// Complete sends a single chat completion and returns the raw model text
	Complete(ctx context.Context, request *ChatRequest) (*ChatResponse, error)

	// Name returns the provider name (e.g., "groq", "openai", "gemini")
	Name() string
}

// ChatRequest contains all parameters needed for one completion
type ChatRequest struct {
	Model        string
	SystemPrompt string
	UserPrompt   string
	Temperature  float64
}

// ChatResponse contains the result from the LLM
type ChatResponse struct {
	Text  string `json:"text"`
	Model string `json:"model"`
	Usage Usage  `json:"usage"`
}

// Usage is provider-neutral token accounting
type Usage struct {
	InputTokens  int64 `json:"input_tokens"`
	OutputTokens int64 `json:"output_tokens"`
	TotalTokens  int64 `json:"total_tokens"`
}

// AsMap returns the usage in the shape the logger and Langfuse expect
func (u Usage) AsMap() map[string]int64 {
	return map[string]int64{
		"input_tokens":  u.InputTokens,
		"output_tokens": u.OutputTokens,
		"total_tokens":  u.TotalTokens,
	}
}

// APIError wraps any failure coming out of a provider SDK.
// StatusCode is the HTTP status when the service answered, 0 otherwise.
type APIError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *APIError) Error() string {
	return e.Err.Error()
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func newAPIError(provider string, statusCode int, format string, args ...any) *APIError {
	return &APIError{
		Provider:   provider,
		StatusCode: statusCode,
		Err:        fmt.Errorf(format, args...),
	}
}
