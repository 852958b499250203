package generation

import (
	"context"

	"github.com/Conceptual-Machines/ldr-sync-api/internal/llm"
	"github.com/Conceptual-Machines/ldr-sync-api/internal/prompt"
)

// MockProvider is a function-field llm.Provider for tests
type MockProvider struct {
	completeFunc func(ctx context.Context, req *llm.ChatRequest) (*llm.ChatResponse, error)
	calls        []*llm.ChatRequest
}

func (m *MockProvider) Complete(ctx context.Context, req *llm.ChatRequest) (*llm.ChatResponse, error) {
	m.calls = append(m.calls, req)
	if m.completeFunc != nil {
		return m.completeFunc(ctx, req)
	}
	return &llm.ChatResponse{Text: "mock response", Model: req.Model}, nil
}

func (m *MockProvider) Name() string {
	return "mock"
}

func replying(text string) *MockProvider {
	return &MockProvider{
		completeFunc: func(_ context.Context, req *llm.ChatRequest) (*llm.ChatResponse, error) {
			return &llm.ChatResponse{
				Text:  text,
				Model: req.Model,
				Usage: llm.Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15},
			}, nil
		},
	}
}

func failing(err error) *MockProvider {
	return &MockProvider{
		completeFunc: func(context.Context, *llm.ChatRequest) (*llm.ChatResponse, error) {
			return nil, err
		},
	}
}

// recordingGenerator captures the prompt pairs a Service sends
type recordingGenerator struct {
	outcome Outcome
	pairs   []prompt.PromptPair
}

func (r *recordingGenerator) Generate(_ context.Context, _ string, pair prompt.PromptPair) Outcome {
	r.pairs = append(r.pairs, pair)
	return r.outcome
}
