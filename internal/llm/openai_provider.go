package llm

import (
	"context"
	"errors"
	"time"

	"github.com/Conceptual-Machines/ldr-sync-api/internal/logger"
	"github.com/getsentry/sentry-go"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	providerNameOpenAI = "openai"
	providerNameGroq   = "groq"
)

// OpenAIProvider implements the Provider interface with the Chat Completions API.
// Any OpenAI-compatible host works; Groq is reached by pointing baseURL at it.
type OpenAIProvider struct {
	client *openai.Client
	name   string
}

// NewOpenAIProvider creates a provider for api.openai.com
func NewOpenAIProvider(apiKey string) *OpenAIProvider {
	return NewCompatibleProvider(providerNameOpenAI, apiKey, "")
}

// NewCompatibleProvider creates a provider for an OpenAI-compatible endpoint.
// An empty baseURL keeps the SDK default.
func NewCompatibleProvider(name, apiKey, baseURL string) *OpenAIProvider {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		// No retries: one request, one outcome
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	client := openai.NewClient(opts...)
	return &OpenAIProvider{
		client: &client,
		name:   name,
	}
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return p.name
}

// Complete sends one system + one user message and returns the first choice
func (p *OpenAIProvider) Complete(ctx context.Context, request *ChatRequest) (*ChatResponse, error) {
	transaction := sentry.StartTransaction(ctx, p.name+".complete")
	defer transaction.Finish()

	transaction.SetTag("model", request.Model)
	transaction.SetTag("provider", p.name)

	params := p.buildRequestParams(request)

	span := transaction.StartChild(p.name + ".api_call")
	apiStartTime := time.Now()
	resp, err := p.client.Chat.Completions.New(ctx, params)
	apiDuration := time.Since(apiStartTime)
	span.Finish()

	if err != nil {
		transaction.SetTag("success", "false")
		logger.Warn("Chat completion failed", logger.Fields{
			"provider":    p.name,
			"model":       request.Model,
			"duration_ms": apiDuration.Milliseconds(),
			"error":       err.Error(),
		})
		return nil, p.wrapError(err)
	}

	if len(resp.Choices) == 0 {
		transaction.SetTag("success", "false")
		return nil, newAPIError(p.name, 0, "%s response did not include any choices", p.name)
	}

	transaction.SetTag("success", "true")
	return &ChatResponse{
		Text:  resp.Choices[0].Message.Content,
		Model: resp.Model,
		Usage: Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}

// buildRequestParams converts a ChatRequest to Chat Completions params
func (p *OpenAIProvider) buildRequestParams(request *ChatRequest) openai.ChatCompletionNewParams {
	return openai.ChatCompletionNewParams{
		Model: openai.ChatModel(request.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(request.SystemPrompt),
			openai.UserMessage(request.UserPrompt),
		},
		Temperature: openai.Float(request.Temperature),
	}
}

// wrapError keeps the HTTP status of SDK errors so callers can classify them
func (p *OpenAIProvider) wrapError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return &APIError{Provider: p.name, StatusCode: apiErr.StatusCode, Err: err}
	}
	return &APIError{Provider: p.name, Err: err}
}
