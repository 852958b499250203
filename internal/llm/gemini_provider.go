package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Conceptual-Machines/ldr-sync-api/internal/logger"
	"github.com/getsentry/sentry-go"
	"google.golang.org/genai"
)

const (
	providerNameGemini = "gemini"
	geminiUserRole     = "user"
)

// GeminiProvider implements the Provider interface using Google's Gemini API
type GeminiProvider struct {
	client *genai.Client
}

// NewGeminiProvider creates a new Gemini provider
func NewGeminiProvider(ctx context.Context, apiKey string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiProvider{
		client: client,
	}, nil
}

// Name returns the provider name
func (p *GeminiProvider) Name() string {
	return providerNameGemini
}

// Complete implements a single non-streaming generation
func (p *GeminiProvider) Complete(ctx context.Context, request *ChatRequest) (*ChatResponse, error) {
	transaction := sentry.StartTransaction(ctx, "gemini.complete")
	defer transaction.Finish()

	transaction.SetTag("model", request.Model)
	transaction.SetTag("provider", providerNameGemini)

	contents := p.buildContents(request)
	config := p.buildConfig(request)

	span := transaction.StartChild("gemini.api_call")
	apiStartTime := time.Now()
	result, err := p.client.Models.GenerateContent(ctx, request.Model, contents, config)
	apiDuration := time.Since(apiStartTime)
	span.Finish()

	if err != nil {
		transaction.SetTag("success", "false")
		logger.Warn("Gemini request failed", logger.Fields{
			"model":       request.Model,
			"duration_ms": apiDuration.Milliseconds(),
			"error":       err.Error(),
		})
		return nil, wrapGeminiError(err)
	}

	if len(result.Candidates) == 0 {
		transaction.SetTag("success", "false")
		return nil, newAPIError(providerNameGemini, 0, "no candidates in Gemini response")
	}

	response := &ChatResponse{
		Text:  result.Text(),
		Model: request.Model,
	}
	if result.UsageMetadata != nil {
		response.Usage = Usage{
			InputTokens:  int64(result.UsageMetadata.PromptTokenCount),
			OutputTokens: int64(result.UsageMetadata.CandidatesTokenCount),
			TotalTokens:  int64(result.UsageMetadata.TotalTokenCount),
		}
	}

	transaction.SetTag("success", "true")
	return response, nil
}

// buildContents puts the user prompt in a single user turn
func (p *GeminiProvider) buildContents(request *ChatRequest) []*genai.Content {
	return []*genai.Content{
		{
			Role:  geminiUserRole,
			Parts: []*genai.Part{{Text: request.UserPrompt}},
		},
	}
}

// buildConfig carries the system prompt and temperature
func (p *GeminiProvider) buildConfig(request *ChatRequest) *genai.GenerateContentConfig {
	temperature := float32(request.Temperature)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: request.SystemPrompt}},
		},
		Temperature: &temperature,
	}
}

func wrapGeminiError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &APIError{Provider: providerNameGemini, StatusCode: apiErr.Code, Err: err}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return &APIError{Provider: providerNameGemini, StatusCode: apiErrPtr.Code, Err: err}
	}
	return &APIError{Provider: providerNameGemini, Err: err}
}
