package llm

import (
	"context"
	"fmt"
	"strings"
)

// ProviderFactory creates providers from explicit credentials
type ProviderFactory struct {
	apiKey       string
	baseURL      string
	geminiAPIKey string
}

// NewProviderFactory creates a new provider factory.
// apiKey/baseURL serve the OpenAI-compatible providers (groq, openai).
func NewProviderFactory(apiKey, baseURL, geminiAPIKey string) *ProviderFactory {
	return &ProviderFactory{
		apiKey:       apiKey,
		baseURL:      baseURL,
		geminiAPIKey: geminiAPIKey,
	}
}

// GetProvider returns the provider for the given name
func (f *ProviderFactory) GetProvider(ctx context.Context, providerName string) (Provider, error) {
	switch strings.ToLower(providerName) {
	case providerNameGroq:
		if f.apiKey == "" {
			return nil, fmt.Errorf("groq API key not configured")
		}
		return NewCompatibleProvider(providerNameGroq, f.apiKey, f.baseURL), nil

	case providerNameOpenAI:
		if f.apiKey == "" {
			return nil, fmt.Errorf("openai API key not configured")
		}
		return NewCompatibleProvider(providerNameOpenAI, f.apiKey, f.baseURL), nil

	case providerNameGemini:
		if f.geminiAPIKey == "" {
			return nil, fmt.Errorf("gemini API key not configured")
		}
		return NewGeminiProvider(ctx, f.geminiAPIKey)

	default:
		return nil, fmt.Errorf("unknown provider: %s (allowed: groq, openai, gemini)", providerName)
	}
}
