package generation

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Conceptual-Machines/ldr-sync-api/internal/fallback"
	"github.com/Conceptual-Machines/ldr-sync-api/internal/llm"
	"github.com/Conceptual-Machines/ldr-sync-api/internal/metrics"
	"github.com/Conceptual-Machines/ldr-sync-api/internal/prompt"
	"github.com/Conceptual-Machines/ldr-sync-api/internal/random"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fallbackCounter struct {
	metrics.Nop
	reasons []string
}

func (f *fallbackCounter) RecordFallback(_ context.Context, _ string, reason string) {
	f.reasons = append(f.reasons, reason)
}

func newTestService(t *testing.T, provider llm.Provider, opts ...Option) *Service {
	t.Helper()
	builder, err := prompt.NewPromptBuilder("Veer", []string{"Rishi", "Chokri"}, random.Fixed(0))
	require.NoError(t, err)
	gateway := NewGateway(provider, "llama-3.3-70b-versatile", 0.7, nil, nil)
	return NewService(builder, gateway, append([]Option{WithRand(random.Fixed(0))}, opts...)...)
}

func TestGenerateLetter_Success(t *testing.T) {
	service := newTestService(t, replying("Dear Rishi, hang in there."))

	result := service.GenerateLetter(context.Background(), "Sad")

	assert.Equal(t, "Dear Rishi, hang in there.", result.Text)
	assert.Equal(t, "Rishi", result.Recipient)
	assert.Equal(t, "Sad", result.Mood)
	assert.Equal(t, SourceModel, result.Source)
	assert.Nil(t, result.Failure)
}

func TestGenerateLetter_FailureSurfacesErrorText(t *testing.T) {
	service := newTestService(t, failing(errors.New("connection reset")))

	result := service.GenerateLetter(context.Background(), "Happy")

	assert.Equal(t, "AI Error: connection reset", result.Text)
	assert.Equal(t, SourceModel, result.Source)
	require.NotNil(t, result.Failure)
}

func TestGenerateLetter_SendsMoodInstruction(t *testing.T) {
	provider := replying("ok")
	service := newTestService(t, provider)

	service.GenerateLetter(context.Background(), "Flirty")

	require.Len(t, provider.calls, 1)
	assert.Equal(t, "Write a note about this specific feeling: Flirty. Keep it under 80 words.", provider.calls[0].UserPrompt)
	assert.Contains(t, provider.calls[0].SystemPrompt, "Dear Rishi,")
}

func TestGenerateDatePlan_Success(t *testing.T) {
	service := newTestService(t, replying("**Stargazing Call**\nOpen Stellarium."))

	result := service.GenerateDatePlan(context.Background(), "1 Hour", "Fun")

	assert.Equal(t, "**Stargazing Call**\nOpen Stellarium.", result.Text)
	assert.Equal(t, SourceModel, result.Source)
}

func TestGenerateDatePlan_FallbackOnProviderError(t *testing.T) {
	counter := &fallbackCounter{}
	provider := failing(&llm.APIError{Provider: "mock", StatusCode: 429, Err: errors.New("Quota exceeded")})
	service := newTestService(t, provider, WithRecorder(counter))

	result := service.GenerateDatePlan(context.Background(), "2 Hours", "Romantic")

	assert.Equal(t, SourceFallback, result.Source)
	assert.Equal(t, fallback.DefaultCatalog[4].Idea, result.Text)
	require.NotNil(t, result.Failure)
	assert.Equal(t, KindRateLimit, result.Failure.Kind)
	assert.Equal(t, []string{"rate_limit"}, counter.reasons)
}

func TestGenerateDatePlan_FallbackWhenNothingMatches(t *testing.T) {
	service := newTestService(t, failing(errors.New("offline")))

	result := service.GenerateDatePlan(context.Background(), "5 Hours", "Gaming")

	assert.Equal(t, SourceFallback, result.Source)
	assert.NotEmpty(t, result.Text)
	assert.False(t, strings.HasPrefix(result.Text, ErrorPrefix))
}

func TestGenerateDatePlan_SentinelDetection(t *testing.T) {
	modelText := "**Quota exceeded Escape Room**\nA puzzle game about running out of lives."

	t.Run("structured only keeps model text", func(t *testing.T) {
		service := newTestService(t, replying(modelText))
		result := service.GenerateDatePlan(context.Background(), "2 Hours", "Romantic")

		assert.Equal(t, SourceModel, result.Source)
		assert.Equal(t, modelText, result.Text)
	})

	t.Run("legacy sniffing swaps in catalog", func(t *testing.T) {
		counter := &fallbackCounter{}
		service := newTestService(t, replying(modelText), WithSentinelDetection(true), WithRecorder(counter))
		result := service.GenerateDatePlan(context.Background(), "2 Hours", "Romantic")

		assert.Equal(t, SourceFallback, result.Source)
		assert.Equal(t, fallback.DefaultCatalog[4].Idea, result.Text)
		assert.Equal(t, []string{"sentinel"}, counter.reasons)
	})
}

func TestGenerateDatePlan_NeverEmpty(t *testing.T) {
	for _, provider := range []*MockProvider{replying("idea"), failing(errors.New("x"))} {
		service := newTestService(t, provider)
		for _, tags := range [][2]string{{"", ""}, {"30 Mins", "Lazy"}, {"Any", "Any"}} {
			result := service.GenerateDatePlan(context.Background(), tags[0], tags[1])
			assert.NotEmpty(t, result.Text)
		}
	}
}

func TestService_PromptsAreIdempotent(t *testing.T) {
	generator := &recordingGenerator{outcome: Outcome{Text: "ok"}}
	builder, err := prompt.NewPromptBuilder("", nil, random.Fixed(1))
	require.NoError(t, err)
	service := NewService(builder, generator)

	service.GenerateDatePlan(context.Background(), "1 Hour", "Active")
	service.GenerateDatePlan(context.Background(), "1 Hour", "Active")
	service.GenerateLetter(context.Background(), "Tired")
	service.GenerateLetter(context.Background(), "Tired")

	require.Len(t, generator.pairs, 4)
	assert.Equal(t, generator.pairs[0], generator.pairs[1])
	assert.Equal(t, generator.pairs[2], generator.pairs[3])
}
