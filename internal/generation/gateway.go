package generation

import (
	"context"
	"time"

	"github.com/Conceptual-Machines/ldr-sync-api/internal/llm"
	"github.com/Conceptual-Machines/ldr-sync-api/internal/logger"
	"github.com/Conceptual-Machines/ldr-sync-api/internal/metrics"
	"github.com/Conceptual-Machines/ldr-sync-api/internal/observability"
	"github.com/Conceptual-Machines/ldr-sync-api/internal/prompt"
	"github.com/getsentry/sentry-go"
)

// Outcome is the result of one model call. Failure is nil on success.
type Outcome struct {
	Text     string
	Failure  *Failure
	Model    string
	Usage    llm.Usage
	Duration time.Duration
}

// Generator runs one prompt against the model
type Generator interface {
	Generate(ctx context.Context, feature string, pair prompt.PromptPair) Outcome
}

// Gateway makes exactly one provider call per prompt and never returns an error:
// failures come back as the ErrorPrefix text plus a classified Failure.
type Gateway struct {
	provider    llm.Provider
	model       string
	temperature float64
	tracer      *observability.LangfuseClient
	recorder    metrics.Recorder
}

// NewGateway creates a gateway; nil tracer and recorder disable tracing and metrics
func NewGateway(provider llm.Provider, model string, temperature float64, tracer *observability.LangfuseClient, recorder metrics.Recorder) *Gateway {
	if tracer == nil {
		tracer = observability.Disabled()
	}
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &Gateway{
		provider:    provider,
		model:       model,
		temperature: temperature,
		tracer:      tracer,
		recorder:    recorder,
	}
}

// Model returns the model id every call uses
func (g *Gateway) Model() string {
	return g.model
}

// Provider returns the provider name
func (g *Gateway) Provider() string {
	return g.provider.Name()
}

// Generate sends the prompt pair. The caller's context is the only deadline.
func (g *Gateway) Generate(ctx context.Context, feature string, pair prompt.PromptPair) Outcome {
	span := sentry.StartSpan(ctx, "generation.gateway")
	span.SetTag("feature", feature)
	span.SetTag("model", g.model)
	defer span.Finish()

	trace := g.tracer.StartTrace(ctx, feature, map[string]interface{}{
		"provider": g.provider.Name(),
	})
	defer trace.Finish()
	gen := trace.Generation(g.provider.Name()+".chat", map[string]interface{}{"feature": feature})
	defer gen.Finish()

	start := time.Now()
	resp, err := g.provider.Complete(span.Context(), &llm.ChatRequest{
		Model:        g.model,
		SystemPrompt: pair.System,
		UserPrompt:   pair.User,
		Temperature:  g.temperature,
	})
	duration := time.Since(start)

	if err != nil {
		failure := Classify(err)
		span.Status = sentry.SpanStatusInternalError
		gen.LogChat(g.model, pair.System, pair.User, "", 0, 0, 0)
		gen.SetLevel("ERROR")
		g.recorder.RecordGeneration(ctx, feature, duration, false)
		logger.Error("Model call failed", err, logger.Fields{
			"feature":      feature,
			"model":        g.model,
			"failure_kind": string(failure.Kind),
			"duration_ms":  duration.Milliseconds(),
		})
		return Outcome{
			Text:     ErrorPrefix + err.Error(),
			Failure:  failure,
			Model:    g.model,
			Duration: duration,
		}
	}

	span.Status = sentry.SpanStatusOK
	gen.LogChat(g.model, pair.System, pair.User, resp.Text, resp.Usage.InputTokens, resp.Usage.OutputTokens, resp.Usage.TotalTokens)
	g.recorder.RecordGeneration(ctx, feature, duration, true)
	g.recorder.RecordTokenUsage(ctx, g.model, resp.Usage.TotalTokens, resp.Usage.InputTokens, resp.Usage.OutputTokens)
	logger.LogGenerationRequest(ctx, g.model, duration, resp.Usage.AsMap(), logger.Fields{
		"feature":  feature,
		"provider": g.provider.Name(),
	})

	return Outcome{
		Text:     resp.Text,
		Model:    g.model,
		Usage:    resp.Usage,
		Duration: duration,
	}
}
