package generation

import (
	"context"
	"fmt"
	"time"

	"github.com/Conceptual-Machines/ldr-sync-api/internal/fallback"
	"github.com/Conceptual-Machines/ldr-sync-api/internal/llm"
	"github.com/Conceptual-Machines/ldr-sync-api/internal/logger"
	"github.com/Conceptual-Machines/ldr-sync-api/internal/metrics"
	"github.com/Conceptual-Machines/ldr-sync-api/internal/prompt"
	"github.com/Conceptual-Machines/ldr-sync-api/internal/random"
)

// Features, used as trace names and metric dimensions
const (
	FeatureLetter = "love_letter"
	FeatureDate   = "date_plan"
)

// Result sources
const (
	SourceModel    = "model"
	SourceFallback = "fallback"
)

// reasonSentinel is the fallback reason when only content sniffing flagged the answer
const reasonSentinel = "sentinel"

// Result is the outcome of a date plan request
type Result struct {
	Text     string
	Source   string
	Failure  *Failure
	Model    string
	Usage    llm.Usage
	Duration time.Duration
}

// LetterResult is the outcome of a love letter request.
// Text is the model answer or the ErrorPrefix text; letters have no fallback.
type LetterResult struct {
	Result
	Recipient string
	Mood      string
}

// Service runs the letter and date pipelines
type Service struct {
	builder           *prompt.Builder
	generator         Generator
	catalog           fallback.Catalog
	rng               random.Source
	sentinelDetection bool
	recorder          metrics.Recorder
}

// Option configures a Service
type Option func(*Service)

// WithCatalog replaces the default fallback catalog
func WithCatalog(catalog fallback.Catalog) Option {
	return func(s *Service) { s.catalog = catalog }
}

// WithRand sets the random source for fallback selection
func WithRand(rng random.Source) Option {
	return func(s *Service) { s.rng = rng }
}

// WithSentinelDetection also treats model text containing "AI Error" or
// "Quota exceeded" as a failure
func WithSentinelDetection(enabled bool) Option {
	return func(s *Service) { s.sentinelDetection = enabled }
}

// WithRecorder sets where fallback metrics go
func WithRecorder(recorder metrics.Recorder) Option {
	return func(s *Service) { s.recorder = recorder }
}

// NewService creates the generation service
func NewService(builder *prompt.Builder, generator Generator, opts ...Option) *Service {
	s := &Service{
		builder:   builder,
		generator: generator,
		catalog:   fallback.DefaultCatalog,
		rng:       random.Global,
		recorder:  metrics.Nop{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenerateLetter writes a short note for the given mood
func (s *Service) GenerateLetter(ctx context.Context, mood string) *LetterResult {
	letter, err := s.builder.Letter(mood)
	if err != nil {
		return &LetterResult{
			Result: Result{
				Text:    ErrorPrefix + err.Error(),
				Source:  SourceModel,
				Failure: &Failure{Kind: KindUnknown, Err: err},
			},
			Mood: mood,
		}
	}

	outcome := s.generator.Generate(ctx, FeatureLetter, letter.PromptPair)
	return &LetterResult{
		Result:    resultFrom(outcome, SourceModel),
		Recipient: letter.Recipient,
		Mood:      mood,
	}
}

// GenerateDatePlan asks the model for one date idea and falls back to the
// catalog when the call fails. The returned text is never empty for a
// non-empty catalog.
func (s *Service) GenerateDatePlan(ctx context.Context, duration, vibe string) *Result {
	pair, err := s.builder.DatePlan(duration, vibe)
	if err != nil {
		return s.fallback(ctx, Outcome{Failure: &Failure{Kind: KindUnknown, Err: err}}, duration, vibe, string(KindUnknown))
	}

	outcome := s.generator.Generate(ctx, FeatureDate, pair)
	if reason, failed := s.detectFailure(outcome); failed {
		return s.fallback(ctx, outcome, duration, vibe, reason)
	}

	result := resultFrom(outcome, SourceModel)
	return &result
}

func (s *Service) detectFailure(outcome Outcome) (string, bool) {
	if outcome.Failure != nil {
		return string(outcome.Failure.Kind), true
	}
	if s.sentinelDetection && ContainsSentinel(outcome.Text) {
		return reasonSentinel, true
	}
	return "", false
}

func (s *Service) fallback(ctx context.Context, outcome Outcome, duration, vibe, reason string) *Result {
	entry, matched := s.catalog.Select(duration, vibe, s.rng)
	logger.Warn("Model unavailable, using backup date idea", logger.Fields{
		"duration": duration,
		"vibe":     vibe,
		"reason":   reason,
		"matched":  matched,
	})
	s.recorder.RecordFallback(ctx, FeatureDate, reason)

	failure := outcome.Failure
	if failure == nil {
		failure = &Failure{Kind: KindUnknown, Err: fmt.Errorf("model text flagged by sentinel detection")}
	}
	return &Result{
		Text:     entry.Idea,
		Source:   SourceFallback,
		Failure:  failure,
		Model:    outcome.Model,
		Usage:    outcome.Usage,
		Duration: outcome.Duration,
	}
}

func resultFrom(outcome Outcome, source string) Result {
	return Result{
		Text:     outcome.Text,
		Source:   source,
		Failure:  outcome.Failure,
		Model:    outcome.Model,
		Usage:    outcome.Usage,
		Duration: outcome.Duration,
	}
}
