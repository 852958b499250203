package metrics

import (
	"context"
	"time"
)

// Recorder is what request handlers and the generation gateway report to
type Recorder interface {
	RecordAPIRequest(ctx context.Context, endpoint string, statusCode int, duration time.Duration)
	RecordGeneration(ctx context.Context, feature string, duration time.Duration, success bool)
	RecordTokenUsage(ctx context.Context, model string, totalTokens, inputTokens, outputTokens int64)
	RecordFallback(ctx context.Context, feature, reason string)
}

// Multi fans every call out to each recorder in order
type Multi []Recorder

// NewMulti drops nil recorders
func NewMulti(recorders ...Recorder) Multi {
	out := make(Multi, 0, len(recorders))
	for _, r := range recorders {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}

func (m Multi) RecordAPIRequest(ctx context.Context, endpoint string, statusCode int, duration time.Duration) {
	for _, r := range m {
		r.RecordAPIRequest(ctx, endpoint, statusCode, duration)
	}
}

func (m Multi) RecordGeneration(ctx context.Context, feature string, duration time.Duration, success bool) {
	for _, r := range m {
		r.RecordGeneration(ctx, feature, duration, success)
	}
}

func (m Multi) RecordTokenUsage(ctx context.Context, model string, totalTokens, inputTokens, outputTokens int64) {
	for _, r := range m {
		r.RecordTokenUsage(ctx, model, totalTokens, inputTokens, outputTokens)
	}
}

func (m Multi) RecordFallback(ctx context.Context, feature, reason string) {
	for _, r := range m {
		r.RecordFallback(ctx, feature, reason)
	}
}

// Nop discards everything
type Nop struct{}

func (Nop) RecordAPIRequest(context.Context, string, int, time.Duration) {}
func (Nop) RecordGeneration(context.Context, string, time.Duration, bool) {}
func (Nop) RecordTokenUsage(context.Context, string, int64, int64, int64) {}
func (Nop) RecordFallback(context.Context, string, string) {}
