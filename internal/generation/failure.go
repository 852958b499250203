package generation

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/Conceptual-Machines/ldr-sync-api/internal/llm"
)

// FailureKind tags why a model call produced no usable answer
type FailureKind string

const (
	KindTransport FailureKind = "transport"
	KindRateLimit FailureKind = "rate_limit"
	KindAuth      FailureKind = "auth"
	KindUnknown   FailureKind = "unknown"
)

// ErrorPrefix starts the text returned in place of a model answer on failure
const ErrorPrefix = "AI Error: "

// Legacy markers that content sniffing looks for
var sentinelMarkers = []string{"AI Error", "Quota exceeded"}

// Failure is the structured outcome of a failed model call
type Failure struct {
	Kind FailureKind
	Err  error
}

func (f *Failure) Error() string {
	return string(f.Kind) + ": " + f.Err.Error()
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Classify maps a provider error to a Failure
func Classify(err error) *Failure {
	if err == nil {
		return nil
	}

	var apiErr *llm.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusTooManyRequests:
			return &Failure{Kind: KindRateLimit, Err: err}
		case http.StatusUnauthorized, http.StatusForbidden:
			return &Failure{Kind: KindAuth, Err: err}
		}
	}

	if isTransport(err) {
		return &Failure{Kind: KindTransport, Err: err}
	}
	return &Failure{Kind: KindUnknown, Err: err}
}

func isTransport(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}

// ContainsSentinel reports whether text carries one of the legacy failure markers
func ContainsSentinel(text string) bool {
	for _, marker := range sentinelMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}
