package worker

import (
	"context"

	"golang.org/x/time/rate"
)

// BackendLimiter throttles calls to the AI extraction backend. Unlike a
// crawler there is a single upstream here, so one token bucket covers all
// documents in a batch.
type BackendLimiter struct {
	limiter *rate.Limiter
}

// NewBackendLimiter creates a new rate limiter
func NewBackendLimiter(requestsPerSecond float64, burst int) *BackendLimiter {
	if burst <= 0 {
		burst = 5
	}

	return &BackendLimiter{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
	}
}

// Allow reports whether a backend call may proceed right now. Callers that
// are denied fall back to pattern extraction rather than queueing, keeping
// the at-most-one-attempt-per-document guarantee.
func (l *BackendLimiter) Allow() bool {
	return l.limiter.Allow()
}

// Wait blocks until a backend call may proceed or the context is done
func (l *BackendLimiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}
