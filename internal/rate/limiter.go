// Package rate implements fixed-window request limiting for the gateway's
// public endpoints. Every operation the gateway exposes reaches the backend
// identity platform, so throttling happens before the orchestrator runs.
package rate

import (
	"context"
	"time"
)

// Result is the outcome of one Allow call.
type Result struct {
	Allowed    bool
	Remaining  int64
	RetryAfter time.Duration
}

// Limiter decides whether a request keyed by client identity may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}
