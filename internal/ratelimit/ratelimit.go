// Package ratelimit implements the fixed-window request limiter guarding
// the chat relay. The default implementation keeps its counters in process
// memory: restarts clear it and parallel instances do not share it, so it
// is an approximate limit. The redis implementation shares counters across
// instances for deployments that need that.
package ratelimit

import (
	"context"
	"time"
)

// Result reports a single limiter decision. RetryAfter is only meaningful
// when Allowed is false.
type Result struct {
	Allowed    bool
	RetryAfter time.Duration
}

type Limiter interface {
	// Allow records one request for key (normally the client IP) and
	// reports whether it fits inside the current window.
	Allow(ctx context.Context, key string) (Result, error)
}
