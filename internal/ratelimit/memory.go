package ratelimit

import (
	"context"
	"sync"
	"time"
)

type window struct {
	count   int
	resetAt time.Time
}

type memoryLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	limit   int
	period  time.Duration
	now     func() time.Time
}

// NewMemoryLimiter returns a process-local fixed-window limiter allowing
// limit requests per period for each key.
func NewMemoryLimiter(limit int, period time.Duration) Limiter {
	return &memoryLimiter{
		windows: make(map[string]*window),
		limit:   limit,
		period:  period,
		now:     time.Now,
	}
}

func (l *memoryLimiter) Allow(_ context.Context, key string) (Result, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.windows[key]
	if !ok || now.After(w.resetAt) {
		l.prune(now)
		w = &window{resetAt: now.Add(l.period)}
		l.windows[key] = w
	}

	w.count++
	if w.count > l.limit {
		return Result{Allowed: false, RetryAfter: w.resetAt.Sub(now)}, nil
	}
	return Result{Allowed: true}, nil
}

// prune drops expired windows so the map does not grow with every client
// address ever seen. Called only when a window rolls over, which bounds the
// cost to churn rather than traffic.
func (l *memoryLimiter) prune(now time.Time) {
	for key, w := range l.windows {
		if now.After(w.resetAt) {
			delete(l.windows, key)
		}
	}
}
