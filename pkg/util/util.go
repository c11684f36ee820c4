package util

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type detachedContext struct {
	context.Context
}

func (detachedContext) Deadline() (time.Time, bool) { return time.Time{}, false }
func (detachedContext) Done() <-chan struct{}       { return nil }
func (detachedContext) Err() error                  { return nil }

// NewTimeoutContext returns a context that keeps the parent's values but
// not its cancellation, bounded by the given timeout. Used for side
// effects that should outlive the triggering request.
func NewTimeoutContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(detachedContext{parent}, timeout)
}

// GetHistogramVec registers (or reuses) a histogram with the default
// buckets under the given name.
func GetHistogramVec(name string, labels ...string) (*prometheus.HistogramVec, error) {
	hv := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name: name,
		Help: name,
	}, labels)

	if err := prometheus.Register(hv); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector.(*prometheus.HistogramVec), nil
		}
		return nil, err
	}
	return hv, nil
}
