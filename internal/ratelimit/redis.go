package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisLimiter struct {
	client *redis.Client
	limit  int
	period time.Duration
	now    func() time.Time
}

// NewRedisLimiter counts requests in redis keyed by (key, window bucket)
// with a TTL, so the limit holds across instances and restarts. Windows
// are aligned to period boundaries rather than to each client's first
// request; both satisfy the limit-per-period contract.
func NewRedisLimiter(client *redis.Client, limit int, period time.Duration) Limiter {
	return &redisLimiter{
		client: client,
		limit:  limit,
		period: period,
		now:    time.Now,
	}
}

func (l *redisLimiter) Allow(ctx context.Context, key string) (Result, error) {
	now := l.now()
	bucket := now.UnixMilli() / l.period.Milliseconds()
	counterKey := fmt.Sprintf("ratelimit:%s:%d", key, bucket)

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, counterKey)
	pipe.Expire(ctx, counterKey, l.period)
	if _, err := pipe.Exec(ctx); err != nil {
		return Result{}, fmt.Errorf("rate limit incr: %w", err)
	}

	if incr.Val() > int64(l.limit) {
		windowEnd := time.UnixMilli((bucket + 1) * l.period.Milliseconds())
		return Result{Allowed: false, RetryAfter: windowEnd.Sub(now)}, nil
	}
	return Result{Allowed: true}, nil
}
