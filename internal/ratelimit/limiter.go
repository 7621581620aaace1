package ratelimit

import (
	"context"
	"fmt"
	"math"
	"time"
)

// Store counts requests in a sliding window.
type Store interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*Result, error)
}

// Limiter applies a per-class limit to a client identifier.
type Limiter struct {
	store  Store
	limits map[Class]Limit
}

func NewLimiter(store Store, limits map[Class]Limit) *Limiter {
	return &Limiter{store: store, limits: limits}
}

// Check records one request from client. Classes without a configured limit
// are always allowed.
func (l *Limiter) Check(ctx context.Context, class Class, client string) (*Result, error) {
	limit, ok := l.limits[class]
	if !ok || limit.Requests <= 0 || limit.Window <= 0 {
		return &Result{Allowed: true}, nil
	}
	res, err := l.store.Allow(ctx, Key(class, client), limit.Requests, limit.Window)
	if err != nil {
		return nil, fmt.Errorf("rate limit check for %s: %w", class, err)
	}
	res.Limit = limit.Requests
	if !res.Allowed && res.RetryAfter == 0 {
		res.RetryAfter = retryAfterSeconds(time.Until(res.ResetAt))
	}
	return res, nil
}

func retryAfterSeconds(d time.Duration) int {
	if d <= 0 {
		return 1
	}
	return int(math.Ceil(d.Seconds()))
}
