// Package bucket holds sliding-window request counters.
package bucket

import (
	"context"
	"sync"
	"time"

	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/ratelimit"
)

// InMemory keeps one window of timestamps per key. It is process-local.
type InMemory struct {
	mu      sync.Mutex
	buckets map[string][]time.Time
	now     func() time.Time
}

func NewInMemory() *InMemory {
	return &InMemory{buckets: make(map[string][]time.Time), now: time.Now}
}

func (s *InMemory) Allow(_ context.Context, key string, limit int, window time.Duration) (*ratelimit.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	stamps := prune(s.buckets[key], now.Add(-window))

	if len(stamps) >= limit {
		s.buckets[key] = stamps
		return &ratelimit.Result{
			Allowed: false,
			ResetAt: stamps[0].Add(window),
		}, nil
	}

	stamps = append(stamps, now)
	s.buckets[key] = stamps
	return &ratelimit.Result{
		Allowed:   true,
		Remaining: limit - len(stamps),
		ResetAt:   stamps[0].Add(window),
	}, nil
}

// prune drops timestamps at or before cutoff. Timestamps are appended in order.
func prune(stamps []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for ; i < len(stamps); i++ {
		if stamps[i].After(cutoff) {
			break
		}
	}
	return stamps[i:]
}
