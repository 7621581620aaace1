package bucket

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/ratelimit"
)

// slidingWindow trims the sorted set to the window, then admits the request
// when there is room. Returns {allowed, remaining, reset_at_ms}.
var slidingWindow = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])

redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window)
local count = redis.call('ZCARD', key)
local allowed = 0
if count < limit then
  redis.call('ZADD', key, now, ARGV[4])
  redis.call('PEXPIRE', key, window)
  count = count + 1
  allowed = 1
end

local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
local reset = now + window
if oldest[2] then
  reset = tonumber(oldest[2]) + window
end
return {allowed, limit - count, reset}
`)

// RedisStore shares windows across instances with one sorted set per key.
type RedisStore struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedis(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, now: time.Now}
}

func (s *RedisStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (*ratelimit.Result, error) {
	now := s.now().UnixMilli()
	raw, err := slidingWindow.Run(ctx, s.client, []string{key},
		now, window.Milliseconds(), limit, fmt.Sprintf("%d-%s", now, uuid.NewString()),
	).Int64Slice()
	if err != nil {
		return nil, fmt.Errorf("sliding window: %w", err)
	}
	if len(raw) != 3 {
		return nil, fmt.Errorf("sliding window: unexpected reply of %d values", len(raw))
	}
	return &ratelimit.Result{
		Allowed:   raw[0] == 1,
		Remaining: int(max(raw[1], 0)),
		ResetAt:   time.UnixMilli(raw[2]),
	}, nil
}
