package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// fixedWindow increments the key, arms its expiry on the first hit and
// returns the count with the remaining lifetime in milliseconds.
var fixedWindow = redis.NewScript(`
local n = redis.call('INCR', KEYS[1])
if n == 1 then
  redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return {n, redis.call('PTTL', KEYS[1])}
`)

// RedisStore is a fixed window shared by every replica.
type RedisStore struct {
	client redis.Scripter
	now    func() time.Time
}

func NewRedisStore(client redis.Scripter) *RedisStore {
	return &RedisStore{client: client, now: time.Now}
}

func (s *RedisStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (Result, error) {
	raw, err := fixedWindow.Run(ctx, s.client, []string{key}, window.Milliseconds()).Int64Slice()
	if err != nil {
		return Result{}, fmt.Errorf("rate limit %s: %w", key, err)
	}
	count, ttl := int(raw[0]), time.Duration(raw[1])*time.Millisecond
	if ttl < 0 {
		ttl = window
	}
	res := Result{
		Allowed: count <= limit,
		Limit:   limit,
		ResetAt: s.now().Add(ttl),
	}
	if res.Allowed {
		res.Remaining = limit - count
	}
	return res, nil
}
