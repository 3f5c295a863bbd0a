// Package cache holds the read-through cache for public verification status.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"landregistry/internal/identity/models"
	id "landregistry/pkg/domain"
	"landregistry/pkg/platform/sentinel"
)

const (
	statusKeyPrefix = "landreg:status:"
	defaultTTL      = 5 * time.Minute
)

// advanceScript stores ARGV[1] unless the entry already holds a higher rank.
// A lower rank leaves both the value and its TTL alone.
var advanceScript = redis.NewScript(`
local cur = redis.call('GET', KEYS[1])
if cur and tonumber(cur) > tonumber(ARGV[1]) then
  return 0
end
redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[2])
return 1
`)

// RedisStatusCache stores {isRegistered, isVerified} per account with a TTL.
// Entries are kept as a rank (0 unregistered, 1 registered, 2 verified) so
// Set can refuse to move an account backwards.
type RedisStatusCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

type Option func(*RedisStatusCache)

func WithTTL(ttl time.Duration) Option {
	return func(c *RedisStatusCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

func NewRedisStatusCache(client redis.Cmdable, opts ...Option) *RedisStatusCache {
	c := &RedisStatusCache{client: client, ttl: defaultTTL}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func key(account id.AccountID) string {
	return statusKeyPrefix + account.String()
}

func rank(status models.VerificationStatus) int {
	switch {
	case status.IsVerified:
		return 2
	case status.IsRegistered:
		return 1
	default:
		return 0
	}
}

func fromRank(r int) (models.VerificationStatus, error) {
	switch r {
	case 0:
		return models.VerificationStatus{}, nil
	case 1:
		return models.VerificationStatus{IsRegistered: true}, nil
	case 2:
		return models.VerificationStatus{IsRegistered: true, IsVerified: true}, nil
	default:
		return models.VerificationStatus{}, fmt.Errorf("unknown status rank %d", r)
	}
}

func (c *RedisStatusCache) Get(ctx context.Context, account id.AccountID) (*models.VerificationStatus, error) {
	raw, err := c.client.Get(ctx, key(account)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get status: %w", err)
	}
	r, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("decode status: %w", err)
	}
	status, err := fromRank(r)
	if err != nil {
		return nil, fmt.Errorf("decode status: %w", err)
	}
	return &status, nil
}

// Set stores status unless the cached entry is already further along.
func (c *RedisStatusCache) Set(ctx context.Context, account id.AccountID, status models.VerificationStatus) error {
	err := advanceScript.Run(ctx, c.client, []string{key(account)}, rank(status), c.ttl.Milliseconds()).Err()
	if err != nil {
		return fmt.Errorf("set status: %w", err)
	}
	return nil
}

func (c *RedisStatusCache) Invalidate(ctx context.Context, account id.AccountID) error {
	return c.client.Del(ctx, key(account)).Err()
}
