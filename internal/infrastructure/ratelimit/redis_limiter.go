package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/you/userhub/domain"
)

// admitScript increments the counter and, when this is the first hit in the
// window, stamps its expiry in the same atomic evaluation. A counter can
// therefore never be left behind without a TTL.
var admitScript = redis.NewScript(`
local count = redis.call('INCR', KEYS[1])
if count == 1 then
	redis.call('EXPIRE', KEYS[1], ARGV[1])
end
return count
`)

// RedisLimiter implements domain.RateLimiter on a Redis counter per client
// key. The window resets implicitly when Redis expires the key.
type RedisLimiter struct {
	client *redis.Client
	prefix string
}

// NewRedisLimiter creates a new Redis-backed rate limiter
func NewRedisLimiter(client *redis.Client) domain.RateLimiter {
	return &RedisLimiter{
		client: client,
		prefix: "rate-limit:",
	}
}

// Admit implements domain.RateLimiter
func (l *RedisLimiter) Admit(ctx context.Context, clientKey string, maxRequests int, window time.Duration) error {
	key := l.prefix + clientKey

	count, err := admitScript.Run(ctx, l.client, []string{key}, int(window.Seconds())).Int64()
	if err != nil {
		return fmt.Errorf("rate limit counter increment failed: %w", err)
	}

	if count > int64(maxRequests) {
		return domain.ErrRateLimited
	}
	return nil
}
