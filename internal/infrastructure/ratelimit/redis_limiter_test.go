package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/you/userhub/domain"
)

// setupTestRedis creates an in-memory Redis instance for testing
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(func() {
		mr.Close()
	})

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	return client, mr
}

func TestRedisLimiter_AdmitUpToMax(t *testing.T) {
	client, _ := setupTestRedis(t)
	limiter := NewRedisLimiter(client)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := limiter.Admit(ctx, "10.0.0.1", 5, time.Minute); err != nil {
			t.Fatalf("request %d: Admit() error = %v", i+1, err)
		}
	}

	err := limiter.Admit(ctx, "10.0.0.1", 5, time.Minute)
	if !errors.Is(err, domain.ErrRateLimited) {
		t.Fatalf("request 6: Admit() error = %v, want ErrRateLimited", err)
	}
}

func TestRedisLimiter_KeysAreIndependent(t *testing.T) {
	client, _ := setupTestRedis(t)
	limiter := NewRedisLimiter(client)
	ctx := context.Background()

	if err := limiter.Admit(ctx, "10.0.0.1", 1, time.Minute); err != nil {
		t.Fatalf("first key: Admit() error = %v", err)
	}
	if err := limiter.Admit(ctx, "10.0.0.2", 1, time.Minute); err != nil {
		t.Fatalf("second key: Admit() error = %v", err)
	}
	if err := limiter.Admit(ctx, "10.0.0.1", 1, time.Minute); !errors.Is(err, domain.ErrRateLimited) {
		t.Fatalf("first key over limit: Admit() error = %v, want ErrRateLimited", err)
	}
}

func TestRedisLimiter_WindowResets(t *testing.T) {
	client, mr := setupTestRedis(t)
	limiter := NewRedisLimiter(client)
	ctx := context.Background()

	if err := limiter.Admit(ctx, "10.0.0.1", 1, time.Minute); err != nil {
		t.Fatalf("Admit() error = %v", err)
	}
	if err := limiter.Admit(ctx, "10.0.0.1", 1, time.Minute); !errors.Is(err, domain.ErrRateLimited) {
		t.Fatalf("Admit() error = %v, want ErrRateLimited", err)
	}

	// Let the counter expire; a new window admits again.
	mr.FastForward(61 * time.Second)

	if err := limiter.Admit(ctx, "10.0.0.1", 1, time.Minute); err != nil {
		t.Fatalf("after window: Admit() error = %v", err)
	}
}

func TestRedisLimiter_CounterAlwaysHasTTL(t *testing.T) {
	client, mr := setupTestRedis(t)
	limiter := NewRedisLimiter(client)
	ctx := context.Background()

	if err := limiter.Admit(ctx, "10.0.0.9", 100, 30*time.Second); err != nil {
		t.Fatalf("Admit() error = %v", err)
	}

	ttl := mr.TTL("rate-limit:10.0.0.9")
	if ttl <= 0 || ttl > 30*time.Second {
		t.Errorf("counter TTL = %v, want (0, 30s]", ttl)
	}
}
