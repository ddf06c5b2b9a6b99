package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"userauth/internal/domain"
)

const attemptKeyPrefix = "userauth:login:attempts:"

// Store is the subset of *redis.Client the limiter relies on.
type Store interface {
	TxPipelined(ctx context.Context, fn func(redis.Pipeliner) error) ([]redis.Cmder, error)
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// LoginLimiter locks a username out once it has used maxAttempts attempts
// without a success. Each attempt pushes the expiry of the counter out to window.
type LoginLimiter struct {
	redis       Store
	maxAttempts int64
	window      time.Duration
}

var _ domain.LoginLimiter = (*LoginLimiter)(nil)

func NewLoginLimiter(r Store, maxAttempts int, window time.Duration) *LoginLimiter {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &LoginLimiter{redis: r, maxAttempts: int64(maxAttempts), window: window}
}

func NewClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis parse url failed: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return client, nil
}

// Attempt increments the counter and refreshes its TTL in one MULTI/EXEC,
// so the count and the expiry are never observed apart.
func (l *LoginLimiter) Attempt(ctx context.Context, username string) (bool, error) {
	key := attemptKey(username)

	var incr *redis.IntCmd
	_, err := l.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, l.window)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("limiter attempt failed: %w", err)
	}

	return incr.Val() <= l.maxAttempts, nil
}

func (l *LoginLimiter) Reset(ctx context.Context, username string) error {
	if err := l.redis.Del(ctx, attemptKey(username)).Err(); err != nil {
		return fmt.Errorf("limiter del failed: %w", err)
	}
	return nil
}

func attemptKey(username string) string {
	return attemptKeyPrefix + username
}
