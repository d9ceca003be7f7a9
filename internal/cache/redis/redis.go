package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aniladanir/board-sms-gateway/internal/cache"
	"github.com/aniladanir/retry"
	"github.com/go-redis/redis/v8"
)

type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to redis and pings it up to maxAttempts times before giving up
func NewRedisCache(ctx context.Context, addr string, maxAttempts int) (*RedisCache, error) {
	rClient := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	retrier, err := retry.New(retry.WithMaxAttemps(maxAttempts))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize retrier: %w", err)
	}

	var pingErr error
	pinged := <-retrier.Retry(ctx, func(attempt int) (terminate bool) {
		pingErr = rClient.Ping(ctx).Err()
		return pingErr == nil
	}, true)
	if !pinged {
		_ = rClient.Close()
		if pingErr == nil {
			pingErr = ctx.Err()
		}
		return nil, fmt.Errorf("failed to ping redis instance: %w", pingErr)
	}

	return NewWithClient(rClient), nil
}

// NewWithClient wraps an already configured client.
func NewWithClient(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (r *RedisCache) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", cache.ErrMiss
	}
	return val, err
}

func (r *RedisCache) SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	return r.client.SetNX(ctx, key, value, ttl).Result()
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}
