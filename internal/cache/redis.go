// Package cache wraps the Redis client used for the unread-notification
// badge cache and the distributed rate limiter.
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient wraps go-redis with the small surface the app needs.
type RedisClient struct {
	client *redis.Client
}

var (
	globalRedis *RedisClient
	redisOnce   sync.Once
)

// Initialize connects the global Redis client. The URL follows the
// redis://[user:pass@]host:port/db scheme.
func Initialize(redisURL string) error {
	var initErr error
	redisOnce.Do(func() {
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			initErr = fmt.Errorf("invalid redis url: %w", err)
			return
		}

		client := redis.NewClient(opts)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			initErr = fmt.Errorf("redis ping failed: %w", err)
			return
		}

		globalRedis = &RedisClient{client: client}
	})
	return initErr
}

// Get returns the global Redis client, or nil when Redis is not configured.
// Callers treat a nil client as "cache disabled" and fall through to the
// database.
func Get() *RedisClient {
	return globalRedis
}

// GetString fetches a string value. Returns redis.Nil sentinel via found=false.
func (r *RedisClient) GetString(ctx context.Context, key string) (string, bool, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

// SetEx stores a value with a TTL.
func (r *RedisClient) SetEx(ctx context.Context, key, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

// Del removes keys.
func (r *RedisClient) Del(ctx context.Context, keys ...string) error {
	return r.client.Del(ctx, keys...).Err()
}

// Incr increments a counter key and returns the new value.
func (r *RedisClient) Incr(ctx context.Context, key string) (int64, error) {
	return r.client.Incr(ctx, key).Result()
}

// Expire sets a TTL on an existing key.
func (r *RedisClient) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return r.client.Expire(ctx, key, ttl).Err()
}

// Close shuts down the client connection pool.
func (r *RedisClient) Close() error {
	return r.client.Close()
}
