package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// KeyPrefix namespaces every key written by Redis
const KeyPrefix = "shortmark:resolve:"

// Key returns the Redis key for a short code
func Key(code string) string {
	return KeyPrefix + code
}

// RedisOptions configures the Redis connection
type RedisOptions struct {
	Addr        string
	Username    string
	Password    string
	DB          int
	PingTimeout time.Duration
}

// Connect creates a client and verifies the server is reachable
func Connect(ctx context.Context, opts RedisOptions, log *zap.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Username:     opts.Username,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	timeout := opts.PingTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis unavailable at %s: %w", opts.Addr, err)
	}

	log.Info("connected to redis", zap.String("addr", opts.Addr))
	return client, nil
}

// Redis is a Cache backed by a Redis server
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis wraps client. Entries expire after ttl.
func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

// Get returns the cached URL for code
func (r *Redis) Get(ctx context.Context, code string) (string, bool, error) {
	url, err := r.client.Get(ctx, Key(code)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil // Cache miss
		}
		return "", false, fmt.Errorf("get cached url: %w", err)
	}
	return url, true, nil
}

// Set stores url under code
func (r *Redis) Set(ctx context.Context, code, url string) error {
	if err := r.client.Set(ctx, Key(code), url, r.ttl).Err(); err != nil {
		return fmt.Errorf("cache url: %w", err)
	}
	return nil
}

// Delete removes the entry for code
func (r *Redis) Delete(ctx context.Context, code string) error {
	if err := r.client.Del(ctx, Key(code)).Err(); err != nil {
		return fmt.Errorf("invalidate cached url: %w", err)
	}
	return nil
}
