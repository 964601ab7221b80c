package services

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ResponseCache is a best-effort Redis cache for upstream API responses.
// Spoonacular bills per call, so cached reads directly save quota. A nil
// *ResponseCache is valid and disables caching; cache failures are logged
// and never fail the request.
type ResponseCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *logrus.Logger
}

// NewResponseCache connects to Redis using a redis:// URL.
func NewResponseCache(redisURL string, ttl time.Duration, logger *logrus.Logger) (*ResponseCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &ResponseCache{client: client, ttl: ttl, logger: logger}, nil
}

// Get returns the cached payload for key, if any.
func (c *ResponseCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	val, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.WithError(err).Warn("cache read failed")
		}
		return nil, false
	}
	return val, true
}

// Set stores the payload for key with the configured TTL.
func (c *ResponseCache) Set(ctx context.Context, key string, value []byte) {
	if c == nil {
		return
	}
	if err := c.client.Set(ctx, key, value, c.ttl).Err(); err != nil {
		c.logger.WithError(err).Warn("cache write failed")
	}
}

// Close releases the Redis connection.
func (c *ResponseCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
