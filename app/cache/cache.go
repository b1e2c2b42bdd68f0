package cache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache wraps the Redis client used for session storage and transient
// feed-page caching.
type Cache struct {
	client *redis.Client
	ctx    context.Context
}

func NewCache(addr string) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     "",
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Cache{
		client: client,
		ctx:    ctx,
	}, nil
}

// Get retrieves a value from cache. A missing key returns an empty
// string with no error.
func (c *Cache) Get(key string) (string, error) {
	val, err := c.client.Get(c.ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get key %s: %w", key, err)
	}
	return val, nil
}

// Set stores a value in cache with TTL. Non-string values are JSON
// encoded.
func (c *Cache) Set(key string, value interface{}, ttl time.Duration) error {
	var data []byte
	var err error

	switch v := value.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		data, err = json.Marshal(value)
		if err != nil {
			return fmt.Errorf("failed to marshal value for key %s: %w", key, err)
		}
	}

	err = c.client.Set(c.ctx, key, data, ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}

	return nil
}

// Delete removes a key from cache.
func (c *Cache) Delete(key string) error {
	err := c.client.Del(c.ctx, key).Err()
	if err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}

// SetSession stores a session token to user id mapping with a TTL.
// Redis expiry is what invalidates stale sessions.
func (c *Cache) SetSession(token, userID string, ttl time.Duration) error {
	return c.Set(sessionKey(token), userID, ttl)
}

// GetSession resolves a session token to its user id. An unknown or
// expired token returns an empty string with no error.
func (c *Cache) GetSession(token string) (string, error) {
	return c.Get(sessionKey(token))
}

// DeleteSession invalidates a session token.
func (c *Cache) DeleteSession(token string) error {
	return c.Delete(sessionKey(token))
}

func sessionKey(token string) string {
	return fmt.Sprintf("session:%s", token)
}

// GenerateKey generates a consistent hashed cache key from its parts.
func (c *Cache) GenerateKey(prefix string, parts ...string) string {
	hash := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return fmt.Sprintf("%s:%x", prefix, hash[:8])
}

// Close closes the Redis connection.
func (c *Cache) Close() error {
	return c.client.Close()
}

// GetStats returns cache statistics.
func (c *Cache) GetStats() (map[string]interface{}, error) {
	info, err := c.client.Info(c.ctx, "memory", "stats").Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get cache stats: %w", err)
	}

	stats := map[string]interface{}{
		"connected": true,
		"info":      info,
	}

	if dbSize, err := c.client.DBSize(c.ctx).Result(); err == nil {
		stats["key_count"] = dbSize
	}

	return stats, nil
}

// Health returns cache health information.
func (c *Cache) Health() map[string]interface{} {
	health := map[string]interface{}{
		"status": "healthy",
		"type":   "redis",
	}

	if err := c.client.Ping(c.ctx).Err(); err != nil {
		health["status"] = "unhealthy"
		health["error"] = err.Error()
		return health
	}

	if stats, err := c.GetStats(); err == nil {
		health["key_count"] = stats["key_count"]
	}

	return health
}
