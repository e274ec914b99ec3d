package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/domain/correspondence"
	"github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/domain/shared"
	"github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
)

// DefaultKeyPrefix namespaces verification entries in a shared Redis
const DefaultKeyPrefix = "ays:verify:"

// RedisVerificationCache stores positive verification results in Redis so that
// every instance behind the load balancer answers repeated lookups the same way
type RedisVerificationCache struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRedisVerificationCache connects to Redis and verifies the connection
func NewRedisVerificationCache(redisCfg config.RedisConfig, cacheCfg config.CacheConfig) (*RedisVerificationCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     redisCfg.Addr(),
		Password: redisCfg.Password,
		DB:       redisCfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisVerificationCacheWithClient(client, cacheCfg.KeyPrefix, cacheCfg.VerificationTTL), nil
}

// NewRedisVerificationCacheWithClient creates a cache over an existing client
func NewRedisVerificationCacheWithClient(client *redis.Client, keyPrefix string, ttl time.Duration) *RedisVerificationCache {
	if keyPrefix == "" {
		keyPrefix = DefaultKeyPrefix
	}
	return &RedisVerificationCache{
		client:    client,
		keyPrefix: keyPrefix,
		ttl:       ttl,
	}
}

// Get returns the cached result for a normalized number
func (c *RedisVerificationCache) Get(ctx context.Context, normalizedNumber string) (*correspondence.VerificationResult, bool, error) {
	raw, err := c.client.Get(ctx, c.keyPrefix+normalizedNumber).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, shared.NewStorageError("verification cache get", err)
	}

	var entry cachedResult
	if err := json.Unmarshal(raw, &entry); err != nil {
		// A corrupt entry is treated as a miss and overwritten on the next Set.
		return nil, false, nil
	}
	result := entry.toDomain()
	return &result, true, nil
}

// Set caches a found result. NotFound results are never cached.
func (c *RedisVerificationCache) Set(ctx context.Context, normalizedNumber string, result correspondence.VerificationResult) error {
	if !result.Found {
		return nil
	}
	payload, err := json.Marshal(fromDomain(result))
	if err != nil {
		return fmt.Errorf("failed to encode verification result: %w", err)
	}
	if err := c.client.Set(ctx, c.keyPrefix+normalizedNumber, payload, c.ttl).Err(); err != nil {
		return shared.NewStorageError("verification cache set", err)
	}
	return nil
}

// Invalidate drops the entry for a normalized number
func (c *RedisVerificationCache) Invalidate(ctx context.Context, normalizedNumber string) error {
	if err := c.client.Del(ctx, c.keyPrefix+normalizedNumber).Err(); err != nil {
		return shared.NewStorageError("verification cache invalidate", err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisVerificationCache) Close() error {
	return c.client.Close()
}

// Client returns the underlying Redis client
func (c *RedisVerificationCache) Client() *redis.Client {
	return c.client
}

var _ correspondence.VerificationCache = (*RedisVerificationCache)(nil)
