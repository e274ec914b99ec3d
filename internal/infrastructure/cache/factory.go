package cache

import (
	"fmt"

	"github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/domain/correspondence"
	"github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/infrastructure/config"
	"go.uber.org/zap"
)

// VerificationCacheFactory builds the verification cache from configuration
type VerificationCacheFactory struct {
	redisConfig           config.RedisConfig
	cacheConfig           config.CacheConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// FactoryOption is a functional option for configuring the factory
type FactoryOption func(*VerificationCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) FactoryOption {
	return func(f *VerificationCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether an unreachable Redis degrades to the
// in-memory cache instead of failing start-up
func WithInMemoryFallback(allow bool) FactoryOption {
	return func(f *VerificationCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewVerificationCacheFactory creates a new factory. Fallback defaults to
// cacheCfg.AllowFallback.
func NewVerificationCacheFactory(redisCfg config.RedisConfig, cacheCfg config.CacheConfig, opts ...FactoryOption) *VerificationCacheFactory {
	f := &VerificationCacheFactory{
		redisConfig:           redisCfg,
		cacheConfig:           cacheCfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: cacheCfg.AllowFallback,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateRedisCache creates the Redis-backed cache
func (f *VerificationCacheFactory) CreateRedisCache() (*RedisVerificationCache, error) {
	c, err := NewRedisVerificationCache(f.redisConfig, f.cacheConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis verification cache: %w", err)
	}
	return c, nil
}

// CreateInMemoryCache creates the process-local cache
func (f *VerificationCacheFactory) CreateInMemoryCache() *InMemoryVerificationCache {
	return NewInMemoryVerificationCache(f.cacheConfig.VerificationTTL)
}

// CreateCache returns the Redis cache when Redis is enabled and reachable.
// A disabled Redis always yields the in-memory cache; an unreachable one does
// so only when fallback is allowed.
func (f *VerificationCacheFactory) CreateCache() (correspondence.VerificationCache, error) {
	if !f.redisConfig.Enabled {
		f.logger.Info("Redis disabled, using in-memory verification cache")
		return f.CreateInMemoryCache(), nil
	}

	c, err := f.CreateRedisCache()
	if err == nil {
		f.logger.Info("using Redis verification cache", zap.String("addr", f.redisConfig.Addr()))
		return c, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("redis required for verification cache but unavailable: %w", err)
	}

	// Archive edits only invalidate this instance's entries from here on. Other
	// replicas keep answering with the old letter until their TTL runs out.
	f.logger.Warn("Redis unavailable, falling back to in-memory verification cache; "+
		"invalidation is local to this instance and other replicas may serve stale results until the TTL expires",
		zap.Error(err),
		zap.Duration("stale_ttl", f.cacheConfig.VerificationTTL),
	)
	return f.CreateInMemoryCache(), nil
}
