package cache

import (
	"context"
	"time"

	"github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/domain/correspondence"
	goCache "github.com/patrickmn/go-cache"
)

// DefaultCleanupInterval is how often expired entries are purged
const DefaultCleanupInterval = 10 * time.Minute

// InMemoryVerificationCache keeps verification results in process memory.
// Entries are not shared between instances.
type InMemoryVerificationCache struct {
	cache *goCache.Cache
	ttl   time.Duration
}

// NewInMemoryVerificationCache creates a cache whose entries expire after ttl
func NewInMemoryVerificationCache(ttl time.Duration) *InMemoryVerificationCache {
	expiration := ttl
	if expiration <= 0 {
		expiration = goCache.NoExpiration
	}
	return &InMemoryVerificationCache{
		cache: goCache.New(expiration, DefaultCleanupInterval),
		ttl:   expiration,
	}
}

// Get returns the cached result for a normalized number
func (c *InMemoryVerificationCache) Get(_ context.Context, normalizedNumber string) (*correspondence.VerificationResult, bool, error) {
	v, ok := c.cache.Get(normalizedNumber)
	if !ok {
		return nil, false, nil
	}
	result, ok := v.(correspondence.VerificationResult)
	if !ok {
		return nil, false, nil
	}
	return &result, true, nil
}

// Set caches a found result. NotFound results are never cached.
func (c *InMemoryVerificationCache) Set(_ context.Context, normalizedNumber string, result correspondence.VerificationResult) error {
	if !result.Found {
		return nil
	}
	c.cache.Set(normalizedNumber, result, c.ttl)
	return nil
}

// Invalidate drops the entry for a normalized number
func (c *InMemoryVerificationCache) Invalidate(_ context.Context, normalizedNumber string) error {
	c.cache.Delete(normalizedNumber)
	return nil
}

// Len reports the number of cached entries, expired ones included until the next purge
func (c *InMemoryVerificationCache) Len() int {
	return c.cache.ItemCount()
}

var _ correspondence.VerificationCache = (*InMemoryVerificationCache)(nil)
