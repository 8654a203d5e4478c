package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/store-locator/internal/domain/repository"
	"go.uber.org/zap"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// memoryCache is a bounded in-process LRU. The expirable LRU applies one
// default TTL, so per-entry TTLs are enforced on read.
type memoryCache struct {
	lru    *expirable.LRU[string, memoryEntry]
	now    func() time.Time
	logger *zap.Logger
}

// NewMemoryCacheRepository creates an LRU holding at most size entries (0 = unbounded).
// maxTTL caps the lifetime of every entry (0 = no cap).
func NewMemoryCacheRepository(size int, maxTTL time.Duration, logger *zap.Logger) repository.CacheRepository {
	return newMemoryCache(size, maxTTL, time.Now, logger)
}

func newMemoryCache(size int, maxTTL time.Duration, now func() time.Time, logger *zap.Logger) *memoryCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &memoryCache{
		lru:    expirable.NewLRU[string, memoryEntry](size, nil, maxTTL),
		now:    now,
		logger: logger,
	}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, error) {
	entry, ok := c.lru.Get(key)
	if !ok {
		return nil, nil
	}
	if !entry.expiresAt.IsZero() && !c.now().Before(entry.expiresAt) {
		c.lru.Remove(key)
		return nil, nil
	}

	c.logger.Debug("Cache hit", zap.String("key", key))
	return entry.value, nil
}

func (c *memoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = c.now().Add(ttl)
	}
	c.lru.Add(key, entry)
	return nil
}

func (c *memoryCache) Delete(_ context.Context, key string) error {
	c.lru.Remove(key)
	return nil
}

func (c *memoryCache) Len() int {
	return c.lru.Len()
}
