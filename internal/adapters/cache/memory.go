package cache

import (
	"container/list"
	"context"
	"sync"
	"time"

	"gitlab.com/nubelio/licences/storefront-client/internal/adapters/metrics"
	"gitlab.com/nubelio/licences/storefront-client/internal/domain"
	"gitlab.com/nubelio/licences/storefront-client/pkg/safego"
)

const backendMemory = "memory"

type memoryEntry struct {
	key       string
	value     []byte
	expiresAt time.Time
}

// MemoryCache is an in-process TTL cache with an LRU entry bound.
// Expiry is authoritative on Get; the background sweeper only bounds
// memory growth between reads. The entry bound evicts the least
// recently used entry once maxEntries is exceeded.
type MemoryCache struct {
	mu         sync.Mutex
	entries    map[string]*list.Element
	lru        *list.List // front = most recently used
	defaultTTL time.Duration
	maxEntries int
	logger     domain.Logger

	// now is replaceable in tests to drive expiry deterministically.
	now func() time.Time
}

// NewMemoryCache creates a MemoryCache. A non-positive defaultTTL falls
// back to 5 minutes, a non-positive maxEntries to 1024.
func NewMemoryCache(defaultTTL time.Duration, maxEntries int, logger domain.Logger) *MemoryCache {
	if logger == nil {
		panic("logger cannot be nil in NewMemoryCache")
	}
	if defaultTTL <= 0 {
		defaultTTL = 5 * time.Minute
	}
	if maxEntries <= 0 {
		maxEntries = 1024
	}
	return &MemoryCache{
		entries:    make(map[string]*list.Element),
		lru:        list.New(),
		defaultTTL: defaultTTL,
		maxEntries: maxEntries,
		logger:     logger,
		now:        time.Now,
	}
}

// Get returns the cached payload, or domain.ErrCacheMiss for a missing
// or expired entry. Expired entries are evicted on the way out.
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		metrics.IncCacheEvent(backendMemory, "miss")
		return nil, domain.ErrCacheMiss
	}
	entry := elem.Value.(*memoryEntry)
	if !c.now().Before(entry.expiresAt) {
		c.removeLocked(elem)
		metrics.IncCacheEvent(backendMemory, "expired")
		c.logger.Debug(ctx, "Cache entry expired on read", "key", key)
		return nil, domain.ErrCacheMiss
	}
	c.lru.MoveToFront(elem)
	metrics.IncCacheEvent(backendMemory, "hit")
	return entry.value, nil
}

// Set stores a payload with expiry now+ttl, evicting the least recently
// used entry when the bound is exceeded.
func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		entry := elem.Value.(*memoryEntry)
		entry.value = value
		entry.expiresAt = c.now().Add(ttl)
		c.lru.MoveToFront(elem)
		return nil
	}

	elem := c.lru.PushFront(&memoryEntry{key: key, value: value, expiresAt: c.now().Add(ttl)})
	c.entries[key] = elem

	for len(c.entries) > c.maxEntries {
		oldest := c.lru.Back()
		if oldest == nil {
			break
		}
		evicted := oldest.Value.(*memoryEntry)
		c.removeLocked(oldest)
		metrics.IncCacheEvent(backendMemory, "evicted")
		c.logger.Debug(ctx, "Cache entry evicted by LRU bound", "key", evicted.key, "max_entries", c.maxEntries)
	}
	return nil
}

// Delete removes one entry. Deleting an absent key is not an error.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if elem, ok := c.entries[key]; ok {
		c.removeLocked(elem)
	}
	return nil
}

// Clear drops every entry.
func (c *MemoryCache) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*list.Element)
	c.lru.Init()
	return nil
}

// Len reports the number of live entries, expired or not.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// StartSweeper launches the periodic cleanup goroutine. It runs until
// ctx is cancelled. Sweeping is advisory: Get re-checks expiry anyway.
func (c *MemoryCache) StartSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	safego.ExecuteTicker(ctx, c.logger, "MemoryCacheSweeper", interval, func() {
		removed := c.sweep()
		if removed > 0 {
			c.logger.Debug(ctx, "Cache sweep removed expired entries", "removed", removed)
		}
	})
}

func (c *MemoryCache) sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	removed := 0
	for elem := c.lru.Back(); elem != nil; {
		prev := elem.Prev()
		entry := elem.Value.(*memoryEntry)
		if !now.Before(entry.expiresAt) {
			c.removeLocked(elem)
			metrics.IncCacheEvent(backendMemory, "swept")
			removed++
		}
		elem = prev
	}
	return removed
}

func (c *MemoryCache) removeLocked(elem *list.Element) {
	entry := elem.Value.(*memoryEntry)
	c.lru.Remove(elem)
	delete(c.entries, entry.key)
}
