package gateway

import (
	"sync"
	"time"

	"mediagate/pkg/models"
)

// resultCache is a small TTL cache so repeated resolutions of the same URL
// within a short window reuse one upstream call. Entries are immutable
// canonical records, so handing the same pointer to many readers is safe.
type resultCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	max     int
	entries map[string]cacheEntry
	order   []string // insertion order, for eviction when full
}

type cacheEntry struct {
	media   *models.CanonicalMedia
	expires time.Time
}

func newResultCache(ttl time.Duration, max int) *resultCache {
	return &resultCache{
		ttl:     ttl,
		max:     max,
		entries: make(map[string]cacheEntry),
	}
}

func (c *resultCache) get(key string) (*models.CanonicalMedia, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(e.expires) {
		delete(c.entries, key)
		return nil, false
	}
	return e.media, true
}

func (c *resultCache) put(key string, m *models.CanonicalMedia) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists {
		if len(c.entries) >= c.max {
			c.evictLocked()
		}
		c.order = append(c.order, key)
	}
	c.entries[key] = cacheEntry{media: m, expires: time.Now().Add(c.ttl)}
}

// evictLocked drops expired entries first, then the oldest insertions until
// there is room for one more.
func (c *resultCache) evictLocked() {
	now := time.Now()
	kept := c.order[:0]
	for _, key := range c.order {
		e, ok := c.entries[key]
		if !ok {
			continue
		}
		if now.After(e.expires) {
			delete(c.entries, key)
			continue
		}
		kept = append(kept, key)
	}
	c.order = kept

	for len(c.entries) >= c.max && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
}
