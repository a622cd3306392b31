package hrfco

import (
	"sync"
	"time"

	"github.com/hydroseo/hrfco-mcp/internal/logging"
)

type cacheEntry struct {
	insertedAt time.Time
	payload    map[string]any
}

// TTLCache maps fully-composed upstream URLs to decoded payloads. Entries
// expire by age; reads past the TTL delete the entry and report a miss.
// Readers run concurrently; writers are serialized.
type TTLCache struct {
	mu             sync.RWMutex
	entries        map[string]cacheEntry
	ttl            time.Duration
	sweepInterval  time.Duration
	sweepThreshold int
	lastSweep      time.Time
	evictions      int64
	log            *logging.Logger

	now func() time.Time // injectable clock for tests
}

// NewTTLCache creates a cache with the given TTL, periodic sweep interval,
// and entry-count sweep threshold.
func NewTTLCache(ttl, sweepInterval time.Duration, sweepThreshold int, log *logging.Logger) *TTLCache {
	return &TTLCache{
		entries:        make(map[string]cacheEntry),
		ttl:            ttl,
		sweepInterval:  sweepInterval,
		sweepThreshold: sweepThreshold,
		lastSweep:      time.Now(),
		log:            log.Sub("cache"),
		now:            time.Now,
	}
}

// Get returns the payload for key if it is younger than the TTL. Expired
// entries are removed on read.
func (c *TTLCache) Get(key string) (map[string]any, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if c.now().Sub(entry.insertedAt) < c.ttl {
		return entry.payload, true
	}

	c.mu.Lock()
	// Re-check under the write lock; another writer may have refreshed it.
	if cur, ok := c.entries[key]; ok && c.now().Sub(cur.insertedAt) >= c.ttl {
		delete(c.entries, key)
		c.evictions++
	}
	c.mu.Unlock()
	return nil, false
}

// Set stores a payload under key with the current time. Callers must only
// pass payloads that carry a recognizable content container; error and
// empty-shaped responses are never cached.
func (c *TTLCache) Set(key string, payload map[string]any) {
	c.mu.Lock()
	c.entries[key] = cacheEntry{insertedAt: c.now(), payload: payload}
	needSweep := len(c.entries) > c.sweepThreshold || c.now().Sub(c.lastSweep) > c.sweepInterval
	c.mu.Unlock()

	if needSweep {
		c.Sweep()
	}
}

// Sweep removes every entry older than the TTL.
func (c *TTLCache) Sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, entry := range c.entries {
		if now.Sub(entry.insertedAt) >= c.ttl {
			delete(c.entries, key)
			removed++
		}
	}
	c.lastSweep = now
	c.evictions += int64(removed)
	if removed > 0 {
		c.log.Debug().Int("removed", removed).Int("remaining", len(c.entries)).Msg("cache sweep")
	}
}

// Clear empties the cache.
func (c *TTLCache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
}

// Size returns the number of live entries, expired or not.
func (c *TTLCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats reports cache observability counters.
func (c *TTLCache) Stats() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return map[string]any{
		"size":        len(c.entries),
		"ttl_seconds": int(c.ttl.Seconds()),
		"evictions":   c.evictions,
	}
}
