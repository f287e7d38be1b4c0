// Package cache provides a string-keyed in-memory store with per-entry expiry.
// It's the only state shared across requests; entries are never persisted.
package cache

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"go.uber.org/zap"
)

var (
	hitCounter  = metrics.NewCounter(`cache_requests_total{result="hit"}`)
	missCounter = metrics.NewCounter(`cache_requests_total{result="miss"}`)
)

type entry struct {
	value     any
	expiresAt time.Time
}

// Cache is a concurrency-safe TTL cache.
// Reads after expiry behave as absent. Last write wins on concurrent sets.
type Cache struct {
	defaultTTL time.Duration
	logger     *zap.Logger

	mu      sync.RWMutex
	entries map[string]entry

	stopJanitor chan struct{}
	stopOnce    sync.Once

	hits   atomic.Uint64
	misses atomic.Uint64
}

// Stats is a snapshot of the cache hit/miss counters.
type Stats struct {
	Hits    uint64 `json:"hits"`
	Misses  uint64 `json:"misses"`
	Entries int    `json:"entries"`
}

// New creates a cache with the given default TTL and starts a background
// janitor that evicts expired entries. Call Close to stop the janitor.
func New(defaultTTL time.Duration, logger *zap.Logger) *Cache {
	c := &Cache{
		defaultTTL:  defaultTTL,
		logger:      logger,
		entries:     make(map[string]entry),
		stopJanitor: make(chan struct{}),
	}
	go c.janitor(defaultTTL)
	return c
}

// Get returns the value stored under key, or false if the key is absent or expired.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || time.Now().After(e.expiresAt) {
		missCounter.Inc()
		c.misses.Add(1)
		return nil, false
	}

	hitCounter.Inc()
	c.hits.Add(1)
	return e.value, true
}

// Set stores value under key. An optional TTL overrides the default.
func (c *Cache) Set(key string, value any, ttl ...time.Duration) {
	d := c.defaultTTL
	if len(ttl) > 0 && ttl[0] > 0 {
		d = ttl[0]
	}

	c.mu.Lock()
	c.entries[key] = entry{value: value, expiresAt: time.Now().Add(d)}
	c.mu.Unlock()
}

// Delete removes the entry stored under key, if any.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Clear removes all entries unconditionally.
func (c *Cache) Clear() {
	c.mu.Lock()
	n := len(c.entries)
	c.entries = make(map[string]entry)
	c.mu.Unlock()

	if c.logger != nil {
		c.logger.Info("Cache cleared", zap.Int("entries", n))
	}
}

// Len returns the number of stored entries, including not-yet-evicted expired ones.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// GetStats returns a snapshot of the hit/miss counters.
func (c *Cache) GetStats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Stats{Hits: c.hits.Load(), Misses: c.misses.Load(), Entries: len(c.entries)}
}

// Close stops the janitor goroutine. The cache remains usable afterwards.
func (c *Cache) Close() {
	c.stopOnce.Do(func() {
		close(c.stopJanitor)
	})
}

func (c *Cache) janitor(interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.evictExpired()
		case <-c.stopJanitor:
			return
		}
	}
}

func (c *Cache) evictExpired() {
	now := time.Now()
	c.mu.Lock()
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
		}
	}
	c.mu.Unlock()
}
