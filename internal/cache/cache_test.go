package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestCache(t *testing.T, ttl time.Duration) *Cache {
	t.Helper()
	c := New(ttl, zap.NewNop())
	t.Cleanup(c.Close)
	return c
}

func TestCacheSetGet(t *testing.T) {
	c := newTestCache(t, time.Hour)

	_, ok := c.Get("missing")
	require.False(t, ok)

	c.Set("key", "value")
	v, ok := c.Get("key")
	require.True(t, ok)
	require.Equal(t, "value", v)

	// Last write wins.
	c.Set("key", "other")
	v, ok = c.Get("key")
	require.True(t, ok)
	require.Equal(t, "other", v)
}

func TestCacheExpiry(t *testing.T) {
	c := newTestCache(t, 30*time.Millisecond)

	c.Set("short", 1)
	c.Set("long", 2, time.Hour) // per-entry TTL override

	_, ok := c.Get("short")
	require.True(t, ok)

	time.Sleep(50 * time.Millisecond)

	_, ok = c.Get("short")
	require.False(t, ok, "expired entry must behave as absent")
	_, ok = c.Get("long")
	require.True(t, ok, "TTL override must outlive the default TTL")
}

func TestCacheDelete(t *testing.T) {
	c := newTestCache(t, time.Hour)

	c.Set("key", "value")
	c.Delete("key")
	_, ok := c.Get("key")
	require.False(t, ok)

	// Deleting an absent key is a no-op.
	c.Delete("missing")
}

func TestCacheClear(t *testing.T) {
	c := newTestCache(t, time.Hour)

	c.Set("a", 1)
	c.Set("b", 2)
	require.Equal(t, 2, c.Len())

	c.Clear()
	require.Equal(t, 0, c.Len())
	_, ok := c.Get("a")
	require.False(t, ok)
}

func TestCacheStats(t *testing.T) {
	c := newTestCache(t, time.Hour)

	c.Set("key", "value")
	c.Get("key")
	c.Get("key")
	c.Get("missing")

	stats := c.GetStats()
	require.Equal(t, uint64(2), stats.Hits)
	require.Equal(t, uint64(1), stats.Misses)
	require.Equal(t, 1, stats.Entries)
}

func TestCacheConcurrentAccess(t *testing.T) {
	c := newTestCache(t, time.Hour)

	done := make(chan struct{})
	for i := 0; i < 5; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				c.Set("shared", j)
				c.Get("shared")
			}
		}()
	}
	for i := 0; i < 5; i++ {
		<-done
	}

	_, ok := c.Get("shared")
	require.True(t, ok)
}
