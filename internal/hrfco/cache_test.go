package hrfco

import (
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hydroseo/hrfco-mcp/internal/logging"
)

func testCache(ttl time.Duration) (*TTLCache, *time.Time) {
	c := NewTTLCache(ttl, time.Hour, 1000, logging.New(io.Discard, "silent"))
	now := time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	return c, &now
}

func TestCacheHitWithinTTL(t *testing.T) {
	c, now := testCache(300 * time.Second)

	payload := map[string]any{"content": []any{"a"}}
	c.Set("url1", payload)

	*now = now.Add(299 * time.Second)
	got, ok := c.Get("url1")
	require.True(t, ok)
	assert.Equal(t, payload, got)
}

func TestCacheExpiresAtTTL(t *testing.T) {
	c, now := testCache(300 * time.Second)
	c.Set("url1", map[string]any{"content": []any{}})

	*now = now.Add(300 * time.Second)
	_, ok := c.Get("url1")
	assert.False(t, ok)
	// expired entry is removed on read
	assert.Equal(t, 0, c.Size())
}

func TestCacheSweepRemovesOnlyExpired(t *testing.T) {
	c, now := testCache(300 * time.Second)
	c.Set("old", map[string]any{"content": []any{}})

	*now = now.Add(200 * time.Second)
	c.Set("fresh", map[string]any{"content": []any{}})

	*now = now.Add(150 * time.Second) // old is 350s, fresh is 150s
	c.Sweep()

	assert.Equal(t, 1, c.Size())
	_, ok := c.Get("fresh")
	assert.True(t, ok)
}

func TestCacheClearAndStats(t *testing.T) {
	c, _ := testCache(300 * time.Second)
	c.Set("a", map[string]any{})
	c.Set("b", map[string]any{})
	assert.Equal(t, 2, c.Size())

	stats := c.Stats()
	assert.Equal(t, 2, stats["size"])
	assert.Equal(t, 300, stats["ttl_seconds"])

	c.Clear()
	assert.Equal(t, 0, c.Size())
}
