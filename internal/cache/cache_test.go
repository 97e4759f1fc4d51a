package cache

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestCache builds a cache without the background sweep so tests control
// expiration explicitly.
func newTestCache(maxEntries int, defaultTTL time.Duration) *Cache {
	return New(Config{MaxEntries: maxEntries, DefaultTTL: defaultTTL})
}

func TestCache_GetSet(t *testing.T) {
	c := newTestCache(10, time.Hour)

	_, ok := c.Get("missing")
	assert.False(t, ok, "empty cache should miss")

	c.Set("movie", "Fight Club", 0)

	got, ok := c.Get("movie")
	require.True(t, ok, "should hit after set")
	assert.Equal(t, "Fight Club", got)
}

func TestCache_TTLExpiry(t *testing.T) {
	c := newTestCache(10, time.Hour)

	c.Set("k", "v", 100*time.Millisecond)

	got, ok := c.Get("k")
	require.True(t, ok, "should hit before TTL elapses")
	assert.Equal(t, "v", got)

	time.Sleep(150 * time.Millisecond)

	_, ok = c.Get("k")
	assert.False(t, ok, "should miss after TTL elapses")
	assert.Equal(t, 0, c.Len(), "lazy expiration should remove the entry")
}

func TestCache_LRUEviction(t *testing.T) {
	c := newTestCache(5, time.Hour)

	for i := 0; i < 5; i++ {
		c.Set(fmt.Sprintf("key%d", i), i, 0)
	}
	require.Equal(t, 5, c.Len())

	c.Set("key5", 5, 0)

	assert.Equal(t, 5, c.Len(), "size must not exceed the cap")
	assert.False(t, c.Has("key0"), "least-recently-used key should be evicted")
	assert.True(t, c.Has("key5"), "new key should be present")
}

func TestCache_RecencyBumpPreventsEviction(t *testing.T) {
	c := newTestCache(5, time.Hour)

	for i := 0; i < 5; i++ {
		c.Set(fmt.Sprintf("key%d", i), i, 0)
	}

	// Touch key0 so key1 becomes the oldest.
	_, ok := c.Get("key0")
	require.True(t, ok)

	c.Set("key5", 5, 0)

	assert.True(t, c.Has("key0"), "recently read key must survive")
	assert.False(t, c.Has("key1"), "key1 should be evicted instead")
}

func TestCache_OverwriteDoesNotEvict(t *testing.T) {
	c := newTestCache(2, time.Hour)

	c.Set("a", 1, 0)
	c.Set("b", 2, 0)
	c.Set("a", 10, 0)

	assert.Equal(t, 2, c.Len())
	assert.True(t, c.Has("b"), "overwriting an existing key must not evict")

	got, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 10, got)
}

func TestCache_HitMissAccounting(t *testing.T) {
	c := newTestCache(10, time.Hour)

	c.Set("present", "x", 0)

	_, ok := c.Get("present")
	require.True(t, ok)
	_, ok = c.Get("absent")
	require.False(t, ok)

	s := c.Stats()
	assert.Equal(t, uint64(1), s.Hits)
	assert.Equal(t, uint64(1), s.Misses)
	assert.Equal(t, uint64(1), s.Sets)
	assert.InDelta(t, 50.0, s.HitRate, 0.001)
}

func TestCache_HasDoesNotTouchCounters(t *testing.T) {
	c := newTestCache(10, time.Hour)

	c.Set("k", "v", 0)
	assert.True(t, c.Has("k"))
	assert.False(t, c.Has("other"))

	s := c.Stats()
	assert.Zero(t, s.Hits, "Has must not count as a hit")
	assert.Zero(t, s.Misses, "Has must not count as a miss")
}

func TestCache_HasPurgesExpired(t *testing.T) {
	c := newTestCache(10, time.Hour)

	c.Set("k", "v", time.Nanosecond)
	time.Sleep(time.Millisecond)

	assert.False(t, c.Has("k"))
	assert.Equal(t, 0, c.Len(), "Has should purge the expired entry")
}

func TestCache_Delete(t *testing.T) {
	c := newTestCache(10, time.Hour)

	c.Set("k", "v", 0)
	c.Delete("k")
	c.Delete("k") // second delete is a no-op

	assert.False(t, c.Has("k"))
	assert.Equal(t, uint64(1), c.Stats().Deletes, "only an actual removal counts")
}

func TestCache_DeleteByPrefix(t *testing.T) {
	c := newTestCache(10, time.Hour)

	c.Set("search_iron_man_page_1", 1, 0)
	c.Set("search_iron_man_page_2", 2, 0)
	c.Set("popular_movies_page_1", 3, 0)

	removed := c.DeleteByPrefix("search_")

	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, c.Len())
	assert.True(t, c.Has("popular_movies_page_1"))
}

func TestCache_ClearKeepsLifetimeCounters(t *testing.T) {
	c := newTestCache(10, time.Hour)

	c.Set("a", 1, 0)
	c.Set("b", 2, 0)
	_, _ = c.Get("a")

	c.Clear()

	assert.Equal(t, 0, c.Len())
	assert.False(t, c.Has("a"))
	assert.False(t, c.Has("b"))

	s := c.Stats()
	assert.Equal(t, uint64(1), s.Clears)
	assert.Equal(t, uint64(2), s.Sets, "clear must not reset lifetime counters")
	assert.Equal(t, uint64(1), s.Hits)
	assert.Zero(t, s.Size)

	// Idempotent.
	c.Clear()
	assert.Equal(t, 0, c.Len())
}

func TestCache_ResetStats(t *testing.T) {
	c := newTestCache(10, time.Hour)

	c.Set("a", 1, 0)
	_, _ = c.Get("a")
	_, _ = c.Get("b")

	c.ResetStats()

	s := c.Stats()
	assert.Zero(t, s.Hits)
	assert.Zero(t, s.Misses)
	assert.Zero(t, s.Sets)
	assert.Equal(t, 1, s.Size, "resetting stats must not drop entries")
}

func TestCache_GetOrSet(t *testing.T) {
	c := newTestCache(10, time.Hour)
	ctx := context.Background()

	calls := 0
	factory := func(context.Context) (any, error) {
		calls++
		return "fetched", nil
	}

	v, err := c.GetOrSet(ctx, "k", factory, 0)
	require.NoError(t, err)
	assert.Equal(t, "fetched", v)
	assert.Equal(t, 1, calls)

	// Second call is a hit; the factory must not run again.
	v, err = c.GetOrSet(ctx, "k", factory, 0)
	require.NoError(t, err)
	assert.Equal(t, "fetched", v)
	assert.Equal(t, 1, calls, "hit must not invoke the factory")
}

func TestCache_GetOrSet_FactoryError(t *testing.T) {
	c := newTestCache(10, time.Hour)
	ctx := context.Background()

	wantErr := errors.New("upstream down")

	_, err := c.GetOrSet(ctx, "k", func(context.Context) (any, error) {
		return nil, wantErr
	}, 0)
	assert.ErrorIs(t, err, wantErr)
	assert.False(t, c.Has("k"), "a failed factory must not populate the cache")
}

func TestCache_GetOrSet_ErrorPreservesExisting(t *testing.T) {
	c := newTestCache(10, time.Hour)
	ctx := context.Background()

	c.Set("k", "old", time.Hour)

	// A live entry short-circuits GetOrSet, so a would-be failed refresh
	// never runs and the stored value survives.
	_, err := c.GetOrSet(ctx, "k", func(context.Context) (any, error) {
		return nil, errors.New("should not be called")
	}, 0)
	require.NoError(t, err, "hit path must not invoke the failing factory")

	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "old", got)
}

func TestCache_UpdateConfig_ShrinkEvicts(t *testing.T) {
	c := newTestCache(5, time.Hour)

	for i := 0; i < 5; i++ {
		c.Set(fmt.Sprintf("key%d", i), i, 0)
	}

	c.UpdateConfig(Config{MaxEntries: 3})

	assert.Equal(t, 3, c.Len())
	assert.Equal(t, []string{"key4", "key3", "key2"}, c.Keys(),
		"the three most-recently-touched entries must survive")
}

func TestCache_UpdateConfig_DefaultTTL(t *testing.T) {
	c := newTestCache(5, time.Hour)

	c.UpdateConfig(Config{DefaultTTL: 50 * time.Millisecond})
	c.Set("k", "v", 0)

	time.Sleep(80 * time.Millisecond)

	_, ok := c.Get("k")
	assert.False(t, ok, "entry should use the updated default TTL")
}

func TestCache_Cleanup(t *testing.T) {
	c := newTestCache(10, time.Hour)

	c.Set("stale", 1, time.Nanosecond)
	c.Set("fresh", 2, time.Hour)
	time.Sleep(time.Millisecond)

	removed := c.Cleanup()

	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, c.Len())
	assert.True(t, c.Has("fresh"))
}

func TestCache_BackgroundSweep(t *testing.T) {
	c := New(Config{
		MaxEntries:      10,
		DefaultTTL:      time.Hour,
		CleanupInterval: 20 * time.Millisecond,
	})
	defer c.Destroy()

	c.Set("stale", 1, time.Nanosecond)

	assert.Eventually(t, func() bool {
		return c.Len() == 0
	}, time.Second, 10*time.Millisecond, "sweep should reclaim the expired entry")
}

func TestCache_Keys_MRUOrder(t *testing.T) {
	c := newTestCache(10, time.Hour)

	c.Set("a", 1, 0)
	c.Set("b", 2, 0)
	c.Set("c", 3, 0)
	_, _ = c.Get("a")

	assert.Equal(t, []string{"a", "c", "b"}, c.Keys())
}

func TestCache_StatsSnapshotIsCopy(t *testing.T) {
	c := newTestCache(10, time.Hour)

	c.Set("a", 1, 0)
	s := c.Stats()
	s.Sets = 999

	assert.Equal(t, uint64(1), c.Stats().Sets, "mutating the snapshot must not affect the cache")
}

func TestCache_Destroy(t *testing.T) {
	c := New(Config{
		MaxEntries:      10,
		DefaultTTL:      time.Hour,
		CleanupInterval: 10 * time.Millisecond,
	})

	c.Set("a", 1, 0)

	c.Destroy()
	c.Destroy() // must be safe to call again

	assert.Equal(t, 0, c.Len())
}
