// Package cache provides an in-memory key/value store with TTL expiration,
// LRU eviction, and hit/miss accounting. It knows nothing about movies or
// APIs; higher layers derive keys and choose TTLs.
package cache

import (
	"container/list"
	"context"
	"strings"
	"sync"
	"time"
)

// Defaults applied by New when the corresponding Config field is unset.
const (
	DefaultMaxEntries      = 100
	DefaultTTL             = 5 * time.Minute
	DefaultCleanupInterval = 2 * time.Minute
)

// Config controls cache capacity and expiration behavior.
//
//   - MaxEntries <= 0 selects DefaultMaxEntries
//   - DefaultTTL <= 0 selects DefaultTTL
//   - CleanupInterval <= 0 disables the background sweep (lazy expiration
//     on access still applies)
type Config struct {
	MaxEntries      int
	DefaultTTL      time.Duration
	CleanupInterval time.Duration
}

// Stats is a point-in-time snapshot of cache counters. Hits, Misses, Sets,
// Deletes, and Clears are lifetime counters reset only by ResetStats; Size
// always reflects the current entry count.
type Stats struct {
	Hits    uint64  `json:"hits"`
	Misses  uint64  `json:"misses"`
	Sets    uint64  `json:"sets"`
	Deletes uint64  `json:"deletes"`
	Clears  uint64  `json:"clears"`
	Size    int     `json:"size"`
	HitRate float64 `json:"hit_rate"` // percent, 0 until the first Get
}

// entry is the value stored in the LRU list elements. The key is kept here
// because eviction starts from list nodes.
type entry struct {
	key      string
	value    any
	storedAt time.Time
	ttl      time.Duration
}

func (e *entry) expired(now time.Time) bool {
	return now.Sub(e.storedAt) > e.ttl
}

// Cache is a concurrency-safe key/value store bounded by entry count.
// Recency is tracked by list position alone: any read or write of a key
// moves it to the front, and eviction always takes the back.
//
// Cache owns its sweep goroutine; call Destroy to stop it.
type Cache struct {
	mu         sync.Mutex
	maxEntries int
	defaultTTL time.Duration
	items      map[string]*list.Element
	lru        *list.List // Front = most recently used

	hits    uint64
	misses  uint64
	sets    uint64
	deletes uint64
	clears  uint64

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	destroyed bool
}

// New constructs a cache and, if CleanupInterval > 0, starts the background
// sweep.
func New(cfg Config) *Cache {
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = DefaultMaxEntries
	}
	if cfg.DefaultTTL <= 0 {
		cfg.DefaultTTL = DefaultTTL
	}

	c := &Cache{
		maxEntries: cfg.MaxEntries,
		defaultTTL: cfg.DefaultTTL,
		items:      make(map[string]*list.Element),
		lru:        list.New(),
	}

	if cfg.CleanupInterval > 0 {
		ctx, cancel := context.WithCancel(context.Background())
		c.cancel = cancel
		c.wg.Add(1)
		go c.sweepLoop(ctx, cfg.CleanupInterval)
	}

	return c
}

// Get returns the value stored under key, or (nil, false) when the key is
// absent or expired. Expired entries are removed on access. A hit moves the
// entry to the most-recently-used position. Every call increments exactly
// one of the hit or miss counters.
func (c *Cache) Get(key string) (any, bool) {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		c.misses++
		return nil, false
	}
	e := el.Value.(*entry)
	if e.expired(now) {
		c.removeLocked(el)
		c.misses++
		return nil, false
	}

	c.lru.MoveToFront(el)
	c.hits++
	return e.value, true
}

// Set stores value under key. ttl <= 0 selects the default TTL. Overwriting
// an existing key refreshes its timestamp and recency without consuming
// capacity; inserting a new key at capacity first evicts the single
// least-recently-used entry.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	if el, ok := c.items[key]; ok {
		e := el.Value.(*entry)
		e.value = value
		e.storedAt = now
		e.ttl = ttl
		c.lru.MoveToFront(el)
		c.sets++
		return
	}

	if len(c.items) >= c.maxEntries {
		c.evictOldestLocked()
	}

	el := c.lru.PushFront(&entry{key: key, value: value, storedAt: now, ttl: ttl})
	c.items[key] = el
	c.sets++
}

// GetOrSet returns the cached value for key, or invokes factory on a miss,
// stores its result under key with ttl, and returns it. A factory error
// propagates unchanged and nothing is written; any prior valid entry for
// the key is left intact.
//
// There is no single-flight guard: concurrent callers that miss on the same
// key may each invoke factory, and the last Set wins. Both results are
// equally valid data, so this costs duplicate fetches, never correctness.
func (c *Cache) GetOrSet(ctx context.Context, key string, factory func(context.Context) (any, error), ttl time.Duration) (any, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	v, err := factory(ctx)
	if err != nil {
		return nil, err
	}

	c.Set(key, v, ttl)
	return v, nil
}

// Has reports whether key holds a live entry. Expired entries are purged so
// Len stays accurate, but unlike Get this neither touches the hit/miss
// counters nor bumps the entry's recency.
func (c *Cache) Has(key string) bool {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		return false
	}
	if el.Value.(*entry).expired(now) {
		c.removeLocked(el)
		return false
	}
	return true
}

// Delete removes key if present. The delete counter is incremented only
// when an entry was actually removed.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		c.removeLocked(el)
	}
}

// DeleteByPrefix removes every entry whose key starts with prefix and
// returns the number removed.
func (c *Cache) DeleteByPrefix(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, el := range c.items {
		if strings.HasPrefix(key, prefix) {
			c.removeLocked(el)
			removed++
		}
	}
	return removed
}

// Clear empties the store and increments the clear counter. Lifetime
// hit/miss/set/delete counters are preserved; use ResetStats for those.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*list.Element)
	c.lru.Init()
	c.clears++
}

// Cleanup removes every expired entry and returns the count removed. The
// background sweep calls this on its interval; it may also be called
// directly.
func (c *Cache) Cleanup() int {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for _, el := range c.items {
		if el.Value.(*entry).expired(now) {
			c.removeLocked(el)
			removed++
		}
	}
	return removed
}

// Len returns the current entry count. Expired entries that have not yet
// been accessed or swept still count.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Keys returns all keys in most-recently-used to least-recently-used order.
func (c *Cache) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]string, 0, c.lru.Len())
	for el := c.lru.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value.(*entry).key)
	}
	return out
}

// UpdateConfig adjusts capacity and default TTL at runtime. Fields <= 0 are
// left unchanged. Shrinking MaxEntries below the current count evicts
// least-recently-used entries until the new cap is met. The sweep interval
// is fixed at construction and cannot be changed here.
func (c *Cache) UpdateConfig(cfg Config) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cfg.DefaultTTL > 0 {
		c.defaultTTL = cfg.DefaultTTL
	}
	if cfg.MaxEntries > 0 {
		c.maxEntries = cfg.MaxEntries
		for len(c.items) > c.maxEntries {
			c.evictOldestLocked()
		}
	}
}

// Stats returns a snapshot of the counters. The snapshot is a copy;
// mutating it has no effect on the cache.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Stats{
		Hits:    c.hits,
		Misses:  c.misses,
		Sets:    c.sets,
		Deletes: c.deletes,
		Clears:  c.clears,
		Size:    len(c.items),
	}
	if total := c.hits + c.misses; total > 0 {
		s.HitRate = float64(c.hits) / float64(total) * 100
	}
	return s
}

// ResetStats zeroes all lifetime counters. Stored entries are untouched.
func (c *Cache) ResetStats() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.hits = 0
	c.misses = 0
	c.sets = 0
	c.deletes = 0
	c.clears = 0
}

// Destroy stops the background sweep and clears all entries. Safe to call
// multiple times.
func (c *Cache) Destroy() {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	c.destroyed = true
	cancel := c.cancel
	c.mu.Unlock()

	// Cancel outside the lock; the sweep loop takes the lock via Cleanup.
	if cancel != nil {
		cancel()
	}
	c.wg.Wait()

	c.mu.Lock()
	c.items = make(map[string]*list.Element)
	c.lru.Init()
	c.mu.Unlock()
}

// removeLocked unlinks el from both structures and counts the removal.
// Eviction, expiration, and explicit deletes all land here.
func (c *Cache) removeLocked(el *list.Element) {
	e := el.Value.(*entry)
	delete(c.items, e.key)
	c.lru.Remove(el)
	c.deletes++
}

// evictOldestLocked removes the entry at the least-recently-used end.
func (c *Cache) evictOldestLocked() {
	if el := c.lru.Back(); el != nil {
		c.removeLocked(el)
	}
}
