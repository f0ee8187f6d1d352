// Package cache provides a bounded in-memory cache with TTL expiry and
// least-recently-used eviction. It is safe for concurrent use.
package cache

import (
	"container/list"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Options configures a cache
type Options struct {
	// TTL is how long an entry stays valid after it is set
	TTL time.Duration

	// MaxEntries bounds the cache size. Zero means unbounded.
	MaxEntries int

	// CleanupInterval is the period of the background expiry sweep. Zero
	// disables the sweep; expired entries are then dropped on access.
	CleanupInterval time.Duration

	// Now overrides the clock, for tests
	Now func() time.Time

	Logger *zap.Logger
}

// Entry is a cached value with its lifecycle metadata. CreatedAt is
// informational only.
type Entry[V any] struct {
	Key       string
	Value     V
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Stats is a snapshot of cache counters
type Stats struct {
	Entries     int    `json:"entries"`
	Hits        uint64 `json:"hits"`
	Misses      uint64 `json:"misses"`
	Evictions   uint64 `json:"evictions"`
	Expirations uint64 `json:"expirations"`
}

// Cache is an LRU cache with per-entry expiry
type Cache[V any] struct {
	opts Options

	mu    sync.Mutex
	items map[string]*list.Element
	order *list.List // front is most recently used
	stats Stats

	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// New creates a cache and starts its cleanup loop if configured. Callers
// must Close the cache to stop the loop.
func New[V any](opts Options) *Cache[V] {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	c := &Cache[V]{
		opts:  opts,
		items: make(map[string]*list.Element),
		order: list.New(),
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	if opts.CleanupInterval > 0 {
		go c.cleanupLoop()
	} else {
		close(c.done)
	}
	return c
}

// Get returns the live entry for key and marks it recently used
func (c *Cache[V]) Get(key string) (Entry[V], bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		c.stats.Misses++
		return Entry[V]{}, false
	}
	e := el.Value.(*Entry[V])
	if !c.opts.Now().Before(e.ExpiresAt) {
		c.removeElement(el)
		c.stats.Expirations++
		c.stats.Misses++
		return Entry[V]{}, false
	}

	c.order.MoveToFront(el)
	c.stats.Hits++
	return *e, true
}

// Set stores value under key, replacing any existing entry and evicting
// the least recently used entry when the cache is full.
func (c *Cache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.opts.Now()
	e := &Entry[V]{Key: key, Value: value, CreatedAt: now, ExpiresAt: now.Add(c.opts.TTL)}

	if el, ok := c.items[key]; ok {
		el.Value = e
		c.order.MoveToFront(el)
		return
	}

	c.items[key] = c.order.PushFront(e)
	if c.opts.MaxEntries > 0 && c.order.Len() > c.opts.MaxEntries {
		oldest := c.order.Back()
		c.removeElement(oldest)
		c.stats.Evictions++
		c.opts.Logger.Debug("cache eviction", zap.String("key", oldest.Value.(*Entry[V]).Key))
	}
}

// Delete removes key. It reports whether an entry was present.
func (c *Cache[V]) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if ok {
		c.removeElement(el)
	}
	return ok
}

// Purge removes every entry
func (c *Cache[V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*list.Element)
	c.order.Init()
}

// Len returns the number of stored entries, including expired ones not
// yet swept
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Stats returns a snapshot of the counters
func (c *Cache[V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.stats
	s.Entries = c.order.Len()
	return s
}

// TTL returns the configured entry lifetime
func (c *Cache[V]) TTL() time.Duration {
	return c.opts.TTL
}

// Close stops the cleanup loop and waits for it to exit. It is safe to
// call more than once.
func (c *Cache[V]) Close() {
	c.once.Do(func() { close(c.stop) })
	<-c.done
}

// Sweep drops every expired entry and returns how many were removed
func (c *Cache[V]) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.opts.Now()
	removed := 0
	for el := c.order.Back(); el != nil; {
		prev := el.Prev()
		if !now.Before(el.Value.(*Entry[V]).ExpiresAt) {
			c.removeElement(el)
			removed++
		}
		el = prev
	}
	c.stats.Expirations += uint64(removed)
	return removed
}

func (c *Cache[V]) cleanupLoop() {
	defer close(c.done)

	ticker := time.NewTicker(c.opts.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := c.Sweep(); n > 0 {
				c.opts.Logger.Debug("cache sweep", zap.Int("expired", n))
			}
		case <-c.stop:
			return
		}
	}
}

func (c *Cache[V]) removeElement(el *list.Element) {
	c.order.Remove(el)
	delete(c.items, el.Value.(*Entry[V]).Key)
}
