// Package cache implements the read-through cache in front of the remote
// document store: fixed TTL, no capacity bound, structured keys invalidated
// per record kind.
package cache

import (
	"sync"
	"time"
)

// Key identifies one cached list result. Invalidation filters on Kind; the
// remaining fields distinguish the limit/sort variants of a kind.
type Key struct {
	Kind    string
	Limit   int
	OrderBy string
	Desc    bool
}

type entry struct {
	data     interface{}
	inserted time.Time
}

// Cache maps Keys to list payloads with a fixed time-to-live. There is
// deliberately no size bound and no LRU: capacity is bounded by the number of
// distinct (kind, limit, sort) combinations actually requested, which stays
// small in this application.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[Key]entry
	gens    map[string]uint64 // per-kind invalidation generation
	now     func() time.Time
}

func New(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		entries: make(map[Key]entry),
		gens:    make(map[string]uint64),
		now:     time.Now,
	}
}

// SetClock overrides the time source. Tests only.
func (c *Cache) SetClock(now func() time.Time) {
	c.mu.Lock()
	c.now = now
	c.mu.Unlock()
}

// Get returns the payload for key if it was inserted less than TTL ago, along
// with the kind's current generation. Expired entries are evicted on touch.
func (c *Cache) Get(key Key) (interface{}, uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	gen := c.gens[key.Kind]
	e, ok := c.entries[key]
	if !ok {
		return nil, gen, false
	}
	if c.now().Sub(e.inserted) >= c.ttl {
		delete(c.entries, key)
		return nil, gen, false
	}
	return e.data, gen, true
}

// Generation returns the kind's current invalidation generation. A read path
// records it before going to the network and passes it back to SetIfCurrent.
func (c *Cache) Generation(kind string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gens[kind]
}

// SetIfCurrent stores data under key unless the kind was invalidated since
// `gen` was observed. A fetch that raced with a write must not repopulate the
// cache with a result that may predate that write.
func (c *Cache) SetIfCurrent(key Key, data interface{}, gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.gens[key.Kind] != gen {
		return false
	}
	c.entries[key] = entry{data: data, inserted: c.now()}
	return true
}

// InvalidateKind drops every cached variant of the kind. Coarse on purpose:
// computing which limit/sort variants a write affects is not worth it.
func (c *Cache) InvalidateKind(kind string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gens[kind]++
	for key := range c.entries {
		if key.Kind == kind {
			delete(c.entries, key)
		}
	}
}

// Clear drops everything.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.entries {
		c.gens[key.Kind]++
		delete(c.entries, key)
	}
}

// Len reports the number of live entries (expired ones included until touched).
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
