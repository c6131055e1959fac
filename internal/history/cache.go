package history

import (
	"fmt"
	"sync"

	"github.com/couchcryptid/flood-risk-engine/internal/domain"
)

// Lookup is the read side of the flood-frequency store.
type Lookup interface {
	FloodEvents(cell domain.Coordinates, sinceYear int) (int, bool, error)
}

// CachedLookup wraps a Lookup with an in-memory LRU cache so hot grid cells
// stay off the database on the batch path.
type CachedLookup struct {
	inner Lookup
	cache *lruCache
}

// NewCachedLookup creates a cache decorator around a store.
func NewCachedLookup(inner Lookup, maxEntries int) *CachedLookup {
	return &CachedLookup{
		inner: inner,
		cache: newLRUCache(maxEntries),
	}
}

func (c *CachedLookup) FloodEvents(cell domain.Coordinates, sinceYear int) (int, bool, error) {
	key := fmt.Sprintf("%.1f,%.1f|%d", cell.Lat, cell.Lon, sinceYear)
	if v, ok := c.cache.get(key); ok {
		return v.events, v.found, nil
	}
	events, found, err := c.inner.FloodEvents(cell, sinceYear)
	if err != nil {
		return events, found, err
	}
	// Cache misses too: an empty cell is a stable fact until the next seed.
	c.cache.put(key, cachedCount{events: events, found: found})
	return events, found, nil
}

type cachedCount struct {
	events int
	found  bool
}

// lruCache is a simple thread-safe LRU cache for cell lookups.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value cachedCount
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) (cachedCount, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return cachedCount{}, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value cachedCount) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
