package repositories

import (
	"context"
	"sync"

	"realty-stream/internal/models"
	"realty-stream/pkg/metrics"
)

// memoryGeocodeCache is a thread-safe LRU of resolved coordinates.
type memoryGeocodeCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*lruEntry
	head       *lruEntry // most recently used
	tail       *lruEntry // least recently used
}

type lruEntry struct {
	key   string
	value models.Coordinates
	prev  *lruEntry
	next  *lruEntry
}

// NewMemoryGeocodeCache returns an in-process GeocodeCache holding at most
// maxEntries items. Values below one are treated as one.
func NewMemoryGeocodeCache(maxEntries int) GeocodeCache {
	if maxEntries < 1 {
		maxEntries = 1
	}
	return &memoryGeocodeCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*lruEntry),
	}
}

func (c *memoryGeocodeCache) Get(_ context.Context, key string) (models.Coordinates, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		metrics.CacheMissesTotal.Inc()
		return models.Coordinates{}, false, nil
	}
	c.moveToFront(e)
	metrics.CacheHitsTotal.Inc()
	return e.value, true, nil
}

func (c *memoryGeocodeCache) Set(_ context.Context, key string, coords models.Coordinates) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = coords
		c.moveToFront(e)
		return nil
	}

	e := &lruEntry{key: key, value: coords}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
	return nil
}

func (c *memoryGeocodeCache) moveToFront(e *lruEntry) {
	if e == c.head {
		return
	}
	c.unlink(e)
	c.addToFront(e)
}

func (c *memoryGeocodeCache) addToFront(e *lruEntry) {
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

func (c *memoryGeocodeCache) unlink(e *lruEntry) {
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

func (c *memoryGeocodeCache) evictTail() {
	if c.tail == nil {
		return
	}
	victim := c.tail
	c.unlink(victim)
	delete(c.entries, victim.key)
}
