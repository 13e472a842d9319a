package embedding

import (
	"strings"
	"sync"
)

// Cache is a bounded in-memory vector cache keyed by normalized text. When
// full, the oldest entry is evicted. Safe for concurrent use.
type Cache struct {
	mu       sync.Mutex
	capacity int
	entries  map[string][]float32
	order    []string
}

// NewCache creates a cache holding at most capacity vectors.
func NewCache(capacity int) *Cache {
	if capacity <= 0 {
		capacity = 512
	}
	return &Cache{
		capacity: capacity,
		entries:  make(map[string][]float32, capacity),
	}
}

// NormalizeKey canonicalizes text for cache lookups: lowercase with
// whitespace runs collapsed.
func NormalizeKey(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

// Get returns the cached vector for text, if present.
func (c *Cache) Get(text string) ([]float32, bool) {
	key := NormalizeKey(text)
	c.mu.Lock()
	defer c.mu.Unlock()
	vector, ok := c.entries[key]
	return vector, ok
}

// Put stores a vector, evicting the oldest entry when at capacity.
func (c *Cache) Put(text string, vector []float32) {
	if len(vector) == 0 {
		return
	}
	key := NormalizeKey(text)
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.entries[key]; exists {
		c.entries[key] = vector
		return
	}
	if len(c.order) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
	c.entries[key] = vector
	c.order = append(c.order, key)
}

// Len reports the number of cached vectors.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
