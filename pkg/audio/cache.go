package audio

import "sync"

const defaultCacheCapacity = 50

// Cache keeps recently synthesized audio keyed by fingerprint. Eviction is
// insertion-ordered: when full, the oldest entry goes first regardless of
// how often it was read.
type Cache struct {
	mu       sync.Mutex
	capacity int
	entries  map[string][]byte
	order    []string
	hits     int64
	misses   int64
}

type CacheStats struct {
	Size     int      `json:"size"`
	Capacity int      `json:"capacity"`
	Hits     int64    `json:"hits"`
	Misses   int64    `json:"misses"`
	Keys     []string `json:"keys"`
}

func NewCache(capacity int) *Cache {
	if capacity <= 0 {
		capacity = defaultCacheCapacity
	}
	return &Cache{
		capacity: capacity,
		entries:  make(map[string][]byte, capacity),
	}
}

// Get returns a copy of the stored audio so callers cannot mutate the entry.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	audio, ok := c.entries[key]
	if !ok {
		c.misses++
		return nil, false
	}
	c.hits++

	out := make([]byte, len(audio))
	copy(out, audio)
	return out, true
}

func (c *Cache) Put(key string, audio []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; exists {
		c.entries[key] = audio
		return
	}

	if len(c.order) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
	c.entries[key] = audio
	c.order = append(c.order, key)
}

// Stats reports cache occupancy for the ops surface. Keys are truncated to
// their first 8 characters so the endpoint never leaks full fingerprints.
func (c *Cache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]string, 0, len(c.order))
	for _, k := range c.order {
		if len(k) > 8 {
			k = k[:8]
		}
		keys = append(keys, k)
	}
	return CacheStats{
		Size:     len(c.entries),
		Capacity: c.capacity,
		Hits:     c.hits,
		Misses:   c.misses,
		Keys:     keys,
	}
}
