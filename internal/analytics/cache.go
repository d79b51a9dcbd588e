package analytics

import "sync"

// cacheKey identifies a cached price series by symbol and lookback period.
type cacheKey struct {
	symbol string
	period string
}

// priceCache is a bounded, thread-safe cache of close-price series. Entries
// are never invalidated except by Clear; when the capacity is reached the
// oldest insertion is evicted so long-running processes stay bounded.
type priceCache struct {
	mu       sync.RWMutex
	capacity int
	entries  map[cacheKey][]float64
	order    []cacheKey
}

func newPriceCache(capacity int) *priceCache {
	if capacity <= 0 {
		capacity = 256
	}
	return &priceCache{
		capacity: capacity,
		entries:  make(map[cacheKey][]float64),
	}
}

func (c *priceCache) get(symbol, period string) ([]float64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	closes, ok := c.entries[cacheKey{symbol, period}]
	return closes, ok
}

func (c *priceCache) put(symbol, period string, closes []float64) {
	key := cacheKey{symbol, period}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.entries[key]; !exists {
		if len(c.order) >= c.capacity {
			oldest := c.order[0]
			c.order = c.order[1:]
			delete(c.entries, oldest)
		}
		c.order = append(c.order, key)
	}
	c.entries[key] = closes
}

func (c *priceCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[cacheKey][]float64)
	c.order = nil
}

func (c *priceCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
