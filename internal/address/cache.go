package address

import (
	"sync"

	"github.com/golang/groupcache/lru"
)

// DefaultCacheSize is the capacity used when a non-positive size is requested
const DefaultCacheSize = 1000

// FormatCache memoises canonical address strings.
// It is a bounded LRU: once full, adding a new address evicts the least
// recently formatted one. Safe for concurrent use.
type FormatCache struct {
	mu        sync.Mutex
	lru       *lru.Cache
	evictions int
	onEvict   func(FullAddress)
}

// NewFormatCache creates a cache holding at most size entries
func NewFormatCache(size int) *FormatCache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	c := &FormatCache{lru: lru.New(size)}
	c.lru.OnEvicted = c.evicted
	return c
}

// Format returns the canonical string for a, using the cached value when present
func (c *FormatCache) Format(a FullAddress) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := c.lru.Get(a); ok {
		return v.(string)
	}
	s := a.String()
	c.lru.Add(a, s)
	return s
}

// OnEvict registers fn to be called with every address dropped for capacity
func (c *FormatCache) OnEvict(fn func(FullAddress)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onEvict = fn
}

// Len is the number of cached entries
func (c *FormatCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// Evictions counts entries dropped because the cache was full
func (c *FormatCache) Evictions() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.evictions
}

// Clear drops every entry without counting evictions
func (c *FormatCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.OnEvicted = nil
	c.lru.Clear()
	c.lru.OnEvicted = c.evicted
}

// evicted runs under c.mu, called synchronously from lru.Add
func (c *FormatCache) evicted(key lru.Key, _ interface{}) {
	c.evictions++
	if c.onEvict != nil {
		c.onEvict(key.(FullAddress))
	}
}
