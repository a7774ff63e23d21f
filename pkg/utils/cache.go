package utils

import (
	"sync"
	"time"
)

// cacheEntry is a cached value with its expiry instant.
type cacheEntry[V any] struct {
	value     V
	expiresAt time.Time
}

func (e cacheEntry[V]) expired(now time.Time) bool {
	return now.After(e.expiresAt)
}

// TTLCache is a thread-safe cache with per-entry TTL. It fronts the REST
// upstreams (Steam, Raider.io, XIVAPI, Alchemy) so repeated page loads do
// not hammer third-party APIs.
type TTLCache[V any] struct {
	entries map[string]cacheEntry[V]
	mutex   sync.RWMutex
	ttl     time.Duration
}

// NewTTLCache creates a cache with the given default TTL.
func NewTTLCache[V any](ttl time.Duration) *TTLCache[V] {
	return &TTLCache[V]{
		entries: make(map[string]cacheEntry[V]),
		ttl:     ttl,
	}
}

// Set stores a value under the default TTL.
func (c *TTLCache[V]) Set(key string, value V) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores a value with an entry-specific TTL.
func (c *TTLCache[V]) SetWithTTL(key string, value V, ttl time.Duration) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries[key] = cacheEntry[V]{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
}

// Get returns the cached value and true when present and unexpired.
func (c *TTLCache[V]) Get(key string) (V, bool) {
	c.mutex.RLock()
	entry, exists := c.entries[key]
	c.mutex.RUnlock()

	if !exists || entry.expired(time.Now()) {
		if exists {
			c.Delete(key)
		}
		var zero V
		return zero, false
	}

	return entry.value, true
}

// Delete removes an entry.
func (c *TTLCache[V]) Delete(key string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.entries, key)
}

// Clear removes all entries.
func (c *TTLCache[V]) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries = make(map[string]cacheEntry[V])
}

// Size returns the number of entries, including expired ones not yet swept.
func (c *TTLCache[V]) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return len(c.entries)
}

// CleanupExpired removes expired entries and returns how many were dropped.
func (c *TTLCache[V]) CleanupExpired() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := time.Now()
	count := 0
	for key, entry := range c.entries {
		if entry.expired(now) {
			delete(c.entries, key)
			count++
		}
	}

	return count
}
