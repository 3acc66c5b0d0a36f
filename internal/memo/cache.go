// Package memo provides an explicit in-process TTL cache for memoizing
// expensive computations. The cache is constructed once and passed by
// reference to whichever scope needs it; there is no package-level state.
package memo

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// DefaultTTL is the time-to-live applied when NewCache is given a
// non-positive TTL.
const DefaultTTL = 5 * time.Minute

// Cache is a process-wide, TTL-bounded key/value store. Entries are immutable
// once written, so concurrent reads are safe.
type Cache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]entry
	now     func() time.Time
}

type entry struct {
	value     interface{}
	expiresAt time.Time
}

// NewCache creates a cache with the given TTL.
func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Cache{
		ttl:     ttl,
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get returns the cached value for key, or false if absent or expired.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || c.now().After(e.expiresAt) {
		return nil, false
	}

	return e.value, true
}

// Set stores value under key with the cache's TTL.
func (c *Cache) Set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{value: value, expiresAt: c.now().Add(c.ttl)}
}

// Prune drops expired entries. Intended to be called from a periodic task.
func (c *Cache) Prune() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	dropped := 0

	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)

			dropped++
		}
	}

	return dropped
}

// Len returns the number of stored entries, including expired ones not yet
// pruned.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// Key derives a deterministic cache key from arbitrary inputs. It serializes
// via encoding/json, which sorts map keys, so the key is insensitive to map
// key ordering. Struct inputs serialize in declaration order, which is stable
// for a given type.
func Key(parts ...interface{}) (string, error) {
	h := sha256.New()

	for _, part := range parts {
		data, err := json.Marshal(part)
		if err != nil {
			return "", fmt.Errorf("marshal cache key part: %w", err)
		}

		h.Write(data)
		h.Write([]byte{0})
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
