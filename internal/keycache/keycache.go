// Package keycache holds decrypted provider credentials for the duration of
// an analysis session so repeated lookups do not hit the credential store.
// The cache is injected where needed; there is no package-level state.
package keycache

import (
	"sync"
	"time"
)

type entry struct {
	value     string
	expiresAt time.Time
}

// Cache is a TTL map keyed by user+provider
type Cache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]entry
	now     func() time.Time
}

// New creates a cache whose entries expire after ttl
func New(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// NewWithClock creates a cache using the given clock, for deterministic tests
func NewWithClock(ttl time.Duration, now func() time.Time) *Cache {
	c := New(ttl)
	c.now = now
	return c
}

func cacheKey(user, provider string) string {
	return user + "\x00" + provider
}

// Get returns the cached credential for user+provider if present and fresh
func (c *Cache) Get(user, provider string) (string, bool) {
	c.mu.RLock()
	e, ok := c.entries[cacheKey(user, provider)]
	c.mu.RUnlock()

	if !ok || c.now().After(e.expiresAt) {
		return "", false
	}
	return e.value, true
}

// Put stores a credential for user+provider with a fresh TTL
func (c *Cache) Put(user, provider, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey(user, provider)] = entry{
		value:     value,
		expiresAt: c.now().Add(c.ttl),
	}
}

// Purge removes every expired entry
func (c *Cache) Purge() {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}

// Len reports the number of stored entries, expired or not
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
