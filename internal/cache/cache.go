// Package cache keeps normalized feed results per country for a short TTL
// so repeated requests don't re-fetch and re-translate the same feed.
package cache

import (
	"sync"
	"time"

	"globenews/internal/news"
)

type entry struct {
	items     []news.News
	expiresAt time.Time
}

// Cache is a TTL map keyed by country name.
type Cache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]entry
}

// New creates a cache and starts its cleanup loop.
func New(ttl time.Duration) *Cache {
	c := &Cache{
		ttl:     ttl,
		entries: make(map[string]entry),
	}
	go c.cleanupLoop()
	return c
}

// Get returns the cached items for a country if they are still fresh.
func (c *Cache) Get(country string) ([]news.News, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[country]
	if !ok || time.Now().After(e.expiresAt) {
		return nil, false
	}
	return e.items, true
}

// Set stores the items for a country until the TTL runs out.
func (c *Cache) Set(country string, items []news.News) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[country] = entry{
		items:     items,
		expiresAt: time.Now().Add(c.ttl),
	}
}

func (c *Cache) cleanupLoop() {
	interval := c.ttl
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		c.cleanup()
	}
}

func (c *Cache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for country, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, country)
		}
	}
}
