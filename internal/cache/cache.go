// ShopStream RecSys - Product Recommendation Service
// Copyright 2026 ShopStream Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopstream/recsys

// Package cache provides a thread-safe TTL cache for recommendation
// lists. Keys carry the index generation, so a rebuild invalidates
// cached results without explicit coordination.
package cache

import (
	"fmt"
	"sync"
	"time"

	"github.com/shopstream/recsys/internal/recommend"
)

type entry struct {
	recs      []recommend.Recommendation
	expiresAt time.Time
}

// Cache is an in-memory TTL cache of recommendation lists. Expired
// entries are evicted lazily on Get.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration

	statsMu sync.Mutex
	hits    int64
	misses  int64
}

// Stats is a snapshot of cache counters.
type Stats struct {
	Hits   int64
	Misses int64
	Keys   int64
}

// New creates a cache with the given default TTL.
func New(ttl time.Duration) *Cache {
	return &Cache{
		entries: make(map[string]entry),
		ttl:     ttl,
	}
}

// Get returns the cached list for key, or false on a miss. The
// returned slice is shared; callers must not mutate it.
func (c *Cache) Get(key string) ([]recommend.Recommendation, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		c.recordMiss()
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		c.recordMiss()
		return nil, false
	}

	c.recordHit()
	return e.recs, true
}

// Set stores a list under key with the default TTL.
func (c *Cache) Set(key string, recs []recommend.Recommendation) {
	c.mu.Lock()
	c.entries[key] = entry{recs: recs, expiresAt: time.Now().Add(c.ttl)}
	c.mu.Unlock()
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()
}

// GetStats returns a snapshot of the counters.
func (c *Cache) GetStats() Stats {
	c.mu.RLock()
	keys := int64(len(c.entries))
	c.mu.RUnlock()

	c.statsMu.Lock()
	defer c.statsMu.Unlock()
	return Stats{Hits: c.hits, Misses: c.misses, Keys: keys}
}

func (c *Cache) recordHit() {
	c.statsMu.Lock()
	c.hits++
	c.statsMu.Unlock()
}

func (c *Cache) recordMiss() {
	c.statsMu.Lock()
	c.misses++
	c.statsMu.Unlock()
}

// PopularKey builds the cache key for the popularity ranking. The
// generation component ties entries to one index build.
func PopularKey(generation, limit int) string {
	return fmt.Sprintf("popular:g%d:l%d", generation, limit)
}
