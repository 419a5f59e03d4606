package service

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/serenity-health/serenity/internal/domain"
)

// ResponseCache keeps recent assistant replies keyed by normalized query
// text. Entries expire after the TTL; when the cache grows past max the
// oldest half is evicted.
type ResponseCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
	max     int
}

type cacheEntry struct {
	reply    domain.AssistantReply
	cachedAt time.Time
}

func NewResponseCache(ttl time.Duration, max int) *ResponseCache {
	return &ResponseCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		max:     max,
	}
}

func normalizeQuery(query string) string {
	return strings.Join(strings.Fields(strings.ToLower(query)), " ")
}

// Get returns a copy of the cached reply, or nil when absent or stale.
func (c *ResponseCache) Get(query string) *domain.AssistantReply {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[normalizeQuery(query)]
	if !ok || time.Since(entry.cachedAt) > c.ttl {
		return nil
	}
	reply := entry.reply
	return &reply
}

func (c *ResponseCache) Put(query string, reply domain.AssistantReply) {
	key := normalizeQuery(query)
	if key == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= c.max {
		c.evictOldestLocked(c.max / 2)
	}
	c.entries[key] = cacheEntry{reply: reply, cachedAt: time.Now()}
}

// evictOldestLocked drops the n oldest entries. Caller holds the write lock.
func (c *ResponseCache) evictOldestLocked(n int) {
	type aged struct {
		key      string
		cachedAt time.Time
	}
	all := make([]aged, 0, len(c.entries))
	for k, e := range c.entries {
		all = append(all, aged{key: k, cachedAt: e.cachedAt})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].cachedAt.Before(all[j].cachedAt) })
	if n > len(all) {
		n = len(all)
	}
	for _, e := range all[:n] {
		delete(c.entries, e.key)
	}
}

// Sweep removes expired entries and reports how many were dropped.
func (c *ResponseCache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	dropped := 0
	for k, e := range c.entries {
		if time.Since(e.cachedAt) > c.ttl {
			delete(c.entries, k)
			dropped++
		}
	}
	return dropped
}

func (c *ResponseCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
