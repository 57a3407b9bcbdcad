package search

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/vidyarthi-io/scholarseek/internal/store"
)

// Cache defaults.
const (
	DefaultCacheTTL        = 300 * time.Second
	DefaultCacheMaxEntries = 100
)

type cacheEntry struct {
	at        time.Time
	results   []Result
	latencyMS float64
	logs      []string
}

// Cache is a TTL- and size-bounded store of finished search results.
// One mutex guards the map; the lock is only ever held for the bounded
// map operations themselves, never across retrieval or scoring.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	max     int
	entries map[string]cacheEntry

	now func() time.Time
}

// NewCache creates a cache. Non-positive arguments fall back to the
// defaults.
func NewCache(ttl time.Duration, maxEntries int) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if maxEntries <= 0 {
		maxEntries = DefaultCacheMaxEntries
	}
	return &Cache{
		ttl:     ttl,
		max:     maxEntries,
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// Key derives the deterministic cache key: normalized query plus sorted
// profile and filter key/value pairs, hashed with SHA-256.
func Key(query string, profile store.Profile, filters Filters) string {
	pairs := []string{
		"category=" + profile.Category,
		"education=" + profile.Education,
		"gender=" + profile.Gender,
		fmt.Sprintf("income=%d", profile.IncomeValue()),
		"state=" + profile.State,
	}
	sort.Strings(pairs)

	filterPairs := []string{
		"category=" + filters.Category,
		"state=" + filters.State,
	}
	sort.Strings(filterPairs)

	material := strings.ToLower(strings.TrimSpace(query)) +
		"|" + strings.Join(pairs, ",") +
		"|" + strings.Join(filterPairs, ",")

	sum := sha256.Sum256([]byte(material))
	return hex.EncodeToString(sum[:])
}

// Get returns the cached entry for key if it is still fresh. An expired
// entry is removed and reported as a miss.
func (c *Cache) Get(key string) ([]Result, float64, []string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, 0, nil, false
	}
	if c.now().Sub(entry.at) >= c.ttl {
		delete(c.entries, key)
		return nil, 0, nil, false
	}
	return entry.results, entry.latencyMS, entry.logs, true
}

// Put stores a finished result. Before inserting it evicts every
// expired entry, then trims oldest-first until the insert fits under
// the size bound.
func (c *Cache) Put(key string, results []Result, latencyMS float64, logs []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for k, entry := range c.entries {
		if now.Sub(entry.at) >= c.ttl {
			delete(c.entries, k)
		}
	}

	for len(c.entries) >= c.max {
		oldestKey := ""
		var oldestAt time.Time
		for k, entry := range c.entries {
			if oldestKey == "" || entry.at.Before(oldestAt) {
				oldestKey = k
				oldestAt = entry.at
			}
		}
		delete(c.entries, oldestKey)
	}

	c.entries[key] = cacheEntry{at: now, results: results, latencyMS: latencyMS, logs: logs}
}

// Len returns the current entry count.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
