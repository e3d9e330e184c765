package dashboard

import (
	"chartdeck/internal/charts"
	"chartdeck/internal/models"
)

// CacheKey identifies one memoized payload. Comparing structs avoids the
// separator collisions of a concatenated string key.
type CacheKey struct {
	Kind    models.ChartKind   `json:"kind"`
	Filters models.FilterState `json:"filters"`
	Backend models.Backend     `json:"backend"`
}

// Stats summarizes cache activity since the dashboard was created
type Stats struct {
	Entries int    `json:"entries"`
	Hits    uint64 `json:"hits"`
	Misses  uint64 `json:"misses"`
	Clears  uint64 `json:"clears"`
}

// Entry is one memoized chart: the neutral dataset and the payload mapped
// from it. Snapshots and exports read Data so that random kinds show the
// same draws as the served payload.
type Entry struct {
	Data    models.NeutralChartData
	Payload charts.Payload
}

// Cache is an unbounded payload memo; only known kinds are stored, so its size
// is bounded by the filter and backend enums. It is not safe for concurrent use;
// the Dashboard serializes access.
type Cache struct {
	entries map[CacheKey]Entry
	hits    uint64
	misses  uint64
	clears  uint64
}

// NewCache creates an empty cache
func NewCache() *Cache {
	return &Cache{entries: make(map[CacheKey]Entry)}
}

// Get returns the entry stored for key and records a hit or a miss
func (c *Cache) Get(key CacheKey) (Entry, bool) {
	e, ok := c.entries[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return e, ok
}

// Has reports whether key is stored without touching the counters
func (c *Cache) Has(key CacheKey) bool {
	_, ok := c.entries[key]
	return ok
}

// Put stores e under key
func (c *Cache) Put(key CacheKey, e Entry) {
	c.entries[key] = e
}

// Clear drops every entry and returns how many were removed
func (c *Cache) Clear() int {
	n := len(c.entries)
	c.entries = make(map[CacheKey]Entry)
	c.clears++
	return n
}

// Keys returns the stored keys in no particular order
func (c *Cache) Keys() []CacheKey {
	keys := make([]CacheKey, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	return keys
}

// Len returns the number of stored payloads
func (c *Cache) Len() int {
	return len(c.entries)
}

// Stats returns the current counters
func (c *Cache) Stats() Stats {
	return Stats{Entries: len(c.entries), Hits: c.hits, Misses: c.misses, Clears: c.clears}
}
