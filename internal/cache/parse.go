package cache

import (
	"sort"
	"sync"
	"time"

	"github.com/Smith-Tools/smith-validation/pkg/semantic"
)

const (
	DefaultTTL      = 300 * time.Second
	DefaultCapacity = 100
)

// Stats tracks cache effectiveness across a validation run.
type Stats struct {
	Hits      int64         `json:"hits"`
	Misses    int64         `json:"misses"`
	ParseTime time.Duration `json:"parseTime"`
}

type entry struct {
	ctx      *semantic.SourceContext
	parsedAt time.Time
	size     int64
}

// ParseCache memoizes parse results by absolute path. An entry is served only
// while it is younger than the TTL and the file size is unchanged; once the
// cache exceeds capacity the oldest quarter of entries is evicted. Reads take
// the shared lock so parallel file validation stays cheap.
type ParseCache struct {
	mu       sync.RWMutex
	entries  map[string]entry
	ttl      time.Duration
	capacity int
	stats    Stats

	now func() time.Time // overridable in tests
}

func NewParseCache(ttl time.Duration, capacity int) *ParseCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &ParseCache{
		entries:  map[string]entry{},
		ttl:      ttl,
		capacity: capacity,
		now:      time.Now,
	}
}

// Get returns the cached context for absPath when still valid. Expired or
// size-changed entries count as misses and are dropped on the next Put.
func (c *ParseCache) Get(absPath string, size int64) (*semantic.SourceContext, bool) {
	c.mu.RLock()
	e, ok := c.entries[absPath]
	now := c.now()
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if ok && now.Sub(e.parsedAt) < c.ttl && e.size == size {
		c.stats.Hits++
		return e.ctx, true
	}
	c.stats.Misses++
	return nil, false
}

// Put stores a parse result and records how long the parse took.
func (c *ParseCache) Put(absPath string, ctx *semantic.SourceContext, size int64, parseTime time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats.ParseTime += parseTime
	c.entries[absPath] = entry{ctx: ctx, parsedAt: c.now(), size: size}
	if len(c.entries) > c.capacity {
		c.evictOldest()
	}
}

// evictOldest removes the oldest 25% of entries. Caller holds the lock.
func (c *ParseCache) evictOldest() {
	type aged struct {
		path     string
		parsedAt time.Time
	}
	all := make([]aged, 0, len(c.entries))
	for p, e := range c.entries {
		all = append(all, aged{path: p, parsedAt: e.parsedAt})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].parsedAt.Before(all[j].parsedAt) })
	n := len(all) / 4
	if n < 1 {
		n = 1
	}
	for _, a := range all[:n] {
		delete(c.entries, a.path)
	}
}

func (c *ParseCache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}

func (c *ParseCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
