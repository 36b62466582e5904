package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Smith-Tools/smith-validation/pkg/semantic"
)

func parsedFixture(t *testing.T) *semantic.SourceContext {
	t.Helper()
	sctx, err := semantic.Parse("/tmp/fixture.go", []byte("package sample\n"))
	require.NoError(t, err)
	return sctx
}

func TestParseCacheHitAndMiss(t *testing.T) {
	c := NewParseCache(DefaultTTL, DefaultCapacity)
	sctx := parsedFixture(t)

	_, ok := c.Get("/tmp/fixture.go", 15)
	assert.False(t, ok)

	c.Put("/tmp/fixture.go", sctx, 15, 2*time.Millisecond)
	got, ok := c.Get("/tmp/fixture.go", 15)
	require.True(t, ok)
	assert.Same(t, sctx, got)

	stats := c.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, 2*time.Millisecond, stats.ParseTime)
}

func TestParseCacheSizeChangeInvalidates(t *testing.T) {
	c := NewParseCache(DefaultTTL, DefaultCapacity)
	c.Put("/tmp/fixture.go", parsedFixture(t), 15, 0)

	_, ok := c.Get("/tmp/fixture.go", 16)
	assert.False(t, ok)
}

func TestParseCacheTTLExpiry(t *testing.T) {
	c := NewParseCache(DefaultTTL, DefaultCapacity)
	base := time.Now()
	c.now = func() time.Time { return base }
	c.Put("/tmp/fixture.go", parsedFixture(t), 15, 0)

	c.now = func() time.Time { return base.Add(DefaultTTL - time.Second) }
	_, ok := c.Get("/tmp/fixture.go", 15)
	assert.True(t, ok)

	c.now = func() time.Time { return base.Add(DefaultTTL + time.Second) }
	_, ok = c.Get("/tmp/fixture.go", 15)
	assert.False(t, ok)
}

func TestParseCacheEvictsOldestQuarter(t *testing.T) {
	c := NewParseCache(DefaultTTL, 8)
	base := time.Now()
	tick := 0
	c.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}

	sctx := parsedFixture(t)
	for i := 0; i < 9; i++ {
		c.Put(fmt.Sprintf("/tmp/file%d.go", i), sctx, 10, 0)
	}

	// Ninth insert tips the cache over capacity 8: a quarter (two entries,
	// the oldest ones) is evicted.
	assert.Equal(t, 7, c.Len())
	_, ok := c.Get("/tmp/file0.go", 10)
	assert.False(t, ok)
	_, ok = c.Get("/tmp/file1.go", 10)
	assert.False(t, ok)
	_, ok = c.Get("/tmp/file8.go", 10)
	assert.True(t, ok)
}

func TestDiskKeyDeterministic(t *testing.T) {
	assert.Equal(t, Key("a", "b"), Key("a", "b"))
	assert.NotEqual(t, Key("a", "b"), Key("b", "a"))
	assert.Len(t, Key("x"), 64)
}
