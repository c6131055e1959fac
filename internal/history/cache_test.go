package history

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/flood-risk-engine/internal/domain"
)

type countingLookup struct {
	calls  int
	events int
	found  bool
	err    error
}

func (c *countingLookup) FloodEvents(_ domain.Coordinates, _ int) (int, bool, error) {
	c.calls++
	return c.events, c.found, c.err
}

func TestCachedLookupServesRepeatsFromCache(t *testing.T) {
	inner := &countingLookup{events: 3, found: true}
	cached := NewCachedLookup(inner, 10)

	cell := domain.Coordinates{Lat: 29.8, Lon: -95.4}
	for i := 0; i < 5; i++ {
		events, found, err := cached.FloodEvents(cell, 0)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, 3, events)
	}

	assert.Equal(t, 1, inner.calls)
}

func TestCachedLookupCachesMisses(t *testing.T) {
	inner := &countingLookup{}
	cached := NewCachedLookup(inner, 10)

	cell := domain.Coordinates{Lat: 0, Lon: 0}
	for i := 0; i < 3; i++ {
		_, found, err := cached.FloodEvents(cell, 0)
		require.NoError(t, err)
		assert.False(t, found)
	}

	assert.Equal(t, 1, inner.calls)
}

func TestCachedLookupDoesNotCacheErrors(t *testing.T) {
	inner := &countingLookup{err: errors.New("db locked")}
	cached := NewCachedLookup(inner, 10)

	cell := domain.Coordinates{Lat: 29.8, Lon: -95.4}
	_, _, err := cached.FloodEvents(cell, 0)
	require.Error(t, err)
	_, _, err = cached.FloodEvents(cell, 0)
	require.Error(t, err)

	assert.Equal(t, 2, inner.calls)
}

func TestCachedLookupKeysIncludeWindow(t *testing.T) {
	inner := &countingLookup{events: 2, found: true}
	cached := NewCachedLookup(inner, 10)

	cell := domain.Coordinates{Lat: 29.8, Lon: -95.4}
	_, _, err := cached.FloodEvents(cell, 0)
	require.NoError(t, err)
	_, _, err = cached.FloodEvents(cell, 2015)
	require.NoError(t, err)

	assert.Equal(t, 2, inner.calls)
}

func TestLRUCacheEvictsLeastRecentlyUsed(t *testing.T) {
	cache := newLRUCache(2)

	cache.put("a", cachedCount{events: 1, found: true})
	cache.put("b", cachedCount{events: 2, found: true})

	// Touch "a" so "b" becomes the eviction candidate.
	_, ok := cache.get("a")
	require.True(t, ok)

	cache.put("c", cachedCount{events: 3, found: true})

	_, ok = cache.get("b")
	assert.False(t, ok)
	v, ok := cache.get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v.events)
	v, ok = cache.get("c")
	require.True(t, ok)
	assert.Equal(t, 3, v.events)
}

func TestLRUCacheUpdateExistingKey(t *testing.T) {
	cache := newLRUCache(2)

	cache.put("a", cachedCount{events: 1, found: true})
	cache.put("a", cachedCount{events: 9, found: true})

	v, ok := cache.get("a")
	require.True(t, ok)
	assert.Equal(t, 9, v.events)
}
