package history

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/flood-risk-engine/internal/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreSeedAndLookup(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Seed([]Record{
		{Lat: 29.76, Lon: -95.37, Year: 2020, Events: 2},
		{Lat: 29.76, Lon: -95.37, Year: 2023, Events: 3},
		{Lat: 51.51, Lon: -0.13, Year: 2021, Events: 1},
	}))

	cell := domain.GridCell(domain.Coordinates{Lat: 29.76, Lon: -95.37})

	events, found, err := store.FloodEvents(cell, 0)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 5, events)
}

func TestStoreLookbackWindow(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Seed([]Record{
		{Lat: 29.76, Lon: -95.37, Year: 2010, Events: 4},
		{Lat: 29.76, Lon: -95.37, Year: 2024, Events: 1},
	}))

	cell := domain.GridCell(domain.Coordinates{Lat: 29.76, Lon: -95.37})

	events, found, err := store.FloodEvents(cell, 2020)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 1, events)

	_, found, err = store.FloodEvents(cell, 2025)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestStoreUnknownCell(t *testing.T) {
	store := openTestStore(t)

	_, found, err := store.FloodEvents(domain.Coordinates{Lat: 0, Lon: 0}, 0)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestStoreSeedSnapsToGridCell(t *testing.T) {
	store := openTestStore(t)

	// Two points in the same 0.1 degree cell accumulate under one key.
	require.NoError(t, store.Seed([]Record{
		{Lat: 29.7604, Lon: -95.3698, Year: 2022, Events: 2},
	}))

	cell := domain.GridCell(domain.Coordinates{Lat: 29.78, Lon: -95.41})
	events, found, err := store.FloodEvents(cell, 0)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 2, events)
}

func TestStoreReseedReplacesCount(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Seed([]Record{{Lat: 29.76, Lon: -95.37, Year: 2022, Events: 2}}))
	require.NoError(t, store.Seed([]Record{{Lat: 29.76, Lon: -95.37, Year: 2022, Events: 7}}))

	cell := domain.GridCell(domain.Coordinates{Lat: 29.76, Lon: -95.37})
	events, _, err := store.FloodEvents(cell, 0)
	require.NoError(t, err)
	assert.Equal(t, 7, events)
}
