package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/hexfront/internal/hex"
)

func TestGenerateIdempotent(t *testing.T) {
	a := Generate(6)
	b := Generate(6)
	require.Equal(t, a.TileCount(), b.TileCount())
	for coord, tile := range a.Tiles {
		other := b.Get(coord)
		require.NotNil(t, other, "tile %v missing on regeneration", coord)
		assert.Equal(t, tile.Terrain, other.Terrain, "terrain differs at %v", coord)
		assert.True(t, other.Active)
	}
}

func TestGenerateTileCount(t *testing.T) {
	m := Generate(6)
	assert.Equal(t, 1+3*6*7, m.TileCount())
	assert.True(t, m.InBounds(hex.New(6, 0)))
	assert.False(t, m.InBounds(hex.New(7, 0)))
}

func TestGenerateLayoutApplied(t *testing.T) {
	m := Generate(6)
	assert.Equal(t, TerrainLake, m.Get(hex.New(0, 0)).Terrain)
	assert.Equal(t, TerrainDesert, m.Get(hex.New(5, 0)).Terrain)

	counts := m.TerrainTiles()
	assert.Positive(t, counts[TerrainLake])
	assert.Positive(t, counts[TerrainForest])
	assert.Positive(t, counts[TerrainPlains])
}

func TestStartingPositionsDistinct(t *testing.T) {
	m := Generate(6)
	seats := StartingPositions(m, 30)
	require.Len(t, seats, 30)

	seen := make(map[hex.Cube]bool)
	for _, c := range seats {
		assert.False(t, seen[c], "seat %v assigned twice", c)
		seen[c] = true
		assert.Equal(t, m.Radius, hex.Distance(hex.Origin, c))
		require.NotNil(t, m.Get(c))
	}
}

func TestCitySites(t *testing.T) {
	m := Generate(6)
	sites := CitySites(m, 3)
	require.Len(t, sites, 3)
	seen := make(map[hex.Cube]bool)
	for _, c := range sites {
		assert.False(t, seen[c])
		seen[c] = true
		assert.Equal(t, 2, hex.Distance(hex.Origin, c))
	}
}

func TestTileOccupants(t *testing.T) {
	tile := &Tile{Coord: hex.New(1, 1)}
	tile.AddOccupant("a")
	tile.AddOccupant("b")
	tile.AddOccupant("a") // no duplicates
	assert.Equal(t, []string{"a", "b"}, tile.Occupants)

	tile.RemoveOccupant("a")
	assert.Equal(t, []string{"b"}, tile.Occupants)
	tile.RemoveOccupant("missing") // no-op
	assert.Equal(t, []string{"b"}, tile.Occupants)
}
