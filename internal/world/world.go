// Package world provides the tile map and fixed-layout board generation.
package world

import (
	"fmt"

	"github.com/talgya/hexfront/internal/hex"
)

// Terrain types for board tiles.
type Terrain uint8

const (
	TerrainForest   Terrain = iota // Timber, herbs
	TerrainMountain                // Stone, ore, gold
	TerrainPlains                  // Food, hides
	TerrainSwamp                   // Herbs, clay; disease risk
	TerrainDesert                  // Gold, stone; heat damage
	TerrainLake                    // Water, fish; never exhausts
)

// TerrainCount is the number of terrain types; used for exhaustiveness checks.
const TerrainCount = 6

var terrainNames = map[Terrain]string{
	TerrainForest:   "forest",
	TerrainMountain: "mountain",
	TerrainPlains:   "plains",
	TerrainSwamp:    "swamp",
	TerrainDesert:   "desert",
	TerrainLake:     "lake",
}

func (t Terrain) String() string {
	if s, ok := terrainNames[t]; ok {
		return s
	}
	panic(fmt.Sprintf("world: unknown terrain %d", uint8(t)))
}

// Terrains lists every terrain type in enum order.
func Terrains() []Terrain {
	return []Terrain{
		TerrainForest, TerrainMountain, TerrainPlains,
		TerrainSwamp, TerrainDesert, TerrainLake,
	}
}

// PlacedBuilding marks a structure standing on a tile.
type PlacedBuilding struct {
	TeamID   int    `json:"team_id"`
	Building string `json:"building"`
}

// Tile is a single board hex. One tile per coordinate; the board is
// generated once at game start and never resized.
type Tile struct {
	Coord   hex.Cube `json:"coord"`
	Terrain Terrain  `json:"terrain"`

	// Active controls harvestability. Every terrain deactivates after
	// one harvest except lake, which stays active.
	Active bool `json:"active"`

	// Occupants holds the IDs of players standing on this tile.
	Occupants []string `json:"occupants,omitempty"`

	// Building standing on this tile, if any.
	Building *PlacedBuilding `json:"building,omitempty"`
}

// AddOccupant records a player on the tile; each ID appears at most once.
func (t *Tile) AddOccupant(playerID string) {
	for _, id := range t.Occupants {
		if id == playerID {
			return
		}
	}
	t.Occupants = append(t.Occupants, playerID)
}

// RemoveOccupant drops a player from the tile, preserving order.
func (t *Tile) RemoveOccupant(playerID string) {
	for i, id := range t.Occupants {
		if id == playerID {
			t.Occupants = append(t.Occupants[:i], t.Occupants[i+1:]...)
			return
		}
	}
}

// Map holds the complete board keyed by coordinate.
type Map struct {
	Tiles  map[hex.Cube]*Tile
	Radius int
}

// Get returns the tile at the given coordinate, or nil if off the board.
func (m *Map) Get(c hex.Cube) *Tile {
	return m.Tiles[c]
}

// InBounds reports whether the coordinate lies on the board.
func (m *Map) InBounds(c hex.Cube) bool {
	return hex.Distance(hex.Origin, c) <= m.Radius
}

// TileCount returns the total number of tiles.
func (m *Map) TileCount() int {
	return len(m.Tiles)
}

// TerrainTiles counts tiles per terrain type.
func (m *Map) TerrainTiles() map[Terrain]int {
	counts := make(map[Terrain]int, TerrainCount)
	for _, t := range m.Tiles {
		counts[t.Terrain]++
	}
	return counts
}

// String returns a summary of the board.
func (m *Map) String() string {
	return fmt.Sprintf("Map(radius=%d, tiles=%d)", m.Radius, m.TileCount())
}
