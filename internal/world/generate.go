// Board generation from the fixed terrain layout.
// Coordinates absent from the layout table fall back to terrain derived
// from fixed-seed noise, so generation is fully deterministic and
// calling Generate twice yields identical boards.
package world

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/hexfront/internal/hex"
)

// layoutSeed fixes the fallback noise so regeneration is idempotent.
const layoutSeed = 7

// layout pins terrain for the board's designed features: the central
// lakes, the northern mountain ridge, the swamp belt, and the eastern
// desert. Everything else is derived.
var layout = map[hex.Cube]Terrain{
	hex.New(0, 0):  TerrainLake,
	hex.New(1, 0):  TerrainLake,
	hex.New(0, 1):  TerrainLake,
	hex.New(-4, 3): TerrainLake,

	hex.New(1, -4): TerrainMountain,
	hex.New(2, -4): TerrainMountain,
	hex.New(2, -5): TerrainMountain,
	hex.New(3, -5): TerrainMountain,
	hex.New(0, -3): TerrainMountain,
	hex.New(1, -3): TerrainMountain,

	hex.New(-3, 0): TerrainSwamp,
	hex.New(-3, 1): TerrainSwamp,
	hex.New(-2, 0): TerrainSwamp,
	hex.New(-4, 1): TerrainSwamp,

	hex.New(4, 0):  TerrainDesert,
	hex.New(4, 1):  TerrainDesert,
	hex.New(5, 0):  TerrainDesert,
	hex.New(5, -1): TerrainDesert,
	hex.New(3, 2):  TerrainDesert,

	hex.New(-1, -1): TerrainForest,
	hex.New(-2, 3):  TerrainForest,
	hex.New(2, 1):   TerrainForest,
	hex.New(-1, 4):  TerrainForest,
	hex.New(0, 4):   TerrainPlains,
	hex.New(-5, 2):  TerrainPlains,
}

// Generate builds the full board for the given ring radius. Every tile
// starts active with no occupants.
func Generate(radius int) *Map {
	noise := opensimplex.NewNormalized(layoutSeed)

	m := &Map{
		Tiles:  make(map[hex.Cube]*Tile, 1+3*radius*(radius+1)),
		Radius: radius,
	}
	for _, c := range hex.Spiral(hex.Origin, radius) {
		terrain, ok := layout[c]
		if !ok {
			terrain = deriveTerrain(noise, c)
		}
		m.Tiles[c] = &Tile{
			Coord:   c,
			Terrain: terrain,
			Active:  true,
		}
	}
	return m
}

// deriveTerrain assigns a terrain band from noise sampled at the
// tile's cartesian position. Lakes come only from the layout table so
// their tile count stays under design control.
func deriveTerrain(noise opensimplex.Noise, c hex.Cube) Terrain {
	x := float64(c.Q) + float64(c.R)*0.5
	y := float64(c.R) * math.Sqrt(3.0) / 2.0
	v := noise.Eval2(x*0.35, y*0.35)

	switch {
	case v < 0.30:
		return TerrainPlains
	case v < 0.55:
		return TerrainForest
	case v < 0.70:
		return TerrainMountain
	case v < 0.85:
		return TerrainSwamp
	default:
		return TerrainDesert
	}
}

// StartingPositions returns the pre-assigned seat coordinates for the
// board: cap coordinates spread evenly around the outer ring, in seat
// order. Seat n (player number n) is element n-1.
func StartingPositions(m *Map, cap int) []hex.Cube {
	ring := hex.Ring(hex.Origin, m.Radius)
	seats := make([]hex.Cube, cap)
	for i := 0; i < cap; i++ {
		seats[i] = ring[i*len(ring)/cap]
	}
	return seats
}

// CitySites returns one fixed city coordinate per team, spread around
// ring 2 so cities never collide with the lake center or the seats.
func CitySites(m *Map, teams int) []hex.Cube {
	ring := hex.Ring(hex.Origin, 2)
	sites := make([]hex.Cube, teams)
	for i := 0; i < teams; i++ {
		sites[i] = ring[i*len(ring)/teams]
	}
	return sites
}
