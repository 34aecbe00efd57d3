package hex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpiralInvariantAndCount(t *testing.T) {
	for radius := 0; radius <= 6; radius++ {
		coords := Spiral(Origin, radius)
		require.Len(t, coords, 1+3*radius*(radius+1), "radius %d", radius)

		seen := make(map[Cube]bool, len(coords))
		for _, c := range coords {
			assert.Equal(t, 0, c.Q+c.R+c.S, "coordinate %v breaks the cube invariant", c)
			assert.False(t, seen[c], "coordinate %v appears twice", c)
			seen[c] = true
			assert.LessOrEqual(t, Distance(Origin, c), radius)
		}
	}
}

func TestSpiralDeterministic(t *testing.T) {
	a := Spiral(New(2, -1), 4)
	b := Spiral(New(2, -1), 4)
	require.Equal(t, a, b)
	assert.Equal(t, New(2, -1), a[0], "center must come first")
}

func TestRingDistance(t *testing.T) {
	for radius := 1; radius <= 4; radius++ {
		ring := Ring(Origin, radius)
		require.Len(t, ring, 6*radius)
		for _, c := range ring {
			assert.Equal(t, radius, Distance(Origin, c))
		}
		// Consecutive ring members are adjacent, and the ring closes.
		for i := range ring {
			next := ring[(i+1)%len(ring)]
			assert.True(t, Adjacent(ring[i], next), "%v and %v not adjacent", ring[i], next)
		}
	}
}

func TestNeighborsAdjacency(t *testing.T) {
	c := New(3, -2)
	for _, n := range c.Neighbors() {
		assert.Equal(t, 0, n.Q+n.R+n.S)
		assert.True(t, Adjacent(c, n))
		assert.True(t, Adjacent(n, c), "adjacency must be symmetric")
	}
	assert.False(t, Adjacent(c, c))
	assert.False(t, Adjacent(c, New(5, -2)))
}

func TestAtPanicsOnBadCoordinate(t *testing.T) {
	assert.Panics(t, func() { At(1, 1, 1) })
	assert.NotPanics(t, func() { At(1, -1, 0) })
}

func TestPixelRoundTrip(t *testing.T) {
	for _, c := range Spiral(Origin, 5) {
		x, y := c.ToPixel()
		assert.Equal(t, c, FromPixel(x, y), "round trip for %v", c)
	}
}

func TestDistanceExamples(t *testing.T) {
	assert.Equal(t, 0, Distance(Origin, Origin))
	assert.Equal(t, 3, Distance(Origin, New(3, 0)))
	assert.Equal(t, 2, Distance(New(-1, 1), New(1, 1)))
}
