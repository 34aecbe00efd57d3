// Package hex provides cube-coordinate math for the hexagonal board.
// Coordinates satisfy q + r + s == 0; a coordinate that violates this
// is a programming error and panics rather than returning an error.
package hex

import (
	"fmt"
	"math"
)

// Cube is a position on the board in cube coordinates.
// Immutable once created; usable as a map key.
type Cube struct {
	Q int `json:"q"`
	R int `json:"r"`
	S int `json:"s"`
}

// New builds a cube coordinate from axial q, r, deriving s.
func New(q, r int) Cube {
	return Cube{Q: q, R: r, S: -q - r}
}

// At builds a cube coordinate from all three axes.
// Panics if q + r + s != 0.
func At(q, r, s int) Cube {
	if q+r+s != 0 {
		panic(fmt.Sprintf("hex: invalid cube coordinate (%d,%d,%d): q+r+s != 0", q, r, s))
	}
	return Cube{Q: q, R: r, S: s}
}

// Origin is the center of the board.
var Origin = Cube{}

// Add returns the component-wise sum of two coordinates.
func (c Cube) Add(o Cube) Cube {
	return Cube{Q: c.Q + o.Q, R: c.R + o.R, S: c.S + o.S}
}

// Scale multiplies every component by k.
func (c Cube) Scale(k int) Cube {
	return Cube{Q: c.Q * k, R: c.R * k, S: c.S * k}
}

// String renders the coordinate as "(q,r,s)".
func (c Cube) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.Q, c.R, c.S)
}

// Directions lists the six unit vectors in rotational order,
// starting from the +q axis.
var Directions = [6]Cube{
	{Q: 1, R: 0, S: -1},
	{Q: 1, R: -1, S: 0},
	{Q: 0, R: -1, S: 1},
	{Q: -1, R: 0, S: 1},
	{Q: -1, R: 1, S: 0},
	{Q: 0, R: 1, S: -1},
}

// Neighbors returns the six coordinates at unit distance.
func (c Cube) Neighbors() [6]Cube {
	var out [6]Cube
	for i, d := range Directions {
		out[i] = c.Add(d)
	}
	return out
}

// Adjacent reports whether a and b are at unit distance.
func Adjacent(a, b Cube) bool {
	return Distance(a, b) == 1
}

// Distance returns the hex distance between two coordinates:
// the max of the absolute component differences.
func Distance(a, b Cube) int {
	dq := abs(a.Q - b.Q)
	dr := abs(a.R - b.R)
	ds := abs(a.S - b.S)
	max := dq
	if dr > max {
		max = dr
	}
	if ds > max {
		max = ds
	}
	return max
}

// Ring returns the coordinates exactly radius steps from center,
// walking clockwise from the +q axis. radius 0 yields just the center.
func Ring(center Cube, radius int) []Cube {
	if radius < 0 {
		panic(fmt.Sprintf("hex: negative ring radius %d", radius))
	}
	if radius == 0 {
		return []Cube{center}
	}
	out := make([]Cube, 0, 6*radius)
	cur := center.Add(Directions[0].Scale(radius))
	// Starting on the +q spoke, each edge of the ring follows the
	// direction two steps ahead in rotational order.
	for i := 0; i < 6; i++ {
		d := Directions[(i+2)%6]
		for j := 0; j < radius; j++ {
			out = append(out, cur)
			cur = cur.Add(d)
		}
	}
	return out
}

// Spiral returns every coordinate within radius rings of center:
// the center first, then ring 1, ring 2, and so on. The ordering is
// deterministic so board generation is idempotent.
func Spiral(center Cube, radius int) []Cube {
	out := make([]Cube, 0, 1+3*radius*(radius+1))
	out = append(out, center)
	for r := 1; r <= radius; r++ {
		out = append(out, Ring(center, r)...)
	}
	return out
}

// Size is the hex edge length in pixels used by the projection.
const Size = 32.0

// ToPixel projects the coordinate to pointy-top pixel space.
func (c Cube) ToPixel() (x, y float64) {
	x = Size * (math.Sqrt(3)*float64(c.Q) + math.Sqrt(3)/2*float64(c.R))
	y = Size * 1.5 * float64(c.R)
	return x, y
}

// FromPixel inverts ToPixel, rounding to the nearest hex.
func FromPixel(x, y float64) Cube {
	q := (math.Sqrt(3)/3*x - y/3) / Size
	r := (2.0 / 3.0 * y) / Size
	return round(q, r, -q-r)
}

// round snaps fractional cube coordinates to the nearest valid hex
// by re-deriving the component with the largest rounding error.
func round(fq, fr, fs float64) Cube {
	q := math.Round(fq)
	r := math.Round(fr)
	s := math.Round(fs)

	dq := math.Abs(q - fq)
	dr := math.Abs(r - fr)
	ds := math.Abs(s - fs)

	switch {
	case dq > dr && dq > ds:
		q = -r - s
	case dr > ds:
		r = -q - s
	default:
		s = -q - r
	}
	return Cube{Q: int(q), R: int(r), S: int(s)}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
