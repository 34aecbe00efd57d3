// Package entropy provides the injectable randomness source for
// stochastic game events: disaster rolls, item-use draws, and harvest
// pool shuffles. Tests inject a seeded source to make outcomes
// deterministic; production wiring uses the crypto-backed source.
package entropy

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
)

// Source yields random values for the engine. Implementations need not
// be safe for concurrent use; the game serializes all access.
type Source interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
	// IntN returns a uniform value in [0, n). Panics if n <= 0.
	IntN(n int) int
}

// Seeded returns a deterministic source for the given seed.
func Seeded(seed int64) Source {
	return seededSource{rng: rand.New(rand.NewSource(seed))}
}

type seededSource struct {
	rng *rand.Rand
}

func (s seededSource) Float64() float64 { return s.rng.Float64() }
func (s seededSource) IntN(n int) int   { return s.rng.Intn(n) }

// Crypto returns a source backed by crypto/rand, for live games where
// no seed is supplied.
func Crypto() Source {
	return cryptoSource{}
}

type cryptoSource struct{}

func (cryptoSource) Float64() float64 { return cryptoFloat() }

func (cryptoSource) IntN(n int) int {
	if n <= 0 {
		panic("entropy: IntN with non-positive bound")
	}
	return int(cryptoFloat() * float64(n))
}

// cryptoFloat generates a uniform float64 in [0, 1) from crypto/rand.
func cryptoFloat() float64 {
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		// crypto/rand never fails on supported platforms; 0.5 keeps
		// the game playable if it somehow does.
		return 0.5
	}
	// Use only 53 bits for a uniform float64 in [0, 1).
	n := binary.LittleEndian.Uint64(buf[:]) >> 11
	return float64(n) / float64(1<<53)
}

// Shuffle permutes the slice in place using the source.
func Shuffle[T any](src Source, items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}
