// Package randsrc provides the seeded uniform random source shared by one
// matcher instance. All randomness (reverse-index subsampling, null-pair
// draws) flows through a single Source so that a seed fully determines the
// draw sequence.
package randsrc

import "math/rand"

// batchSize is the number of uniforms generated per refill. Refills are
// transparent: the draw sequence depends only on the seed.
const batchSize = 1_000_000

// Source draws uniform values from a seeded generator, refilling an internal
// batch whenever it is exhausted.
//
// Source is not safe for concurrent use: every draw advances shared state.
type Source struct {
	rng *rand.Rand
	buf []float64
	pos int
}

// New creates a Source with the specified seed.
func New(seed int64) *Source {
	return &Source{
		rng: rand.New(rand.NewSource(seed)), // nolint gosec
	}
}

// Uniform returns the next value in [0, 1).
func (s *Source) Uniform() float64 {
	if s.pos >= len(s.buf) {
		if s.buf == nil {
			s.buf = make([]float64, batchSize)
		}
		for i := range s.buf {
			s.buf[i] = s.rng.Float64()
		}
		s.pos = 0
	}
	v := s.buf[s.pos]
	s.pos++
	return v
}

// IntBetween returns a uniform integer in [min, max], both inclusive.
func (s *Source) IntBetween(min, max int) int {
	return int(s.Uniform()*float64(max-min+1)) + min
}

// Choice returns a uniformly drawn element of items. items must be
// non-empty.
func (s *Source) Choice(items []uint32) uint32 {
	return items[s.IntBetween(0, len(items)-1)]
}

// SampleN draws n distinct elements of items uniformly without replacement
// via a partial Fisher-Yates shuffle. items is not modified. If n is at
// least len(items), a copy of items is returned.
func (s *Source) SampleN(items []uint32, n int) []uint32 {
	if n >= len(items) {
		out := make([]uint32, len(items))
		copy(out, items)
		return out
	}
	pool := make([]uint32, len(items))
	copy(pool, items)
	for i := 0; i < n; i++ {
		j := s.IntBetween(i, len(pool)-1)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n]
}
