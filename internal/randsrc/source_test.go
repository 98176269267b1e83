package randsrc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniformRange(t *testing.T) {
	s := New(1)
	for i := 0; i < 10_000; i++ {
		v := s.Uniform()
		require.GreaterOrEqual(t, v, 0.0)
		require.Less(t, v, 1.0)
	}
}

func TestSameSeedSameSequence(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 1000; i++ {
		assert.Equal(t, a.Uniform(), b.Uniform())
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	a := New(1)
	b := New(2)
	same := true
	for i := 0; i < 100; i++ {
		if a.Uniform() != b.Uniform() {
			same = false
		}
	}
	assert.False(t, same)
}

func TestIntBetweenBounds(t *testing.T) {
	s := New(7)
	seen := make(map[int]bool)
	for i := 0; i < 10_000; i++ {
		v := s.IntBetween(3, 7)
		require.GreaterOrEqual(t, v, 3)
		require.LessOrEqual(t, v, 7)
		seen[v] = true
	}
	assert.Len(t, seen, 5, "all values in range should be hit")
}

func TestChoice(t *testing.T) {
	s := New(3)
	items := []uint32{10, 20, 30}
	for i := 0; i < 100; i++ {
		assert.Contains(t, items, s.Choice(items))
	}
}

func TestSampleNWithoutReplacement(t *testing.T) {
	s := New(11)
	items := []uint32{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}

	sampled := s.SampleN(items, 4)
	require.Len(t, sampled, 4)
	seen := make(map[uint32]bool)
	for _, v := range sampled {
		assert.Contains(t, items, v)
		assert.False(t, seen[v], "sampled %d twice", v)
		seen[v] = true
	}

	// Input must not be shuffled.
	assert.Equal(t, []uint32{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, items)
}

func TestSampleNWholeInput(t *testing.T) {
	s := New(11)
	items := []uint32{5, 6, 7}
	assert.Equal(t, items, s.SampleN(items, 3))
	assert.Equal(t, items, s.SampleN(items, 10))
}
