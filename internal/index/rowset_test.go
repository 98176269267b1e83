package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRowSetBasics(t *testing.T) {
	s := NewRowSet()
	assert.True(t, s.IsEmpty())

	s.Add(3)
	s.Add(1)
	s.Add(3)
	assert.Equal(t, 2, s.Cardinality())
	assert.True(t, s.Contains(3))
	assert.False(t, s.Contains(2))
	assert.Equal(t, []uint32{1, 3}, s.ToArray())

	s.Remove(3)
	assert.False(t, s.Contains(3))
}

func TestFullRowSet(t *testing.T) {
	s := FullRowSet(4)
	assert.Equal(t, []uint32{0, 1, 2, 3}, s.ToArray())
}

func TestRowSetOps(t *testing.T) {
	a := RowSetOf(1, 2, 3, 4)
	b := RowSetOf(3, 4, 5)

	and := a.Clone()
	and.And(b)
	assert.Equal(t, []uint32{3, 4}, and.ToArray())

	or := a.Clone()
	or.Or(b)
	assert.Equal(t, []uint32{1, 2, 3, 4, 5}, or.ToArray())

	diff := a.Clone()
	diff.AndNot(b)
	assert.Equal(t, []uint32{1, 2}, diff.ToArray())

	// Clone is deep: mutations must not leak back.
	assert.Equal(t, []uint32{1, 2, 3, 4}, a.ToArray())
}

func TestRowSetIteratorAscending(t *testing.T) {
	s := RowSetOf(5, 1, 9)
	var got []uint32
	for id := range s.Iterator() {
		got = append(got, id)
	}
	assert.Equal(t, []uint32{1, 5, 9}, got)
}
