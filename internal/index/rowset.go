package index

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
)

// RowSet is a set of dense 0-based row identifiers backed by a 32-bit
// Roaring Bitmap. It wraps the official roaring implementation.
type RowSet struct {
	rb *roaring.Bitmap
}

// NewRowSet creates a new empty row set.
func NewRowSet() *RowSet {
	return &RowSet{
		rb: roaring.New(),
	}
}

// RowSetOf creates a row set holding the given identifiers.
func RowSetOf(ids ...uint32) *RowSet {
	return &RowSet{
		rb: roaring.BitmapOf(ids...),
	}
}

// FullRowSet creates a row set holding every identifier in [0, n).
func FullRowSet(n int) *RowSet {
	rb := roaring.New()
	rb.AddRange(0, uint64(n))
	return &RowSet{rb: rb}
}

// Add adds a row identifier to the set.
func (s *RowSet) Add(id uint32) {
	s.rb.Add(id)
}

// Remove removes a row identifier from the set.
func (s *RowSet) Remove(id uint32) {
	s.rb.Remove(id)
}

// Contains checks if a row identifier is in the set.
func (s *RowSet) Contains(id uint32) bool {
	return s.rb.Contains(id)
}

// IsEmpty returns true if the set is empty.
func (s *RowSet) IsEmpty() bool {
	return s.rb.IsEmpty()
}

// Cardinality returns the number of identifiers in the set.
func (s *RowSet) Cardinality() int {
	return int(s.rb.GetCardinality())
}

// Clone returns a deep copy of the set.
func (s *RowSet) Clone() *RowSet {
	return &RowSet{
		rb: s.rb.Clone(),
	}
}

// And computes the in-place intersection with another set.
func (s *RowSet) And(other *RowSet) {
	s.rb.And(other.rb)
}

// Or computes the in-place union with another set.
func (s *RowSet) Or(other *RowSet) {
	s.rb.Or(other.rb)
}

// AndNot computes the in-place difference with another set.
func (s *RowSet) AndNot(other *RowSet) {
	s.rb.AndNot(other.rb)
}

// Iterator returns an iterator over the set in ascending order.
func (s *RowSet) Iterator() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		it := s.rb.Iterator()
		for it.HasNext() {
			if !yield(it.Next()) {
				return
			}
		}
	}
}

// ToArray returns the identifiers as a sorted slice.
func (s *RowSet) ToArray() []uint32 {
	return s.rb.ToArray()
}
