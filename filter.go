package pairmatch

import (
	"github.com/hupe1980/pairmatch/internal/index"
	"github.com/hupe1980/pairmatch/table"
)

// filterDiffby removes from valid every candidate that would violate the
// diffby constraint when paired with row id. The pool is mutated in place.
//
// For each diffby-all column with a non-null value in row id, the rows
// sharing that value are removed via the reverse index. For diffby-any, a
// candidate is removed only when it shares row id's value on every
// diffby-any column, i.e. the intersection of the per-column same-value
// sets; null columns impose no constraint and are skipped.
func (m *Matcher) filterDiffby(id uint32, diffbyAll, diffbyAny []string, valid *index.RowSet) {
	for _, col := range diffbyAll {
		v := m.tbl.Value(int(id), col)
		if v.IsNull() {
			continue
		}
		if postings := m.ix.Postings(col, v); postings != nil {
			valid.AndNot(postings)
		}
	}
	if len(diffbyAny) == 0 {
		return
	}
	var shared *index.RowSet
	seen := false
	for _, col := range diffbyAny {
		v := m.tbl.Value(int(id), col)
		if v.IsNull() {
			continue
		}
		postings := m.ix.Postings(col, v)
		if postings == nil {
			// Nobody shares this value, so the intersection is empty.
			return
		}
		if !seen {
			shared = postings.Clone()
			seen = true
		} else {
			shared.And(postings)
		}
		if shared.IsEmpty() {
			return
		}
	}
	if seen {
		valid.AndNot(shared)
	}
}

// pairSameAll reports whether the pair's rows hold equal values on every
// column. Null cells never compare equal.
func (m *Matcher) pairSameAll(p Pair, cols []string) bool {
	for _, col := range cols {
		if !table.Equal(m.tbl.Value(int(p.ID1), col), m.tbl.Value(int(p.ID2), col)) {
			return false
		}
	}
	return true
}

// pairSameAny reports whether the rows agree on at least one column.
func (m *Matcher) pairSameAny(p Pair, cols []string) bool {
	for _, col := range cols {
		if table.Equal(m.tbl.Value(int(p.ID1), col), m.tbl.Value(int(p.ID2), col)) {
			return true
		}
	}
	return false
}

// pairDiffAll reports whether the rows differ on every column. A null cell
// counts as differing: it imposes no constraint on the pair.
func (m *Matcher) pairDiffAll(p Pair, cols []string) bool {
	for _, col := range cols {
		if table.Equal(m.tbl.Value(int(p.ID1), col), m.tbl.Value(int(p.ID2), col)) {
			return false
		}
	}
	return true
}

// pairDiffAny reports whether the rows differ on at least one column.
func (m *Matcher) pairDiffAny(p Pair, cols []string) bool {
	for _, col := range cols {
		if !table.Equal(m.tbl.Value(int(p.ID1), col), m.tbl.Value(int(p.ID2), col)) {
			return true
		}
	}
	return false
}

// filterPairs keeps the pairs satisfying pred, preserving order.
func filterPairs(pairs []Pair, pred func(Pair) bool) []Pair {
	out := pairs[:0:0]
	for _, p := range pairs {
		if pred(p) {
			out = append(out, p)
		}
	}
	return out
}
