package pairmatch

import (
	"github.com/hupe1980/pairmatch/internal/index"
	"github.com/hupe1980/pairmatch/table"
)

// samebySingle enumerates all pairs within the value groups of one
// sameby-all column, applying diffby filtering per row. Pairs are emitted
// keyed by the group's value, with ID1 < ID2: once a row has served as ID1
// it leaves the candidate pool, so no symmetric duplicates occur.
func (m *Matcher) samebySingle(sameby string, diffbyAll, diffbyAny []string) *PairGroups {
	groups := newPairGroups()
	for _, g := range m.ix.Groups(sameby) {
		key := NewKey([]string{sameby}, []table.Value{g.Value})
		processed := index.NewRowSet()
		for id1 := range g.Rows.Iterator() {
			processed.Add(id1)
			valid := g.Rows.Clone()
			valid.AndNot(processed)
			m.filterDiffby(id1, diffbyAll, diffbyAny, valid)
			for id2 := range valid.Iterator() {
				groups.add(key, Pair{ID1: RowID(id1), ID2: RowID(id2)})
			}
		}
	}
	return groups
}

// samebyComposite handles several sameby-all columns: enumerate the
// cheapest column first, then keep only candidate pairs agreeing on all
// remaining columns, re-keyed under a composite Key in the caller's column
// order.
func (m *Matcher) samebyComposite(samebyAll, diffbyAll, diffbyAny []string) *PairGroups {
	ordered := m.ix.BySelectivity(samebyAll)
	seedCol, rest := ordered[0], ordered[1:]
	candidates := m.samebySingle(seedCol, diffbyAll, diffbyAny)

	groups := newPairGroups()
	for key, pairs := range candidates.Groups() {
		for _, p := range pairs {
			if !m.pairSameAll(p, rest) {
				continue
			}
			byCol := make(map[string]table.Value, len(samebyAll))
			byCol[seedCol] = key.values[0]
			for _, col := range rest {
				byCol[col] = m.tbl.Value(int(p.ID1), col)
			}
			values := make([]table.Value, len(samebyAll))
			for i, col := range samebyAll {
				values[i] = byCol[col]
			}
			groups.add(NewKey(samebyAll, values), p)
		}
	}
	return groups
}

// keepGroupsAnySame retains the key groups whose pairs agree on at least
// one sameby-any column. All pairs under one key share their sameby-all
// values, so a single representative pair decides for the whole group.
func (m *Matcher) keepGroupsAnySame(groups *PairGroups, samebyAny []string) *PairGroups {
	out := newPairGroups()
	for key, pairs := range groups.Groups() {
		if m.pairSameAny(pairs[0], samebyAny) {
			out.set(key, pairs)
		}
	}
	return out
}

// samebyAnyUnion handles sameby-any with no sameby-all: the union over the
// any-columns of their single-column enumerations, deduplicated and sorted
// by (ID1, ID2) under the zero Key.
func (m *Matcher) samebyAnyUnion(samebyAny, diffbyAll, diffbyAny []string) *PairGroups {
	var pairs []Pair
	for _, col := range samebyAny {
		colGroups := m.samebySingle(col, diffbyAll, diffbyAny)
		for _, ps := range colGroups.Groups() {
			pairs = append(pairs, ps...)
		}
	}
	pairs = sortDedupPairs(pairs)
	groups := newPairGroups()
	groups.set(Key{}, pairs)
	return groups
}

// onlyDiffbyAll handles the sameby-empty, diffby-all-only case: the full
// cross product between distinct value groups of the cheapest diffby
// column, progressively filtered to differ on every remaining column.
func (m *Matcher) onlyDiffbyAll(diffbyAll []string) *PairGroups {
	ordered := m.ix.BySelectivity(diffbyAll)
	pairs := m.fullCrossPairs(ordered[0])
	if len(ordered) > 1 {
		pairs = filterPairs(pairs, func(p Pair) bool {
			return m.pairDiffAll(p, ordered[1:])
		})
	}
	pairs = sortDedupPairs(pairs)
	groups := newPairGroups()
	groups.set(Key{}, pairs)
	return groups
}

// onlyDiffbyAny handles the sameby-empty, diffby-any-only case: a pair
// qualifies when it differs on at least one column, computed as the union
// of per-column full cross products.
func (m *Matcher) onlyDiffbyAny(diffbyAny []string) *PairGroups {
	ordered := m.ix.BySelectivity(diffbyAny)
	var pairs []Pair
	for _, col := range ordered {
		pairs = append(pairs, m.fullCrossPairs(col)...)
	}
	pairs = sortDedupPairs(pairs)
	groups := newPairGroups()
	groups.set(Key{}, pairs)
	return groups
}

// onlyDiffbyAllAny combines both: the diffby-all result further filtered to
// differ on at least one diffby-any column.
func (m *Matcher) onlyDiffbyAllAny(diffbyAll, diffbyAny []string) *PairGroups {
	base := m.onlyDiffbyAll(diffbyAll)
	pairs := filterPairs(base.Get(Key{}), func(p Pair) bool {
		return m.pairDiffAny(p, diffbyAny)
	})
	groups := newPairGroups()
	groups.set(Key{}, pairs)
	return groups
}

// fullCrossPairs forms every pair of rows drawn from two distinct value
// groups of the column, canonicalized to ID1 < ID2. Rows with a null cell
// are not indexed and therefore never appear here.
func (m *Matcher) fullCrossPairs(col string) []Pair {
	groups := m.ix.Groups(col)
	var pairs []Pair
	for i := 0; i < len(groups); i++ {
		for j := i + 1; j < len(groups); j++ {
			for a := range groups[i].Rows.Iterator() {
				for b := range groups[j].Rows.Iterator() {
					pairs = append(pairs, orderedPair(RowID(a), RowID(b)))
				}
			}
		}
	}
	return pairs
}
