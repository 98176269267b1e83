package pairmatch

import (
	"fmt"

	"github.com/hupe1980/pairmatch/constraint"
	"github.com/hupe1980/pairmatch/internal/index"
	"github.com/hupe1980/pairmatch/table"
)

// MultilabelMatcher matches rows of a dataset in which one column holds a
// set of labels per row. It explodes that column into one synthetic row per
// label, runs the core engine on the exploded table, and maps every emitted
// identifier back to its original row.
//
// When the multilabel column is a diffby target, two original rows qualify
// only if their label sets are completely disjoint; when it is a sameby
// target, sharing at least one label suffices. Pairs of the same original
// row are dropped and mapped duplicates deduplicated.
type MultilabelMatcher struct {
	matcher   *Matcher
	col       string
	origIndex []RowID
	siblings  []*index.RowSet
	labelKeys []map[string]struct{}
	size      int
}

// NewMultilabel creates a MultilabelMatcher over the named columns of tbl,
// exploding multilabelCol. Row identifiers in results refer to tbl's
// original row order.
func NewMultilabel(tbl *table.Table, columns []string, multilabelCol string, seed int64, optFns ...Option) (*MultilabelMatcher, error) {
	found := false
	for _, col := range columns {
		if col == multilabelCol {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("multilabel column %q not in selected columns", multilabelCol)
	}
	sel, err := tbl.Select(columns...)
	if err != nil {
		return nil, err
	}

	size := sel.NumRows()
	origIndex := make([]RowID, 0, size)
	labelKeys := make([]map[string]struct{}, size)
	exploded := make(map[string][]table.Value, len(columns))
	for row := 0; row < size; row++ {
		cell := sel.Value(row, multilabelCol)
		labels := explodeCell(cell)
		keys := make(map[string]struct{}, len(labels))
		for _, l := range labels {
			if !l.IsNull() {
				keys[l.Key()] = struct{}{}
			}
		}
		labelKeys[row] = keys
		for _, l := range labels {
			for _, col := range columns {
				if col == multilabelCol {
					exploded[col] = append(exploded[col], l)
				} else {
					exploded[col] = append(exploded[col], sel.Value(row, col))
				}
			}
			origIndex = append(origIndex, RowID(row))
		}
	}

	cols := make([]table.Column, len(columns))
	for i, col := range columns {
		cols[i] = table.Column{Name: col, Values: exploded[col]}
	}
	expTbl, err := table.New(cols...)
	if err != nil {
		return nil, err
	}
	matcher, err := New(expTbl, columns, seed, optFns...)
	if err != nil {
		return nil, err
	}
	siblings := make([]*index.RowSet, size)
	for i := range siblings {
		siblings[i] = index.NewRowSet()
	}
	for exp, orig := range origIndex {
		siblings[orig].Add(uint32(exp))
	}
	return &MultilabelMatcher{
		matcher:   matcher,
		col:       multilabelCol,
		origIndex: origIndex,
		siblings:  siblings,
		labelKeys: labelKeys,
		size:      size,
	}, nil
}

// explodeCell returns one value per label of a multilabel cell. Rows with a
// null or empty cell stay represented by a single null-valued synthetic row,
// which no reverse index picks up. Scalar cells count as one label.
func explodeCell(cell table.Value) []table.Value {
	if cell.Kind != table.KindLabels {
		return []table.Value{cell}
	}
	if len(cell.L) == 0 {
		return []table.Value{table.Null()}
	}
	seen := make(map[string]struct{}, len(cell.L))
	out := make([]table.Value, 0, len(cell.L))
	for _, l := range cell.L {
		k := l.Key()
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, l)
	}
	return out
}

// NumRows returns the number of original rows.
func (m *MultilabelMatcher) NumRows() int { return m.size }

// GetAllPairs enumerates pairs of original rows under the given sameby and
// diffby column lists. Including the multilabel column in diffby requires
// the pair's label sets to be fully disjoint; including it in sameby
// requires at least one shared label.
func (m *MultilabelMatcher) GetAllPairs(sameby, diffby []string) (*PairGroups, error) {
	diffbyMulti := false
	rest := make([]string, 0, len(diffby))
	for _, col := range diffby {
		if col == m.col {
			diffbyMulti = true
			continue
		}
		rest = append(rest, col)
	}
	if diffbyMulti && len(rest) == 0 && len(sameby) == 0 {
		return m.onlyDiffbyMulti()
	}

	groups, err := m.matcher.GetAllPairs(constraint.Cols(sameby...), constraint.Cols(rest...))
	if err != nil {
		return nil, err
	}

	out := newPairGroups()
	for key, pairs := range groups.Groups() {
		mapped := make([]Pair, 0, len(pairs))
		seen := make(map[Pair]struct{}, len(pairs))
		for _, p := range pairs {
			a, b := m.origIndex[p.ID1], m.origIndex[p.ID2]
			if a == b {
				continue
			}
			cp := orderedPair(a, b)
			if _, dup := seen[cp]; dup {
				continue
			}
			seen[cp] = struct{}{}
			if diffbyMulti && m.labelsIntersect(cp.ID1, cp.ID2) {
				continue
			}
			mapped = append(mapped, cp)
		}
		if len(mapped) > 0 {
			out.set(key, mapped)
		}
	}
	return out, nil
}

// onlyDiffbyMulti handles diffby limited to the multilabel column with no
// sameby: enumerate the pairs sharing at least one label, then return the
// complement over the full combination space of original rows.
func (m *MultilabelMatcher) onlyDiffbyMulti() (*PairGroups, error) {
	groups, err := m.matcher.GetAllPairs(constraint.Col(m.col), constraint.None())
	if err != nil {
		return nil, err
	}
	overlapping := make(map[Pair]struct{})
	for _, pairs := range groups.Groups() {
		for _, p := range pairs {
			a, b := m.origIndex[p.ID1], m.origIndex[p.ID2]
			if a == b {
				continue
			}
			overlapping[orderedPair(a, b)] = struct{}{}
		}
	}
	var pairs []Pair
	for i := 0; i < m.size; i++ {
		for j := i + 1; j < m.size; j++ {
			p := Pair{ID1: RowID(i), ID2: RowID(j)}
			if _, ok := overlapping[p]; ok {
				continue
			}
			pairs = append(pairs, p)
		}
	}
	out := newPairGroups()
	out.set(Key{}, pairs)
	return out, nil
}

// SampleNullPair draws one random pair of distinct original rows under the
// diffby columns, applied at the exploded-row level. Exploded siblings of
// the anchor row are never candidates, so both identifiers always refer to
// different original rows.
func (m *MultilabelMatcher) SampleNullPair(diffby []string) (Pair, error) {
	clause := constraint.Cols(diffby...)
	if err := constraint.ValidateClause(clause, "diffby", m.matcher.columns); err != nil {
		return Pair{}, err
	}
	return m.sampleNullPair(clause)
}

// NullPairs draws size null pairs of distinct original rows, each sampled
// independently with the same retry semantics as SampleNullPair.
func (m *MultilabelMatcher) NullPairs(diffby []string, size int) ([]Pair, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	clause := constraint.Cols(diffby...)
	if err := constraint.ValidateClause(clause, "diffby", m.matcher.columns); err != nil {
		return nil, err
	}
	pairs := make([]Pair, 0, size)
	for i := 0; i < size; i++ {
		p, err := m.sampleNullPair(clause)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, p)
	}
	return pairs, nil
}

func (m *MultilabelMatcher) sampleNullPair(diffby constraint.Clause) (Pair, error) {
	mm := m.matcher
	if m.size < 2 {
		return Pair{}, fmt.Errorf("%w: fewer than two rows", ErrSamplingExhausted)
	}
	for try := 0; try < mm.opts.nullTries; try++ {
		p, err := m.nullSample(diffby.All, diffby.Any)
		if err == nil {
			return p, nil
		}
		mm.opts.logger.Debug("unpaired row, retrying", "try", try+1, "err", err)
	}
	return Pair{}, fmt.Errorf("%w: no valid pair in %d tries", ErrSamplingExhausted, mm.opts.nullTries)
}

// nullSample mirrors the core attempt on the exploded table, additionally
// removing the anchor's sibling rows from the candidate pool before the
// diffby filter runs.
func (m *MultilabelMatcher) nullSample(diffbyAll, diffbyAny []string) (Pair, error) {
	mm := m.matcher
	id1 := uint32(mm.src.IntBetween(0, mm.tbl.NumRows()-1))
	orig1 := m.origIndex[id1]
	valid := mm.all.Clone()
	valid.AndNot(m.siblings[orig1])
	mm.filterDiffby(id1, diffbyAll, diffbyAny, valid)
	if valid.IsEmpty() {
		return Pair{}, &errUnpaired{ID: RowID(id1)}
	}
	id2 := mm.src.Choice(valid.ToArray())
	return Pair{ID1: orig1, ID2: m.origIndex[id2]}, nil
}

func (m *MultilabelMatcher) labelsIntersect(a, b RowID) bool {
	la, lb := m.labelKeys[a], m.labelKeys[b]
	if len(la) > len(lb) {
		la, lb = lb, la
	}
	for k := range la {
		if _, ok := lb[k]; ok {
			return true
		}
	}
	return false
}
