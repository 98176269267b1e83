package pairmatch

import (
	"fmt"

	"github.com/hupe1980/pairmatch/constraint"
)

// SampleNullPair draws a single random pair satisfying the diffby clause:
// ID1 uniformly over all rows, ID2 uniformly over the rows that survive the
// diffby filter. A draw whose ID1 has no valid partner is retried from
// scratch, including a fresh ID1, up to the configured number of tries
// (default 5, WithNullTries). When all tries fail, ErrSamplingExhausted is
// returned: the constraint is too restrictive for this dataset.
//
// Same seed, same call sequence: identical pairs.
func (m *Matcher) SampleNullPair(diffby constraint.Clause) (Pair, error) {
	if err := constraint.ValidateClause(diffby, "diffby", m.columns); err != nil {
		return Pair{}, err
	}
	return m.sampleNullPair(diffby)
}

func (m *Matcher) sampleNullPair(diffby constraint.Clause) (Pair, error) {
	if m.tbl.NumRows() < 2 {
		return Pair{}, fmt.Errorf("%w: fewer than two rows", ErrSamplingExhausted)
	}
	for try := 0; try < m.opts.nullTries; try++ {
		p, err := m.nullSample(diffby.All, diffby.Any)
		if err == nil {
			return p, nil
		}
		m.opts.logger.Debug("unpaired row, retrying", "try", try+1, "err", err)
	}
	return Pair{}, fmt.Errorf("%w: no valid pair in %d tries", ErrSamplingExhausted, m.opts.nullTries)
}

// nullSample performs one attempt: draw ID1, filter the remaining rows by
// diffby, draw ID2 from the survivors.
func (m *Matcher) nullSample(diffbyAll, diffbyAny []string) (Pair, error) {
	id1 := uint32(m.src.IntBetween(0, m.tbl.NumRows()-1))
	valid := m.all.Clone()
	valid.Remove(id1)
	m.filterDiffby(id1, diffbyAll, diffbyAny, valid)
	if valid.IsEmpty() {
		return Pair{}, &errUnpaired{ID: RowID(id1)}
	}
	id2 := m.src.Choice(valid.ToArray())
	return Pair{ID1: RowID(id1), ID2: RowID(id2)}, nil
}

// NullPairs draws size null pairs, each sampled independently with the same
// retry semantics as SampleNullPair.
func (m *Matcher) NullPairs(diffby constraint.Clause, size int) ([]Pair, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	if err := constraint.ValidateClause(diffby, "diffby", m.columns); err != nil {
		return nil, err
	}
	pairs := make([]Pair, 0, size)
	for i := 0; i < size; i++ {
		p, err := m.sampleNullPair(diffby)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, p)
	}
	return pairs, nil
}
