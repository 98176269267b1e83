package pairmatch

import (
	"github.com/hupe1980/pairmatch/constraint"
	"github.com/hupe1980/pairmatch/internal/index"
	"github.com/hupe1980/pairmatch/internal/randsrc"
	"github.com/hupe1980/pairmatch/table"
)

// Matcher enumerates and samples constrained row pairs over one dataset
// snapshot.
//
// A Matcher is built once per query context: construction selects the
// relevant columns, assigns dense row identifiers by row order, and builds
// the per-column reverse indices and the selectivity order. GetAllPairs and
// SampleNullPair reuse them freely.
//
// The only mutable state is the seeded random source, which every draw
// advances. Concurrent calls on one Matcher require external serialization;
// independent Matcher instances share nothing.
type Matcher struct {
	tbl     *table.Table
	columns []string
	ix      *index.Reverse
	src     *randsrc.Source
	all     *index.RowSet
	opts    options
}

// New creates a Matcher over the named columns of tbl. Row identifiers
// 0..NumRows-1 follow tbl's row order. The seed fully determines every
// random draw the matcher will ever make.
func New(tbl *table.Table, columns []string, seed int64, optFns ...Option) (*Matcher, error) {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	sel, err := tbl.Select(columns...)
	if err != nil {
		return nil, err
	}
	src := randsrc.New(seed)
	ix := index.Build(sel, columns, src, opts.maxGroupSize, opts.logger.Logger)
	return &Matcher{
		tbl:     sel,
		columns: columns,
		ix:      ix,
		src:     src,
		all:     index.FullRowSet(sel.NumRows()),
		opts:    opts,
	}, nil
}

// NumRows returns the number of rows in the snapshot.
func (m *Matcher) NumRows() int { return m.tbl.NumRows() }

// Columns returns the selected column names.
func (m *Matcher) Columns() []string {
	out := make([]string, len(m.columns))
	copy(out, m.columns)
	return out
}

// GetAllPairs enumerates every pair of rows satisfying the sameby and
// diffby clauses, grouped by their shared sameby-all values.
//
// The clauses are validated before any enumeration; see
// constraint.Validate for the rejection rules. The result is keyed by the
// zero Key when no sameby-all column is given, by the column's value for a
// single sameby-all column, and by a composite Key in caller column order
// for several.
func (m *Matcher) GetAllPairs(sameby, diffby constraint.Clause) (*PairGroups, error) {
	if err := constraint.Validate(sameby, diffby, m.columns); err != nil {
		return nil, err
	}

	if len(sameby.All) == 0 && len(sameby.Any) == 0 {
		switch {
		case len(diffby.Any) == 0:
			return m.onlyDiffbyAll(diffby.All), nil
		case len(diffby.All) == 0:
			return m.onlyDiffbyAny(diffby.Any), nil
		default:
			return m.onlyDiffbyAllAny(diffby.All, diffby.Any), nil
		}
	}

	groups := newPairGroups()
	if len(sameby.All) == 1 {
		groups = m.samebySingle(sameby.All[0], diffby.All, diffby.Any)
	} else if len(sameby.All) > 1 {
		groups = m.samebyComposite(sameby.All, diffby.All, diffby.Any)
	}

	if len(sameby.Any) > 0 {
		if len(sameby.All) > 0 {
			groups = m.keepGroupsAnySame(groups, sameby.Any)
		} else {
			groups = m.samebyAnyUnion(sameby.Any, diffby.All, diffby.Any)
		}
	}

	m.opts.logger.Debug("enumerated pairs",
		"keys", groups.Len(),
		"pairs", groups.NumPairs(),
	)
	return groups, nil
}
