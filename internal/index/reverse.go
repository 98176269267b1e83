// Package index builds and serves the per-column reverse indices the
// matching engine runs on: distinct value -> set of row identifiers, with
// optional bounded subsampling of oversized value groups and a selectivity
// order across columns.
package index

import (
	"log/slog"
	"sort"

	"github.com/hupe1980/pairmatch/internal/randsrc"
	"github.com/hupe1980/pairmatch/table"
)

// Group is one distinct value of a column together with the rows holding it.
type Group struct {
	Value table.Value
	Rows  *RowSet
}

// columnIndex maps the distinct values of one column to their row sets.
// Groups keep first-seen order so that iteration (and therefore any
// randomness consumed while iterating) is deterministic.
type columnIndex struct {
	groups []Group
	byKey  map[string]*RowSet
	pairs  int64 // sum over groups of C(size, 2)
}

// Reverse holds the reverse indices for all selected columns plus the
// selectivity rank of each column. It is immutable after Build.
type Reverse struct {
	columns map[string]*columnIndex
	rank    map[string]int
}

// Build constructs reverse indices for the given columns of tbl.
//
// Null cells are not indexed: the value groups of a column partition the
// rows holding a non-null value there. If maxGroupSize is positive, any
// group larger than that is replaced by a uniform subsample without
// replacement drawn from src, and a warning is logged.
func Build(tbl *table.Table, columns []string, src *randsrc.Source, maxGroupSize int, log *slog.Logger) *Reverse {
	r := &Reverse{
		columns: make(map[string]*columnIndex, len(columns)),
		rank:    make(map[string]int, len(columns)),
	}
	for _, col := range columns {
		ci := &columnIndex{byKey: make(map[string]*RowSet)}
		for row := 0; row < tbl.NumRows(); row++ {
			v := tbl.Value(row, col)
			if v.IsNull() {
				continue
			}
			key := v.Key()
			rows, ok := ci.byKey[key]
			if !ok {
				rows = NewRowSet()
				ci.byKey[key] = rows
				ci.groups = append(ci.groups, Group{Value: v, Rows: rows})
			}
			rows.Add(uint32(row))
		}
		if maxGroupSize > 0 {
			for _, g := range ci.groups {
				size := g.Rows.Cardinality()
				if size <= maxGroupSize {
					continue
				}
				log.Warn("sampling value group",
					"column", col,
					"value", g.Value.String(),
					"size", size,
					"max", maxGroupSize,
				)
				sampled := src.SampleN(g.Rows.ToArray(), maxGroupSize)
				clipped := RowSetOf(sampled...)
				*g.Rows = *clipped
			}
		}
		for _, g := range ci.groups {
			n := int64(g.Rows.Cardinality())
			ci.pairs += n * (n - 1) / 2
		}
		r.columns[col] = ci
	}

	// Selectivity rank: ascending by induced same-value pair count, ties
	// broken by the caller's column order.
	ordered := make([]string, len(columns))
	copy(ordered, columns)
	sort.SliceStable(ordered, func(i, j int) bool {
		return r.columns[ordered[i]].pairs < r.columns[ordered[j]].pairs
	})
	for i, col := range ordered {
		r.rank[col] = i
	}
	return r
}

// Groups returns the value groups of a column in first-seen order.
func (r *Reverse) Groups(col string) []Group {
	return r.columns[col].groups
}

// Postings returns the rows holding value v in the given column, or nil if
// no row does.
func (r *Reverse) Postings(col string, v table.Value) *RowSet {
	return r.columns[col].byKey[v.Key()]
}

// PairCount returns the number of same-value pairs the column induces on
// its own.
func (r *Reverse) PairCount(col string) int64 {
	return r.columns[col].pairs
}

// BySelectivity returns cols sorted ascending by selectivity rank, cheapest
// column first. The input slice is not modified.
func (r *Reverse) BySelectivity(cols []string) []string {
	out := make([]string, len(cols))
	copy(out, cols)
	sort.SliceStable(out, func(i, j int) bool {
		return r.rank[out[i]] < r.rank[out[j]]
	})
	return out
}
