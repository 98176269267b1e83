// Package pairmatch enumerates and samples constrained pairs of rows from an
// in-memory tabular dataset.
//
// A pair constraint is declarative: "sameby" columns must hold equal values
// in both rows, "diffby" columns must hold different values. Each family
// supports all/any grouping. The typical use case is replicate-vs-non-replicate
// comparisons in large experimental screens, where replicate pairs share a
// perturbation but come from different plates.
//
// # Quick Start
//
//	tbl, _ := table.New(
//	    table.StringColumn("compound", "X", "X", "Y", "Y"),
//	    table.IntColumn("plate", 1, 2, 1, 2),
//	)
//	m, _ := pairmatch.New(tbl, []string{"compound", "plate"}, 42)
//
//	// All pairs sharing a compound across different plates.
//	groups, _ := m.GetAllPairs(constraint.Cols("compound"), constraint.Cols("plate"))
//	for key, pairs := range groups.Groups() {
//	    fmt.Println(key, pairs)
//	}
//
//	// A random pair with different compounds, reproducible per seed.
//	pair, _ := m.SampleNullPair(constraint.Cols("compound"))
//
// Row identifiers are dense 0-based integers assigned in dataset row order;
// downstream consumers index their own feature matrices with them directly.
//
// A Matcher is immutable after construction except for its seeded random
// source. Calls that draw randomness advance shared state, so concurrent use
// of one Matcher requires external serialization; independent Matcher
// instances need no coordination.
//
// Columns holding a set of labels per row are handled by MultilabelMatcher,
// which explodes the column, matches, and maps results back to original rows.
package pairmatch
