package pairmatch

import (
	"iter"
	"sort"
	"strings"

	"github.com/hupe1980/pairmatch/table"
)

// RowID is a dense 0-based row identifier, assigned by dataset row order at
// matcher construction. Downstream consumers index their own feature
// matrices with it directly.
type RowID uint32

// Pair is an unordered pair of distinct rows, stored as an ordered tuple.
// Wherever deduplication applies, pairs are canonicalized to ID1 < ID2.
type Pair struct {
	ID1 RowID
	ID2 RowID
}

func orderedPair(a, b RowID) Pair {
	if a > b {
		a, b = b, a
	}
	return Pair{ID1: a, ID2: b}
}

// Key identifies a group of pairs by their shared sameby-all values: an
// ordered record of (column, value) entries in the caller's column order.
//
// The zero Key (no sameby-all columns) keys the single group of
// diffby-only and sameby-any-only results.
type Key struct {
	columns []string
	values  []table.Value
}

// NewKey builds a Key from parallel column and value slices.
func NewKey(columns []string, values []table.Value) Key {
	if len(columns) != len(values) {
		panic("pairmatch: key columns and values length mismatch")
	}
	return Key{columns: columns, values: values}
}

// IsNil reports whether the key carries no sameby-all components.
func (k Key) IsNil() bool { return len(k.columns) == 0 }

// Columns returns the key's column names in caller order.
func (k Key) Columns() []string { return k.columns }

// Values returns the key's values, parallel to Columns.
func (k Key) Values() []table.Value { return k.values }

// String renders the key for logs and error messages.
func (k Key) String() string {
	if k.IsNil() {
		return "<none>"
	}
	parts := make([]string, len(k.columns))
	for i := range k.columns {
		parts[i] = k.columns[i] + "=" + k.values[i].String()
	}
	return strings.Join(parts, ",")
}

// mapKey is the stable hashable form used to group pairs.
func (k Key) mapKey() string {
	parts := make([]string, len(k.values))
	for i := range k.values {
		parts[i] = k.values[i].Key()
	}
	return strings.Join(parts, "\x1f")
}

// PairGroups maps keys to the pairs sharing that key's sameby-all values,
// preserving key insertion order. Within a group, pair order reflects
// enumeration order.
type PairGroups struct {
	keys  []Key
	index map[string]int
	pairs [][]Pair
}

func newPairGroups() *PairGroups {
	return &PairGroups{index: make(map[string]int)}
}

func (g *PairGroups) add(k Key, p Pair) {
	mk := k.mapKey()
	i, ok := g.index[mk]
	if !ok {
		i = len(g.keys)
		g.index[mk] = i
		g.keys = append(g.keys, k)
		g.pairs = append(g.pairs, nil)
	}
	g.pairs[i] = append(g.pairs[i], p)
}

func (g *PairGroups) set(k Key, pairs []Pair) {
	mk := k.mapKey()
	i, ok := g.index[mk]
	if !ok {
		i = len(g.keys)
		g.index[mk] = i
		g.keys = append(g.keys, k)
		g.pairs = append(g.pairs, nil)
	}
	g.pairs[i] = pairs
}

// Len returns the number of keys.
func (g *PairGroups) Len() int { return len(g.keys) }

// NumPairs returns the total number of pairs across all keys.
func (g *PairGroups) NumPairs() int {
	n := 0
	for _, ps := range g.pairs {
		n += len(ps)
	}
	return n
}

// Keys returns the keys in insertion order.
func (g *PairGroups) Keys() []Key {
	out := make([]Key, len(g.keys))
	copy(out, g.keys)
	return out
}

// Get returns the pairs grouped under k, or nil if the key is absent.
func (g *PairGroups) Get(k Key) []Pair {
	i, ok := g.index[k.mapKey()]
	if !ok {
		return nil
	}
	return g.pairs[i]
}

// Groups iterates over (key, pairs) in key insertion order.
func (g *PairGroups) Groups() iter.Seq2[Key, []Pair] {
	return func(yield func(Key, []Pair) bool) {
		for i, k := range g.keys {
			if !yield(k, g.pairs[i]) {
				return
			}
		}
	}
}

// sortDedupPairs sorts pairs by (ID1, ID2) and removes duplicates in place.
func sortDedupPairs(pairs []Pair) []Pair {
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].ID1 != pairs[j].ID1 {
			return pairs[i].ID1 < pairs[j].ID1
		}
		return pairs[i].ID2 < pairs[j].ID2
	})
	out := pairs[:0]
	for i, p := range pairs {
		if i > 0 && p == pairs[i-1] {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Flatten expands a pair collection into a row-per-pair table: one column
// per key component plus the two row identifiers as "ix1" and "ix2".
//
// Returns ErrNoPairs if the collection holds no pairs.
func Flatten(groups *PairGroups) (*table.Table, error) {
	if groups == nil || groups.NumPairs() == 0 {
		return nil, ErrNoPairs
	}
	n := groups.NumPairs()
	keyCols := groups.keys[0].columns
	keyVals := make([][]table.Value, len(keyCols))
	for i := range keyVals {
		keyVals[i] = make([]table.Value, 0, n)
	}
	ix1 := make([]table.Value, 0, n)
	ix2 := make([]table.Value, 0, n)
	for key, pairs := range groups.Groups() {
		for _, p := range pairs {
			for i := range keyCols {
				keyVals[i] = append(keyVals[i], key.values[i])
			}
			ix1 = append(ix1, table.Int(int64(p.ID1)))
			ix2 = append(ix2, table.Int(int64(p.ID2)))
		}
	}
	cols := make([]table.Column, 0, len(keyCols)+2)
	for i, name := range keyCols {
		cols = append(cols, table.Column{Name: name, Values: keyVals[i]})
	}
	cols = append(cols,
		table.Column{Name: "ix1", Values: ix1},
		table.Column{Name: "ix2", Values: ix2},
	)
	return table.New(cols...)
}
