package index

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/pairmatch/internal/randsrc"
	"github.com/hupe1980/pairmatch/table"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func buildTable(t *testing.T) *table.Table {
	t.Helper()
	tbl, err := table.New(
		table.StringColumn("compound", "X", "X", "Y", "Y", "Y"),
		table.IntColumn("plate", 1, 2, 1, 2, 1),
	)
	require.NoError(t, err)
	return tbl
}

func TestBuildGroups(t *testing.T) {
	tbl := buildTable(t)
	r := Build(tbl, []string{"compound", "plate"}, randsrc.New(0), 0, discard())

	groups := r.Groups("compound")
	require.Len(t, groups, 2)
	// First-seen order.
	assert.Equal(t, "X", groups[0].Value.S)
	assert.Equal(t, []uint32{0, 1}, groups[0].Rows.ToArray())
	assert.Equal(t, "Y", groups[1].Value.S)
	assert.Equal(t, []uint32{2, 3, 4}, groups[1].Rows.ToArray())
}

func TestBuildSkipsNulls(t *testing.T) {
	tbl, err := table.New(table.Column{Name: "c", Values: []table.Value{
		table.String("X"), table.Null(), table.String("X"),
	}})
	require.NoError(t, err)
	r := Build(tbl, []string{"c"}, randsrc.New(0), 0, discard())

	groups := r.Groups("c")
	require.Len(t, groups, 1)
	assert.Equal(t, []uint32{0, 2}, groups[0].Rows.ToArray())
}

func TestPostings(t *testing.T) {
	tbl := buildTable(t)
	r := Build(tbl, []string{"compound", "plate"}, randsrc.New(0), 0, discard())

	p := r.Postings("plate", table.Int(1))
	require.NotNil(t, p)
	assert.Equal(t, []uint32{0, 2, 4}, p.ToArray())

	assert.Nil(t, r.Postings("plate", table.Int(3)))
}

func TestPairCountAndSelectivity(t *testing.T) {
	tbl := buildTable(t)
	r := Build(tbl, []string{"compound", "plate"}, randsrc.New(0), 0, discard())

	// compound: C(2,2) + C(3,2) = 1 + 3 = 4; plate: C(3,2) + C(2,2) = 4.
	assert.Equal(t, int64(4), r.PairCount("compound"))
	assert.Equal(t, int64(4), r.PairCount("plate"))

	// Tie broken by caller column order.
	assert.Equal(t, []string{"compound", "plate"}, r.BySelectivity([]string{"plate", "compound"}))
}

func TestBySelectivityOrdersAscending(t *testing.T) {
	tbl, err := table.New(
		// One big group: C(4,2) = 6 pairs.
		table.StringColumn("skewed", "a", "a", "a", "a"),
		// Two groups of two: 2 pairs.
		table.StringColumn("even", "u", "u", "v", "v"),
	)
	require.NoError(t, err)
	r := Build(tbl, []string{"skewed", "even"}, randsrc.New(0), 0, discard())

	assert.Equal(t, []string{"even", "skewed"}, r.BySelectivity([]string{"skewed", "even"}))
}

func TestBuildSubsamplesLargeGroups(t *testing.T) {
	tbl, err := table.New(
		table.StringColumn("c", "a", "a", "a", "a", "a", "b"),
	)
	require.NoError(t, err)
	r := Build(tbl, []string{"c"}, randsrc.New(42), 3, discard())

	groups := r.Groups("c")
	require.Len(t, groups, 2)
	assert.Equal(t, 3, groups[0].Rows.Cardinality())
	assert.Equal(t, 1, groups[1].Rows.Cardinality())
	for _, id := range groups[0].Rows.ToArray() {
		assert.Less(t, id, uint32(5))
	}
	// Pair counts reflect the clipped groups.
	assert.Equal(t, int64(3), r.PairCount("c"))
}

func TestBuildSubsamplingDeterministic(t *testing.T) {
	tbl, err := table.New(
		table.StringColumn("c", "a", "a", "a", "a", "a", "a", "a", "a"),
	)
	require.NoError(t, err)

	a := Build(tbl, []string{"c"}, randsrc.New(7), 4, discard())
	b := Build(tbl, []string{"c"}, randsrc.New(7), 4, discard())
	assert.Equal(t, a.Groups("c")[0].Rows.ToArray(), b.Groups("c")[0].Rows.ToArray())
}
