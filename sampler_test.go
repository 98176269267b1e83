package pairmatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/pairmatch/constraint"
	"github.com/hupe1980/pairmatch/table"
)

func TestSampleNullPairRespectsDiffby(t *testing.T) {
	tbl := scenarioTable(t)
	m := newMatcher(t, tbl, []string{"compound", "plate"})

	for i := 0; i < 1000; i++ {
		p, err := m.SampleNullPair(constraint.Col("compound"))
		require.NoError(t, err)
		require.NotEqual(t, p.ID1, p.ID2)
		c1 := tbl.Value(int(p.ID1), "compound")
		c2 := tbl.Value(int(p.ID2), "compound")
		require.False(t, table.Equal(c1, c2), "pair %v shares compound", p)
	}
}

func TestSampleNullPairReproducible(t *testing.T) {
	a := newMatcher(t, scenarioTable(t), []string{"compound", "plate"})
	b := newMatcher(t, scenarioTable(t), []string{"compound", "plate"})

	for i := 0; i < 1000; i++ {
		pa, err := a.SampleNullPair(constraint.Col("compound"))
		require.NoError(t, err)
		pb, err := b.SampleNullPair(constraint.Col("compound"))
		require.NoError(t, err)
		require.Equal(t, pa, pb, "draw %d diverged", i)
	}
}

func TestSampleNullPairExhaustion(t *testing.T) {
	// Every row shares the same compound: no valid partner ever exists.
	tbl, err := table.New(table.StringColumn("compound", "X", "X", "X"))
	require.NoError(t, err)
	m, err := New(tbl, []string{"compound"}, 42, WithNullTries(3))
	require.NoError(t, err)

	_, err = m.SampleNullPair(constraint.Col("compound"))
	assert.ErrorIs(t, err, ErrSamplingExhausted)
}

func TestSampleNullPairTooFewRows(t *testing.T) {
	tests := []struct {
		name string
		vals []string
	}{
		{name: "no rows", vals: nil},
		{name: "single row", vals: []string{"X"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := table.New(table.StringColumn("compound", tt.vals...))
			require.NoError(t, err)
			m, err := New(tbl, []string{"compound"}, 42)
			require.NoError(t, err)

			_, err = m.SampleNullPair(constraint.Col("compound"))
			assert.ErrorIs(t, err, ErrSamplingExhausted)
		})
	}
}

func TestSampleNullPairEmptyDiffby(t *testing.T) {
	m := newMatcher(t, scenarioTable(t), []string{"compound", "plate"})

	p, err := m.SampleNullPair(constraint.None())
	require.NoError(t, err)
	assert.NotEqual(t, p.ID1, p.ID2)
}

func TestSampleNullPairValidation(t *testing.T) {
	m := newMatcher(t, scenarioTable(t), []string{"compound", "plate"})

	_, err := m.SampleNullPair(constraint.Col("batch"))
	var unknown *constraint.ErrUnknownColumns
	assert.ErrorAs(t, err, &unknown)

	_, err = m.SampleNullPair(constraint.AnyOf("compound"))
	var anyOfOne *constraint.ErrAnyOfOne
	assert.ErrorAs(t, err, &anyOfOne)
}

func TestSampleNullPairDiffbyAny(t *testing.T) {
	tbl, err := table.New(
		table.StringColumn("compound", "X", "X", "Y"),
		table.IntColumn("plate", 1, 1, 1),
	)
	require.NoError(t, err)
	m := newMatcher(t, tbl, []string{"compound", "plate"})

	// Rows 0 and 1 share both columns; any valid pair must involve row 2.
	for i := 0; i < 200; i++ {
		p, err := m.SampleNullPair(constraint.AnyOf("compound", "plate"))
		require.NoError(t, err)
		require.True(t, p.ID1 == 2 || p.ID2 == 2, "pair %v shares every diffby-any column", p)
	}
}

func TestNullPairs(t *testing.T) {
	a := newMatcher(t, scenarioTable(t), []string{"compound", "plate"})
	b := newMatcher(t, scenarioTable(t), []string{"compound", "plate"})

	bulk, err := a.NullPairs(constraint.Col("compound"), 50)
	require.NoError(t, err)
	require.Len(t, bulk, 50)

	// The bulk variant draws exactly like repeated single sampling.
	for i, p := range bulk {
		single, err := b.SampleNullPair(constraint.Col("compound"))
		require.NoError(t, err)
		assert.Equal(t, single, p, "pair %d diverged", i)
	}
}

func TestNullPairsInvalidSize(t *testing.T) {
	m := newMatcher(t, scenarioTable(t), []string{"compound", "plate"})

	_, err := m.NullPairs(constraint.Col("compound"), 0)
	assert.ErrorIs(t, err, ErrInvalidSize)

	_, err = m.NullPairs(constraint.Col("compound"), -5)
	assert.ErrorIs(t, err, ErrInvalidSize)
}
