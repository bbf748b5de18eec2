package pivot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lpsimplex/internal/lpmodel"
	"lpsimplex/internal/tableau"
)

func buildSimple(t *testing.T) *tableau.Tableau {
	t.Helper()
	// minimize -3x1 -2x2 s.t. x1+x2 <= 4, x1 >= 0, x2 >= 0
	tb, err := tableau.Build(2, []float64{-3, -2}, []lpmodel.LinearConstraint{
		{Coefs: []float64{1, 1}, RHS: 4, Sense: lpmodel.Le},
	})
	require.NoError(t, err)
	// install a cost row directly for pivot-core testing purposes
	tb.Set(0, 0, -3)
	tb.Set(0, 1, -2)
	return tb
}

func TestEnterDantzigPicksLargestReducedCost(t *testing.T) {
	tb := buildSimple(t)
	tb.Set(0, 0, 5)
	tb.Set(0, 1, 2)
	j := Enter(tb, 2, RuleDantzig, 1e-9, 1e-6, 1e-9)
	assert.Equal(t, 0, j)
}

func TestEnterDantzigNoneEligibleIsOptimal(t *testing.T) {
	tb := buildSimple(t)
	tb.Set(0, 0, -1)
	tb.Set(0, 1, -1)
	j := Enter(tb, 2, RuleDantzig, 1e-9, 1e-6, 1e-9)
	assert.Equal(t, NoColumn, j)
}

func TestEnterBlandPicksFirstEligibleByIndex(t *testing.T) {
	tb := buildSimple(t)
	tb.Set(0, 0, 1)
	tb.Set(0, 1, 5)
	j := Enter(tb, 2, RuleBland, 1e-9, 1e-6, 1e-9)
	assert.Equal(t, 0, j)
}

func TestEnterPan97AliasesToBland(t *testing.T) {
	tb := buildSimple(t)
	tb.Set(0, 0, 1)
	tb.Set(0, 1, 5)
	j := Enter(tb, 2, RulePan97, 1e-9, 1e-6, 1e-9)
	assert.Equal(t, 0, j)
}

func TestLeaveMinRatio(t *testing.T) {
	tb, err := tableau.Build(2, []float64{-1, -1}, []lpmodel.LinearConstraint{
		{Coefs: []float64{1, 0}, RHS: 4, Sense: lpmodel.Le},
		{Coefs: []float64{2, 0}, RHS: 6, Sense: lpmodel.Le},
	})
	require.NoError(t, err)
	p := Leave(tb, 0, 1e-15)
	// row 0: 4/1=4, row1: 6/2=3 -> row 1 wins
	assert.Equal(t, 1, p)
}

func TestLeaveNoPositiveEntryIsUnbounded(t *testing.T) {
	tb, err := tableau.Build(1, []float64{-1}, []lpmodel.LinearConstraint{
		{Coefs: []float64{-1}, RHS: 4, Sense: lpmodel.Le},
	})
	require.NoError(t, err)
	p := Leave(tb, 0, 1e-15)
	assert.Equal(t, NoRow, p)
}

func TestApplyNormalizesAndEliminates(t *testing.T) {
	tb, err := tableau.Build(2, []float64{0, 0}, []lpmodel.LinearConstraint{
		{Coefs: []float64{2, 1}, RHS: 8, Sense: lpmodel.Le},
		{Coefs: []float64{1, 1}, RHS: 5, Sense: lpmodel.Le},
	})
	require.NoError(t, err)
	tb.Set(0, 0, 3)

	Apply(tb, 0, 0, Full)

	assert.InDelta(t, 1.0, tb.At(1, 0), 1e-12)
	assert.InDelta(t, 0.0, tb.At(2, 0), 1e-12) // eliminated from other row
	assert.InDelta(t, 0.0, tb.At(0, 0), 1e-12) // eliminated from cost row
	assert.Equal(t, 0, tb.Basis[0])
}

func TestStallGuardDetectsNonImprovement(t *testing.T) {
	var g StallGuard
	assert.Equal(t, 0, g.Observe(10, 1e-12))
	assert.Equal(t, 1, g.Observe(10, 1e-12)) // no improvement beyond threshold -> stall
	assert.Equal(t, 2, g.Observe(10, 1e-12))
	assert.Equal(t, 0, g.Observe(20, 1e-12)) // real improvement resets
}
