package simplex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lpsimplex/internal/lpmodel"
	"lpsimplex/internal/pivot"
)

func TestSeedScenario1ClassicTwoVariableLP(t *testing.T) {
	// maximize 3x1+2x2 == minimize -3x1-2x2
	// s.t. x1+x2<=9, 3x1+x2<=18, x1<=7, x2<=6
	m := lpmodel.NewModel(2)
	m.Objective = []float64{-3, -2}
	m.AddConstraint("c1", []float64{1, 1}, lpmodel.Le, 9)
	m.AddConstraint("c2", []float64{3, 1}, lpmodel.Le, 18)
	m.AddConstraint("c3", []float64{1, 0}, lpmodel.Le, 7)
	m.AddConstraint("c4", []float64{0, 1}, lpmodel.Le, 6)

	r := SolveModel(m, DefaultOptions())

	require.Equal(t, Success, r.Code)
	assert.InDelta(t, 4.5, r.X[0], 1e-6)
	assert.InDelta(t, 4.5, r.X[1], 1e-6)
	assert.InDelta(t, -22.5, r.Value, 1e-6)
}

func TestSeedScenario2MixedSenseLP(t *testing.T) {
	// maximize 3x+4y == minimize -3x-4y
	// s.t. x+2y<=14, 3x-y>=0, x-y<=2
	m := lpmodel.NewModel(2)
	m.Objective = []float64{-3, -4}
	m.AddConstraint("c1", []float64{1, 2}, lpmodel.Le, 14)
	m.AddConstraint("c2", []float64{3, -1}, lpmodel.Ge, 0)
	m.AddConstraint("c3", []float64{1, -1}, lpmodel.Le, 2)

	r := SolveModel(m, DefaultOptions())

	require.Equal(t, Success, r.Code)
	assert.InDelta(t, 6.0, r.X[0], 1e-6)
	assert.InDelta(t, 4.0, r.X[1], 1e-6)
	assert.InDelta(t, -34.0, r.Value, 1e-6)
}

func TestSeedScenario3FreeAndLowerBoundedVariables(t *testing.T) {
	// minimize -x0+4x1 s.t. -3x0+x1<=6, -x0-2x1>=-4, x0 free, x1>=-3
	m := lpmodel.NewModel(2)
	m.Objective = []float64{-1, 4}
	m.AddConstraint("c1", []float64{-3, 1}, lpmodel.Le, 6)
	m.AddConstraint("c2", []float64{-1, -2}, lpmodel.Ge, -4)
	m.SetBound(0, lpmodel.VariableBound{Kind: lpmodel.Free})
	m.SetBound(1, lpmodel.VariableBound{Kind: lpmodel.LowerOnly, Lower: -3})

	r := SolveModel(m, DefaultOptions())

	require.Equal(t, Success, r.Code)
	assert.InDelta(t, 10.0, r.X[0], 1e-6)
	assert.InDelta(t, -3.0, r.X[1], 1e-6)
	assert.InDelta(t, -22.0, r.Value, 1e-6)
}

func TestSeedScenario4MathWorksLinprogReferenceFreeVariables(t *testing.T) {
	// minimize -x-y/3 s.t. six Le rows from the MathWorks linprog
	// reference example, x and y both free.
	m := lpmodel.NewModel(2)
	m.Objective = []float64{-1, -1.0 / 3.0}
	m.AddConstraint("c1", []float64{1, 1}, lpmodel.Le, 2)
	m.AddConstraint("c2", []float64{1, 0.25}, lpmodel.Le, 1)
	m.AddConstraint("c3", []float64{1, -1}, lpmodel.Le, 2)
	m.AddConstraint("c4", []float64{-0.25, -1}, lpmodel.Le, 1)
	m.AddConstraint("c5", []float64{-1, -1}, lpmodel.Le, -1)
	m.AddConstraint("c6", []float64{-1, 1}, lpmodel.Le, 2)
	m.SetBound(0, lpmodel.VariableBound{Kind: lpmodel.Free})
	m.SetBound(1, lpmodel.VariableBound{Kind: lpmodel.Free})

	r := SolveModel(m, DefaultOptions())

	require.Equal(t, Success, r.Code)
	assert.InDelta(t, 2.0/3.0, r.X[0], 1e-6)
	assert.InDelta(t, 4.0/3.0, r.X[1], 1e-6)
	assert.InDelta(t, -10.0/9.0, r.Value, 1e-6)
}

func TestSeedScenario5PhaseOneHeavyEqualityInstance(t *testing.T) {
	// minimize x1+x2+x3
	// s.t. x1+2x2+3x3=3, -x1+2x2+6x3=2, -4x2-9x3=-5, 3x3+x4=1, x>=0
	m := lpmodel.NewModel(4)
	m.Objective = []float64{1, 1, 1, 0}
	m.AddConstraint("c1", []float64{1, 2, 3, 0}, lpmodel.Eq, 3)
	m.AddConstraint("c2", []float64{-1, 2, 6, 0}, lpmodel.Eq, 2)
	m.AddConstraint("c3", []float64{0, -4, -9, 0}, lpmodel.Eq, -5)
	m.AddConstraint("c4", []float64{0, 0, 3, 1}, lpmodel.Eq, 1)

	r := SolveModel(m, DefaultOptions())

	require.Equal(t, Success, r.Code)
	assert.InDelta(t, 1.75, r.Value, 1e-6)
	assert.InDelta(t, 0.5, r.X[0], 1e-6)
	assert.InDelta(t, 1.25, r.X[1], 1e-6)
	assert.InDelta(t, 0.0, r.X[2], 1e-6)
	assert.InDelta(t, 1.0, r.X[3], 1e-6)
}

func TestSeedScenario6DegeneracyProbeBlandTerminates(t *testing.T) {
	// Beale's cycling example: Bland must terminate with Success.
	m := lpmodel.NewModel(4)
	m.Objective = []float64{-0.75, 20, -0.5, 6}
	m.AddConstraint("c1", []float64{0.25, -8, -1, 9}, lpmodel.Le, 0)
	m.AddConstraint("c2", []float64{0.5, -12, -0.5, 3}, lpmodel.Le, 0)
	m.AddConstraint("c3", []float64{0, 0, 1, 0}, lpmodel.Le, 1)

	opts := DefaultOptions()
	opts.Rule = pivot.RuleBland
	r := SolveModel(m, opts)

	assert.Equal(t, Success, r.Code)
}

func TestOverDeterminedModelReported(t *testing.T) {
	m := lpmodel.NewModel(1)
	m.Objective = []float64{1}
	m.AddConstraint("c1", []float64{1}, lpmodel.Eq, 1)
	m.AddConstraint("c2", []float64{1}, lpmodel.Eq, 2)

	r := SolveModel(m, DefaultOptions())

	assert.Equal(t, OverDetermination, r.Code)
}

func TestUnboundedLPReported(t *testing.T) {
	m := lpmodel.NewModel(1)
	m.Objective = []float64{-1} // minimize -x, x >= 0, no upper bound
	m.AddConstraint("c1", []float64{0}, lpmodel.Le, 1)

	r := SolveModel(m, DefaultOptions())

	assert.Equal(t, Unboundedness, r.Code)
}

func TestInfeasibleLPReported(t *testing.T) {
	m := lpmodel.NewModel(1)
	m.Objective = []float64{1}
	m.AddConstraint("c1", []float64{1}, lpmodel.Eq, -5) // x = -5 but x >= 0

	r := SolveModel(m, DefaultOptions())

	assert.Equal(t, Infeasibility, r.Code)
}

func TestSignConventionRoundTrip(t *testing.T) {
	m := lpmodel.NewModel(2)
	m.Objective = []float64{-3, -2}
	m.AddConstraint("c1", []float64{1, 1}, lpmodel.Le, 9)
	m.AddConstraint("c2", []float64{3, -1}, lpmodel.Le, 18)
	m.AddConstraint("c3", []float64{1, 0}, lpmodel.Le, 7)
	m.AddConstraint("c4", []float64{0, 1}, lpmodel.Le, 6)

	r1 := SolveModel(m, DefaultOptions())

	neg := lpmodel.NewModel(2)
	neg.Objective = []float64{3, 2}
	neg.Constraints = m.Constraints
	neg.M = m.M
	r2 := SolveModel(neg, DefaultOptions())

	require.Equal(t, Success, r1.Code)
	require.Equal(t, Success, r2.Code)
	assert.InDelta(t, -r1.Value, r2.Value, 1e-6)
}

func TestObjectiveScalingLawPreservesXScalesValue(t *testing.T) {
	base := lpmodel.NewModel(2)
	base.Objective = []float64{-3, -2}
	base.AddConstraint("c1", []float64{1, 1}, lpmodel.Le, 9)
	base.AddConstraint("c2", []float64{3, -1}, lpmodel.Le, 18)
	base.AddConstraint("c3", []float64{1, 0}, lpmodel.Le, 7)
	base.AddConstraint("c4", []float64{0, 1}, lpmodel.Le, 6)
	r1 := SolveModel(base, DefaultOptions())

	scaled := lpmodel.NewModel(2)
	scaled.Objective = []float64{-6, -4}
	scaled.Constraints = base.Constraints
	scaled.M = base.M
	r2 := SolveModel(scaled, DefaultOptions())

	require.Equal(t, Success, r1.Code)
	require.Equal(t, Success, r2.Code)
	assert.InDelta(t, r1.X[0], r2.X[0], 1e-6)
	assert.InDelta(t, r1.X[1], r2.X[1], 1e-6)
	assert.InDelta(t, 2*r1.Value, r2.Value, 1e-6)
}
