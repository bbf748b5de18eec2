package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lpsimplex/internal/lpmodel"
)

func TestStandardizeDefaultNonNegative(t *testing.T) {
	m := lpmodel.NewModel(2)
	m.Objective = []float64{1, 2}
	m.AddConstraint("c1", []float64{1, 1}, lpmodel.Le, 10)

	s := Standardize(m)

	require.Equal(t, 2, s.N)
	require.Equal(t, 1, s.M)
	assert.Equal(t, 0.0, s.ObjShift)
}

func TestStandardizeFreeVariableSplits(t *testing.T) {
	m := lpmodel.NewModel(1)
	m.Objective = []float64{5}
	m.AddConstraint("c1", []float64{1}, lpmodel.Le, 4)
	m.SetBound(0, lpmodel.VariableBound{Kind: lpmodel.Free})

	s := Standardize(m)

	require.Equal(t, 2, s.N) // y+ and y-
	assert.Equal(t, 5.0, s.Objective[0])
	assert.Equal(t, -5.0, s.Objective[1])
}

func TestStandardizeUpperBoundAppendsRow(t *testing.T) {
	m := lpmodel.NewModel(1)
	m.Objective = []float64{1}
	m.AddConstraint("c1", []float64{1}, lpmodel.Le, 100)
	m.SetBound(0, lpmodel.VariableBound{Kind: lpmodel.UpperOnly, Upper: 7})

	s := Standardize(m)

	require.Equal(t, 2, s.M) // original row plus appended upper-bound row
	last := s.Constraints[len(s.Constraints)-1]
	assert.Equal(t, lpmodel.Le, last.Sense)
	assert.Equal(t, 7.0, last.RHS)
}

func TestStandardizeLowerBoundShiftsObjectiveAndRHS(t *testing.T) {
	m := lpmodel.NewModel(1)
	m.Objective = []float64{2}
	m.AddConstraint("c1", []float64{1}, lpmodel.Le, 10)
	m.SetBound(0, lpmodel.VariableBound{Kind: lpmodel.LowerOnly, Lower: 3})

	s := Standardize(m)

	assert.Equal(t, 6.0, s.ObjShift) // 2*3
	assert.Equal(t, 7.0, s.Constraints[0].RHS) // 10 - 3
}

func TestRecoverRoundTripsBoxedVariable(t *testing.T) {
	m := lpmodel.NewModel(1)
	m.Objective = []float64{1}
	m.AddConstraint("c1", []float64{1}, lpmodel.Le, 10)
	m.SetBound(0, lpmodel.VariableBound{Kind: lpmodel.Boxed, Lower: 2, Upper: 9})

	s := Standardize(m)
	x, value := s.Recover([]float64{4}, 4)

	assert.Equal(t, []float64{6}, x) // y+ (4) + lb (2)
	assert.Equal(t, 4.0+2.0, value)  // valuePrime + ObjShift (c*lb = 1*2)
}

func TestRecoverRoundTripsFreeVariable(t *testing.T) {
	m := lpmodel.NewModel(1)
	m.Objective = []float64{1}
	m.AddConstraint("c1", []float64{1}, lpmodel.Le, 10)
	m.SetBound(0, lpmodel.VariableBound{Kind: lpmodel.Free})

	s := Standardize(m)
	x, _ := s.Recover([]float64{3, 1}, 2)

	assert.Equal(t, []float64{2.0}, x) // y+ - y- = 3 - 1
}
