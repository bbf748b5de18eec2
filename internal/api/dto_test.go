package api

import (
	"testing"

	"lpsimplex/internal/lpmodel"
	"lpsimplex/internal/pivot"

	"github.com/stretchr/testify/assert"
)

func TestModelDTOToModel(t *testing.T) {
	dto := ModelDTO{
		Objective: []float64{3, 2},
		Constraints: []ConstraintDTO{
			{Name: "c1", Coefs: []float64{1, 1}, RHS: 4, Sense: "le"},
			{Name: "c2", Coefs: []float64{1, 0}, RHS: 1, Sense: "ge"},
		},
		Bounds: []BoundDTO{
			{Name: "x", Lower: 0, Kind: "lower"},
			{Name: "y", Lower: 0, Upper: 10, Kind: "boxed"},
		},
	}

	m := dto.ToModel()

	assert.Equal(t, 2, m.N)
	assert.Equal(t, []float64{3, 2}, m.Objective)
	assert.Len(t, m.Constraints, 2)
	assert.Equal(t, lpmodel.Le, m.Constraints[0].Sense)
	assert.Equal(t, lpmodel.Ge, m.Constraints[1].Sense)
	assert.Equal(t, lpmodel.Boxed, m.Bounds[1].Kind)
	assert.Equal(t, 10.0, m.Bounds[1].Upper)
}

func TestModelDTOWithoutBoundsDefaultsLowerOnly(t *testing.T) {
	dto := ModelDTO{Objective: []float64{1, 1}}
	m := dto.ToModel()
	assert.Nil(t, m.Bounds)
}

func TestSolveRequestToOptionsDefaultsToBland(t *testing.T) {
	req := SolveRequest{}
	opts := req.ToOptions()
	assert.Equal(t, pivot.RuleBland, opts.Rule)
}

func TestSolveRequestToOptionsHonorsDantzigAndMaxIter(t *testing.T) {
	req := SolveRequest{PivotRule: "dantzig", MaxIter: 50}
	opts := req.ToOptions()
	assert.Equal(t, pivot.RuleDantzig, opts.Rule)
	assert.Equal(t, 50, opts.MaxIter)
}

func TestSolveRequestToOptionsUnrecognizedRuleFallsBackToBland(t *testing.T) {
	req := SolveRequest{PivotRule: "not-a-real-rule"}
	opts := req.ToOptions()
	assert.Equal(t, pivot.RuleBland, opts.Rule)
}
