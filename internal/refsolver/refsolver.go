//go:build cgo && golp
// +build cgo,golp

// Package refsolver cross-checks the in-tree simplex engine against
// lp_solve via the golp cgo binding. It is an optional build: a solve
// request can ask for a reference run alongside the primary one and
// flag a mismatch, which is how degeneracy/precision diagnostics in
// the primary engine get an independent second opinion.
package refsolver

/*
#cgo CFLAGS: -I/opt/homebrew/include
#cgo LDFLAGS: -L/opt/homebrew/lib -llpsolve55
*/
import "C"

import (
	"errors"
	"math"

	"github.com/draffensperger/golp"

	"lpsimplex/internal/lpmodel"
	"lpsimplex/internal/simplex"
)

// Available reports whether this build was compiled with the golp
// cross-check backend.
const Available = true

// Solve runs m through lp_solve and adapts the result into a
// simplex.Result so callers can compare it directly against the
// primary engine's output.
func Solve(m *lpmodel.Model) (simplex.Result, error) {
	lp := golp.NewLP(0, m.N)
	if lp == nil {
		return simplex.Result{}, errors.New("refsolver: failed to create lp_solve model")
	}

	lp.SetObjFn(m.Objective) // lp_solve minimizes by default, matching our convention

	for _, c := range m.Constraints {
		var op golp.ConstraintType
		switch c.Sense {
		case lpmodel.Le:
			op = golp.LE
		case lpmodel.Ge:
			op = golp.GE
		case lpmodel.Eq:
			op = golp.EQ
		}
		if err := lp.AddConstraint(c.Coefs, op, c.RHS); err != nil {
			return simplex.Result{}, err
		}
	}

	for j := 0; j < m.N; j++ {
		b := m.BoundFor(j)
		lower, upper := 0.0, math.Inf(1)
		switch b.Kind {
		case lpmodel.Free:
			lower = math.Inf(-1)
		case lpmodel.LowerOnly:
			lower = b.Lower
		case lpmodel.UpperOnly:
			upper = b.Upper
		case lpmodel.Boxed:
			lower, upper = b.Lower, b.Upper
		}
		if math.IsInf(upper, 1) {
			upper = 1e30
		}
		if math.IsInf(lower, -1) {
			lower = -1e30
		}
		lp.SetBounds(j, lower, upper)
	}

	lp.SetVerboseLevel(golp.NEUTRAL)

	switch lp.Solve() {
	case golp.OPTIMAL:
		vars := lp.Variables()
		x := make([]float64, m.N)
		copy(x, vars[:m.N])
		return simplex.Result{X: x, Value: lp.Objective(), Code: simplex.Success}, nil
	case golp.INFEASIBLE:
		return simplex.Result{Code: simplex.Infeasibility}, nil
	case golp.UNBOUNDED:
		return simplex.Result{Code: simplex.Unboundedness}, nil
	default:
		return simplex.Result{Code: simplex.CondUnsatisfied}, nil
	}
}
