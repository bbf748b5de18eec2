// Package simplex orchestrates the two-phase tableau simplex method:
// Phase 1 builds a basic feasible solution using artificial variables,
// Phase 2 optimizes the real objective from that BFS, and the driver
// recovers the solution in the caller's variable space.
package simplex

import (
	"lpsimplex/internal/lpmodel"
	"lpsimplex/internal/pivot"
	"lpsimplex/internal/tableau"
	"lpsimplex/internal/transform"
)

// TraceFunc receives one pivot step's progress: the shared iteration
// count and the current objective-row value. Callers that want a live
// view of convergence (e.g. a websocket stream) set Options.Trace;
// nil is the common case and costs nothing extra per pivot.
type TraceFunc func(iteration int, value float64)

// Options configures one solve invocation.
type Options struct {
	Rule       pivot.Rule
	MaxIter    int
	Tolerances Tolerances
	Trace      TraceFunc
}

// DefaultOptions returns Bland pivoting (the documented default) and
// the stock tolerance set, with a max iteration count generous enough
// for small-to-medium dense tableaus.
func DefaultOptions() Options {
	return Options{Rule: pivot.RuleBland, MaxIter: 10000, Tolerances: DefaultTolerances()}
}

// Result is returned by every solve entry point. Only X and Value are
// meaningful when Code == Success.
type Result struct {
	X          []float64
	Value      float64
	Code       Code
	Iterations int
}

// SolveModel reduces a general-form Model to standard form, solves it,
// and recovers the solution in the original variable space.
func SolveModel(m *lpmodel.Model, opts Options) Result {
	std := transform.Standardize(m)
	r := solveStandardForm(std.N, std.Objective, std.Constraints, opts)
	if r.Code != Success {
		return r
	}
	x, value := std.Recover(r.X, r.Value)
	return Result{X: x, Value: value, Code: Success, Iterations: r.Iterations}
}

// SolveGeneral mirrors SolveModel's signature for callers that build a
// Model piecewise rather than via the lpmodel constructors.
func SolveGeneral(n int, objective []float64, constraints []lpmodel.LinearConstraint, bounds []lpmodel.VariableBound, opts Options) Result {
	m := &lpmodel.Model{N: n, M: len(constraints), Objective: objective, Constraints: constraints, Bounds: bounds}
	return SolveModel(m, opts)
}

// SolveStandard solves a problem already in standard form (x >= 0),
// the convenience entry point documented alongside SolveGeneral.
func SolveStandard(n int, objective []float64, constraints []lpmodel.LinearConstraint, opts Options) Result {
	return solveStandardForm(n, objective, constraints, opts)
}

func solveStandardForm(n int, objective []float64, constraints []lpmodel.LinearConstraint, opts Options) Result {
	tol := opts.Tolerances
	if tol == (Tolerances{}) {
		tol = DefaultTolerances()
	}

	t, err := tableau.Build(n, objective, constraints)
	if err != nil {
		return Result{Code: OverDetermination}
	}

	epoch := 0

	// Phase 1: drive the artificial-variable objective to (near) zero.
	code := run(t, n+t.NSlack, opts.Rule, tol, opts.MaxIter, &epoch, opts.Trace)
	switch code {
	case Success:
		// fallthrough to feasibility check below
	default:
		return Result{Code: code, Iterations: epoch}
	}

	if t.At(0, t.RHSCol()) > tol.Feasible {
		return Result{Code: Infeasibility, Iterations: epoch}
	}

	purgeArtificials(t, n, tol)
	contractArtificialColumns(t)
	installObjective(t, n, objective)

	code = run(t, n+t.NSlack, opts.Rule, tol, opts.MaxIter, &epoch, opts.Trace)
	if code != Success {
		return Result{Code: code, Iterations: epoch}
	}

	x := extractSolution(t, n)
	value := t.At(0, t.RHSCol())
	return Result{X: x, Value: value, Code: Success, Iterations: epoch}
}

// run pivots t to optimality, unboundedness, degeneracy or the
// iteration limit, sharing epoch across Phase 1 and Phase 2 calls.
func run(t *tableau.Tableau, n int, rule pivot.Rule, tol Tolerances, maxIter int, epoch *int, trace TraceFunc) Code {
	var stall pivot.StallGuard

	q := pivot.Enter(t, n, rule, tol.Optimal, tol.BlandEps, tol.BlandEpsMin)
	for q != pivot.NoColumn {
		p := pivot.Leave(t, q, tol.PivLeave)
		if p == pivot.NoRow {
			return Unboundedness
		}

		pivot.Apply(t, p, q, pivot.Full)
		*epoch++

		value := t.At(0, t.RHSCol())
		if trace != nil {
			trace(*epoch, value)
		}
		// The value cell falls as the objective improves; the guard
		// counts a rise as improvement, so it observes the negation.
		stalls := stall.Observe(-value, tol.Degenerate)

		q = pivot.Enter(t, n, rule, tol.Optimal, tol.BlandEps, tol.BlandEpsMin)
		if q == pivot.NoColumn {
			break
		}
		if stalls > tol.StallLimit {
			return Degeneracy
		}
		if *epoch >= maxIter {
			return ExceedIterLimit
		}
	}

	// The entering rule reports optimal; cross-check against the raw
	// cost row independently of the rule's own threshold. A mismatch
	// means the rule's tolerant scan missed a column the strict
	// optimality test still sees as improving — a finite-precision
	// inconsistency rather than a genuine optimum.
	if !isOptimal(t, n, tol.Optimal) {
		return PrecisionError
	}
	return Success
}

func isOptimal(t *tableau.Tableau, n int, optimal float64) bool {
	cost := t.Row(0)
	for j := 0; j < n; j++ {
		if cost[j] > optimal {
			return false
		}
	}
	return true
}

// purgeArtificials drops any artificial still basic at value zero: it
// pivots it out against the largest-magnitude real column in its row,
// or zeroes the row outright when that row is redundant.
func purgeArtificials(t *tableau.Tableau, n int, tol Tolerances) {
	realCols := n + t.NSlack
	for i := 0; i < t.M; i++ {
		if t.Basis[i] < realCols {
			continue
		}
		bestCol, bestVal := -1, 0.0
		for j := 0; j < realCols; j++ {
			v := t.At(i+1, j)
			if abs(v) > abs(bestVal) {
				bestVal, bestCol = v, j
			}
		}
		if abs(bestVal) < tol.ZeroBeta {
			row := t.Row(i + 1)
			for k := range row {
				row[k] = 0
			}
			continue
		}
		pivot.Apply(t, i, bestCol, pivot.Flags{R1: true, R2: true, R3: false})
	}
}

// contractArtificialColumns removes the artificial columns entirely,
// shifting the RHS column left by NArtif in every row.
func contractArtificialColumns(t *tableau.Tableau) {
	if t.NArtif == 0 {
		return
	}
	newWidth := t.N + t.NSlack + 1
	newData := make([]float64, t.NRow*newWidth)
	keep := t.N + t.NSlack
	for i := 0; i < t.NRow; i++ {
		src := t.Row(i)
		dst := newData[i*newWidth : i*newWidth+newWidth]
		copy(dst[:keep], src[:keep])
		dst[keep] = src[t.RHSCol()]
	}
	t.Data = newData
	t.NVar = keep
	t.NCol = newWidth
	t.LD = newWidth
	t.NArtif = 0
}

// installObjective writes the real (negated) standard-form objective
// into the cost row and zeroes the reduced costs of the current basic
// variables, per the driver's "install real objective" step.
func installObjective(t *tableau.Tableau, n int, objective []float64) {
	cost := t.Row(0)
	for j := range cost {
		cost[j] = 0
	}
	for j := 0; j < n; j++ {
		cost[j] = -objective[j]
	}
	for i := 0; i < t.M; i++ {
		basicCol := t.Basis[i]
		if basicCol >= t.NVar {
			// a row zeroed as redundant by purgeArtificials still names
			// its artificial, whose column has been contracted away
			continue
		}
		factor := cost[basicCol]
		if factor == 0 {
			continue
		}
		row := t.Row(i + 1)
		for k := range cost {
			cost[k] -= factor * row[k]
		}
	}
}

func extractSolution(t *tableau.Tableau, n int) []float64 {
	x := make([]float64, n)
	for i := 0; i < t.M; i++ {
		if t.Basis[i] < n {
			x[t.Basis[i]] = t.At(i+1, t.RHSCol())
		}
	}
	return x
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
