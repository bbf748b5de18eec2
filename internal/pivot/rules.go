// Package pivot implements the entering/leaving column selection rules
// and the three-flag pivot elimination core the two-phase driver in
// package simplex iterates to convergence.
package pivot

import "lpsimplex/internal/tableau"

// Rule names the entering-column selector. The zero value and the
// literal "pan97" selector both alias to Bland per the documented
// resolution of the open pivot-rule question: the source's pan97
// branch never finished (an unexecuted Householder sketch), so rather
// than guess at its numerics, empty-string and "pan97" both fall
// through to Bland, the rule actually exercised by every scenario.
type Rule string

const (
	RuleDantzig Rule = "dantzig"
	RuleBland   Rule = "bland"
	RulePan97   Rule = "pan97"
)

// NoColumn is returned by the entering rules when no eligible column
// exists, signalling optimality to the caller.
const NoColumn = -1

// Enter selects the entering column for the given rule against the
// first n columns of the cost row. The two-phase driver passes the
// original-plus-slack column count, so artificial columns never enter.
func Enter(t *tableau.Tableau, n int, rule Rule, optimal float64, blandEps, blandEpsMin float64) int {
	switch rule {
	case RuleDantzig:
		return enterDantzig(t, n, optimal)
	default: // RuleBland, RulePan97, and the empty default all use Bland
		return enterBland(t, n, blandEps, blandEpsMin)
	}
}

func enterDantzig(t *tableau.Tableau, n int, optimal float64) int {
	best := NoColumn
	bestVal := optimal
	cost := t.Row(0)
	for j := 0; j < n; j++ {
		if cost[j] > bestVal {
			bestVal = cost[j]
			best = j
		}
	}
	return best
}

func enterBland(t *tableau.Tableau, n int, eps, epsMin float64) int {
	cost := t.Row(0)
	for threshold := eps; threshold >= epsMin; threshold /= 10 {
		for j := 0; j < n; j++ {
			if cost[j] > threshold {
				return j
			}
		}
	}
	return NoColumn
}

// NoRow is returned by Leave when no row qualifies, signalling
// unboundedness to the caller.
const NoRow = -1

// Leave applies the min-ratio rule for entering column q: among rows
// with a strictly positive (beyond pivLeave) entry in q, pick the one
// with the smallest beta/y ratio, first-seen wins on ties.
func Leave(t *tableau.Tableau, q int, pivLeave float64) int {
	best := NoRow
	bestRatio := 0.0
	rhsCol := t.RHSCol()
	for i := 0; i < t.M; i++ {
		y := t.At(i+1, q)
		if y <= pivLeave {
			continue
		}
		ratio := t.At(i+1, rhsCol) / y
		if best == NoRow || ratio < bestRatio {
			best = i
			bestRatio = ratio
		}
	}
	return best
}
