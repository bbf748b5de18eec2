package pivot

import (
	"lpsimplex/internal/linalg"
	"lpsimplex/internal/tableau"
)

// Flags selects which of the three pivot elimination rules to apply.
// r1 normalizes the pivot row to 1; r2 eliminates the entering column
// from every other constraint row; r3 eliminates it from the cost row.
type Flags struct {
	R1, R2, R3 bool
}

// Full applies all three rules, the shape used throughout Phase 1 and
// Phase 2 pivoting.
var Full = Flags{R1: true, R2: true, R3: true}

// Apply performs the pivot on (leaving row p, entering column q) under
// flags, then records q as the new basic variable for row p.
func Apply(t *tableau.Tableau, p, q int, flags Flags) {
	pivotRow := t.Row(p + 1)
	pivotVal := pivotRow[q]

	if flags.R1 {
		linalg.Scal(t.NCol, 1/pivotVal, pivotRow, 1)
	}

	if flags.R2 {
		for i := 0; i < t.M; i++ {
			if i == p {
				continue
			}
			row := t.Row(i + 1)
			factor := row[q]
			if factor == 0 {
				continue
			}
			linalg.Axpy(t.NCol, -factor, pivotRow, 1, row, 1)
		}
	}

	if flags.R3 {
		cost := t.Row(0)
		factor := cost[q]
		if factor != 0 {
			linalg.Axpy(t.NCol, -factor, pivotRow, 1, cost, 1)
		}
	}

	t.Basis[p] = q
}

// StallGuard tracks the cost-row value cell across pivots to detect
// cycling: a pivot that fails to improve the value by more than
// `degenerate` increments the stall counter; any real improvement
// resets it.
type StallGuard struct {
	prevValue float64
	have      bool
	stalls    int
}

// Observe records the current value cell and reports the updated stall
// count.
func (g *StallGuard) Observe(value, degenerate float64) int {
	if g.have && value-g.prevValue <= degenerate {
		g.stalls++
	} else {
		g.stalls = 0
	}
	g.prevValue = value
	g.have = true
	return g.stalls
}
