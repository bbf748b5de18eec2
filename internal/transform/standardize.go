// Package transform reduces a general-form linear program (free,
// lower-, upper- and box-bounded variables) to standard form (x >= 0)
// and recovers the original solution from a standard-form optimum.
package transform

import "lpsimplex/internal/lpmodel"

// columnBlock records, for one original variable, where its standard-form
// columns landed and how to invert the substitution used to place them.
type columnBlock struct {
	kind     lpmodel.BoundKind
	start    int  // index of y+ in standard-form columns
	hasMinus bool // true when a y- column immediately follows start
	lower    float64
}

// Standard is a standard-form problem (x' >= 0) plus the bookkeeping
// needed to recover the original-space solution and objective value.
type Standard struct {
	N           int
	M           int
	Objective   []float64
	Constraints []lpmodel.LinearConstraint
	ObjShift    float64

	blocks []columnBlock
}

// Standardize converts a general-form model into standard form following
// the variable-by-variable emission order: for each original variable,
// emit a non-negative y+ column (and an upper-bound row, when bounded
// above), optionally a y- column (when free), and fold any explicit
// lower bound into ObjShift and every affected RHS.
func Standardize(m *lpmodel.Model) *Standard {
	s := &Standard{
		M:      m.M,
		blocks: make([]columnBlock, m.N),
	}

	// First pass: compute standard-form column count N and per-variable
	// layout, so constraint rows can be built in a single pass below.
	col := 0
	extraRows := 0
	for j := 0; j < m.N; j++ {
		b := m.BoundFor(j)
		s.blocks[j] = columnBlock{kind: b.Kind, start: col, lower: b.Lower}
		col++
		if b.Kind == lpmodel.Free {
			s.blocks[j].hasMinus = true
			col++
		}
		if b.Kind == lpmodel.UpperOnly || b.Kind == lpmodel.Boxed {
			extraRows++
		}
	}
	s.N = col
	s.M = m.M + extraRows

	s.Objective = make([]float64, s.N)

	// Copy constraint rows, widened to s.N columns; the extra bound rows
	// are appended after the original m.M rows, in variable order.
	s.Constraints = make([]lpmodel.LinearConstraint, 0, s.M)
	for i := 0; i < m.M; i++ {
		row := make([]float64, s.N)
		s.Constraints = append(s.Constraints, lpmodel.LinearConstraint{
			Name:  m.Constraints[i].Name,
			Coefs: row,
			RHS:   m.Constraints[i].RHS,
			Sense: m.Constraints[i].Sense,
		})
	}

	for j := 0; j < m.N; j++ {
		b := m.BoundFor(j)
		blk := s.blocks[j]
		cj := m.Objective[j]

		s.Objective[blk.start] = cj
		for i := 0; i < m.M; i++ {
			s.Constraints[i].Coefs[blk.start] = m.Constraints[i].Coefs[j]
		}

		if b.Kind == lpmodel.UpperOnly || b.Kind == lpmodel.Boxed {
			row := make([]float64, s.N)
			row[blk.start] = 1
			rhs := b.Upper
			if b.Kind == lpmodel.Boxed {
				rhs -= b.Lower
			}
			name := b.Name
			if name == "" {
				name = "x"
			}
			s.Constraints = append(s.Constraints, lpmodel.LinearConstraint{
				Name:  name + "_ub",
				Coefs: row,
				RHS:   rhs,
				Sense: lpmodel.Le,
			})
		}

		if blk.hasMinus {
			minusCol := blk.start + 1
			s.Objective[minusCol] = -cj
			for i := 0; i < m.M; i++ {
				s.Constraints[i].Coefs[minusCol] = -m.Constraints[i].Coefs[j]
			}
		}

		if b.Kind == lpmodel.LowerOnly || b.Kind == lpmodel.Boxed {
			s.ObjShift += cj * b.Lower
			for i := 0; i < m.M; i++ {
				s.Constraints[i].RHS -= b.Lower * m.Constraints[i].Coefs[j]
			}
		}
	}

	return s
}

// Recover maps a standard-form solution xPrime back to the original
// variable space, walking variables in original order and consuming one
// or two standard-form columns per variable as Standardize laid them out.
func (s *Standard) Recover(xPrime []float64, valuePrime float64) (x []float64, value float64) {
	x = make([]float64, len(s.blocks))
	for j, blk := range s.blocks {
		yPlus := xPrime[blk.start]
		switch {
		case blk.hasMinus:
			x[j] = yPlus - xPrime[blk.start+1]
		case blk.kind == lpmodel.LowerOnly || blk.kind == lpmodel.Boxed:
			x[j] = yPlus + blk.lower
		default:
			x[j] = yPlus
		}
	}
	value = valuePrime + s.ObjShift
	return x, value
}
