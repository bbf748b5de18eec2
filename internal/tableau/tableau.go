// Package tableau builds the Phase-1 dense simplex tableau from a
// standard-form problem: row-sign normalization, slack and artificial
// column injection, and the initial basis and Phase-1 cost row.
package tableau

import "lpsimplex/internal/lpmodel"

// Tableau is a dense row-major matrix with NRow = M+1 rows and
// NCol = NVar+1 columns (leading dimension LD = NCol). Row 0 is the
// cost/reduced-cost row; rows 1..M are constraint rows. The last column
// holds the current RHS (beta); cell (0, NCol-1) holds the current
// objective value under the engine's minimize-negated convention.
type Tableau struct {
	M, N     int // constraint rows; original standard-form variable count
	NSlack   int
	NArtif   int
	NVar     int // N + NSlack + NArtif, the width excluding the RHS column
	NRow     int
	NCol     int
	LD       int
	Data     []float64
	Basis    []int
	Shadow   []lpmodel.Sense // per-row sense after sign normalization
}

// At returns the value at (row, col).
func (t *Tableau) At(row, col int) float64 { return t.Data[row*t.LD+col] }

// Set assigns the value at (row, col).
func (t *Tableau) Set(row, col int, v float64) { t.Data[row*t.LD+col] = v }

// Row returns the backing slice for row i, length NCol.
func (t *Tableau) Row(i int) []float64 { return t.Data[i*t.LD : i*t.LD+t.NCol] }

// RHSCol is the index of the RHS (beta) column.
func (t *Tableau) RHSCol() int { return t.NCol - 1 }

// ErrOverDetermination is returned by Build when there are more
// constraint rows than variables after slack/artificial accounting.
type ErrOverDetermination struct{}

func (ErrOverDetermination) Error() string { return "over-determined: m > nvar" }

// Build constructs the Phase-1 tableau for a standard-form problem
// (c, A, b, sense) with x >= 0, following the row-normalization and
// column-accounting rules: negate rows with negative RHS (Ge<->Le
// swap, Eq unchanged), append one slack per Ge/Le row, one artificial
// per Eq/Ge row, and form the Phase-1 reduced-cost row by summing every
// non-Le row into row 0.
func Build(n int, objective []float64, constraints []lpmodel.LinearConstraint) (*Tableau, error) {
	m := len(constraints)

	shadow := make([]lpmodel.Sense, m)
	rhs := make([]float64, m)
	coefs := make([][]float64, m)
	for i, c := range constraints {
		row := append([]float64(nil), c.Coefs...)
		sense := c.Sense
		b := c.RHS
		if b < 0 {
			for k := range row {
				row[k] = -row[k]
			}
			b = -b
			switch sense {
			case lpmodel.Ge:
				sense = lpmodel.Le
			case lpmodel.Le:
				sense = lpmodel.Ge
			}
		}
		coefs[i] = row
		rhs[i] = b
		shadow[i] = sense
	}

	nslack, nartif := 0, 0
	slackCol := make([]int, m)
	artifCol := make([]int, m)
	for i, s := range shadow {
		slackCol[i] = -1
		artifCol[i] = -1
		if s == lpmodel.Ge || s == lpmodel.Le {
			slackCol[i] = nslack
			nslack++
		}
		if s == lpmodel.Eq || s == lpmodel.Ge {
			artifCol[i] = nartif
			nartif++
		}
	}

	nvar := n + nslack + nartif
	if m > nvar {
		return nil, ErrOverDetermination{}
	}

	t := &Tableau{
		M: m, N: n, NSlack: nslack, NArtif: nartif, NVar: nvar,
		NRow: m + 1, NCol: nvar + 1, LD: nvar + 1,
	}
	t.Data = make([]float64, t.NRow*t.LD)
	t.Basis = make([]int, m)
	t.Shadow = shadow

	for i := 0; i < m; i++ {
		row := t.Row(i + 1)
		copy(row[:n], coefs[i])
		row[t.RHSCol()] = rhs[i]

		if slackCol[i] >= 0 {
			col := n + slackCol[i]
			if shadow[i] == lpmodel.Ge {
				row[col] = -1
			} else {
				row[col] = 1
			}
		}
		if artifCol[i] >= 0 {
			col := n + nslack + artifCol[i]
			row[col] = 1
			t.Set(0, col, -1)
			t.Basis[i] = col
		} else {
			t.Basis[i] = n + slackCol[i]
		}
	}

	for i := 0; i < m; i++ {
		if shadow[i] != lpmodel.Le {
			addRow(t.Row(0), t.Row(i+1))
		}
	}

	_ = objective // objective is installed only after Phase-1 purge (see simplex package)
	return t, nil
}

func addRow(dst, src []float64) {
	for k := range dst {
		dst[k] += src[k]
	}
}
