package mps

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lpsimplex/internal/lpmodel"
)

// Fixed-column MPS fixture, two variables, one objective row, one Le
// and one Ge constraint: minimize x+2y s.t. x+y<=10, x-y>=1. Columns
// are laid out at the exact offsets Read expects (name@4 w8, value
// name@14 w8 + value@24 w12, optional second pair @39/@49).
const fixture = `NAME          TESTPROB
ROWS
 N  COST
 L  LIM1
 G  LIM2
COLUMNS
    X         COST      1.0            LIM1      1.0
    X         LIM2      1.0
    Y         COST      2.0            LIM1      1.0
    Y         LIM2      -1.0
RHS
    RHS       LIM1      10.0           LIM2      1.0
`

const endata = "ENDATA\n"

func TestReadBasicFixture(t *testing.T) {
	m, err := Read(strings.NewReader(fixture + endata))
	require.NoError(t, err)

	require.Equal(t, 2, m.N)
	require.Equal(t, 2, m.M)
	assert.ElementsMatch(t, []float64{1.0, 2.0}, m.Objective)

	var lim1, lim2 *lpmodel.LinearConstraint
	for i := range m.Constraints {
		switch m.Constraints[i].Name {
		case "LIM1":
			lim1 = &m.Constraints[i]
		case "LIM2":
			lim2 = &m.Constraints[i]
		}
	}
	require.NotNil(t, lim1)
	require.NotNil(t, lim2)
	assert.Equal(t, lpmodel.Le, lim1.Sense)
	assert.Equal(t, 10.0, lim1.RHS)
	assert.Equal(t, lpmodel.Ge, lim2.Sense)
	assert.Equal(t, 1.0, lim2.RHS)
}

func TestReadWithBounds(t *testing.T) {
	src := fixture + `BOUNDS
 UP BND       X         5.0
 LO BND       Y         2.0
` + endata
	m, err := Read(strings.NewReader(src))
	require.NoError(t, err)
	require.NotNil(t, m.Bounds)

	var xBound, yBound lpmodel.VariableBound
	// X: UpperOnly at 5.0; Y: LowerOnly at 2.0 (bound kinds default to
	// LowerOnly@0 unless a BOUNDS line overrides them).
	for i := range m.Bounds {
		switch {
		case m.Bounds[i].Upper == 5.0:
			xBound = m.Bounds[i]
		case m.Bounds[i].Lower == 2.0:
			yBound = m.Bounds[i]
		}
	}
	assert.Equal(t, lpmodel.UpperOnly, xBound.Kind)
	assert.Equal(t, lpmodel.LowerOnly, yBound.Kind)
}

// buildLine lays out fields at the exact column offsets Read expects,
// regardless of each value's length, so new fixtures below don't need
// hand-counted padding.
func buildLine(fields map[int]string) string {
	end := 0
	for offset, s := range fields {
		if offset+len(s) > end {
			end = offset + len(s)
		}
	}
	buf := []byte(strings.Repeat(" ", end))
	for offset, s := range fields {
		copy(buf[offset:], s)
	}
	return string(buf)
}

func constraintByName(m *lpmodel.Model, name string) *lpmodel.LinearConstraint {
	for i := range m.Constraints {
		if m.Constraints[i].Name == name {
			return &m.Constraints[i]
		}
	}
	return nil
}

func TestReadRangesOnEqRowRelaxesToInterval(t *testing.T) {
	src := `NAME          RANGEEQ
ROWS
 N  COST
 E  EQ1
COLUMNS
` + buildLine(map[int]string{nameCol: "X", val1Name: "COST", val1Val: "1.0", val2Name: "EQ1", val2Val: "1.0"}) + `
RHS
` + buildLine(map[int]string{nameCol: "RHS", val1Name: "EQ1", val1Val: "5.0"}) + `
RANGES
` + buildLine(map[int]string{nameCol: "RNG", val1Name: "EQ1", val1Val: "4.0"}) + `
` + endata

	m, err := Read(strings.NewReader(src))
	require.NoError(t, err)
	require.Equal(t, 2, m.M)

	primary := constraintByName(m, "EQ1")
	require.NotNil(t, primary)
	assert.Equal(t, lpmodel.Le, primary.Sense)
	assert.Equal(t, 9.0, primary.RHS)

	secondary := constraintByName(m, "EQ1_range")
	require.NotNil(t, secondary)
	assert.Equal(t, lpmodel.Ge, secondary.Sense)
	assert.Equal(t, 5.0, secondary.RHS)
}

func TestReadRangesOnEqRowNegativeValue(t *testing.T) {
	src := `NAME          RANGEEQ2
ROWS
 N  COST
 E  EQ2
COLUMNS
` + buildLine(map[int]string{nameCol: "X", val1Name: "COST", val1Val: "1.0", val2Name: "EQ2", val2Val: "1.0"}) + `
RHS
` + buildLine(map[int]string{nameCol: "RHS", val1Name: "EQ2", val1Val: "5.0"}) + `
RANGES
` + buildLine(map[int]string{nameCol: "RNG", val1Name: "EQ2", val1Val: "-4.0"}) + `
` + endata

	m, err := Read(strings.NewReader(src))
	require.NoError(t, err)

	primary := constraintByName(m, "EQ2")
	require.NotNil(t, primary)
	assert.Equal(t, lpmodel.Le, primary.Sense)
	assert.Equal(t, 5.0, primary.RHS)

	secondary := constraintByName(m, "EQ2_range")
	require.NotNil(t, secondary)
	assert.Equal(t, lpmodel.Ge, secondary.Sense)
	assert.Equal(t, 1.0, secondary.RHS)
}

func TestReadBareMIBoundIsFree(t *testing.T) {
	src := fixture + `BOUNDS
` + buildLine(map[int]string{1: "MI", nameCol: "BND", val1Name: "X"}) + `
` + endata

	m, err := Read(strings.NewReader(src))
	require.NoError(t, err)
	require.NotNil(t, m.Bounds)

	assert.Equal(t, lpmodel.Free, m.Bounds[0].Kind)
	assert.Equal(t, 0.0, m.Bounds[0].Upper)
}

func TestReadFRAndBVBounds(t *testing.T) {
	src := fixture + `BOUNDS
` + buildLine(map[int]string{1: "FR", nameCol: "BND", val1Name: "X"}) + `
` + buildLine(map[int]string{1: "BV", nameCol: "BND", val1Name: "Y"}) + `
` + endata

	m, err := Read(strings.NewReader(src))
	require.NoError(t, err)
	require.NotNil(t, m.Bounds)

	assert.Equal(t, lpmodel.Free, m.Bounds[0].Kind)
	assert.Equal(t, lpmodel.Boxed, m.Bounds[1].Kind)
	assert.Equal(t, 0.0, m.Bounds[1].Lower)
	assert.Equal(t, 1.0, m.Bounds[1].Upper)
}
