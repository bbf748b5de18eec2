package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lpsimplex/internal/lpmodel"
	"lpsimplex/internal/pivot"
	"lpsimplex/internal/simplex"
)

func sampleModel() *lpmodel.Model {
	m := lpmodel.NewModel(2)
	m.Objective = []float64{1, 2}
	m.AddConstraint("c1", []float64{1, 1}, lpmodel.Le, 10)
	return m
}

func TestKeyIsDeterministic(t *testing.T) {
	m := sampleModel()
	opts := simplex.DefaultOptions()

	k1 := Key(m, opts)
	k2 := Key(m, opts)
	assert.Equal(t, k1, k2)
	assert.Contains(t, k1, keyPrefix)
}

func TestKeyDiffersOnRuleChange(t *testing.T) {
	m := sampleModel()
	bland := simplex.DefaultOptions()
	dantzig := simplex.DefaultOptions()
	dantzig.Rule = pivot.RuleDantzig

	assert.NotEqual(t, Key(m, bland), Key(m, dantzig))
}

func TestKeyDiffersOnCoefficientChange(t *testing.T) {
	m1 := sampleModel()
	m2 := sampleModel()
	m2.Objective[0] = 999

	opts := simplex.DefaultOptions()
	assert.NotEqual(t, Key(m1, opts), Key(m2, opts))
}

func TestCodeFromStringRoundTrip(t *testing.T) {
	for code := simplex.Success; code <= simplex.PrecisionError; code++ {
		assert.Equal(t, code, codeFromString(code.String()))
	}
	assert.Equal(t, simplex.CondUnsatisfied, codeFromString("not-a-real-code"))
}
