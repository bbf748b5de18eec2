// Package lpmodel defines the data types the simplex engine operates
// on: the general-form linear program, its constraints and per-variable
// bounds. Nothing in this package performs numerical work; it is the
// shared vocabulary between the transform, tableau and simplex packages.
package lpmodel

// Sense identifies the relational operator of a constraint row.
type Sense int

const (
	Eq Sense = iota
	Ge
	Le
)

func (s Sense) String() string {
	switch s {
	case Eq:
		return "="
	case Ge:
		return ">="
	case Le:
		return "<="
	default:
		return "?"
	}
}

// BoundKind classifies how a variable's lower/upper bounds constrain it.
type BoundKind int

const (
	// Free variables are unrestricted in sign.
	Free BoundKind = iota
	// LowerOnly variables satisfy x >= lb with no upper bound.
	LowerOnly
	// UpperOnly variables satisfy x <= ub with no explicit lower bound;
	// the engine keeps them non-negative, so they solve as 0 <= x <= ub.
	UpperOnly
	// Boxed variables satisfy lb <= x <= ub.
	Boxed
)

// VarKind tags the declared type of a variable. The engine treats every
// variable as continuous; Integer and Binary are carried as informational
// metadata only and never influence the pivoting loop.
type VarKind int

const (
	Continuous VarKind = iota
	Integer
	Binary
)

// VariableBound describes one variable's name, kind and bounds.
type VariableBound struct {
	Name  string
	Lower float64
	Upper float64
	Kind  BoundKind
	Type  VarKind
}

// LinearConstraint is one row of the constraint matrix.
type LinearConstraint struct {
	Name  string
	Coefs []float64
	RHS   float64
	Sense Sense
}

// Model is a complete general-form linear program. The engine always
// minimizes Objective; callers wanting to maximize negate the objective
// before calling Solve and negate the returned value back (see the
// sign-convention round-trip law this mirrors).
type Model struct {
	M int // constraint count
	N int // variable count

	Objective   []float64
	Constraints []LinearConstraint
	Bounds      []VariableBound // optional; nil means every x_j >= 0
}

// NewModel constructs an empty model sized for n variables with all
// variables defaulting to x >= 0 (no Bounds slice).
func NewModel(n int) *Model {
	return &Model{
		N:         n,
		Objective: make([]float64, n),
	}
}

// AddConstraint appends a row, growing M. coefs is copied defensively so
// the caller's backing array can be reused.
func (m *Model) AddConstraint(name string, coefs []float64, sense Sense, rhs float64) {
	row := make([]float64, len(coefs))
	copy(row, coefs)
	m.Constraints = append(m.Constraints, LinearConstraint{
		Name: name, Coefs: row, RHS: rhs, Sense: sense,
	})
	m.M = len(m.Constraints)
}

// SetBound records an explicit bound for variable j, allocating the
// Bounds slice (defaulting every other entry to x_j >= 0) on first use.
func (m *Model) SetBound(j int, b VariableBound) {
	if m.Bounds == nil {
		m.Bounds = make([]VariableBound, m.N)
		for i := range m.Bounds {
			m.Bounds[i] = VariableBound{Lower: 0, Kind: LowerOnly}
		}
	}
	m.Bounds[j] = b
}

// BoundFor returns the effective bound for variable j, defaulting to
// x_j >= 0 when the model carries no Bounds slice or a zero-value entry.
func (m *Model) BoundFor(j int) VariableBound {
	if m.Bounds == nil || j >= len(m.Bounds) {
		return VariableBound{Lower: 0, Kind: LowerOnly}
	}
	return m.Bounds[j]
}
