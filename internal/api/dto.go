package api

import (
	"lpsimplex/internal/lpmodel"
	"lpsimplex/internal/pivot"
	"lpsimplex/internal/simplex"
)

// BoundDTO is the wire shape of a per-variable bound.
type BoundDTO struct {
	Name  string  `json:"name"`
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Kind  string  `json:"kind"` // "free", "lower", "upper", "boxed"
}

// ConstraintDTO is the wire shape of one constraint row.
type ConstraintDTO struct {
	Name  string    `json:"name"`
	Coefs []float64 `json:"coefs"`
	RHS   float64   `json:"rhs"`
	Sense string    `json:"sense"` // "eq", "ge", "le"
}

// ModelDTO is the wire shape of a complete LP model.
type ModelDTO struct {
	Objective   []float64       `json:"objective"`
	Constraints []ConstraintDTO `json:"constraints"`
	Bounds      []BoundDTO      `json:"bounds,omitempty"`
}

// SolveRequest is the body of a solve/submit call.
type SolveRequest struct {
	Model      ModelDTO `json:"model"`
	PivotRule  string   `json:"pivot_rule,omitempty"`
	MaxIter    int      `json:"max_iterations,omitempty"`
	CrossCheck bool     `json:"cross_check,omitempty"`
}

// SolveResponse is the body returned by a synchronous solve.
type SolveResponse struct {
	X          []float64 `json:"x,omitempty"`
	Value      float64   `json:"value,omitempty"`
	Code       string    `json:"code"`
	Iterations int       `json:"iterations"`
	Cached     bool      `json:"cached"`
}

func senseFromString(s string) lpmodel.Sense {
	switch s {
	case "ge", "GE", ">=":
		return lpmodel.Ge
	case "le", "LE", "<=":
		return lpmodel.Le
	default:
		return lpmodel.Eq
	}
}

func boundKindFromString(s string) lpmodel.BoundKind {
	switch s {
	case "free":
		return lpmodel.Free
	case "upper":
		return lpmodel.UpperOnly
	case "boxed":
		return lpmodel.Boxed
	default:
		return lpmodel.LowerOnly
	}
}

// ToModel converts the wire DTO into an lpmodel.Model.
func (d ModelDTO) ToModel() *lpmodel.Model {
	n := len(d.Objective)
	m := &lpmodel.Model{N: n, Objective: append([]float64(nil), d.Objective...)}

	for _, c := range d.Constraints {
		m.AddConstraint(c.Name, c.Coefs, senseFromString(c.Sense), c.RHS)
	}

	if len(d.Bounds) > 0 {
		m.Bounds = make([]lpmodel.VariableBound, n)
		for i := range m.Bounds {
			m.Bounds[i] = lpmodel.VariableBound{Lower: 0, Kind: lpmodel.LowerOnly}
		}
		for i, b := range d.Bounds {
			if i >= n {
				break
			}
			m.Bounds[i] = lpmodel.VariableBound{
				Name: b.Name, Lower: b.Lower, Upper: b.Upper, Kind: boundKindFromString(b.Kind),
			}
		}
	}

	return m
}

// pivotRuleFromString resolves a request's selector string to a
// pivot.Rule, defaulting to Bland for anything unrecognized (mirroring
// pivot.Enter's own fallback).
func pivotRuleFromString(s string) pivot.Rule {
	switch s {
	case string(pivot.RuleDantzig):
		return pivot.RuleDantzig
	default:
		return pivot.RuleBland
	}
}

// ToOptions converts a request's pivot rule and iteration cap into
// solver Options, so callers outside this package (the scheduler) can
// build the same Options a synchronous solve would use.
func (r SolveRequest) ToOptions() simplex.Options {
	opts := simplex.DefaultOptions()
	if r.PivotRule != "" {
		opts.Rule = pivotRuleFromString(r.PivotRule)
	}
	if r.MaxIter > 0 {
		opts.MaxIter = r.MaxIter
	}
	return opts
}

func toSolveResponse(r simplex.Result, cached bool) SolveResponse {
	return SolveResponse{
		X: r.X, Value: r.Value, Code: r.Code.String(), Iterations: r.Iterations, Cached: cached,
	}
}
