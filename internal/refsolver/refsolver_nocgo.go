//go:build !cgo || !golp
// +build !cgo !golp

package refsolver

import (
	"errors"

	"lpsimplex/internal/lpmodel"
	"lpsimplex/internal/simplex"
)

// Available reports whether this build was compiled with the golp
// cross-check backend. This stub build always reports false.
const Available = false

// Solve returns an error on builds without cgo and the golp tag.
func Solve(_ *lpmodel.Model) (simplex.Result, error) {
	return simplex.Result{}, errors.New("refsolver: built without cgo and golp build tags; cross-check backend unavailable")
}
