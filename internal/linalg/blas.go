//go:build lpsimplex_blas

package linalg

import "gonum.org/v1/gonum/blas/blas64"

// AxpyBLAS delegates to gonum's blas64.Daxpy. Built only when the
// lpsimplex_blas tag is set; the default build uses the in-tree loop
// in linalg.go so that results stay bit-identical to the tolerance
// regime the pivoting core was tuned against.
func AxpyBLAS(n int, a float64, x []float64, incx int, y []float64, incy int) {
	blas64.Implementation().Daxpy(n, a,
		blas64.Vector{N: n, Data: x, Inc: incx},
		blas64.Vector{N: n, Data: y, Inc: incy},
	)
}

// ScalBLAS delegates to gonum's blas64.Dscal.
func ScalBLAS(n int, alpha float64, v []float64, inc int) {
	blas64.Implementation().Dscal(n, alpha, blas64.Vector{N: n, Data: v, Inc: inc})
}

const HasBLAS = true
