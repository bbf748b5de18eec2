//go:build !lpsimplex_blas

package linalg

// AxpyBLAS falls back to the in-tree implementation when the build was
// not compiled with the lpsimplex_blas tag.
func AxpyBLAS(n int, a float64, x []float64, incx int, y []float64, incy int) {
	Axpy(n, a, x, incx, y, incy)
}

// ScalBLAS falls back to the in-tree implementation.
func ScalBLAS(n int, alpha float64, v []float64, inc int) {
	Scal(n, alpha, v, inc)
}

const HasBLAS = false
