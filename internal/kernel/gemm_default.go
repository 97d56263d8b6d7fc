//go:build !blas

package kernel

// batchedOuterAdd performs a rank-arows update: dst += A^T * B where A is
// arows x kout (row-major, one row per fiber) and B is arows x kin. It is
// the root traversal's batched replacement for a loop of individual outer
// products. This build has no cgo BLAS binding available, so it performs
// the rank update as unrolled scalar/AVX2 accumulation; see gemm_blas.go
// for the alternate path behind the blas build tag.
func batchedOuterAdd(dst []float64, kout, kin int, a []float64, arows int, b []float64) {
	for r := 0; r < arows; r++ {
		arow := a[r*kout : r*kout+kout]
		brow := b[r*kin : r*kin+kin]
		for i, av := range arow {
			row := dst[i*kin : i*kin+kin]
			outerRowAdd(row, av, brow)
		}
	}
}
