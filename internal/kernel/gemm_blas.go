//go:build blas

package kernel

// #cgo LDFLAGS: -lblas
// #include <cblas.h>
import "C"

// batchedOuterAdd delegates the rank-arows update dst += A^T * B to
// cblas_dgemm instead of the unrolled accumulation in gemm_default.go.
// This build tag is a documented extension point; it is not exercised
// by any test in this module since no cgo BLAS is assumed present.
func batchedOuterAdd(dst []float64, kout, kin int, a []float64, arows int, b []float64) {
	C.cblas_dgemm(
		C.CblasRowMajor, C.CblasTrans, C.CblasNoTrans,
		C.int(kout), C.int(kin), C.int(arows),
		1.0,
		(*C.double)(&a[0]), C.int(kout),
		(*C.double)(&b[0]), C.int(kin),
		1.0,
		(*C.double)(&dst[0]), C.int(kin),
	)
}
