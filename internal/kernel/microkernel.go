package kernel

import "simd/archsimd"

// outer overwrites dst (a Kout x Kin row-major buffer with Kin columns)
// with the outer product a (len Kout) x b (len Kin), the innermost step
// of each traversal's Kronecker chain.
func outer(dst []float64, a, b []float64) {
	kin := len(b)
	for i, av := range a {
		row := dst[i*kin : i*kin+kin]
		outerRowSet(row, av, b)
	}
}

// outerAdd accumulates a (x) b into dst instead of overwriting it, used
// wherever a fiber's contribution must be added to an existing partial
// sum rather than replace it (the internal-mode traversal and the
// N-mode traversal's buildBelow reduction).
func outerAdd(dst []float64, a, b []float64) {
	kin := len(b)
	for i, av := range a {
		row := dst[i*kin : i*kin+kin]
		outerRowAdd(row, av, b)
	}
}

func outerRowSet(row []float64, scale float64, b []float64) {
	if cpu.HasAVX2 && len(b) >= 4 {
		outerRowSetAVX2(row, scale, b)
		return
	}
	for j, bv := range b {
		row[j] = scale * bv
	}
}

func outerRowAdd(row []float64, scale float64, b []float64) {
	if cpu.HasAVX2 && len(b) >= 4 {
		outerRowAddAVX2(row, scale, b)
		return
	}
	for j, bv := range b {
		row[j] += scale * bv
	}
}

func outerRowSetAVX2(row []float64, scale float64, b []float64) {
	n := len(b)
	i := 0
	sv := archsimd.BroadcastFloat64x4(scale)
	zero := archsimd.BroadcastFloat64x4(0)
	for ; i+4 <= n; i += 4 {
		bv := archsimd.LoadFloat64x4Slice(b[i : i+4])
		rv := bv.MulAdd(sv, zero)
		rv.StoreSlice(row[i : i+4])
	}
	for ; i < n; i++ {
		row[i] = scale * b[i]
	}
}

func outerRowAddAVX2(row []float64, scale float64, b []float64) {
	n := len(b)
	i := 0
	sv := archsimd.BroadcastFloat64x4(scale)
	for ; i+4 <= n; i += 4 {
		bv := archsimd.LoadFloat64x4Slice(b[i : i+4])
		rv := archsimd.LoadFloat64x4Slice(row[i : i+4])
		rv = bv.MulAdd(sv, rv)
		rv.StoreSlice(row[i : i+4])
	}
	for ; i < n; i++ {
		row[i] += scale * b[i]
	}
}

// axpyAdd computes dst += scale * src, the fiber-reduction step used
// when descending from a leaf value up through intermediate levels
// before an outer product is taken.
func axpyAdd(dst []float64, scale float64, src []float64) {
	if cpu.HasAVX2 && len(src) >= 4 {
		outerRowAddAVX2(dst, scale, src)
		return
	}
	for i, v := range src {
		dst[i] += scale * v
	}
}

// addInto computes dst += src elementwise; it panics if the lengths
// differ, since a mismatch here indicates a caller bug rather than a
// condition worth returning an error for.
func addInto(dst, src []float64) {
	if len(dst) != len(src) {
		panic("kernel: addInto length mismatch")
	}
	for i, v := range src {
		dst[i] += v
	}
}
