package kernel

import "github.com/samcharles93/ttmc/internal/csf"

// ttmcLeaf3 computes TTMc for a 3-mode CSF tensor whose output mode is
// DimPerm[2] (the leaf). Every fiber first materializes one dense outer
// product of its two ancestor factor rows, then applies it to every
// nonzero beneath the fiber scaled by that nonzero's value; each of
// those per-nonzero accumulations is individually locked since leaf
// indices repeat across unrelated fibers throughout the tensor.
func ttmcLeaf3(t *csf.Tensor, factors []*Mat, y *Mat, pool *workerPool) {
	d0, d1 := t.DimPerm[0], t.DimPerm[1]
	u0, u1 := factors[d0], factors[d1]
	k0, k1 := u0.Cols, u1.Cols

	locks := locksFor()
	root := t.Levels[0]
	lvl1 := t.Levels[1]
	lvl2 := t.Levels[2]
	sp := newScratchPool(pool.nthreads, k0*k1, 0)

	pool.forEachSlice(root.NFibers(), func(s, tid int) {
		idx0 := root.FIDs[s]
		rowU0 := u0.Row(idx0)

		start1, end1 := lvl1.FPtr[s], lvl1.FPtr[s+1]
		tmp := sp.get(tid).take0(k0 * k1)
		for f1 := start1; f1 < end1; f1++ {
			idx1 := lvl1.FIDs[f1]
			rowU1 := u1.Row(idx1)
			outer(tmp, rowU0, rowU1)

			startL, endL := lvl2.FPtr[f1], lvl2.FPtr[f1+1]
			for z := startL; z < endL; z++ {
				idx2 := lvl2.FIDs[z]
				val := t.Vals[z]

				locks.Lock(idx2)
				axpyAdd(y.Row(idx2), val, tmp)
				locks.Unlock(idx2)
			}
		}
	})
}
