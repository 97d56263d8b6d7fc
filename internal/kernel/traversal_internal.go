package kernel

import "github.com/samcharles93/ttmc/internal/csf"

// ttmcInternal3 computes TTMc for a 3-mode CSF tensor whose output mode
// is DimPerm[1]. Distinct root slices can own mode-1 fibers with the
// same output row, so every accumulation into y is guarded by the
// stripe lock keyed on the output index.
func ttmcInternal3(t *csf.Tensor, factors []*Mat, y *Mat, pool *workerPool) {
	d0, d2 := t.DimPerm[0], t.DimPerm[2]
	u0, u2 := factors[d0], factors[d2]
	k2 := u2.Cols

	locks := locksFor()
	root := t.Levels[0]
	lvl1 := t.Levels[1]
	lvl2 := t.Levels[2]
	sp := newScratchPool(pool.nthreads, k2, 0)

	pool.forEachSlice(root.NFibers(), func(s, tid int) {
		idx0 := root.FIDs[s]
		rowU0 := u0.Row(idx0)
		sc := sp.get(tid)

		start1, end1 := lvl1.FPtr[s], lvl1.FPtr[s+1]
		for f1 := start1; f1 < end1; f1++ {
			idx1 := lvl1.FIDs[f1]

			startL, endL := lvl2.FPtr[f1], lvl2.FPtr[f1+1]
			if startL == endL {
				continue
			}
			leafsum := sc.take0(k2)
			for z := startL; z < endL; z++ {
				idx2 := lvl2.FIDs[z]
				axpyAdd(leafsum, t.Vals[z], u2.Row(idx2))
			}

			locks.Lock(idx1)
			outerAdd(y.Row(idx1), rowU0, leafsum)
			locks.Unlock(idx1)
		}
	})
}
