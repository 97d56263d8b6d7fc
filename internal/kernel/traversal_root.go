package kernel

import "github.com/samcharles93/ttmc/internal/csf"

// ttmcRoot3 computes TTMc for a 3-mode CSF tensor whose output mode is
// DimPerm[0]. Each root fiber owns a distinct output row, so no locking
// is needed: workers write to disjoint rows of y. Per root fiber, the
// contribution is computed as a rank update dst += A^T * B where A
// gathers the mode-1 factor rows touched by the fiber and B gathers the
// per-mode-1-fiber reduction over mode-2 (leaf) nonzeros, letting the
// whole fiber settle in one batchedOuterAdd call instead of one outer
// product per leaf nonzero.
func ttmcRoot3(t *csf.Tensor, factors []*Mat, y *Mat, pool *workerPool) {
	d1, d2 := t.DimPerm[1], t.DimPerm[2]
	u1, u2 := factors[d1], factors[d2]
	k1, k2 := u1.Cols, u2.Cols

	root := t.Levels[0]
	lvl1 := t.Levels[1]
	lvl2 := t.Levels[2]

	maxFiber := 0
	for s := 0; s < root.NFibers(); s++ {
		if n := lvl1.FPtr[s+1] - lvl1.FPtr[s]; n > maxFiber {
			maxFiber = n
		}
	}
	sp := newScratchPool(pool.nthreads, maxFiber*k1, maxFiber*k2)

	pool.forEachSlice(root.NFibers(), func(s, tid int) {
		fid0 := root.FIDs[s]
		start1, end1 := lvl1.FPtr[s], lvl1.FPtr[s+1]
		nfib := end1 - start1
		if nfib == 0 {
			return
		}
		sc := sp.get(tid)
		a := sc.take0(nfib * k1)
		b := sc.take1(nfib * k2)
		for fi := 0; fi < nfib; fi++ {
			f1 := start1 + fi
			idx1 := lvl1.FIDs[f1]
			copy(a[fi*k1:fi*k1+k1], u1.Row(idx1))

			startL, endL := lvl2.FPtr[f1], lvl2.FPtr[f1+1]
			brow := b[fi*k2 : fi*k2+k2]
			for z := startL; z < endL; z++ {
				idx2 := lvl2.FIDs[z]
				axpyAdd(brow, t.Vals[z], u2.Row(idx2))
			}
		}
		batchedOuterAdd(y.Row(fid0), k1, k2, a, nfib, b)
	})
}
