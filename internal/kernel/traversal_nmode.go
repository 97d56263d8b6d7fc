package kernel

import "github.com/samcharles93/ttmc/internal/csf"

// ndAboveRoot is the trivial width-1 Kronecker seed handed to every
// root fiber: read-only, so every goroutine can share it without a
// copy.
var ndAboveRoot = []float64{1}

// ndWalker computes TTMc over a CSF tree of arbitrary mode count via a
// depth-first descent that maintains, at each recursion level, the
// Kronecker product of every ancestor factor row already consumed
// (the "above" vector, ordered outer-to-inner by DimPerm). Once the
// output mode's depth is reached, the remaining subtree below it is
// folded into a "below" vector by buildBelow (which sums over sibling
// descendants, since several of them can all contribute to the same
// output row), and above (x) below is accumulated into that row.
//
// This is the fallback used whenever a specialized 3-mode traversal
// does not apply: tensors with more than three modes, or (for the
// TWOMODE scheme) an output mode that lands at an internal depth of a
// tensor built with more than three modes.
type ndWalker struct {
	t           *csf.Tensor
	factors     []*Mat
	y           *Mat
	outputDepth int
	locks       *lockStripe
	scratch     *ndScratchPool
}

// ttmcNMode dispatches every root fiber of t to the pool and descends
// each independently; per-depth buffers come from a scratch pool keyed
// by worker id, so no two goroutines ever share mutable state except y
// and the lock stripe.
func ttmcNMode(t *csf.Tensor, factors []*Mat, mode int, y *Mat, pool *workerPool) error {
	depth := t.Depth(mode)
	if depth < 0 {
		return ErrOutOfRange
	}
	w := &ndWalker{t: t, factors: factors, y: y, outputDepth: depth, locks: locksFor()}
	w.scratch = newNDScratchPool(pool.nthreads, w)

	root := t.Levels[0]
	pool.forEachSlice(root.NFibers(), func(s, tid int) {
		w.walk(tid, 0, ndAboveRoot, s, s+1)
	})
	return nil
}

// walk processes the fiber range [lo, hi) at the given depth, having
// already consumed all ancestor rows into above.
func (w *ndWalker) walk(tid, depth int, above []float64, lo, hi int) {
	n := w.t.NModes()
	fids := w.t.Levels[depth].FIDs
	sc := w.scratch.get(tid)

	if depth == w.outputDepth {
		for i := lo; i < hi; i++ {
			idxOut := fids[i]

			if depth == n-1 {
				val := w.t.Vals[i]
				w.accumulate(idxOut, depth, func(row []float64) { axpyAdd(row, val, above) })
				continue
			}

			cs, ce := w.t.Levels[depth+1].FPtr[i], w.t.Levels[depth+1].FPtr[i+1]
			below := w.buildBelow(tid, depth+1, cs, ce)
			contrib := sc.contrib
			outer(contrib, above, below)
			w.accumulate(idxOut, depth, func(row []float64) { addInto(row, contrib) })
		}
		return
	}

	for i := lo; i < hi; i++ {
		idx := fids[i]
		rowU := w.factors[w.t.DimPerm[depth]].Row(idx)
		newAbove := sc.above[depth+1]
		outer(newAbove, above, rowU)

		cs, ce := w.t.Levels[depth+1].FPtr[i], w.t.Levels[depth+1].FPtr[i+1]
		w.walk(tid, depth+1, newAbove, cs, ce)
	}
}

// accumulate applies apply to the output row idxOut, locking only when
// the output depth is not the root (root fibers own a distinct row
// each, so no two goroutines ever touch the same row there).
func (w *ndWalker) accumulate(idxOut, depth int, apply func(row []float64)) {
	row := w.y.Row(idxOut)
	if depth == 0 {
		apply(row)
		return
	}
	w.locks.Lock(idxOut)
	apply(row)
	w.locks.Unlock(idxOut)
}

// aboveWidth reports the Kronecker width of the ancestor rows consumed
// strictly before the given depth (the width of the "above" vector a
// caller passes into walk at that depth).
func (w *ndWalker) aboveWidth(depth int) int {
	width := 1
	for d := 0; d < depth; d++ {
		width *= w.factors[w.t.DimPerm[d]].Cols
	}
	return width
}

// belowWidth reports the Kronecker width contributed by levels
// [depth, NModes) of the tree.
func (w *ndWalker) belowWidth(depth int) int {
	width := 1
	for d := depth; d < w.t.NModes(); d++ {
		width *= w.factors[w.t.DimPerm[d]].Cols
	}
	return width
}

// buildBelow sums, over the fiber range [lo, hi) at the given depth, the
// Kronecker product of that fiber's own factor row with the recursively
// built contribution of its descendants, terminating at the leaf level
// where a fiber is a single nonzero value rather than a further fiber
// range. The accumulator it returns is the scratch pool's buffer for
// this depth: safe to reuse because a single worker's DFS never has two
// calls at the same depth active at once.
func (w *ndWalker) buildBelow(tid, depth, lo, hi int) []float64 {
	n := w.t.NModes()
	lvl := w.t.Levels[depth]
	sc := w.scratch.get(tid)
	acc := sc.below[depth]
	for i := range acc {
		acc[i] = 0
	}

	if depth == n-1 {
		for i := lo; i < hi; i++ {
			idx := lvl.FIDs[i]
			axpyAdd(acc, w.t.Vals[i], w.factors[w.t.DimPerm[depth]].Row(idx))
		}
		return acc
	}

	for i := lo; i < hi; i++ {
		idx := lvl.FIDs[i]
		rowU := w.factors[w.t.DimPerm[depth]].Row(idx)
		cs, ce := w.t.Levels[depth+1].FPtr[i], w.t.Levels[depth+1].FPtr[i+1]
		childVec := w.buildBelow(tid, depth+1, cs, ce)
		outerAdd(acc, rowU, childVec)
	}
	return acc
}
