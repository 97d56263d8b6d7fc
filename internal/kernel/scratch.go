package kernel

// scratch holds one worker's private working buffers for a single
// specialized 3-mode traversal call: slot0 and slot1 are each sized
// once for the largest gather operand that traversal's fiber loop will
// build (root's rank-update gathers, up to max_fiber_len x K_leaf, or
// the fixed-width accumulators the internal/leaf traversals need),
// then reused across every fiber a worker visits so the traversal
// never allocates in the hot loop.
type scratch struct {
	slot0 []float64
	slot1 []float64
}

// newScratch allocates slot0 sized w0 and slot1 sized w1.
func newScratch(w0, w1 int) *scratch {
	return &scratch{slot0: make([]float64, w0), slot1: make([]float64, w1)}
}

// take0 returns the first n elements of slot0, zeroed.
func (s *scratch) take0(n int) []float64 { return takeZeroed(s.slot0, n) }

// take1 returns the first n elements of slot1, zeroed.
func (s *scratch) take1(n int) []float64 { return takeZeroed(s.slot1, n) }

func takeZeroed(buf []float64, n int) []float64 {
	row := buf[:n]
	for i := range row {
		row[i] = 0
	}
	return row
}

// maxK returns the largest column count across a set of factor
// matrices, used to size scratch buffers before a call begins.
func maxK(factors []*Mat) int {
	m := 0
	for _, f := range factors {
		if f.Cols > m {
			m = f.Cols
		}
	}
	return m
}

// scratchPool hands one *scratch to each worker thread of a call,
// allocated lazily on a tid's first touch since distinct tids never
// share a slot and most calls only ever touch a fraction of the pool
// (a run with fewer fibers than threads leaves the unused tids nil).
type scratchPool struct {
	bufs   []*scratch
	w0, w1 int
}

func newScratchPool(nthreads, w0, w1 int) *scratchPool {
	return &scratchPool{bufs: make([]*scratch, nthreads), w0: w0, w1: w1}
}

func (p *scratchPool) get(tid int) *scratch {
	s := p.bufs[tid]
	if s == nil {
		s = newScratch(p.w0, p.w1)
		p.bufs[tid] = s
	}
	return s
}

// ndScratch holds one worker's private per-depth buffers for a single
// ttmcNMode call. above[d] holds the Kronecker product of ancestor
// factor rows consumed through depth d-1 (above[0] is left nil: depth 0
// receives the shared width-1 seed ndAboveRoot instead); below[d] holds buildBelow's reduction of the
// subtree rooted at depth d; contrib holds the final above x below
// product before it is folded into the output row. All three are
// sized once from the tree's fixed factor column counts, so walk and
// buildBelow never allocate per fiber.
type ndScratch struct {
	above   [][]float64
	below   [][]float64
	contrib []float64
}

func newNDScratch(w *ndWalker) *ndScratch {
	n := w.t.NModes()
	s := &ndScratch{above: make([][]float64, w.outputDepth+1), below: make([][]float64, n)}
	for d := 1; d <= w.outputDepth; d++ {
		s.above[d] = make([]float64, w.aboveWidth(d))
	}
	for d := w.outputDepth + 1; d < n; d++ {
		s.below[d] = make([]float64, w.belowWidth(d))
	}
	if w.outputDepth < n-1 {
		s.contrib = make([]float64, w.aboveWidth(w.outputDepth)*w.belowWidth(w.outputDepth+1))
	}
	return s
}

// ndScratchPool hands one *ndScratch to each worker thread of a
// ttmcNMode call, allocated lazily on a tid's first touch.
type ndScratchPool struct {
	bufs []*ndScratch
	w    *ndWalker
}

func newNDScratchPool(nthreads int, w *ndWalker) *ndScratchPool {
	return &ndScratchPool{bufs: make([]*ndScratch, nthreads), w: w}
}

func (p *ndScratchPool) get(tid int) *ndScratch {
	s := p.bufs[tid]
	if s == nil {
		s = newNDScratch(p.w)
		p.bufs[tid] = s
	}
	return s
}
