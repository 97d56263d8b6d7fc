package kernel

import "github.com/samcharles93/ttmc/internal/csf"

// TtmcStreamCoord computes TTMc directly from a coordinate tensor,
// without first building a CSF tree. Every nonzero contributes a single
// Kronecker product of the non-output modes' factor rows, ordered
// outer-to-inner by ascending mode number, scaled by the nonzero's
// value; the result is accumulated into the output row under a single
// stripe lock keyed on that row. This trades the CSF traversals'
// amortized per-fiber work for a simpler, allocation-light per-nonzero
// loop suited to tensors too small or too irregular to justify building
// a tree first.
func TtmcStreamCoord(c *csf.Coord, factors []*Mat, mode int, y *Mat, pool *workerPool) error {
	if mode < 0 || mode >= c.NModes() {
		return ErrOutOfRange
	}
	y.Zero()

	order := make([]int, 0, c.NModes()-1)
	for m := 0; m < c.NModes(); m++ {
		if m != mode {
			order = append(order, m)
		}
	}
	locks := locksFor()

	pool.forEachSlice(c.NNZ(), func(z, tid int) {
		acc := []float64{c.Vals[z]}
		for _, m := range order {
			idx := c.Inds[m][z]
			row := factors[m].Row(idx)
			next := make([]float64, len(acc)*len(row))
			outer(next, acc, row)
			acc = next
		}
		idxOut := c.Inds[mode][z]
		locks.Lock(idxOut)
		addInto(y.Row(idxOut), acc)
		locks.Unlock(idxOut)
	})
	return nil
}
