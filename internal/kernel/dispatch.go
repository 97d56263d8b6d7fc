package kernel

import "github.com/samcharles93/ttmc/internal/csf"

// Dispatch routes a single TTMc call to the traversal appropriate for
// the CSF set's allocation scheme and the requested output mode,
// following the ONEMODE/TWOMODE/ALLMODE decision tables. It clears y
// before accumulating into it, since every traversal below accumulates
// rather than overwrites.
func Dispatch(set *csf.Set, factors []*Mat, mode int, y *Mat, opts Options, pool *workerPool) error {
	if opts.Tile {
		return ErrUnsupportedTile
	}
	if mode < 0 || mode >= len(factors) {
		return ErrOutOfRange
	}
	y.Zero()

	switch set.Scheme {
	case csf.OneMode:
		return dispatchOneMode(set.Tensors[0], factors, mode, y, pool)
	case csf.TwoMode:
		return dispatchTwoMode(set.Tensors[0], set.Tensors[1], factors, mode, y, pool)
	case csf.AllMode:
		return dispatchAllMode(set, factors, mode, y, pool)
	default:
		return ErrUnsupportedScheme
	}
}

func dispatchOneMode(t *csf.Tensor, factors []*Mat, mode int, y *Mat, pool *workerPool) error {
	depth := t.Depth(mode)
	if depth < 0 {
		return ErrOutOfRange
	}
	n := t.NModes()
	switch {
	case n == 3 && depth == 0:
		ttmcRoot3(t, factors, y, pool)
		return nil
	case n == 3 && depth == n-1:
		ttmcLeaf3(t, factors, y, pool)
		return nil
	case n == 3:
		ttmcInternal3(t, factors, y, pool)
		return nil
	default:
		return ttmcNMode(t, factors, mode, y, pool)
	}
}

// dispatchTwoMode implements the TWOMODE routing rule: if the output
// mode is the deepest (leaf) mode of tensor 0, it is instead the root
// mode of tensor 1, so the call is routed to tensor 1's root traversal.
// Otherwise it is handled as root or internal on tensor 0; TWOMODE never
// routes to a leaf traversal, since tensor 1 must be built with tensor
// 0's leaf mode as its root (dispatchRootOrGeneral returns ErrOutOfRange
// otherwise).
func dispatchTwoMode(t0, t1 *csf.Tensor, factors []*Mat, mode int, y *Mat, pool *workerPool) error {
	if mode == t0.DimPerm[len(t0.DimPerm)-1] {
		return dispatchRootOrGeneral(t1, factors, mode, y, pool)
	}
	depth := t0.Depth(mode)
	if depth < 0 {
		return ErrOutOfRange
	}
	if depth == len(t0.DimPerm)-1 {
		return ErrOutOfRange
	}
	if t0.NModes() == 3 && depth == 0 {
		ttmcRoot3(t0, factors, y, pool)
		return nil
	}
	if t0.NModes() == 3 && depth != 0 {
		ttmcInternal3(t0, factors, y, pool)
		return nil
	}
	return ttmcNMode(t0, factors, mode, y, pool)
}

func dispatchRootOrGeneral(t *csf.Tensor, factors []*Mat, mode int, y *Mat, pool *workerPool) error {
	if t.DimPerm[0] != mode {
		return ErrOutOfRange
	}
	if t.NModes() == 3 {
		ttmcRoot3(t, factors, y, pool)
		return nil
	}
	return ttmcNMode(t, factors, mode, y, pool)
}

// dispatchAllMode routes to the tree built with mode as its root; that
// tree's root traversal is always used regardless of mode count.
func dispatchAllMode(set *csf.Set, factors []*Mat, mode int, y *Mat, pool *workerPool) error {
	t := set.ForMode(mode)
	if t == nil {
		return ErrOutOfRange
	}
	if t.NModes() == 3 {
		ttmcRoot3(t, factors, y, pool)
		return nil
	}
	return ttmcNMode(t, factors, mode, y, pool)
}
