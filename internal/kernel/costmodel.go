package kernel

import (
	"sort"

	"github.com/samcharles93/ttmc/internal/csf"
	"github.com/samcharles93/ttmc/internal/synth"
)

// CSFCountFlops estimates the flop count of a single TTMc call against
// tree t for the given output mode, parameterized by nfactors (the
// per-mode factor column count K, indexed by original mode number, not
// by dim_perm depth). The estimate is built from three terms mirroring
// the shape of the traversals themselves:
//
//   - downward: the cost of building the "above" Kronecker vector while
//     descending from the root to the output mode's depth (zero for a
//     root traversal, since there is nothing above the root).
//   - upward: the cost of the buildBelow reduction from the leaf back up
//     to just below the output mode's depth (zero for a leaf traversal).
//   - join: the cost of combining the above and below vectors into the
//     final contribution, paid once per fiber at the output depth (every
//     depth but the root, where above is trivial and the combine
//     degenerates to a copy).
func CSFCountFlops(t *csf.Tensor, mode int, nfactors []int) float64 {
	depth := t.Depth(mode)
	if depth < 0 {
		return 0
	}
	n := t.NModes()

	var downward float64
	aboveWidth := float64(nfactors[t.DimPerm[0]])
	for l := 1; l < depth; l++ {
		aboveWidth *= float64(nfactors[t.DimPerm[l]])
		downward += float64(nfibsAt(t, l)) * aboveWidth
	}

	var upward float64
	belowWidth := 1.0
	for l := n - 1; l > depth; l-- {
		belowWidth *= float64(nfactors[t.DimPerm[l]])
		upward += float64(nfibsAt(t, l)) * belowWidth
	}

	var join float64
	if depth > 0 {
		join = float64(nfibsAt(t, depth)) * float64(OutputCols(nfactors, mode))
	}

	return downward + upward + join
}

// nfibsAt reports how many fibers exist at depth l, i.e. the number of
// fiber ids stored there (the leaf level's count is the tensor's
// nonzero count), matching ttm.c's per-depth nfibs[d].
func nfibsAt(t *csf.Tensor, l int) int {
	return len(t.Levels[l].FIDs)
}

// OutputCols reports the column count of the dense TTMc output for the
// given mode: the product of every other mode's factor column count.
func OutputCols(nfactors []int, mode int) int {
	cols := 1
	for m, k := range nfactors {
		if m != mode {
			cols *= k
		}
	}
	return cols
}

// CoordCountFlops estimates the flop count of TtmcStreamCoord for the
// given output mode: a nested Kronecker chain is built per nonzero, one
// step per non-output mode, and each step's running product is itself
// added to the cost (the partial-product sum, not one single full
// product), since the traversal materializes and pays for every
// intermediate width on the way, not just the final one.
func CoordCountFlops(c *csf.Coord, mode int, nfactors []int) float64 {
	var nnzflops float64
	accum := 1.0
	for m := len(nfactors) - 1; m >= 0; m-- {
		if m == mode {
			continue
		}
		accum *= float64(nfactors[m])
		nnzflops += accum
	}
	return float64(c.NNZ()) * nnzflops
}

// FlopTable is the full ttmc_fill_flop_tbl result: an N×N table plus the
// per-allocation-scheme summaries derived from it.
type FlopTable struct {
	// Table[i][j] is the flop count of computing mode-j TTMc against the
	// CSF built for mode i: every mode but i sorted ascending by
	// dimension, with i moved to the leaf.
	Table [][]float64
	// CSF1 is the row for the smallest-dimension mode: the cost of every
	// mode under that one CSF (the other modes smallest-dimension-first,
	// the smallest mode itself at the leaf).
	CSF1 []float64
	// CSF2 is CSF1 with the largest-dimension mode's own column (the
	// leaf-specialized CSF built for that mode) substituted in.
	CSF2 []float64
	// CSFA[m] is Table[m][m]: computing mode m against its own
	// dedicated (mode-m-at-leaf) CSF.
	CSFA []float64
	// Custom[j] is the per-mode minimum across every row of Table.
	Custom []float64
	// Coord[m] is the coordinate-form cost of computing mode m.
	Coord []float64
}

// FillFlopTable builds, for every mode i, a CSF sorted smallest
// dimension first with mode i moved to the leaf, evaluates every mode
// j's TTMc cost against it into Table[i][j], and derives the
// CSF-1/CSF-2/CSF-A/custom/coordinate summaries ttmc_fill_flop_tbl
// reports alongside the table. nfactors holds the per-mode factor
// column count a real TTMc call against c would use.
func FillFlopTable(c *csf.Coord, nfactors []int) *FlopTable {
	n := c.NModes()
	table := make([][]float64, n)
	for i := 0; i < n; i++ {
		tree := synth.BuildCSF(c, smallestFirstLeaf(c.Dims, i))
		row := make([]float64, n)
		for j := 0; j < n; j++ {
			row[j] = CSFCountFlops(tree, j, nfactors)
		}
		table[i] = row
	}

	smallest := argmin(c.Dims)
	largest := argmax(c.Dims)

	csf1 := append([]float64(nil), table[smallest]...)
	csf2 := append([]float64(nil), csf1...)
	csf2[largest] = table[largest][largest]

	csfa := make([]float64, n)
	custom := make([]float64, n)
	for j := 0; j < n; j++ {
		csfa[j] = table[j][j]
		best := table[0][j]
		for i := 1; i < n; i++ {
			if table[i][j] < best {
				best = table[i][j]
			}
		}
		custom[j] = best
	}

	coordRow := make([]float64, n)
	for m := 0; m < n; m++ {
		coordRow[m] = CoordCountFlops(c, m, nfactors)
	}

	return &FlopTable{Table: table, CSF1: csf1, CSF2: csf2, CSFA: csfa, Custom: custom, Coord: coordRow}
}

// smallestFirstLeaf orders every mode but leaf ascending by dimension
// size, then appends leaf, mirroring CSF_SORTED_SMALLFIRST_MINUSONE.
func smallestFirstLeaf(dims []int, leaf int) []int {
	others := make([]int, 0, len(dims)-1)
	for m := range dims {
		if m != leaf {
			others = append(others, m)
		}
	}
	sort.SliceStable(others, func(a, b int) bool { return dims[others[a]] < dims[others[b]] })
	return append(others, leaf)
}

func argmin(dims []int) int {
	best := 0
	for i, d := range dims {
		if d < dims[best] {
			best = i
		}
	}
	return best
}

func argmax(dims []int) int {
	best := 0
	for i, d := range dims {
		if d > dims[best] {
			best = i
		}
	}
	return best
}
