// Package ttmc is the public surface of the tensor-times-matrix-chain
// contraction library: build a CSF set once, then call Ttmc (or
// TtmcStream for the coordinate-format fallback) once per output mode
// against a set of dense factor matrices.
package ttmc

import (
	"github.com/samcharles93/ttmc/internal/csf"
	"github.com/samcharles93/ttmc/internal/kernel"
	"github.com/samcharles93/ttmc/internal/logger"
)

// Options mirrors the NTHREADS/CSF_ALLOC/TILE/TILEDEPTH bundle a caller
// tunes a Ttmc call with.
type Options = kernel.Options

// Mat is a dense row-major matrix used for both factors and outputs.
type Mat = kernel.Mat

// Set is a built CSF representation of one coordinate tensor.
type Set = csf.Set

// Coord is a coordinate-format tensor.
type Coord = csf.Coord

// NewMat allocates a zeroed rows x cols matrix.
func NewMat(rows, cols int) *Mat {
	return kernel.NewMat(rows, cols)
}

// NewMatFromData wraps an existing row-major slice as a Mat.
func NewMatFromData(rows, cols int, data []float64) *Mat {
	return kernel.NewMatFromData(rows, cols, data)
}

// Ttmc computes the tensor-times-matrix-chain contraction of set against
// factors for the given output mode, returning a dense matrix whose rows
// are indexed by that mode and whose columns are the Kronecker product
// of every other factor's columns, taken in the order the selected
// tree's DimPerm lists the non-output modes. That is ascending mode
// order only when DimPerm keeps those modes ascending, as every tree
// built in this module does; columns are not reordered otherwise.
func Ttmc(log logger.Logger, set *Set, factors []*Mat, mode int, opts Options) (*Mat, error) {
	return kernel.Run(log, set, factors, mode, opts)
}

// TtmcStream computes the same contraction directly from a coordinate
// tensor, without requiring a CSF tree to have been built first.
func TtmcStream(c *Coord, factors []*Mat, mode int, opts Options) (*Mat, error) {
	return kernel.RunStream(c, factors, mode, opts)
}

// TtmcLargestOuter reports, per tensor mode, the largest fiber span
// across the levels of set where that mode appears above the last two: the
// number of children the biggest fiber at that level has, which is
// exactly how wide a gather buffer the root traversal (and the general
// N-mode traversal's per-depth buffers) must allocate to hold every
// child row of that fiber at once. The last two levels of each tree are
// skipped, since fibers there feed a per-nonzero accumulation rather
// than a gathered outer product.
func TtmcLargestOuter(set *Set) []int {
	nmodes := 0
	if len(set.Tensors) > 0 {
		nmodes = set.Tensors[0].NModes()
	}
	outerSizes := make([]int, nmodes)
	for _, t := range set.Tensors {
		n := t.NModes()
		for l := 0; l < n-2; l++ {
			madj := t.DimPerm[l]
			lvl := t.Levels[l+1]
			for f := 0; f+1 < len(lvl.FPtr); f++ {
				if span := lvl.FPtr[f+1] - lvl.FPtr[f]; span > outerSizes[madj] {
					outerSizes[madj] = span
				}
			}
		}
	}
	return outerSizes
}

// TenoutCols computes the column count of the dense output Ttmc would
// produce for the given mode: the product of every other factor's
// column count.
func TenoutCols(factors []*Mat, mode int) int {
	cols := 1
	for m, f := range factors {
		if m == mode {
			continue
		}
		cols *= f.Cols
	}
	return cols
}

// TenoutDim computes an upper bound on Y's storage that holds for any
// output mode a caller might choose: the max over every mode m of
// dims[m] · TenoutCols(factors, m). A caller sizing one shared output
// buffer ahead of time, before committing to a mode, can allocate this
// once and reuse it regardless of which mode it ultimately computes.
func TenoutDim(factors []*Mat, dims []int) int {
	maxdim := 0
	for m, d := range dims {
		if size := d * TenoutCols(factors, m); size > maxdim {
			maxdim = size
		}
	}
	return maxdim
}
