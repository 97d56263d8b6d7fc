// Package synth builds coordinate tensors and CSF trees for testing,
// benchmarking, and demoing the ttmc kernel. Construction of a CSF
// representation from a coordinate tensor is explicitly outside the
// TTMc core's own scope, but something has to produce the values the
// core consumes; this package is that something, kept deliberately
// outside internal/kernel and internal/csf's core packages.
package synth

import (
	"math/rand"
	"sort"

	"github.com/samcharles93/ttmc/internal/csf"
)

// Spec describes a synthetic coordinate tensor to generate: its shape,
// how many nonzeros to scatter across it, and the seed driving both the
// nonzero placement and their values.
type Spec struct {
	Dims []int   `yaml:"dims"`
	NNZ  int     `yaml:"nnz"`
	Seed int64   `yaml:"seed"`
	Cols []int   `yaml:"cols"` // per-mode factor column counts, for generating factor matrices alongside the tensor
	Lo   float64 `yaml:"value_lo"`
	Hi   float64 `yaml:"value_hi"`
}

// GenerateCoord builds a coordinate tensor from spec, deduplicating
// coincidentally repeated coordinates by summing their values so the
// result satisfies the CSF builder's assumption that each coordinate
// appears at most once per tree.
func GenerateCoord(spec Spec) *csf.Coord {
	r := rand.New(rand.NewSource(spec.Seed))
	nmodes := len(spec.Dims)

	lo, hi := spec.Lo, spec.Hi
	if lo == 0 && hi == 0 {
		lo, hi = -1, 1
	}

	seen := make(map[string]int, spec.NNZ)
	inds := make([][]int, nmodes)
	for m := range inds {
		inds[m] = make([]int, 0, spec.NNZ)
	}
	vals := make([]float64, 0, spec.NNZ)

	buf := make([]int, nmodes)
	for len(vals) < spec.NNZ {
		for m, d := range spec.Dims {
			buf[m] = r.Intn(d)
		}
		key := coordKey(buf)
		if pos, ok := seen[key]; ok {
			vals[pos] += lo + r.Float64()*(hi-lo)
			continue
		}
		seen[key] = len(vals)
		for m, v := range buf {
			inds[m] = append(inds[m], v)
		}
		vals = append(vals, lo+r.Float64()*(hi-lo))
	}

	return &csf.Coord{Dims: append([]int(nil), spec.Dims...), Inds: inds, Vals: vals}
}

// GenerateFactors builds one dense random factor matrix per mode with
// column counts taken from spec.Cols, falling back to the mode's own
// dimension when Cols is shorter than nmodes.
func GenerateFactors(spec Spec) [][]float64 {
	r := rand.New(rand.NewSource(spec.Seed + 1))
	out := make([][]float64, len(spec.Dims))
	for m, d := range spec.Dims {
		k := d
		if m < len(spec.Cols) && spec.Cols[m] > 0 {
			k = spec.Cols[m]
		}
		row := make([]float64, d*k)
		for i := range row {
			row[i] = r.NormFloat64()
		}
		out[m] = row
	}
	return out
}

func coordKey(idx []int) string {
	b := make([]byte, 0, len(idx)*8)
	for _, v := range idx {
		b = append(b, byte(v), byte(v>>8), byte(v>>16), byte(v>>24), byte(v>>32), byte(v>>40), byte(v>>48), byte(v>>56))
	}
	return string(b)
}

// BuildCSF sorts a coordinate tensor's nonzeros by dimPerm order and
// run-length encodes each level into fptr/fids, producing a single CSF
// tree: no tiling, one tree per call.
func BuildCSF(c *csf.Coord, dimPerm []int) *csf.Tensor {
	nnz := c.NNZ()
	order := make([]int, nnz)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		ia, ib := order[a], order[b]
		for _, m := range dimPerm {
			va, vb := c.Inds[m][ia], c.Inds[m][ib]
			if va != vb {
				return va < vb
			}
		}
		return false
	})

	nmodes := len(dimPerm)
	levels := make([]csf.Level, nmodes)
	vals := make([]float64, nnz)

	path := make([]int, nmodes)
	first := true

	for _, oi := range order {
		coordAt := func(d int) int { return c.Inds[dimPerm[d]][oi] }

		diverge := 0
		if !first {
			diverge = nmodes
			for d := 0; d < nmodes; d++ {
				if coordAt(d) != path[d] {
					diverge = d
					break
				}
			}
		}

		for d := 1; d < nmodes; d++ {
			if diverge <= d-1 {
				levels[d].FPtr = append(levels[d].FPtr, len(levels[d].FIDs))
			}
		}
		for d := diverge; d < nmodes; d++ {
			levels[d].FIDs = append(levels[d].FIDs, coordAt(d))
			path[d] = coordAt(d)
		}
		first = false
		vals[len(levels[nmodes-1].FIDs)-1] = c.Vals[oi]
	}

	for d := 1; d < nmodes; d++ {
		levels[d].FPtr = append(levels[d].FPtr, len(levels[d].FIDs))
	}
	levels[0].FPtr = []int{0, len(levels[0].FIDs)}

	return &csf.Tensor{
		Dims:    append([]int(nil), c.Dims...),
		DimPerm: append([]int(nil), dimPerm...),
		Levels:  levels,
		Vals:    vals,
		Tag:     csf.NoTile,
	}
}
