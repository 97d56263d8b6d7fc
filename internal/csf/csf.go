// Package csf defines the compressed sparse fiber tensor representation
// consumed by the ttmc kernel and the coordinate tensor format it is built
// from. Types in this package are read-only value types; nothing here
// mutates a tensor once constructed.
package csf

import "fmt"

// NoTile marks a Tensor as untiled. Tiled allocation schemes are not
// implemented; the field exists so a caller inspecting Tensor.Tag can
// distinguish "no tiling" from a future tiling scheme without an API
// break.
const NoTile = -1

// AllocScheme selects how a coordinate tensor's nonzeros are partitioned
// across one or more CSF trees.
type AllocScheme int

const (
	// OneMode builds a single CSF tree with a fixed dim_perm; the output
	// mode's depth in that permutation determines root/internal/leaf
	// traversal at TTMc time.
	OneMode AllocScheme = iota
	// TwoMode builds two CSF trees: the second is rooted at the first
	// tree's leaf mode and serves that mode; the first serves every other
	// mode.
	TwoMode
	// AllMode builds one CSF tree per mode, each with that mode as the
	// root (dim_perm[0]).
	AllMode
)

func (s AllocScheme) String() string {
	switch s {
	case OneMode:
		return "ONEMODE"
	case TwoMode:
		return "TWOMODE"
	case AllMode:
		return "ALLMODE"
	default:
		return fmt.Sprintf("AllocScheme(%d)", int(s))
	}
}

// Level holds one level of a CSF tree: fptr is a CSR-style pointer array
// of length len(fids-at-parent)+1 (or {0, len(FIDs)} at the root), and
// fids holds the coordinate index of each fiber at this
// level within its parent fiber.
type Level struct {
	FPtr []int
	FIDs []int
}

// NFibers reports how many fibers exist at this level: the number of
// stored fiber ids, or, for a level that stores no FIDs, the number of
// ranges in FPtr.
func (l Level) NFibers() int {
	if len(l.FIDs) > 0 {
		return len(l.FIDs)
	}
	if len(l.FPtr) == 0 {
		return 0
	}
	return len(l.FPtr) - 1
}

// Tensor is one CSF tree: nmodes levels of hierarchy rooted at
// DimPerm[0], nonzero values at the leaves, and dimension sizes indexed
// by the *original* (not permuted) mode number.
type Tensor struct {
	// Dims holds the size of each mode in original mode-numbering.
	Dims []int
	// DimPerm maps level depth to original mode number; DimPerm[0] is
	// the root mode, DimPerm[len-1] the leaf mode.
	DimPerm []int
	// Levels holds one Level per depth, len(Levels) == len(DimPerm).
	// Levels[0].FPtr always has length 2: {0, NNZ-at-root} is not
	// meaningful here, instead Levels[0].FIDs holds the root fiber ids
	// directly and Levels[0].FPtr holds just {0, len(FIDs)}.
	Levels []Level
	// Vals holds one value per nonzero, aligned with the leaf level's
	// FIDs in depth-first order.
	Vals []float64
	// Tag is NoTile for an untiled tensor.
	Tag int
}

// NModes reports the tensor's mode count.
func (t *Tensor) NModes() int {
	return len(t.Dims)
}

// Depth returns the level depth (0 == root) at which mode m appears in
// DimPerm, or -1 if m is not present in this tree (only relevant for
// AllMode where each tree only ever contains modes it was built for,
// which for TTMc purposes is always all of them).
func (t *Tensor) Depth(mode int) int {
	for d, m := range t.DimPerm {
		if m == mode {
			return d
		}
	}
	return -1
}

// NNZ reports the number of nonzero entries stored in the tensor.
func (t *Tensor) NNZ() int {
	return len(t.Vals)
}

// Set is a collection of CSF trees produced for a single coordinate
// tensor under one AllocScheme. OneMode holds exactly one tree; TwoMode
// holds exactly two; AllMode holds one per mode.
type Set struct {
	Scheme  AllocScheme
	Tensors []*Tensor
}

// ForMode returns the CSF tree that should be used to compute TTMc for
// the given output mode, mirroring the dispatcher rules in
// internal/kernel/dispatch.go's decision tables.
func (s *Set) ForMode(mode int) *Tensor {
	switch s.Scheme {
	case OneMode:
		return s.Tensors[0]
	case TwoMode:
		t0 := s.Tensors[0]
		if mode == t0.DimPerm[len(t0.DimPerm)-1] {
			return s.Tensors[1]
		}
		return t0
	case AllMode:
		for _, t := range s.Tensors {
			if t.DimPerm[0] == mode {
				return t
			}
		}
	}
	return nil
}

// Coord is a coordinate-format tensor: parallel index slices (one per
// mode) plus a value slice, all the same length. It is the format a CSF
// tree is built from and the format the coordinate streaming kernel
// consumes directly.
type Coord struct {
	Dims []int
	Inds [][]int
	Vals []float64
}

// NNZ reports the number of nonzero entries.
func (c *Coord) NNZ() int {
	return len(c.Vals)
}

// NModes reports the coordinate tensor's mode count.
func (c *Coord) NModes() int {
	return len(c.Dims)
}
