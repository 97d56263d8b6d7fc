package kernel

import (
	"fmt"

	"github.com/samcharles93/ttmc/internal/csf"
	"github.com/samcharles93/ttmc/internal/logger"
)

// Run executes one TTMc call: it validates factor dimensions, sizes an
// output matrix, builds a fresh worker pool from opts.NThreads, and
// dispatches to the traversal selected by set.Scheme and mode. Fatal
// configuration problems (an unsupported tile request or allocation
// scheme) are returned as sentinel errors; dimension mismatches between
// factors and the tensor panic, since they indicate the caller built the
// factor slice incorrectly rather than a runtime condition.
func Run(log logger.Logger, set *csf.Set, factors []*Mat, mode int, opts Options) (*Mat, error) {
	if len(set.Tensors) == 0 {
		return nil, fmt.Errorf("kernel: empty CSF set: %w", ErrUnsupportedScheme)
	}
	dims := set.Tensors[0].Dims
	if err := validateFactors(dims, factors); err != nil {
		panic(err.Error())
	}
	if mode < 0 || mode >= len(dims) {
		return nil, fmt.Errorf("kernel: mode %d: %w", mode, ErrOutOfRange)
	}

	cols := 1
	for m, f := range factors {
		if m == mode {
			continue
		}
		cols *= f.Cols
	}
	y := NewMat(dims[mode], cols)

	pool := newWorkerPool(opts.NThreads)
	log.Debug("dispatching ttmc", "mode", mode, "scheme", set.Scheme.String(), "nthreads", pool.nthreads)
	if err := Dispatch(set, factors, mode, y, opts, pool); err != nil {
		return nil, err
	}
	return y, nil
}

// RunStream executes TtmcStreamCoord with a freshly sized worker pool
// and output matrix, mirroring Run's setup for the CSF path.
func RunStream(c *csf.Coord, factors []*Mat, mode int, opts Options) (*Mat, error) {
	if mode < 0 || mode >= c.NModes() {
		return nil, fmt.Errorf("kernel: mode %d: %w", mode, ErrOutOfRange)
	}
	cols := 1
	for m, f := range factors {
		if m == mode {
			continue
		}
		cols *= f.Cols
	}
	y := NewMat(c.Dims[mode], cols)
	pool := newWorkerPool(opts.NThreads)
	if err := TtmcStreamCoord(c, factors, mode, y, pool); err != nil {
		return nil, err
	}
	return y, nil
}

func validateFactors(dims []int, factors []*Mat) error {
	if len(factors) != len(dims) {
		return fmt.Errorf("kernel: expected %d factors, got %d: %w", len(dims), len(factors), ErrDimensionMismatch)
	}
	for m, f := range factors {
		if f.Rows != dims[m] {
			return fmt.Errorf("kernel: factor %d has %d rows, tensor mode has dimension %d: %w", m, f.Rows, dims[m], ErrDimensionMismatch)
		}
	}
	return nil
}
