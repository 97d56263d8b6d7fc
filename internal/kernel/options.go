package kernel

import "github.com/samcharles93/ttmc/internal/csf"

// Options bundles the tunables a Ttmc call accepts, mirroring the
// NTHREADS / CSF_ALLOC / TILE / TILEDEPTH options bundle.
type Options struct {
	// NThreads sizes the worker pool for this call. Zero or negative
	// means runtime.GOMAXPROCS(0).
	NThreads int
	// CSFAlloc selects which allocation scheme the input Set was built
	// with; it must match Set.Scheme.
	CSFAlloc csf.AllocScheme
	// Tile requests tiled execution. Always false in this
	// implementation; a true value returns ErrUnsupportedTile.
	Tile bool
	// TileDepth is the level at which tiling would apply, unused while
	// Tile is unsupported.
	TileDepth int
}

// DefaultOptions returns an Options with NThreads left at 0 (meaning
// "use GOMAXPROCS") and no tiling requested.
func DefaultOptions(scheme csf.AllocScheme) Options {
	return Options{CSFAlloc: scheme}
}
