package kernel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// sliceChunk is the fixed dynamic-scheduling grain: workers claim this
// many root-level slices at a time instead of one, cutting the amount of
// atomic traffic on the shared cursor for tensors with many small
// fibers.
const sliceChunk = 16

// workerPool drives a single fork-join parallel region over the range
// [0, n): it spins up nthreads goroutines that repeatedly claim
// fixed-size chunks of the range until it is exhausted, then
// blocks until every worker returns. It is constructed fresh for each
// Ttmc call rather than shared across calls, so a per-call NThreads
// override never leaks into an unrelated call.
type workerPool struct {
	nthreads int
}

// newWorkerPool builds a pool sized from Options.NThreads, defaulting to
// GOMAXPROCS when unset or non-positive.
func newWorkerPool(nthreads int) *workerPool {
	if nthreads <= 0 {
		nthreads = runtime.GOMAXPROCS(0)
	}
	return &workerPool{nthreads: nthreads}
}

// forEachSlice runs fn(i) for every i in [0, n), distributing i values
// across the pool's workers in chunks of sliceChunk with dynamic
// scheduling, and blocks until all workers have finished (an implicit
// barrier at the end of the region, matching OpenMP's default "for"
// clause without a nowait).
func (p *workerPool) forEachSlice(n int, fn func(i, tid int)) {
	if n <= 0 {
		return
	}
	nthreads := p.nthreads
	if nthreads > n {
		nthreads = n
	}
	if nthreads <= 1 {
		for i := 0; i < n; i++ {
			fn(i, 0)
		}
		return
	}

	var cursor int64
	var wg sync.WaitGroup
	wg.Add(nthreads)
	for tid := 0; tid < nthreads; tid++ {
		tid := tid
		go func() {
			defer wg.Done()
			for {
				start := atomic.AddInt64(&cursor, sliceChunk) - sliceChunk
				if start >= int64(n) {
					return
				}
				end := start + sliceChunk
				if end > int64(n) {
					end = int64(n)
				}
				for i := start; i < end; i++ {
					fn(int(i), tid)
				}
			}
		}()
	}
	wg.Wait()
}
