package kernel

import "sync"

// numLocks is the fixed size of the lock stripe used to serialize
// concurrent accumulation into shared output rows. A fixed, small stripe
// (rather than one lock per output row) keeps the lock table's memory
// footprint independent of the tensor's dimensions.
const numLocks = 1024

// cacheLinePad is sized so each lockEntry occupies its own cache line,
// avoiding false sharing between workers spinning on adjacent stripes.
const cacheLinePad = 64 - 8 // 8 bytes for the embedded mutex on amd64

type lockEntry struct {
	mu  sync.Mutex
	_   [cacheLinePad]byte
}

// lockStripe is a process-wide fixed-size lock array. It is allocated
// lazily and idempotently the first time it is needed; a *lockStripe
// value is always the same shared array regardless of tensor shape.
type lockStripe struct {
	entries [numLocks]lockEntry
}

var (
	stripe     *lockStripe
	stripeOnce sync.Once
)

// locksFor returns the process-wide lock stripe, initializing it on
// first use.
func locksFor() *lockStripe {
	stripeOnce.Do(func() {
		stripe = &lockStripe{}
	})
	return stripe
}

// Lock acquires the stripe lock guarding index i mod numLocks.
func (s *lockStripe) Lock(i int) {
	s.entries[i%numLocks].mu.Lock()
}

// Unlock releases the stripe lock guarding index i mod numLocks.
func (s *lockStripe) Unlock(i int) {
	s.entries[i%numLocks].mu.Unlock()
}
