package match

import (
	"sync"
	"sync/atomic"
)

// poolOnce and poolSizeV hold the process-wide, lazily-initialized thread
// pool size. It is
// the only shared resource across searches: per-search state (pyramids,
// integral images, score buffers) is owned exclusively by the invoking call.
var (
	poolOnce  sync.Once
	poolSizeV atomic.Int64
)

// SetThreads configures the process-wide worker count used by the parallel
// searcher. n == 0 requests auto-detection (logical core count, floored to
// 1). Must be called before the first search; calling it again after a
// search has already run is undefined behavior at the contract level — this
// implementation simply reconfigures the pool size for subsequent searches
// rather than rejecting the call. Fails with ErrInvalidThreadCount if n < 0.
func SetThreads(n int) error {
	if n < 0 {
		return ErrInvalidThreadCount
	}
	if n == 0 {
		n = defaultWorkers()
	}
	poolSizeV.Store(int64(n))
	poolOnce.Do(func() {}) // mark initialized so lazy init in poolSize is a no-op
	return nil
}

// poolSize returns the configured pool size, lazily initializing it to
// defaultWorkers() on first use if SetThreads was never called. Concurrent
// first-use races are resolved by sync.Once so every caller observes the
// same pool size.
func poolSize() int {
	poolOnce.Do(func() {
		if poolSizeV.Load() == 0 {
			poolSizeV.Store(int64(defaultWorkers()))
		}
	})
	n := int(poolSizeV.Load())
	if n < 1 {
		n = 1
	}
	return n
}
