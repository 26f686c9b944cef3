// Package workerpool provides the fixed-size, static-partition worker
// pool used by the pipeline's parallel regions (spec.md §5): the S+C
// finder's per-plane Gaussian smoothing and per-column spectral
// smoothing, and the reliability double loop. Local noise scaling does
// not use it; its tiles are estimated serially. Chunks are assigned up
// front to a bounded set of goroutines rather than pulled from a
// work-stealing queue, matching spec.md §5's "worker-per-chunk static
// partition" literally.
package workerpool

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a fixed-size handle threaded through pipeline stages via
// pipeline.Context (DESIGN NOTES §9) instead of being read from a
// package-level global.
type Pool struct {
	size int
}

// New creates a pool with the given worker count. A size of zero or
// less auto-detects the processor count, per spec.md §5.
func New(size int) *Pool {
	if size <= 0 {
		size = runtime.NumCPU()
	}
	if size < 1 {
		size = 1
	}
	return &Pool{size: size}
}

// Size returns the number of workers the pool will use to partition work.
func (p *Pool) Size() int {
	return p.size
}

// Parallel statically partitions [0, n) into p.Size() contiguous
// chunks and runs fn(i) for every index, blocking until all chunks
// complete. fn must not share mutable state across indices other than
// through disjoint output slots.
func (p *Pool) Parallel(n int, fn func(i int)) {
	if n <= 0 {
		return
	}
	workers := p.size
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if start >= n {
			break
		}
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				fn(i)
			}
		}(start, end)
	}
	wg.Wait()
}

// Progress is the single atomic counter shared by a parallel region's
// workers (spec.md §5: "a global progress counter updated under a
// single atomic increment").
type Progress struct {
	done int64
}

// Add increments the counter by delta and returns the new value.
func (p *Progress) Add(delta int64) int64 {
	return atomic.AddInt64(&p.done, delta)
}

// Load returns the current counter value.
func (p *Progress) Load() int64 {
	return atomic.LoadInt64(&p.done)
}
