package dynamo

import (
	"runtime"
	"sync"
)

// DefaultWorkers is the worker count used when a caller asks for 0 workers.
func DefaultWorkers() int {
	return runtime.GOMAXPROCS(0)
}

// ParallelFor executes fn in parallel over [0, n) split into at most workers
// contiguous chunks of at least minChunk items. fn receives its worker index,
// which is always < workers, so callers can keep per-worker state.
// It returns the number of chunks actually started.
func ParallelFor(n, workers, minChunk int, fn func(worker, start, end int)) int {
	if minChunk < 1 {
		minChunk = 1
	}
	if n <= minChunk || workers <= 1 {
		fn(0, 0, n)
		return 1
	}

	if n/minChunk < workers {
		workers = n / minChunk
	}
	if workers < 1 {
		workers = 1
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	started := 0
	for w := 0; w < workers; w++ {
		start := w * chunkSize
		if start >= n {
			break
		}
		end := start + chunkSize
		if end > n {
			end = n
		}

		wg.Add(1)
		started++
		go func(worker, s, e int) {
			defer wg.Done()
			fn(worker, s, e)
		}(w, start, end)
	}

	wg.Wait()
	return started
}
