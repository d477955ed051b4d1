package sweep

import (
	"context"
	"sync"
)

// runBatches executes fn for every item with at most size running
// concurrently, joining each batch fully before issuing the next. Batch K+1
// never starts before batch K has completely finished; within a batch no
// ordering is guaranteed. Cancellation is honored between batches only:
// once ctx is cancelled no further batch is issued, but members of the
// current batch run to completion (each probe bounds its own lifetime by
// its timeout).
//
// Returns the number of items issued.
func runBatches[T any](ctx context.Context, items []T, size int, fn func(item T)) int {
	if size < 1 {
		size = 1
	}

	issued := 0
	for start := 0; start < len(items); start += size {
		if ctx.Err() != nil {
			break
		}

		end := start + size
		if end > len(items) {
			end = len(items)
		}

		var wg sync.WaitGroup
		for _, item := range items[start:end] {
			wg.Add(1)
			go func(it T) {
				defer wg.Done()
				fn(it)
			}(item)
		}
		wg.Wait()

		issued += end - start
	}
	return issued
}
