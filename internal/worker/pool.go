package worker

import (
	"context"
	"sync"
)

// Pool runs a function over many items with a bounded number of workers
type Pool[T, R any] struct {
	workers int
	fn      func(ctx context.Context, item T) R
}

// NewPool creates a pool with the specified number of workers
func NewPool[T, R any](workers int, fn func(ctx context.Context, item T) R) *Pool[T, R] {
	if workers <= 0 {
		workers = 1
	}
	return &Pool[T, R]{workers: workers, fn: fn}
}

// Run processes every item and returns results in item order. Items are
// still handed to fn after ctx is done; fn is expected to observe ctx.
func (p *Pool[T, R]) Run(ctx context.Context, items []T) []R {
	results := make([]R, len(items))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < min(p.workers, len(items)); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = p.fn(ctx, items[i])
			}
		}()
	}

	for i := range items {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}
