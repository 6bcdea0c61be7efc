package worker

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewPool(t *testing.T) {
	p1 := NewPool(5, func(ctx context.Context, s string) string { return s })
	if p1.workers != 5 {
		t.Errorf("expected 5 workers, got %d", p1.workers)
	}

	p2 := NewPool(0, func(ctx context.Context, s string) string { return s })
	if p2.workers != 1 {
		t.Errorf("expected 1 worker for invalid input, got %d", p2.workers)
	}
}

func TestPool_OrderedResults(t *testing.T) {
	items := make([]int, 25)
	for i := range items {
		items[i] = i
	}

	pool := NewPool(4, func(ctx context.Context, n int) string {
		time.Sleep(time.Duration(n%3) * time.Millisecond)
		return fmt.Sprintf("item-%d", n)
	})
	results := pool.Run(context.Background(), items)

	if len(results) != len(items) {
		t.Fatalf("expected %d results, got %d", len(items), len(results))
	}
	for i, r := range results {
		if r != fmt.Sprintf("item-%d", i) {
			t.Errorf("result %d out of order: %s", i, r)
		}
	}
}

func TestPool_Concurrency(t *testing.T) {
	var inFlight, maxFlight int32

	pool := NewPool(3, func(ctx context.Context, n int) int {
		cur := atomic.AddInt32(&inFlight, 1)
		for {
			old := atomic.LoadInt32(&maxFlight)
			if cur <= old || atomic.CompareAndSwapInt32(&maxFlight, old, cur) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return n
	})
	pool.Run(context.Background(), make([]int, 12))

	if got := atomic.LoadInt32(&maxFlight); got > 3 {
		t.Errorf("expected at most 3 concurrent jobs, got %d", got)
	}
}

func TestPool_Empty(t *testing.T) {
	pool := NewPool(2, func(ctx context.Context, n int) int { return n })
	if results := pool.Run(context.Background(), nil); len(results) != 0 {
		t.Errorf("expected no results, got %v", results)
	}
}

func TestPool_PassesContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pool := NewPool(2, func(ctx context.Context, n int) error { return ctx.Err() })
	for i, err := range pool.Run(ctx, []int{1, 2, 3}) {
		if err == nil {
			t.Errorf("item %d: expected cancelled context to reach fn", i)
		}
	}
}
