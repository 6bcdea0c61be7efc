package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestRunBatches_PreservesOrder(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	results, err := RunBatches(context.Background(), items, 3, func(ctx context.Context, n int) (int, error) {
		// later items finish first within a batch
		time.Sleep(time.Duration(10-n) * time.Millisecond)
		return n * n, nil
	})
	if err != nil {
		t.Fatalf("RunBatches failed: %v", err)
	}

	for i, n := range items {
		if results[i] != n*n {
			t.Errorf("result %d: expected %d, got %d", i, n*n, results[i])
		}
	}
}

func TestRunBatches_BatchBoundaries(t *testing.T) {
	var (
		mu        sync.Mutex
		inFlight  int
		maxFlight int
		batchOf   = make(map[int]int)
		running   = make(map[int]bool)
	)
	items := make([]int, 12)
	for i := range items {
		items[i] = i
	}

	_, err := RunBatches(context.Background(), items, 5, func(ctx context.Context, n int) (struct{}, error) {
		mu.Lock()
		inFlight++
		maxFlight = max(maxFlight, inFlight)
		running[n] = true
		// no item of an earlier batch may still be running
		for other := range running {
			if other/5 < n/5 {
				t.Errorf("item %d started while item %d of an earlier batch was running", n, other)
			}
		}
		batchOf[n] = n / 5
		mu.Unlock()

		time.Sleep(5 * time.Millisecond)

		mu.Lock()
		inFlight--
		delete(running, n)
		mu.Unlock()
		return struct{}{}, nil
	})
	if err != nil {
		t.Fatalf("RunBatches failed: %v", err)
	}

	if maxFlight > 5 {
		t.Errorf("expected at most 5 concurrent calls, got %d", maxFlight)
	}
	if len(batchOf) != 12 {
		t.Errorf("expected 12 calls, got %d", len(batchOf))
	}
}

func TestRunBatches_FailFast(t *testing.T) {
	boom := errors.New("evaluator down")
	var calls int32

	results, err := RunBatches(context.Background(), []int{0, 1, 2, 3, 4, 5, 6, 7}, 4, func(ctx context.Context, n int) (int, error) {
		atomic.AddInt32(&calls, 1)
		if n == 2 {
			return 0, boom
		}
		return n, nil
	})

	if !errors.Is(err, boom) {
		t.Fatalf("expected evaluator error, got %v", err)
	}
	if results != nil {
		t.Errorf("expected no partial results, got %v", results)
	}
	if got := atomic.LoadInt32(&calls); got != 4 {
		t.Errorf("expected only the first batch to run (4 calls), got %d", got)
	}
}

func TestRunBatches_ErrorCancelsBatchContext(t *testing.T) {
	boom := errors.New("boom")

	_, err := RunBatches(context.Background(), []int{0, 1}, 2, func(ctx context.Context, n int) (int, error) {
		if n == 0 {
			return 0, boom
		}
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-time.After(2 * time.Second):
			t.Error("sibling call was not cancelled")
			return n, nil
		}
	})
	if !errors.Is(err, boom) {
		t.Errorf("expected first error to be reported, got %v", err)
	}
}

func TestRunBatches_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := RunBatches(ctx, []int{1, 2, 3}, 5, func(ctx context.Context, n int) (int, error) {
		return n, nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRunBatches_Empty(t *testing.T) {
	results, err := RunBatches(context.Background(), []string{}, 5, func(ctx context.Context, s string) (string, error) {
		t.Error("fn should not be called")
		return s, nil
	})
	if err != nil || len(results) != 0 {
		t.Errorf("expected empty results, got %v, %v", results, err)
	}
}

func TestBatches(t *testing.T) {
	cases := []struct{ n, size, want int }{
		{0, 5, 0}, {1, 5, 1}, {5, 5, 1}, {6, 5, 2}, {11, 0, 3},
	}
	for _, c := range cases {
		if got := Batches(c.n, c.size); got != c.want {
			t.Errorf("Batches(%d, %d) = %d, want %d", c.n, c.size, got, c.want)
		}
	}
}

func TestReadPathsFromFile(t *testing.T) {
	list := filepath.Join(t.TempDir(), "files.txt")
	content := "# translation memories\nmem/a.tmx\n\n  strings/b.xlf  \nmem/a.tmx\n"
	if err := os.WriteFile(list, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	paths, err := ReadPathsFromFile(list)
	if err != nil {
		t.Fatalf("ReadPathsFromFile failed: %v", err)
	}

	want := []string{"mem/a.tmx", "strings/b.xlf"}
	if len(paths) != len(want) {
		t.Fatalf("expected %v, got %v", want, paths)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("path %d: expected %s, got %s", i, want[i], paths[i])
		}
	}
}

func TestReadPathsFromFile_NonExistent(t *testing.T) {
	if _, err := ReadPathsFromFile(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}
