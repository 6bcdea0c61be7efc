// Package worker runs evaluator calls and file analyses concurrently.
package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"
)

// DefaultBatchSize is the number of calls issued together per batch
const DefaultBatchSize = 5

// RunBatches calls fn for every item in fixed-size batches. All calls in a
// batch run concurrently and the next batch starts only after the whole
// batch finished. The first error cancels the rest of its batch, no further
// batch is started, and no results are returned. Results keep item order.
func RunBatches[T, R any](ctx context.Context, items []T, size int, fn func(ctx context.Context, item T) (R, error)) ([]R, error) {
	if size <= 0 {
		size = DefaultBatchSize
	}

	results := make([]R, len(items))
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))

		g, gctx := errgroup.WithContext(ctx)
		for i := start; i < end; i++ {
			i := i
			g.Go(func() error {
				r, err := fn(gctx, items[i])
				if err != nil {
					return err
				}
				results[i] = r
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
	return results, nil
}

// Batches reports how many batches RunBatches issues for n items
func Batches(n, size int) int {
	if size <= 0 {
		size = DefaultBatchSize
	}
	return (n + size - 1) / size
}

// ReadPathsFromFile reads file paths from a list file (one per line).
// Empty lines and '#' comments are skipped and duplicates dropped.
func ReadPathsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return paths, nil
}
