package pipeline

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Analyzer processes one manuscript file.
type Analyzer func(ctx context.Context, path string) error

// AnalyzeFiles runs fn over every path with at most workers running at once.
// Per-file failures are collected and returned; they do not stop the batch.
// Only context cancellation ends the batch early.
func AnalyzeFiles(ctx context.Context, paths []string, workers int, fn Analyzer) []error {
	if len(paths) == 0 || fn == nil {
		return nil
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
		if workers < 1 {
			workers = 1
		}
	}

	var mu sync.Mutex
	var failures []error

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, path := range paths {
		path := path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := fn(ctx, path); err != nil {
				mu.Lock()
				failures = append(failures, fmt.Errorf("%s: %w", path, err))
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		mu.Lock()
		failures = append(failures, err)
		mu.Unlock()
	}
	return failures
}
