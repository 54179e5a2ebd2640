// Package workerpool fans ledger reads out over a bounded set of goroutines.
package workerpool

import (
	"context"
	"sync"
	"sync/atomic"
)

// Process calls process for every item on at most workerCount goroutines.
// The first failure cancels the remaining work, invokes onCancel once and is
// returned. A canceled parent context yields its error.
func Process[T any](
	ctx context.Context,
	workerCount int,
	items []T,
	process func(context.Context, T) error,
	onCancel func(),
) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if workerCount < 1 {
		workerCount = 1
	}
	if workerCount > len(items) && len(items) > 0 {
		workerCount = len(items)
	}

	var (
		next     atomic.Int64
		failOnce sync.Once
		firstErr error
		wg       sync.WaitGroup
	)
	fail := func(err error) {
		failOnce.Do(func() {
			firstErr = err
			if onCancel != nil {
				onCancel()
			}
			cancel()
		})
	}

	for w := 0; w < workerCount; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ctx.Err() == nil {
				i := int(next.Add(1) - 1)
				if i >= len(items) {
					return
				}
				if err := process(ctx, items[i]); err != nil {
					fail(err)
					return
				}
			}
		}()
	}
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}
	return ctx.Err()
}

// Map applies fn to every item on workerCount workers and returns the results
// in input order. The first error stops the pool.
func Map[T, R any](ctx context.Context, workerCount int, items []T, fn func(context.Context, T) (R, error)) ([]R, error) {
	idx := make([]int, len(items))
	for i := range idx {
		idx[i] = i
	}
	out := make([]R, len(items))
	err := Process(ctx, workerCount, idx, func(ctx context.Context, i int) error {
		r, err := fn(ctx, items[i])
		if err != nil {
			return err
		}
		out[i] = r
		return nil
	}, nil)
	if err != nil {
		return nil, err
	}
	return out, nil
}
