// Package errgroup runs sets of tasks on a golang.org/x/sync errgroup,
// for callers that want ordered results and context-based fail-fast
// cancellation instead of the unordered lock-free combinators.
package errgroup

import (
	"context"

	xgroup "golang.org/x/sync/errgroup"

	"github.com/NetPo4ki/go-task/task"
)

// Wait runs every task concurrently under an errgroup derived from ctx
// and returns the values in input order. The first failure cancels the
// group context, which sets the cooperative flag of every sibling run,
// and is returned after all goroutines have settled.
func Wait[A any](ctx context.Context, tasks []task.Task[A]) ([]A, error) {
	return run(ctx, 0, tasks)
}

// WaitLimit is Wait with at most n tasks in flight at once.
func WaitLimit[A any](ctx context.Context, n int, tasks []task.Task[A]) ([]A, error) {
	return run(ctx, n, tasks)
}

func run[A any](ctx context.Context, limit int, tasks []task.Task[A]) ([]A, error) {
	g, gctx := xgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	results := make([]A, len(tasks))
	for i, t := range tasks {
		i, t := i, t
		g.Go(func() error {
			v, err := t.RunContext(gctx)
			if err != nil {
				return err
			}
			results[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
