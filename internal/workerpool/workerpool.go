// Package workerpool provides a bounded parallel-for helper built on
// golang.org/x/sync/errgroup, used by the three pipeline stages that
// §5 calls out as safe to run per-item in parallel: per-wedge point
// cloud construction (§4.1), orbital-to-surface NN pairing (§4.12
// Pass 1), and orbital-to-surface sewing (§4.12 Pass 2).
package workerpool

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Limit returns the default parallelism ceiling: GOMAXPROCS, with a
// floor of 1 so single-core environments still make progress.
func Limit() int {
	if n := runtime.GOMAXPROCS(0); n > 0 {
		return n
	}
	return 1
}

// Run executes fn(i) for i in [0, n) with at most Limit() concurrent
// calls, returning the first error encountered. If any call returns an
// error, Run cancels the context passed to not-yet-started calls and
// returns that error once all in-flight calls finish.
func Run(ctx context.Context, n int, fn func(ctx context.Context, i int) error) error {
	return RunWithLimit(ctx, n, Limit(), fn)
}

// RunWithLimit is Run with an explicit concurrency cap, used by
// callers that want to reserve some cores (e.g. to leave headroom for
// a concurrently running external reconstructor process, §6).
func RunWithLimit(ctx context.Context, n, limit int, fn func(ctx context.Context, i int) error) error {
	if n == 0 {
		return nil
	}
	if limit < 1 {
		limit = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			return fn(gctx, i)
		})
	}
	return g.Wait()
}
