// Package parallel runs independent jobs on a bounded number of goroutines.
package parallel

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Pool limits how many jobs run at once. Jobs are queued with Go and the pool
// is drained with Wait.
type Pool struct {
	group   *errgroup.Group
	ctx     context.Context
	workers int
}

// Start creates a pool of numWorkers. Fewer than one worker means GOMAXPROCS.
//
// The first job error cancels the context handed to running jobs, and jobs
// that have not started yet are skipped.
func Start(ctx context.Context, numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(numWorkers)
	return &Pool{group: group, ctx: gctx, workers: numWorkers}
}

// Workers returns the concurrency limit of the pool.
func (p *Pool) Workers() int {
	return p.workers
}

// Go schedules f, blocking while the pool is full.
func (p *Pool) Go(f func(ctx context.Context) error) {
	p.group.Go(func() error {
		if err := p.ctx.Err(); err != nil {
			return err
		}
		return f(p.ctx)
	})
}

// Wait blocks until every scheduled job is done and returns the first error.
func (p *Pool) Wait() error {
	return p.group.Wait()
}
