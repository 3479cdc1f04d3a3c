/*
Package pool implements the two FIFO-ordered, CPU-bound work pools the
Stage Executor schedules onto: a "worker" pool (default parallelism =
runtime.NumCPU(), used for crop, finish, and decode work) and an "upscaling" pool
(configurable parallelism, default 1, bounding the external upscaler's
concurrency independently of CPU-bound work). Both are built on
golang.org/x/sync/semaphore so that submission order is preserved as
closely as a bounded pool allows, without needing a dedicated scheduler.
*/
package pool

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/wallsync/wallsync/closing"
)

// FIFO is a bounded pool that runs a batch of tasks with parallelism workers
// at a time, submitted and (as far as the semaphore's fairness allows)
// started in order. Run blocks until every task in the batch has finished.
type FIFO struct {
	sem      *semaphore.Weighted
	closing  *closing.Flag
	onPanic  func(recovered interface{})
}

// New returns a FIFO pool with the given parallelism (must be >= 1) that
// closes cf if any task panics.
func New(parallelism int, cf *closing.Flag) *FIFO {
	if parallelism < 1 {
		parallelism = 1
	}
	return &FIFO{
		sem:     semaphore.NewWeighted(int64(parallelism)),
		closing: cf,
		onPanic: func(r interface{}) {
			cf.Close()
		},
	}
}

// OnPanic overrides the pool's panic handler, e.g. to log it, still
// expected to call Close on the pool's closing flag.
func (p *FIFO) OnPanic(f func(recovered interface{})) {
	p.onPanic = f
}

// Run submits every task in fns, in order, blocking until all have
// completed. A task that panics is recovered, reported via the pool's
// panic handler, and does not prevent the remaining tasks from running —
// they're expected to check the closing flag themselves and exit quickly.
func (p *FIFO) Run(ctx context.Context, fns ...func()) {
	var wg sync.WaitGroup
	for _, fn := range fns {
		if err := p.sem.Acquire(ctx, 1); err != nil {
			// Context cancelled; nothing more can be scheduled.
			break
		}
		wg.Add(1)
		go func(fn func()) {
			defer wg.Done()
			defer p.sem.Release(1)
			defer func() {
				if r := recover(); r != nil {
					p.onPanic(fmt.Errorf("panic in pool task: %v", r))
				}
			}()
			fn()
		}(fn)
	}
	wg.Wait()
}
