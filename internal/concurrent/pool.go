package concurrent

import (
	"context"
	"runtime"
	"sync"

	"github.com/cancelei/aria-lang-sub001/internal/config"
	"golang.org/x/sync/semaphore"
)

// Pool is a bounded worker pool: Spawn never runs more than maxConcurrency
// task bodies at once, queuing the rest, mirroring the original runtime's
// global thread pool (a fixed set of worker threads tasks are submitted to
// rather than each task getting a dedicated OS thread).
type Pool struct {
	sem *semaphore.Weighted
}

// NewPool returns a pool that runs at most maxConcurrency tasks at a time.
// maxConcurrency <= 0 means GOMAXPROCS.
func NewPool(maxConcurrency int) *Pool {
	if maxConcurrency <= 0 {
		maxConcurrency = runtime.GOMAXPROCS(0)
	}
	return &Pool{sem: semaphore.NewWeighted(int64(maxConcurrency))}
}

// NewPoolFromConfig sizes a pool from config.Options.WorkerPoolSize (0
// means GOMAXPROCS, config's own documented convention).
func NewPoolFromConfig(o *config.Options) *Pool {
	return NewPool(o.WorkerPoolSize)
}

// Spawn runs task on a new goroutine that first waits for a free slot; the
// caller is never blocked, neither for the slot nor for the task itself.
func (p *Pool) Spawn(task func()) {
	go func() {
		if err := p.sem.Acquire(context.Background(), 1); err != nil {
			return
		}
		defer p.sem.Release(1)
		task()
	}()
}

var (
	globalPool     *Pool
	globalPoolOnce sync.Once
)

// GlobalPool returns the process-wide default pool, sized to GOMAXPROCS on
// first use.
func GlobalPool() *Pool {
	globalPoolOnce.Do(func() {
		globalPool = NewPool(0)
	})
	return globalPool
}

// SetGlobalPool replaces the process-wide default pool, e.g. to size it
// from config.Options.WorkerPoolSize at startup.
func SetGlobalPool(p *Pool) {
	globalPool = p
	globalPoolOnce.Do(func() {})
}
