package task

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"
)

// Executor supplies execution resources at suspension points. Execute
// must not block the caller; the function runs on some other goroutine.
type Executor interface {
	Execute(fn func())
}

// Observer receives lifecycle hooks from a Pool. Implementations must be
// safe for concurrent use; observe/prom provides a Prometheus-backed one.
type Observer interface {
	TaskStarted()
	TaskFinished(dur time.Duration)
}

// PoolOption configures a Pool.
type PoolOption func(*poolOptions)

type poolOptions struct {
	maxConcurrency int
	observer       Observer
}

// WithMaxConcurrency bounds the number of tasks executing at once.
// Zero (the default) means unbounded.
func WithMaxConcurrency(n int) PoolOption {
	return func(o *poolOptions) { o.maxConcurrency = n }
}

// WithObserver registers a lifecycle observer on the pool.
func WithObserver(obs Observer) PoolOption {
	return func(o *poolOptions) { o.observer = obs }
}

// Pool is a goroutine-per-task Executor, optionally bounded by a
// weighted semaphore. Submission never blocks the caller: a task waits
// for its slot on its own goroutine.
type Pool struct {
	sem *semaphore.Weighted
	obs Observer
	wg  sync.WaitGroup

	started  atomic.Int64
	finished atomic.Int64
	active   atomic.Int64
}

// PoolStats is a point-in-time snapshot of pool activity.
type PoolStats struct {
	Started  int64
	Finished int64
	Active   int64
}

// NewPool creates a Pool.
func NewPool(optFns ...PoolOption) *Pool {
	var o poolOptions
	for _, fn := range optFns {
		fn(&o)
	}
	p := &Pool{obs: o.observer}
	if o.maxConcurrency > 0 {
		p.sem = semaphore.NewWeighted(int64(o.maxConcurrency))
	}
	return p
}

// Execute runs fn on its own goroutine, waiting there for a concurrency
// slot when the pool is bounded.
func (p *Pool) Execute(fn func()) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		if p.sem != nil {
			if err := p.sem.Acquire(context.Background(), 1); err != nil {
				return
			}
			defer p.sem.Release(1)
		}
		start := time.Now()
		p.started.Add(1)
		p.active.Add(1)
		if p.obs != nil {
			p.obs.TaskStarted()
		}
		defer func() {
			p.active.Add(-1)
			p.finished.Add(1)
			if p.obs != nil {
				p.obs.TaskFinished(time.Since(start))
			}
		}()
		fn()
	}()
}

// Wait blocks until every task submitted so far has finished. It is a
// join point, not a shutdown: the pool remains usable afterwards.
func (p *Pool) Wait() {
	p.wg.Wait()
}

// Stats returns a snapshot of the pool's counters. Safe to call
// concurrently.
func (p *Pool) Stats() PoolStats {
	return PoolStats{
		Started:  p.started.Load(),
		Finished: p.finished.Load(),
		Active:   p.active.Load(),
	}
}

type execBox struct{ e Executor }

var (
	defaultOnce sync.Once
	defaultExec atomic.Pointer[execBox]
)

// Default returns the process-wide executor used when a construction
// call names none. It is created once, owned by the hosting process, and
// never torn down by this package.
func Default() Executor {
	defaultOnce.Do(func() {
		defaultExec.CompareAndSwap(nil, &execBox{e: NewPool()})
	})
	return defaultExec.Load().e
}

// SetDefault replaces the process-wide executor. Intended for program
// startup; runs already dispatched keep their original executor.
func SetDefault(e Executor) {
	if e != nil {
		defaultExec.Store(&execBox{e: e})
	}
}
