package task

import "sync/atomic"

// completion is a one-shot cell holding the Result of a computation that
// may complete after interest in it was registered. The first complete
// call publishes the result and closes done; later calls are no-ops.
// Publish-then-close gives the happens-before edge for awaiters.
type completion[A any] struct {
	done chan struct{}
	res  Result[A]
	once atomic.Bool
}

func newCompletion[A any]() *completion[A] {
	return &completion[A]{done: make(chan struct{})}
}

func (p *completion[A]) complete(r Result[A]) {
	if p.once.CompareAndSwap(false, true) {
		p.res = r
		close(p.done)
	}
}

// await delivers the cell's result to cb, synchronously when already
// complete, otherwise from a waiter goroutine. Delivery is skipped once
// c is cancelled.
func (p *completion[A]) await(c *Cancel, cb func(Result[A])) {
	select {
	case <-p.done:
		if !c.Cancelled() {
			cb(p.res)
		}
	default:
		go func() {
			<-p.done
			if !c.Cancelled() {
				cb(p.res)
			}
		}()
	}
}

// task wraps the cell as a runnable Task, the form residual computations
// take after ChooseAny picks a winner.
func (p *completion[A]) task() Task[A] {
	return Task[A]{run: p.await}
}
