package task

import (
	"context"
	"time"
)

// Run blocks until t completes and returns its value or error.
func (t Task[A]) Run() (A, error) {
	return t.AttemptRun().Unpack()
}

// MustRun is like Run but panics on failure. It is the strict flavor for
// callers that treat a task error as a programming fault.
func (t Task[A]) MustRun() A {
	v, err := t.Run()
	if err != nil {
		panic(err)
	}
	return v
}

// AttemptRun blocks until t completes and returns the Result directly.
// A panic escaping the synchronous portion of the run (a misbehaving
// Async registration; built-in thunks are already protected) is
// converted into the Result's error instead of propagating.
func (t Task[A]) AttemptRun() Result[A] {
	slot := make(chan Result[A], 1)
	start(slot, func() {
		t.run(nil, func(r Result[A]) { slot <- r })
	})
	return <-slot
}

// RunAsync starts t without blocking past its first suspension point.
// The synchronous prefix executes on the calling goroutine; cb is
// invoked exactly once, from whichever goroutine observes completion.
func (t Task[A]) RunAsync(cb func(Result[A])) {
	t.run(nil, cb)
}

// RunAsyncInterruptibly is like RunAsync but polls c at every stepping
// point. Once the flag is set, stepping stops and cb is never invoked
// for this run: cancellation trades further progress for the completion
// notification.
func (t Task[A]) RunAsyncInterruptibly(cb func(Result[A]), c *Cancel) {
	t.run(c, func(r Result[A]) {
		if c.Cancelled() {
			return
		}
		cb(r)
	})
}

// RunFor blocks up to d and returns the value or error. When the
// deadline elapses first it sets a cooperative cancellation flag for the
// in-flight run and returns ErrTimeout; work already handed to an
// executor is not forcibly aborted.
func (t Task[A]) RunFor(d time.Duration) (A, error) {
	return t.AttemptRunFor(d).Unpack()
}

// AttemptRunFor is RunFor returning the Result directly.
func (t Task[A]) AttemptRunFor(d time.Duration) Result[A] {
	slot := make(chan Result[A], 1)
	c := NewCancel()
	// One-shot rendezvous: the buffered send can never block, and a
	// deposit racing in after the timeout sits unobserved in the slot.
	start(slot, func() {
		t.RunAsyncInterruptibly(func(r Result[A]) {
			select {
			case slot <- r:
			default:
			}
		}, c)
	})

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case r := <-slot:
		return r
	case <-timer.C:
		c.Cancel()
		return Err[A](ErrTimeout)
	}
}

// start runs the synchronous prefix of a run, converting an escaped
// panic into a failure deposited in the rendezvous slot. The deposit is
// non-blocking so a completion that raced in first wins.
func start[A any](slot chan Result[A], fn func()) {
	defer func() {
		if r := recover(); r != nil {
			select {
			case slot <- Err[A](newPanicError(r)):
			default:
			}
		}
	}()
	fn()
}

// RunContext blocks until t completes or ctx is done. Context
// cancellation sets the run's cooperative flag and returns ctx.Err().
func (t Task[A]) RunContext(ctx context.Context) (A, error) {
	slot := make(chan Result[A], 1)
	c := NewCancel()
	t.RunAsyncInterruptibly(func(r Result[A]) {
		select {
		case slot <- r:
		default:
		}
	}, c)

	select {
	case r := <-slot:
		return r.Unpack()
	case <-ctx.Done():
		c.Cancel()
		var zero A
		return zero, ctx.Err()
	}
}
