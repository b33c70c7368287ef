package task

import "sync/atomic"

// Map transforms the success value of t. Errors pass through unchanged
// and f is never invoked for them.
func Map[A, B any](t Task[A], f func(A) B) Task[B] {
	return FlatMap(t, func(v A) Task[B] { return Now(f(v)) })
}

// FlatMap sequences t with a task-producing continuation. On failure the
// error short-circuits directly to the result and f is never invoked. A
// panic inside f becomes the task's failure.
func FlatMap[A, B any](t Task[A], f func(A) Task[B]) Task[B] {
	return Task[B]{run: func(c *Cancel, cb func(Result[B])) {
		t.run(c, func(r Result[A]) {
			if c.Cancelled() {
				return
			}
			if r.Err != nil {
				cb(Err[B](r.Err))
				return
			}
			next, err := protectTask(func() Task[B] { return f(r.Value) })
			if err != nil {
				cb(Err[B](err))
				return
			}
			next.run(c, cb)
		})
	}}
}

// Attempt converts t into a task that always succeeds, its value being
// t's own Result. Attempt itself cannot fail.
//
// Attempt is a package-level function rather than a method: a method
// returning Task[Result[A]] would make Task's own method set instantiate
// itself at ever-deeper element types, which the compiler rejects as an
// instantiation cycle.
func Attempt[A any](t Task[A]) Task[Result[A]] {
	return Task[Result[A]]{run: func(c *Cancel, cb func(Result[Result[A]])) {
		t.run(c, func(r Result[A]) {
			if c.Cancelled() {
				return
			}
			cb(Ok(r))
		})
	}}
}

// Handle recovers selectively from failures. When t fails with an error
// matched by match, the task succeeds with recover(err); an unmatched
// error propagates unchanged, preserving its identity. Successes pass
// through untouched.
func (t Task[A]) Handle(match func(error) bool, recover func(error) A) Task[A] {
	return Task[A]{run: func(c *Cancel, cb func(Result[A])) {
		t.run(c, func(r Result[A]) {
			if c.Cancelled() {
				return
			}
			if r.Err == nil {
				cb(r)
				return
			}
			cb(protect(func() (A, error) {
				if match(r.Err) {
					return recover(r.Err), nil
				}
				var zero A
				return zero, r.Err
			}))
		})
	}}
}

// Or runs t and, only if it fails, runs fallback in full and adopts its
// outcome, whatever the error was. When t succeeds, fallback is never
// run and none of its effects occur.
func (t Task[A]) Or(fallback Task[A]) Task[A] {
	return Task[A]{run: func(c *Cancel, cb func(Result[A])) {
		t.run(c, func(r Result[A]) {
			if c.Cancelled() {
				return
			}
			if r.Err != nil {
				fallback.run(c, cb)
				return
			}
			cb(r)
		})
	}}
}

// OnFinish runs fin after t completes, passing nil on success and the
// error on failure, then yields t's original outcome. A panic raised by
// the finalizer is discarded; the primary outcome always wins.
func (t Task[A]) OnFinish(fin func(err error)) Task[A] {
	return Task[A]{run: func(c *Cancel, cb func(Result[A])) {
		t.run(c, func(r Result[A]) {
			if c.Cancelled() {
				return
			}
			func() {
				defer func() { _ = recover() }()
				fin(r.Err)
			}()
			cb(r)
		})
	}}
}

// Memoize returns a task that evaluates t at most once across all runs
// of the returned value; later runs adopt the cached Result. If the
// first run is cancelled before completing, the memo stays unfulfilled
// and later runs never receive a callback.
func (t Task[A]) Memoize() Task[A] {
	cell := newCompletion[A]()
	var started atomic.Bool
	return Task[A]{run: func(c *Cancel, cb func(Result[A])) {
		if started.CompareAndSwap(false, true) {
			t.run(c, cell.complete)
		}
		cell.await(c, cb)
	}}
}
