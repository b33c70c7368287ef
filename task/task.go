package task

// Task is an immutable description of a deferred computation that, when
// run, produces a Result[A]. Constructing a Task performs no work and no
// concurrency; all effects happen at run time, and running the same Task
// value twice re-executes them. Use Memoize for single evaluation.
//
// A run advances synchronously on the calling goroutine until a
// suspension point (a handoff to an Executor or an Async registration);
// completion may therefore be observed on a different goroutine. The
// *Cancel flag is polled at every stepping point; a nil flag means the
// run is not interruptible.
type Task[A any] struct {
	run func(c *Cancel, cb func(Result[A]))
}

// Now returns an already-completed successful task. Running it never
// suspends.
func Now[A any](v A) Task[A] {
	return Task[A]{run: func(c *Cancel, cb func(Result[A])) {
		cb(Ok(v))
	}}
}

// Fail returns an already-completed failing task.
func Fail[A any](err error) Task[A] {
	return Task[A]{run: func(c *Cancel, cb func(Result[A])) {
		cb(Err[A](err))
	}}
}

// Done returns a completed task carrying r as-is.
func Done[A any](r Result[A]) Task[A] {
	return Task[A]{run: func(c *Cancel, cb func(Result[A])) {
		cb(r)
	}}
}

// Delay defers evaluation of fn until the task is run. The evaluation
// happens on the running goroutine; a returned error or a recovered
// panic becomes the task's failure.
func Delay[A any](fn func() (A, error)) Task[A] {
	return Task[A]{run: func(c *Cancel, cb func(Result[A])) {
		if c.Cancelled() {
			return
		}
		cb(protect(fn))
	}}
}

// Suspend defers evaluation of a task-producing expression until run.
// A panic while producing the task becomes the task's failure.
func Suspend[A any](fn func() Task[A]) Task[A] {
	return Task[A]{run: func(c *Cancel, cb func(Result[A])) {
		if c.Cancelled() {
			return
		}
		t, err := protectTask(fn)
		if err != nil {
			cb(Err[A](err))
			return
		}
		t.run(c, cb)
	}}
}

// Apply evaluates fn on an Executor, making the handoff the task's first
// suspension point. With no executor argument the process-wide Default
// pool is used.
func Apply[A any](fn func() (A, error), on ...Executor) Task[A] {
	return Fork(Delay(fn), on...)
}

// Fork shifts t's whole run onto an Executor. The calling goroutine
// returns at the handoff; t's steps and the completion callback execute
// on the executor's goroutine.
func Fork[A any](t Task[A], on ...Executor) Task[A] {
	return Task[A]{run: func(c *Cancel, cb func(Result[A])) {
		pick(on).Execute(func() {
			if c.Cancelled() {
				return
			}
			t.run(c, cb)
		})
	}}
}

// Async adapts a callback-based source. register receives the completion
// callback and must invoke it at most once, from any goroutine. The
// registration itself runs synchronously on the calling goroutine.
func Async[A any](register func(cb func(Result[A]))) Task[A] {
	return Task[A]{run: func(c *Cancel, cb func(Result[A])) {
		register(func(r Result[A]) {
			if c.Cancelled() {
				return
			}
			cb(r)
		})
	}}
}

func pick(on []Executor) Executor {
	if len(on) > 0 && on[0] != nil {
		return on[0]
	}
	return Default()
}

// protect evaluates fn, converting a returned error or a recovered panic
// into a failed Result.
func protect[A any](fn func() (A, error)) (res Result[A]) {
	defer func() {
		if r := recover(); r != nil {
			res = Err[A](newPanicError(r))
		}
	}()
	v, err := fn()
	if err != nil {
		return Err[A](err)
	}
	return Ok(v)
}

func protectTask[A any](fn func() Task[A]) (t Task[A], err error) {
	defer func() {
		if r := recover(); r != nil {
			err = newPanicError(r)
		}
	}()
	return fn(), nil
}
