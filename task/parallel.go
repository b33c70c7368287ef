package task

import "sync/atomic"

// Choice is the outcome of ChooseAny: the first-observed completion at
// value level, plus the not-yet-won computations wrapped as tasks that
// remain independently runnable or discardable.
type Choice[A any] struct {
	Winner Result[A]
	Rest   []Task[A]
}

// ChooseAny races tasks and completes with the first completion observed,
// success or failure alike: a participant's own failure is just a value
// to the race. Which of two simultaneous completions wins is whatever
// the race resolves first; no ordering is promised.
//
// The losers keep running; their eventual results are captured in the
// returned residual tasks. ChooseAny panics if tasks is empty.
func ChooseAny[A any](tasks []Task[A]) Task[Choice[A]] {
	if len(tasks) == 0 {
		panic("task: ChooseAny requires at least one task")
	}
	return Task[Choice[A]]{run: func(c *Cancel, cb func(Result[Choice[A]])) {
		cells := make([]*completion[A], len(tasks))
		for i := range cells {
			cells[i] = newCompletion[A]()
		}
		var won atomic.Bool
		for i, t := range tasks {
			i, t := i, t
			t.run(c, func(r Result[A]) {
				cells[i].complete(r)
				if !won.CompareAndSwap(false, true) {
					return
				}
				if c.Cancelled() {
					return
				}
				rest := make([]Task[A], 0, len(tasks)-1)
				for j := range cells {
					if j != i {
						rest = append(rest, cells[j].task())
					}
				}
				cb(Ok(Choice[A]{Winner: r, Rest: rest}))
			})
		}
	}}
}

// GatherUnordered runs every task concurrently and completes with all
// collected values, in no particular order, or with the first-reported
// failure. The overall callback fires exactly once.
//
// With cancelOnFailure set, the participants share a cancellation flag
// that the failure reporter sets, so tasks not yet past a suspension
// point stop advancing; work already mid-flight on an executor is not
// forcibly aborted.
func GatherUnordered[A any](tasks []Task[A], cancelOnFailure bool) Task[[]A] {
	switch len(tasks) {
	case 0:
		return Now([]A{})
	case 1:
		return Map(tasks[0], func(v A) []A { return []A{v} })
	}

	return Task[[]A]{run: func(c *Cancel, cb func(Result[[]A])) {
		var (
			remaining atomic.Int64 // completion countdown, N -> 0
			next      atomic.Int64 // collector write index
		)
		remaining.Store(int64(len(tasks)))
		collected := make([]A, len(tasks))

		flag := c
		if cancelOnFailure {
			flag = c.child()
		}

		for _, t := range tasks {
			if flag.Cancelled() {
				return
			}
			t.run(flag, func(r Result[A]) {
				if r.Err != nil {
					// Exclusive failure reporting: CAS the countdown to
					// zero; whoever wins the CAS is the only reporter.
					for {
						n := remaining.Load()
						if n == 0 {
							return
						}
						if remaining.CompareAndSwap(n, 0) {
							if cancelOnFailure {
								flag.Cancel()
							}
							if !c.Cancelled() {
								cb(Err[[]A](r.Err))
							}
							return
						}
					}
				}
				collected[next.Add(1)-1] = r.Value
				for {
					n := remaining.Load()
					if n == 0 {
						// A failure was already reported; this success
						// produces no further observable effect.
						return
					}
					if remaining.CompareAndSwap(n, n-1) {
						if n == 1 && !c.Cancelled() {
							cb(Ok(collected))
						}
						return
					}
				}
			})
		}
	}}
}

// Gather is GatherUnordered without early-exit cancellation, the common
// fan-out case.
func Gather[A any](tasks []Task[A]) Task[[]A] {
	return GatherUnordered(tasks, false)
}
