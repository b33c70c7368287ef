package task

// Algebra is the capability set an asynchronous, error-aware,
// non-deterministic computation must expose. Generic algorithms accept
// it as an explicit parameter instead of reaching for Task internals, so
// alternative implementations (instrumented, deterministic-for-test) can
// be swapped in. Go interfaces cannot range over type constructors, so
// the contract is fixed at one element type per instantiation.
type Algebra[A any] interface {
	// Point captures a thunk; recoverable evaluation errors become the
	// task's failure.
	Point(fn func() (A, error)) Task[A]

	// Fail is an already-failed computation.
	Fail(err error) Task[A]

	// Bind sequences with error short-circuit.
	Bind(t Task[A], fn func(A) Task[A]) Task[A]

	// Attempt reflects the outcome into the value; it never fails.
	Attempt(t Task[A]) Task[Result[A]]

	// ChooseAny races computations, first completion wins.
	ChooseAny(tasks []Task[A]) Task[Choice[A]]

	// GatherUnordered fans out and collects with exclusive first-failure
	// reporting.
	GatherUnordered(tasks []Task[A], cancelOnFailure bool) Task[[]A]
}

// Std returns the canonical Algebra backed by this package's combinators.
func Std[A any]() Algebra[A] { return stdAlgebra[A]{} }

type stdAlgebra[A any] struct{}

func (stdAlgebra[A]) Point(fn func() (A, error)) Task[A] { return Delay(fn) }
func (stdAlgebra[A]) Fail(err error) Task[A]             { return Fail[A](err) }
func (stdAlgebra[A]) Bind(t Task[A], fn func(A) Task[A]) Task[A] {
	return FlatMap(t, fn)
}
func (stdAlgebra[A]) Attempt(t Task[A]) Task[Result[A]] { return Attempt(t) }
func (stdAlgebra[A]) ChooseAny(tasks []Task[A]) Task[Choice[A]] {
	return ChooseAny(tasks)
}
func (stdAlgebra[A]) GatherUnordered(tasks []Task[A], cancelOnFailure bool) Task[[]A] {
	return GatherUnordered(tasks, cancelOnFailure)
}

// TraverseUnordered applies fn to every item concurrently through the
// given Algebra and collects the results in no particular order. The
// first failure is reported exclusively and, when cancelOnFailure is
// set, stops not-yet-started work.
func TraverseUnordered[A, B any](alg Algebra[B], items []A, fn func(A) (B, error), cancelOnFailure bool, on ...Executor) Task[[]B] {
	tasks := make([]Task[B], len(items))
	for i, item := range items {
		item := item
		tasks[i] = Fork(alg.Point(func() (B, error) { return fn(item) }), on...)
	}
	return alg.GatherUnordered(tasks, cancelOnFailure)
}

// ForEachUnordered is TraverseUnordered for effects only.
func ForEachUnordered[A any](alg Algebra[struct{}], items []A, fn func(A) error, cancelOnFailure bool, on ...Executor) Task[struct{}] {
	wrapped := func(item A) (struct{}, error) { return struct{}{}, fn(item) }
	return Map(TraverseUnordered(alg, items, wrapped, cancelOnFailure, on...), func([]struct{}) struct{} {
		return struct{}{}
	})
}
