package task

// Result holds the outcome of a computation: exactly one of Value or Err
// is meaningful, and Err != nil marks the error case. A Result is
// immutable once produced and is the unit of outcome everywhere in this
// package.
type Result[A any] struct {
	Value A
	Err   error
}

// Ok returns a successful Result carrying v.
func Ok[A any](v A) Result[A] { return Result[A]{Value: v} }

// Err returns a failed Result carrying err.
func Err[A any](err error) Result[A] { return Result[A]{Err: err} }

// Unpack splits the Result into Go's conventional value/error pair.
func (r Result[A]) Unpack() (A, error) { return r.Value, r.Err }

// Failed reports whether the Result carries an error.
func (r Result[A]) Failed() bool { return r.Err != nil }
