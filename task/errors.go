package task

import (
	"errors"
	"fmt"
	"runtime"
)

// ErrTimeout is returned by RunFor and AttemptRunFor when the deadline
// elapses before the task completes.
var ErrTimeout = errors.New("task: run timed out")

// PanicError wraps a panic recovered while evaluating a task's thunk,
// together with the goroutine stack captured at the point of the panic.
//
// Only recoverable panics are converted; fatal runtime conditions (out of
// memory, concurrent map writes) terminate the process before recover can
// run and are never boxed into a Result.
type PanicError struct {
	// Value is the original value passed to panic().
	Value any

	// Stack is the goroutine stack trace at the point of panic.
	Stack string
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("task: panic: %v\n\n%s", e.Value, e.Stack)
}

// Unwrap returns the wrapped error when the panic value was itself an
// error, so errors.Is/As keep working through a captured panic.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

func newPanicError(v any) *PanicError {
	// runtime.Stack truncates gracefully if the buffer is too small.
	buf := make([]byte, 8192)
	n := runtime.Stack(buf, false)
	return &PanicError{Value: v, Stack: string(buf[:n])}
}

// IsPanic reports whether err (or any error in its chain) is a *PanicError.
func IsPanic(err error) bool {
	var pe *PanicError
	return errors.As(err, &pe)
}
