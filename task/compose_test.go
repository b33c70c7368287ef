package task

import (
	"errors"
	"sync/atomic"
	"testing"
)

func TestFlatMapShortCircuits(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	var called atomic.Int32
	tk := FlatMap(Fail[int](boom), func(int) Task[int] {
		called.Add(1)
		return Now(0)
	})
	if _, err := tk.Run(); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if called.Load() != 0 {
		t.Fatal("continuation must not run after a failure")
	}
}

func TestAttemptNeverFails(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")

	r := Attempt(Fail[int](boom)).AttemptRun()
	if r.Err != nil {
		t.Fatalf("attempt itself failed: %v", r.Err)
	}
	if !errors.Is(r.Value.Err, boom) {
		t.Fatalf("attempt should reflect the failure, got %v", r.Value)
	}

	r = Attempt(Now(3)).AttemptRun()
	if r.Err != nil || r.Value.Err != nil || r.Value.Value != 3 {
		t.Fatalf("attempt of a success: got %+v", r)
	}
}

func TestAttemptNestsAcrossElementTypes(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	// Reflecting an already-reflected task instantiates the combinators
	// at a deeper element type; both layers must stay inert successes.
	r := Attempt(Attempt(Fail[int](boom))).AttemptRun()
	if r.Err != nil || r.Value.Err != nil {
		t.Fatalf("nested attempt must not fail: %+v", r)
	}
	if !errors.Is(r.Value.Value.Err, boom) {
		t.Fatalf("inner failure lost: %+v", r.Value.Value)
	}
}

func TestCompositionOperatorsChain(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	var finished atomic.Int32
	tk := Map(
		FlatMap(Fail[int](boom), func(v int) Task[int] { return Now(v) }).
			Handle(func(err error) bool { return errors.Is(err, boom) }, func(error) int { return 1 }).
			Or(Now(2)).
			OnFinish(func(error) { finished.Add(1) }),
		func(v int) int { return v * 10 },
	)
	if v, err := tk.Run(); err != nil || v != 10 {
		t.Fatalf("got (%d, %v)", v, err)
	}
	if finished.Load() != 1 {
		t.Fatalf("finalizer ran %d times", finished.Load())
	}
}

func TestHandleMatched(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	tk := Fail[int](boom).Handle(
		func(err error) bool { return errors.Is(err, boom) },
		func(error) int { return -1 },
	)
	if v, err := tk.Run(); err != nil || v != -1 {
		t.Fatalf("got (%d, %v)", v, err)
	}
}

func TestHandleUnmatchedPreservesIdentity(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	tk := Fail[int](boom).Handle(
		func(error) bool { return false },
		func(error) int { return -1 },
	)
	_, err := tk.Run()
	if err != boom {
		t.Fatalf("unmatched error must propagate unwrapped; got %v", err)
	}
}

func TestHandlePassesSuccessThrough(t *testing.T) {
	t.Parallel()
	tk := Now(8).Handle(func(error) bool { return true }, func(error) int { return -1 })
	if v, err := tk.Run(); err != nil || v != 8 {
		t.Fatalf("got (%d, %v)", v, err)
	}
}

func TestOrFallsBackOnFailure(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	if v, err := Fail[int](boom).Or(Now(5)).Run(); err != nil || v != 5 {
		t.Fatalf("got (%d, %v)", v, err)
	}
}

func TestOrFallbackAdoptsAnyError(t *testing.T) {
	t.Parallel()
	first := errors.New("first")
	second := errors.New("second")
	_, err := Fail[int](first).Or(Fail[int](second)).Run()
	if !errors.Is(err, second) {
		t.Fatalf("fallback outcome should be adopted, got %v", err)
	}
}

func TestOrSkipsFallbackOnSuccess(t *testing.T) {
	t.Parallel()
	var effects atomic.Int32
	fallback := Delay(func() (int, error) {
		effects.Add(1)
		return 0, nil
	})
	if v, err := Now(5).Or(fallback).Run(); err != nil || v != 5 {
		t.Fatalf("got (%d, %v)", v, err)
	}
	if effects.Load() != 0 {
		t.Fatal("fallback side effects must not occur when the primary succeeds")
	}
}

func TestOnFinishSeesNilOnSuccess(t *testing.T) {
	t.Parallel()
	var seen atomic.Value
	tk := Now(1).OnFinish(func(err error) { seen.Store(err == nil) })
	if v, err := tk.Run(); err != nil || v != 1 {
		t.Fatalf("got (%d, %v)", v, err)
	}
	if got, _ := seen.Load().(bool); !got {
		t.Fatal("finalizer should observe a nil error on success")
	}
}

func TestOnFinishSeesError(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	var seen atomic.Value
	tk := Fail[int](boom).OnFinish(func(err error) { seen.Store(err) })
	if _, err := tk.Run(); !errors.Is(err, boom) {
		t.Fatalf("primary outcome lost: %v", err)
	}
	if got, _ := seen.Load().(error); !errors.Is(got, boom) {
		t.Fatalf("finalizer saw %v", got)
	}
}

func TestOnFinishDiscardsFinalizerPanic(t *testing.T) {
	t.Parallel()
	tk := Now(4).OnFinish(func(error) { panic("finalizer blew up") })
	if v, err := tk.Run(); err != nil || v != 4 {
		t.Fatalf("finalizer failure must not override the outcome; got (%d, %v)", v, err)
	}
}
