package deferred

import (
	"errors"
	"math"
	"testing"

	"github.com/comalice/hostanim/easing"
)

func TestSettlesExactlyOnce(t *testing.T) {
	d := New[int](nil)
	d.Resolve(5)
	d.Reject(errors.New("x"))
	d.Cancel(9)

	if !d.Resolved() || d.Rejected() || d.Cancelled() {
		t.Fatalf("status = %v, want resolved", d.Status())
	}
	if d.Value() != 5 {
		t.Errorf("value = %d, want 5", d.Value())
	}
	if d.Err() != nil {
		t.Errorf("err = %v, want nil", d.Err())
	}
}

func TestHooks(t *testing.T) {
	tests := []struct {
		name   string
		settle func(d *Deferred[int])
		want   string
	}{
		{"resolve", func(d *Deferred[int]) { d.Resolve(1) }, "resolve"},
		{"reject", func(d *Deferred[int]) { d.Reject(nil) }, "reject"},
		{"cancel", func(d *Deferred[int]) { d.Cancel(1) }, "cancel"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls []string
			d := New[int](nil,
				WithOnResolve(func(int) { calls = append(calls, "resolve") }),
				WithOnReject[int](func(error) { calls = append(calls, "reject") }),
				WithOnCancel(func(int) { calls = append(calls, "cancel") }),
			)
			d.Then(func(*Deferred[int]) { calls = append(calls, "then") })

			tt.settle(d)
			tt.settle(d)

			if len(calls) != 2 || calls[0] != tt.want || calls[1] != "then" {
				t.Errorf("calls = %v, want [%s then]", calls, tt.want)
			}
		})
	}
}

func TestRejectNilUsesSentinel(t *testing.T) {
	d := New[int](nil)
	d.Reject(nil)
	if !errors.Is(d.Err(), ErrRejected) {
		t.Errorf("err = %v, want ErrRejected", d.Err())
	}
	if _, err := Cancelled(1).Result(); !errors.Is(err, ErrCancelled) {
		t.Errorf("Result err = %v, want ErrCancelled", err)
	}
}

func TestThenAfterSettleRunsImmediately(t *testing.T) {
	ran := false
	Resolved("v").Then(func(d *Deferred[string]) {
		ran = d.Value() == "v"
	})
	if !ran {
		t.Error("Then on a settled deferred should run immediately")
	}
}

func TestExecuteOnlyWhilePending(t *testing.T) {
	calls := 0
	d := New(func(d *Deferred[int], delta float64) {
		calls++
		if delta >= 10 {
			d.Resolve(int(delta))
		}
	})

	d.Execute(1)
	d.Execute(10)
	d.Execute(20)

	if calls != 2 {
		t.Errorf("executor ran %d times, want 2", calls)
	}
	if d.Value() != 10 {
		t.Errorf("value = %d, want 10", d.Value())
	}
}

func TestAllCancelPropagatesToSiblings(t *testing.T) {
	p1 := Resolved[any](5)
	p2 := New[any](nil)
	p3 := New[any](nil)
	p4 := New[any](nil)

	all := All([]Awaitable{p1, p2, p3, p4})
	p3.Cancel("X")

	if !all.Cancelled() || all.Value() != "X" {
		t.Fatalf("all = %v/%v, want cancelled/X", all.Status(), all.Value())
	}
	for i, p := range []*Deferred[any]{p2, p4} {
		if !p.Cancelled() || p.Value() != "X" {
			t.Errorf("sibling %d = %v/%v, want cancelled/X", i, p.Status(), p.Value())
		}
	}
	if !p1.Resolved() || p1.Value() != 5 {
		t.Errorf("p1 = %v/%v, want resolved/5", p1.Status(), p1.Value())
	}
}

func TestAllRejectPropagatesToSiblings(t *testing.T) {
	boom := errors.New("boom")
	a := New[int](nil)
	b := New[string](nil)

	all := All([]Awaitable{a, b})
	a.Reject(boom)

	if !errors.Is(all.Err(), boom) {
		t.Fatalf("all err = %v, want boom", all.Err())
	}
	if !errors.Is(b.Err(), boom) {
		t.Errorf("sibling err = %v, want boom", b.Err())
	}
}

func TestAllResolvesWhenEveryInputResolves(t *testing.T) {
	a := New[int](nil)
	b := New[string](nil)

	all := All([]Awaitable{a, Value(3), b})
	a.Resolve(1)
	if !all.Pending() {
		t.Fatal("all settled before every input resolved")
	}
	b.Resolve("two")

	values, ok := all.Value().([]any)
	if !all.Resolved() || !ok {
		t.Fatalf("all = %v, want resolved []any", all.Status())
	}
	if values[0] != 1 || values[1] != 3 || values[2] != "two" {
		t.Errorf("values = %v", values)
	}
}

func TestAllEmptyResolves(t *testing.T) {
	if all := All(nil); !all.Resolved() {
		t.Errorf("All(nil) = %v, want resolved", all.Status())
	}
}

func TestJoinSettleFlowsBackToInputs(t *testing.T) {
	play := NewSignal(nil)
	weight := NewSignal(nil)
	finish := Join([]Awaitable{play, weight})

	finish.Cancel(struct{}{})

	if !play.Cancelled() || !weight.Cancelled() {
		t.Errorf("inputs = %v/%v, want cancelled", play.Status(), weight.Status())
	}

	play = NewSignal(nil)
	weight = NewSignal(nil)
	finish = Join([]Awaitable{play, weight})
	finish.Resolve(struct{}{})
	if !play.Resolved() || !weight.Resolved() {
		t.Errorf("inputs = %v/%v, want resolved", play.Status(), weight.Status())
	}
}

func TestJoinHookRunsAfterPropagation(t *testing.T) {
	a := NewSignal(nil)
	b := NewSignal(nil)
	var sawBResolved bool
	Join([]Awaitable{a, b}, WithOnResolve(func(struct{}) {
		sawBResolved = b.Resolved()
	})).Resolve(struct{}{})

	if !sawBResolved {
		t.Error("hook ran before inputs were settled")
	}
}

func TestWait(t *testing.T) {
	t.Run("non-positive resolves immediately", func(t *testing.T) {
		if w := Wait(0); !w.Resolved() {
			t.Error("Wait(0) should be resolved")
		}
		if w := Wait(-1); !w.Resolved() {
			t.Error("Wait(-1) should be resolved")
		}
	})

	t.Run("progress only on non-zero delta", func(t *testing.T) {
		calls := 0
		w := Wait(1000, WithOnProgress[struct{}](func(float64) { calls++ }))
		w.Execute(0)
		if calls != 0 {
			t.Fatalf("progress called %d times on zero delta", calls)
		}
		w.Execute(100)
		if calls != 1 {
			t.Fatalf("progress called %d times, want 1", calls)
		}
		w.Execute(900)
		if !w.Resolved() {
			t.Errorf("wait = %v, want resolved", w.Status())
		}
	})

	t.Run("invalid delta rejects", func(t *testing.T) {
		w := Wait(10)
		w.Execute(math.NaN())
		if !errors.Is(w.Err(), ErrInvalidDelta) {
			t.Errorf("err = %v, want ErrInvalidDelta", w.Err())
		}
	})
}

func TestInterpolate(t *testing.T) {
	weight := 0.0
	get := func() float64 { return weight }
	set := func(v float64) { weight = v }

	var progress []float64
	tween := Interpolate(get, set, 1, 1000, easing.Linear,
		WithOnProgress[struct{}](func(v float64) { progress = append(progress, v) }))

	tween.Execute(100)
	if math.Abs(weight-0.1) > 1e-9 || len(progress) != 1 || math.Abs(progress[0]-0.1) > 1e-9 {
		t.Fatalf("weight = %v progress = %v, want 0.1", weight, progress)
	}
	tween.Execute(150)
	if math.Abs(weight-0.25) > 1e-9 {
		t.Fatalf("weight = %v, want 0.25", weight)
	}
	tween.Execute(5000)
	if weight != 1 || !tween.Resolved() {
		t.Errorf("weight = %v status = %v, want 1/resolved", weight, tween.Status())
	}
}

func TestInterpolateImmediate(t *testing.T) {
	v := 0.0
	tween := Interpolate(func() float64 { return v }, func(x float64) { v = x }, 2, 0, nil)
	if v != 2 || !tween.Resolved() {
		t.Errorf("v = %v status = %v, want 2/resolved", v, tween.Status())
	}
}

func TestInterpolateEasing(t *testing.T) {
	v := 0.0
	tween := Interpolate(func() float64 { return v }, func(x float64) { v = x }, 1, 100, easing.QuadIn)
	tween.Execute(50)
	if math.Abs(v-0.25) > 1e-9 {
		t.Errorf("v = %v, want 0.25", v)
	}
}

func TestStatusString(t *testing.T) {
	if StatusCancelled.String() != "cancelled" || Status(42).String() != "unknown" {
		t.Error("unexpected Status strings")
	}
}
