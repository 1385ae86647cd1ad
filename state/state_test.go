package state

import (
	"errors"
	"testing"
)

func newBase(name string, weight float64) *Base {
	b := NewBase(name, weight)
	return &b
}

func TestUniqueName(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		want     string
	}{
		{"walk", []string{"idle"}, "walk"},
		{"idle", []string{"idle"}, "idle1"},
		{"idle", []string{"idle", "idle1", "idle3"}, "idle4"},
		{"name", []string{"name", "name14"}, "name15"},
		{"name-5", []string{"name-5"}, "name-6"},
		{"nameOther", []string{"nameOther", "name4"}, "nameOther1"},
		{"7", []string{"7"}, "8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UniqueName(tt.name, tt.existing); got != tt.want {
				t.Errorf("UniqueName(%q, %v) = %q, want %q", tt.name, tt.existing, got, tt.want)
			}
		})
	}
}

func TestContainerAddRenamesCollisions(t *testing.T) {
	c := NewContainer("layer")
	first := newBase("idle", 0)
	second := newBase("idle", 0)

	if got := c.Add(first); got != "idle" {
		t.Fatalf("first add = %q", got)
	}
	if got := c.Add(second); got != "idle1" {
		t.Fatalf("second add = %q, want idle1", got)
	}
	if second.Name() != "idle1" {
		t.Errorf("state name not written back: %q", second.Name())
	}

	// same instance again is ignored
	c.Add(first)
	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}

	names := c.Names()
	if len(names) != 2 || names[0] != "idle" || names[1] != "idle1" {
		t.Errorf("Names = %v", names)
	}
}

func TestContainerRemoveAndRename(t *testing.T) {
	c := NewContainer("layer")
	a := newBase("a", 1)
	b := newBase("b", 1)
	c.Add(a)
	c.Add(b)

	got, err := c.Rename("a", "b")
	if err != nil {
		t.Fatal(err)
	}
	if got != "b1" || a.Name() != "b1" {
		t.Errorf("rename = %q (state %q), want b1", got, a.Name())
	}
	if names := c.Names(); names[0] != "b1" {
		t.Errorf("rename moved the state: %v", names)
	}

	if _, err := c.Rename("missing", "x"); !errors.Is(err, ErrStateNotFound) {
		t.Errorf("rename missing err = %v", err)
	}

	sig := a.Play(PlayCallbacks{})
	if !c.Remove("b1") {
		t.Fatal("remove returned false")
	}
	if !sig.Cancelled() {
		t.Error("removed state was not discarded")
	}
	if c.Remove("b1") {
		t.Error("second remove returned true")
	}
	if _, ok := c.State("b1"); ok {
		t.Error("state still registered")
	}
}

func TestBaseWeightFade(t *testing.T) {
	b := newBase("idle", 1)

	sig := b.SetWeight(0.5, 100, nil)
	if !b.WeightPending() {
		t.Fatal("fade should be pending")
	}

	b.Update(50)
	if b.Weight() != 0.75 {
		t.Errorf("weight = %v, want 0.75", b.Weight())
	}
	b.Update(50)
	if b.Weight() != 0.5 || !sig.Resolved() {
		t.Errorf("weight = %v resolved = %v", b.Weight(), sig.Resolved())
	}

	b.UpdateInternalWeight(0.5)
	if b.InternalWeight() != 0.25 {
		t.Errorf("internal = %v, want 0.25", b.InternalWeight())
	}
	b.UpdateInternalWeight(3)
	if b.InternalWeight() != 0.5 {
		t.Errorf("factor not clamped: %v", b.InternalWeight())
	}

	if b.SetWeight(2, 0, nil); b.Weight() != 1 {
		t.Errorf("weight not clamped: %v", b.Weight())
	}
}

func TestBaseWeightClamp(t *testing.T) {
	tests := []struct {
		name string
		w    float64
		ms   float64
		want float64
	}{
		{name: "below zero", w: -10, want: 0},
		{name: "above one", w: 10, want: 1},
		{name: "in range", w: 0.3, want: 0.3},
		{name: "faded below zero", w: -10, ms: 100, want: 0},
		{name: "faded above one", w: 10, ms: 100, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBase("idle", 0.5)
			b.SetWeight(tt.w, tt.ms, nil)
			b.Update(tt.ms)
			if b.Weight() != tt.want {
				t.Errorf("weight = %v, want %v", b.Weight(), tt.want)
			}
		})
	}
}

func TestBaseWeightFadeReplacedCancels(t *testing.T) {
	b := newBase("idle", 0)
	first := b.SetWeight(1, 100, nil)
	b.SetWeight(0, 0, nil)

	if !first.Cancelled() {
		t.Error("replaced fade was not cancelled")
	}
}

func TestBaseCallbacks(t *testing.T) {
	tests := []struct {
		name   string
		settle func(*Base)
		finish int
		cancel int
	}{
		{"stop", func(b *Base) { b.Stop() }, 1, 0},
		{"cancel", func(b *Base) { b.Cancel() }, 0, 1},
		{"discard", func(b *Base) { b.Discard() }, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var finished, cancelled int
			b := newBase("idle", 1)
			sig := b.Play(PlayCallbacks{
				OnFinish: func() { finished++ },
				OnCancel: func() { cancelled++ },
			})

			tt.settle(b)
			tt.settle(b)

			if finished != tt.finish || cancelled != tt.cancel {
				t.Errorf("finish=%d cancel=%d, want %d/%d", finished, cancelled, tt.finish, tt.cancel)
			}
			if sig.Pending() {
				t.Error("signal still pending")
			}
			if !b.Paused() {
				t.Error("settled state should be paused")
			}
		})
	}
}

func TestBaseResumeReusesCallbacks(t *testing.T) {
	var finished int
	b := newBase("idle", 1)
	b.Play(PlayCallbacks{OnFinish: func() { finished++ }})
	b.Stop()

	sig := b.Resume(PlayCallbacks{})
	if !sig.Pending() {
		t.Fatal("resume after stop should re-arm")
	}
	b.Stop()
	if finished != 2 {
		t.Errorf("finished = %d, want 2", finished)
	}
}

func TestBasePausedSkipsUpdate(t *testing.T) {
	b := newBase("idle", 0)
	b.SetWeight(1, 100, nil)
	b.Pause()
	b.Update(100)
	if b.Weight() != 0 {
		t.Errorf("paused state advanced to %v", b.Weight())
	}
}

func TestTransitionInternalWeight(t *testing.T) {
	a := newBase("a", 0.25)
	b := newBase("b", 0.5)
	tr := NewTransition("transition")
	tr.Configure([]State{a}, b, 100, nil, nil)
	tr.SetWeight(1, 0, nil)

	tr.UpdateInternalWeight(0.5)
	if got := tr.InternalWeight(); got != 0.375 {
		t.Errorf("InternalWeight = %v, want 0.375", got)
	}
	if a.InternalWeight() != 0.125 || b.InternalWeight() != 0.25 {
		t.Errorf("sub internal weights = %v, %v", a.InternalWeight(), b.InternalWeight())
	}
}

func TestTransitionCompletes(t *testing.T) {
	a := newBase("a", 1)
	b := newBase("b", 0)
	aSig := a.Play(PlayCallbacks{})

	var completed bool
	tr := NewTransition("transition")
	tr.Configure([]State{a}, b, 100, nil, func() { completed = true })
	tr.Play(PlayCallbacks{})

	tr.Update(100)
	if !completed {
		t.Fatal("onComplete not called")
	}
	if a.Weight() != 0 || b.Weight() != 1 {
		t.Errorf("weights = %v, %v", a.Weight(), b.Weight())
	}
	if !aSig.Cancelled() {
		t.Error("source state was not cancelled")
	}
	if a.InternalWeight() != 0 {
		t.Error("source state was not deactivated")
	}
}
