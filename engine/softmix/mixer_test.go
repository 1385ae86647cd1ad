package softmix

import (
	"math"
	"testing"

	"github.com/comalice/hostanim/engine"
)

func TestResolveActionClonesSharedClip(t *testing.T) {
	m := NewMixer()
	clip := NewClip("wave", 1)

	a := m.ResolveAction(clip)
	b := m.ResolveAction(clip)

	if a == b {
		t.Fatal("second resolve returned the same action")
	}
	if a.Clip() == b.Clip() {
		t.Error("shared clip was not cloned")
	}
	if b.Clip().Name() != "wave" {
		t.Errorf("clone name = %q, want wave", b.Clip().Name())
	}
	if m.Len() != 2 {
		t.Errorf("Len = %d, want 2", m.Len())
	}
}

func TestLoopOnceFinishesAndClamps(t *testing.T) {
	m := NewMixer()
	a := m.ResolveAction(NewClip("nod", 1))
	a.SetLoop(engine.LoopOnce, 1)
	a.SetClampWhenFinished(true)
	a.Reset()
	a.Play()

	var finished []engine.Action
	unsubscribe := m.OnFinished(func(x engine.Action) { finished = append(finished, x) })
	defer unsubscribe()

	m.Advance(0.6)
	if len(finished) != 0 {
		t.Fatal("finished too early")
	}
	m.Advance(0.6)
	if len(finished) != 1 || finished[0] != a {
		t.Fatalf("finished = %v, want [a]", finished)
	}
	if a.Time() != 1 {
		t.Errorf("time = %v, want clamped to 1", a.Time())
	}
	if !a.Enabled() {
		t.Error("clamped action should stay enabled")
	}

	m.Advance(1)
	if len(finished) != 1 {
		t.Error("finished reported twice")
	}
}

func TestLoopRepeatWithRepetitions(t *testing.T) {
	m := NewMixer()
	a := m.ResolveAction(NewClip("blink", 0.5))
	a.SetLoop(engine.LoopRepeat, 3)
	a.Reset()
	a.Play()

	count := 0
	m.OnFinished(func(engine.Action) { count++ })

	for range 5 {
		m.Advance(0.25)
	}
	if count != 0 {
		t.Fatalf("finished after 2.5 loops")
	}
	m.Advance(0.3)
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

func TestInfiniteRepeatWraps(t *testing.T) {
	m := NewMixer()
	a := m.ResolveAction(NewClip("idle", 2))
	a.SetLoop(engine.LoopRepeat, 0)
	a.Reset()
	a.Play()

	m.Advance(5)
	if math.Abs(a.Time()-1) > 1e-9 {
		t.Errorf("time = %v, want 1", a.Time())
	}
}

func TestPausedAndTimeScale(t *testing.T) {
	m := NewMixer()
	a := m.ResolveAction(NewClip("walk", 10))
	a.Reset()
	a.Play()
	a.SetTimeScale(2)

	m.Advance(1)
	if a.Time() != 2 {
		t.Fatalf("time = %v, want 2", a.Time())
	}
	a.SetPaused(true)
	m.Advance(1)
	if a.Time() != 2 {
		t.Errorf("paused action advanced to %v", a.Time())
	}
}

func TestReleaseAndSnapshot(t *testing.T) {
	m := NewMixer()
	a := m.ResolveAction(NewClip("a", 1))
	m.ResolveAction(NewClip("b", 1))
	a.SetWeight(0.5)

	snap := m.Snapshot()
	if len(snap) != 2 || snap[0].Clip != "a" || snap[0].Weight != 0.5 {
		t.Fatalf("snapshot = %+v", snap)
	}

	m.Release(a)
	if m.Len() != 1 {
		t.Errorf("Len = %d after release, want 1", m.Len())
	}
	m.ReleaseAll()
	if m.Len() != 0 {
		t.Errorf("Len = %d after ReleaseAll", m.Len())
	}
}

func TestLibrary(t *testing.T) {
	lib := NewLibrary(NewClip("idle", 2), NewClip("wave", 1))
	if c, ok := lib.Clip("wave"); !ok || c.Duration() != 1 {
		t.Errorf("Clip(wave) = %v, %v", c, ok)
	}
	if _, ok := lib.Clip("missing"); ok {
		t.Error("Clip(missing) should fail")
	}
}
