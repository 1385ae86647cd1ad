package state

import (
	"errors"
	"slices"
	"testing"

	"github.com/comalice/hostanim/easing"
)

func newTestPlayer(names ...string) (*Player, map[string]*Base) {
	c := NewContainer("layer")
	states := make(map[string]*Base, len(names))
	for _, n := range names {
		s := newBase(n, 0)
		states[n] = s
		c.Add(s)
	}
	return NewPlayer(c, func() float64 { return 1 }), states
}

func TestPlayerCut(t *testing.T) {
	p, states := newTestPlayer("a", "b")

	aSig := p.Play("a")
	if p.CurrentAnimation() != "a" {
		t.Fatalf("current = %q", p.CurrentAnimation())
	}
	if states["a"].Weight() != 1 || states["a"].InternalWeight() != 1 {
		t.Errorf("a weight = %v internal = %v", states["a"].Weight(), states["a"].InternalWeight())
	}

	p.Play("b")
	if p.CurrentAnimation() != "b" || p.IsTransitioning() {
		t.Fatalf("current = %q transitioning = %v", p.CurrentAnimation(), p.IsTransitioning())
	}
	if !aSig.Cancelled() {
		t.Error("previous state was not cancelled")
	}
	if states["a"].Weight() != 0 || states["a"].InternalWeight() != 0 {
		t.Error("previous state was not zeroed")
	}
}

func TestPlayerUnknownState(t *testing.T) {
	p, _ := newTestPlayer("a")
	p.Play("a")

	var gotErr error
	sig := p.Play("missing", WithCallbacks(PlayCallbacks{OnError: func(err error) { gotErr = err }}))
	if !sig.Rejected() || !errors.Is(sig.Err(), ErrStateNotFound) {
		t.Fatalf("signal status = %v err = %v", sig.Status(), sig.Err())
	}
	if !errors.Is(gotErr, ErrStateNotFound) {
		t.Errorf("OnError got %v", gotErr)
	}
	if p.CurrentAnimation() != "a" {
		t.Errorf("current changed to %q", p.CurrentAnimation())
	}
}

func TestPlayerCrossFade(t *testing.T) {
	p, states := newTestPlayer("a", "b")
	p.Play("a")
	p.Play("b", WithTransition(100), WithEasing(easing.Linear))

	if !p.IsTransitioning() {
		t.Fatal("expected a transition")
	}
	if p.CurrentAnimation() != "b" {
		t.Errorf("current animation = %q, want the fade target", p.CurrentAnimation())
	}

	p.Update(50)
	if states["a"].Weight() != 0.5 || states["b"].Weight() != 0.5 {
		t.Errorf("mid fade weights = %v, %v", states["a"].Weight(), states["b"].Weight())
	}

	p.Update(50)
	if p.IsTransitioning() {
		t.Fatal("transition did not complete")
	}
	if p.CurrentState() != State(states["b"]) {
		t.Error("target was not promoted")
	}
	if states["a"].InternalWeight() != 0 {
		t.Error("source was not deactivated")
	}
}

func TestPlayerRetargetMidTransition(t *testing.T) {
	p, states := newTestPlayer("a", "b", "c")
	aSig := p.Play("a")
	p.Play("b", WithTransition(100))
	p.Update(50)

	p.Play("c", WithTransition(100))
	from := p.Transition().From()
	if len(from) != 2 || !slices.Contains(from, State(states["a"])) || !slices.Contains(from, State(states["b"])) {
		t.Fatalf("from = %v, want a and b", from)
	}
	if p.Transition().To() != State(states["c"]) {
		t.Fatalf("to = %v, want c", p.Transition().To())
	}

	p.Update(100)
	if p.IsTransitioning() || p.CurrentState() != State(states["c"]) {
		t.Fatalf("transitioning = %v current = %q", p.IsTransitioning(), p.CurrentAnimation())
	}
	if !aSig.Cancelled() {
		t.Errorf("a status = %v, want cancelled", aSig.Status())
	}
	for _, n := range []string{"a", "b"} {
		s := states[n]
		if s.Weight() != 0 || s.InternalWeight() != 0 || !s.Paused() {
			t.Errorf("%s weight = %v internal = %v paused = %v", n, s.Weight(), s.InternalWeight(), s.Paused())
		}
	}
	if states["c"].Weight() != 1 {
		t.Errorf("c weight = %v, want 1", states["c"].Weight())
	}
}

func TestPlayerReplayTargetResetsTransition(t *testing.T) {
	p, states := newTestPlayer("a", "b")
	p.Play("a")
	first := p.Play("b", WithTransition(100))
	p.Update(50)

	p.Play("b", WithTransition(100))
	if !first.Cancelled() {
		t.Error("first fade signal should be cancelled")
	}
	if !p.IsTransitioning() {
		t.Fatal("replay should keep transitioning")
	}

	p.Update(50)
	if got := states["b"].Weight(); got != 0.75 {
		t.Errorf("b weight = %v, want 0.75", got)
	}
	p.Update(50)
	if p.IsTransitioning() || p.CurrentAnimation() != "b" {
		t.Errorf("transitioning = %v current = %q", p.IsTransitioning(), p.CurrentAnimation())
	}
}

func TestPlayerResume(t *testing.T) {
	p, states := newTestPlayer("a")

	if sig := p.Resume(""); !errors.Is(sig.Err(), ErrNoCurrentState) {
		t.Fatalf("resume with nothing current: %v", sig.Err())
	}

	p.Play("a")
	p.PauseCurrent()
	if !states["a"].Paused() {
		t.Fatal("pause not applied")
	}
	sig := p.Resume("")
	if states["a"].Paused() || !sig.Pending() {
		t.Error("resume did not restart the state")
	}
	if !p.StopCurrent() || !sig.Resolved() {
		t.Error("stop did not resolve")
	}
}

func TestPlayerResumeDoesNotRestartCurrent(t *testing.T) {
	p, _ := newTestPlayer("a")
	first := p.Play("a")

	p.Resume("a")
	if !first.Pending() {
		t.Error("resuming the current state should not cancel it")
	}
	p.Play("a")
	if !first.Cancelled() {
		t.Error("replaying the current state should cancel its signal")
	}
}
