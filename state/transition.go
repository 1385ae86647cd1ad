package state

import (
	"slices"

	"github.com/comalice/hostanim/deferred"
	"github.com/comalice/hostanim/easing"
)

// Transition cross-fades any number of source states into one target. It
// is owned by a Player and never registered in a Container.
type Transition struct {
	Base

	from  []State
	to    State
	fades *deferred.Signal
}

var _ State = (*Transition)(nil)

func NewTransition(name string) *Transition {
	return &Transition{
		Base:  NewBase(name, 0),
		fades: deferred.Done(),
	}
}

// From returns the states being faded out
func (t *Transition) From() []State { return slices.Clone(t.from) }

// To returns the state being faded in, or nil
func (t *Transition) To() State { return t.to }

// InternalWeight is the combined weight of every sub-state scaled by the
// transition's own internal weight.
func (t *Transition) InternalWeight() float64 {
	total := 0.0
	if t.to != nil {
		total = t.to.Weight()
	}
	for _, s := range t.from {
		total += s.Weight()
	}
	return total * t.Base.InternalWeight()
}

func (t *Transition) UpdateInternalWeight(factor float64) {
	t.Base.UpdateInternalWeight(factor)
	iw := t.Base.InternalWeight()
	for _, s := range t.from {
		s.UpdateInternalWeight(iw)
	}
	if t.to != nil {
		t.to.UpdateInternalWeight(iw)
	}
}

// Configure replaces the sub-states and starts new fades. States dropped from
// the previous configuration are deactivated first.
func (t *Transition) Configure(from []State, to State, ms float64, ease easing.Func, onComplete func()) {
	if t.to != nil && (t.to == to || slices.Contains(from, t.to)) {
		t.to = nil
	}
	t.from = slices.DeleteFunc(t.from, func(s State) bool {
		return s == to || slices.Contains(from, s)
	})

	t.Deactivate()

	t.from = slices.Clone(from)
	t.to = to
	t.Reset(ms, ease, onComplete)
}

// Reset restarts the fades for the current sub-states. Once every fade has
// resolved the sources are cancelled and deactivated and onComplete runs.
func (t *Transition) Reset(ms float64, ease easing.Func, onComplete func()) {
	t.fades.Cancel(struct{}{})

	tweens := make([]deferred.Awaitable, 0, len(t.from)+1)
	for _, s := range t.from {
		tweens = append(tweens, s.SetWeight(0, ms, ease))
	}
	if t.to != nil {
		tweens = append(tweens, t.to.SetWeight(1, ms, ease))
	}

	t.fades = deferred.Join(tweens, deferred.WithOnResolve(func(struct{}) {
		for _, s := range t.from {
			s.Cancel()
			s.Deactivate()
		}
		if onComplete != nil {
			onComplete()
		}
	}))
}

func (t *Transition) Play(cb PlayCallbacks) *deferred.Signal {
	t.paused = false
	t.callbacks = cb

	for _, s := range t.from {
		s.Resume(PlayCallbacks{})
	}
	waits := []deferred.Awaitable{t.fades}
	if t.to != nil {
		t.play = t.to.Play(PlayCallbacks{OnNext: cb.OnNext})
		waits = append(waits, t.play)
	}

	t.finish = deferred.Join(waits, cb.options()...)
	return t.finish
}

// Resume continues a paused cross-fade. While the target is still playing
// the existing finish signal is kept, so its callbacks fire once.
func (t *Transition) Resume(cb PlayCallbacks) *deferred.Signal {
	t.paused = false
	for _, s := range t.from {
		s.Resume(PlayCallbacks{})
	}
	if t.play.Pending() && t.finish.Pending() {
		if t.to != nil {
			t.to.Resume(PlayCallbacks{OnNext: t.callbacks.OnNext})
		}
		return t.finish
	}

	t.callbacks = cb.orPrevious(t.callbacks)
	waits := []deferred.Awaitable{t.fades}
	if t.to != nil {
		t.play = t.to.Resume(PlayCallbacks{OnNext: t.callbacks.OnNext})
		waits = append(waits, t.play)
	}

	t.finish = deferred.Join(waits, t.callbacks.options()...)
	return t.finish
}

func (t *Transition) Pause() bool {
	t.eachSub(func(s State) { s.Pause() })
	return t.Base.Pause()
}

func (t *Transition) Cancel() bool {
	t.eachSub(func(s State) { s.Pause() })
	t.fades.Cancel(struct{}{})
	return t.Base.Cancel()
}

func (t *Transition) Stop() bool {
	t.eachSub(func(s State) { s.Stop() })
	return t.Base.Stop()
}

func (t *Transition) Update(deltaMs float64) {
	t.Base.Update(deltaMs)
	t.eachSub(func(s State) { s.Update(deltaMs) })
}

// Deactivate zeroes the sub-states only
func (t *Transition) Deactivate() {
	t.eachSub(func(s State) { s.Deactivate() })
}

func (t *Transition) Discard() {
	t.Cancel()
	t.fades.Cancel(struct{}{})
	t.to = nil
	t.from = nil
}

func (t *Transition) eachSub(fn func(State)) {
	for _, s := range t.from {
		fn(s)
	}
	if t.to != nil {
		fn(t.to)
	}
}
