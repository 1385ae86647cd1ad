package state

import (
	"github.com/comalice/hostanim/deferred"
	"github.com/comalice/hostanim/easing"
)

// PlayCallbacks are attached to the play signal of a state
type PlayCallbacks struct {
	OnFinish func()
	OnError  func(error)
	OnCancel func()
	// OnNext reports each automatic pick of a Random state
	OnNext func(name string)
}

// orPrevious fills unset callbacks from prev
func (cb PlayCallbacks) orPrevious(prev PlayCallbacks) PlayCallbacks {
	if cb.OnFinish == nil {
		cb.OnFinish = prev.OnFinish
	}
	if cb.OnError == nil {
		cb.OnError = prev.OnError
	}
	if cb.OnCancel == nil {
		cb.OnCancel = prev.OnCancel
	}
	if cb.OnNext == nil {
		cb.OnNext = prev.OnNext
	}
	return cb
}

func (cb PlayCallbacks) signal() *deferred.Signal {
	return deferred.NewSignal(nil, cb.options()...)
}

func (cb PlayCallbacks) options() []deferred.Option[struct{}] {
	var opts []deferred.Option[struct{}]
	if cb.OnFinish != nil {
		fn := cb.OnFinish
		opts = append(opts, deferred.WithOnResolve(func(struct{}) { fn() }))
	}
	if cb.OnError != nil {
		opts = append(opts, deferred.WithOnReject[struct{}](cb.OnError))
	}
	if cb.OnCancel != nil {
		fn := cb.OnCancel
		opts = append(opts, deferred.WithOnCancel(func(struct{}) { fn() }))
	}
	return opts
}

// State is a playable unit owned by a layer or a composite state
type State interface {
	Name() string
	SetName(name string)

	Weight() float64
	// SetWeight fades the user weight to w over ms. ms <= 0 sets it at once.
	SetWeight(w, ms float64, ease easing.Func) *deferred.Signal
	WeightPending() bool
	InternalWeight() float64
	UpdateInternalWeight(factor float64)

	Paused() bool
	// Play starts from the beginning. The returned signal settles once
	// playback has finished and any weight fade has settled.
	Play(cb PlayCallbacks) *deferred.Signal
	Pause() bool
	Resume(cb PlayCallbacks) *deferred.Signal
	// Cancel settles every pending signal as cancelled
	Cancel() bool
	// Stop settles every pending signal as resolved
	Stop() bool
	// Deactivate forces the internal weight to 0
	Deactivate()
	Discard()
	Update(deltaMs float64)
}

// Base holds the bookkeeping shared by every state. Concrete states embed
// it and override what they need.
type Base struct {
	name           string
	weight         float64
	internalWeight float64
	paused         bool

	weightSig *deferred.Signal
	play      *deferred.Signal
	finish    *deferred.Signal
	callbacks PlayCallbacks
}

var _ State = (*Base)(nil)

// NewBase returns a Base with weight clamped to [0,1] and settled signals
func NewBase(name string, weight float64) Base {
	w := easing.Clamp01(weight)
	return Base{
		name:           name,
		weight:         w,
		internalWeight: w,
		weightSig:      deferred.Done(),
		play:           deferred.Done(),
		finish:         deferred.Done(),
	}
}

func (b *Base) Name() string { return b.name }
func (b *Base) SetName(name string) { b.name = name }
func (b *Base) Paused() bool { return b.paused }
func (b *Base) Weight() float64 { return b.weight }

// WeightPending reports whether a weight fade is in flight
func (b *Base) WeightPending() bool { return b.weightSig.Pending() }

func (b *Base) InternalWeight() float64 { return b.internalWeight }

func (b *Base) UpdateInternalWeight(factor float64) {
	b.internalWeight = b.weight * easing.Clamp01(factor)
}

func (b *Base) SetWeight(w, ms float64, ease easing.Func) *deferred.Signal {
	w = easing.Clamp01(w)
	b.weightSig.Cancel(struct{}{})

	if ms <= 0 {
		b.weight = w
		b.weightSig = deferred.Done()
		return b.weightSig
	}
	b.weightSig = deferred.Interpolate(
		func() float64 { return b.weight },
		func(v float64) { b.weight = easing.Clamp01(v) },
		w, ms, ease,
	)
	return b.weightSig
}

func (b *Base) Update(deltaMs float64) {
	if b.paused {
		return
	}
	b.weightSig.Execute(deltaMs)
	b.play.Execute(deltaMs)
	b.finish.Execute(deltaMs)
}

func (b *Base) Play(cb PlayCallbacks) *deferred.Signal {
	b.paused = false
	b.callbacks = cb
	b.arm(cb.signal())
	return b.finish
}

// arm installs play and derives finish from play and the weight fade
func (b *Base) arm(play *deferred.Signal) {
	b.play = play
	b.finish = deferred.Join([]deferred.Awaitable{b.play, b.weightSig})
}

func (b *Base) Pause() bool {
	b.paused = true
	return true
}

// Resume un-pauses. A state whose play signal has already settled gets a
// fresh one, reusing the previous callbacks where cb leaves them unset.
func (b *Base) Resume(cb PlayCallbacks) *deferred.Signal {
	b.paused = false
	if !b.play.Pending() {
		b.callbacks = cb.orPrevious(b.callbacks)
		b.arm(b.callbacks.signal())
	}
	return b.finish
}

func (b *Base) Cancel() bool {
	b.paused = true
	b.finish.Cancel(struct{}{})
	b.weightSig.Cancel(struct{}{})
	b.play.Cancel(struct{}{})
	return true
}

func (b *Base) Stop() bool {
	b.paused = true
	b.finish.Resolve(struct{}{})
	b.weightSig.Resolve(struct{}{})
	b.play.Resolve(struct{}{})
	return true
}

func (b *Base) Discard() {
	b.Cancel()
}

func (b *Base) Deactivate() {
	b.internalWeight = 0
}
