package state

import (
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/comalice/hostanim/deferred"
	"github.com/comalice/hostanim/easing"
)

// DefaultPlayInterval is the base interval between random picks
const DefaultPlayInterval = 3000.0

// Random plays one of its sub-states, then keeps switching to another one
// after a random wait of between a quarter and half of the play interval.
type Random struct {
	Base

	container    *Container
	player       *Player
	playInterval float64
	transitionMs float64
	easing       easing.Func
	rng          *rand.Rand
	timer        *deferred.Signal
}

var _ State = (*Random)(nil)

// RandomOption configures a Random
type RandomOption func(*Random)

// WithPlayInterval sets the base interval in ms
func WithPlayInterval(ms float64) RandomOption {
	return func(r *Random) {
		if ms > 0 {
			r.playInterval = ms
		}
	}
}

// WithRandomTransition cross-fades between picks over ms
func WithRandomTransition(ms float64, ease easing.Func) RandomOption {
	return func(r *Random) {
		r.transitionMs = max(ms, 0)
		if ease != nil {
			r.easing = ease
		}
	}
}

// WithRand replaces the random source
func WithRand(rng *rand.Rand) RandomOption {
	return func(r *Random) {
		if rng != nil {
			r.rng = rng
		}
	}
}

// WithSubStates registers states in order
func WithSubStates(states ...State) RandomOption {
	return func(r *Random) {
		for _, s := range states {
			r.container.Add(s)
		}
	}
}

// WithRandomWeight sets the initial user weight
func WithRandomWeight(w float64) RandomOption {
	return func(r *Random) {
		r.weight = easing.Clamp01(w)
		r.internalWeight = r.weight
	}
}

func NewRandom(name string, opts ...RandomOption) *Random {
	r := &Random{
		Base:         NewBase(name, 0),
		container:    NewContainer(name),
		playInterval: DefaultPlayInterval,
		easing:       easing.Linear,
		rng:          rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		timer:        deferred.Done(),
	}
	r.player = NewPlayer(r.container, r.InternalWeight)
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Container holds the sub-states
func (r *Random) Container() *Container { return r.container }

// Player drives the active sub-state
func (r *Random) Player() *Player { return r.player }

func (r *Random) PlayInterval() float64 { return r.playInterval }

func (r *Random) SetPlayInterval(ms float64) {
	if ms > 0 {
		r.playInterval = ms
	}
}

// Current names the active sub-state
func (r *Random) Current() string { return r.player.CurrentAnimation() }

func (r *Random) pick() string {
	names := r.container.Names()
	if len(names) >= 2 {
		current := r.player.CurrentAnimation()
		for i, n := range names {
			if n == current {
				names = append(names[:i], names[i+1:]...)
				break
			}
		}
	}
	return names[r.rng.IntN(len(names))]
}

func (r *Random) nextWait() float64 {
	lo, hi := r.playInterval/4, r.playInterval/2
	return lo + r.rng.Float64()*(hi-lo)
}

func (r *Random) pickNext() {
	if r.container.Len() == 0 {
		Logger().Warn("random state has no sub-states", zap.String("state", r.name))
		r.timer.Cancel(struct{}{})
		r.Base.Stop()
		return
	}
	name := r.pick()
	r.player.Play(name, WithTransition(r.transitionMs), WithEasing(r.easing))
	if r.callbacks.OnNext != nil {
		r.callbacks.OnNext(name)
	}
	r.armTimer()
}

func (r *Random) armTimer() {
	r.timer.Cancel(struct{}{})
	r.timer = deferred.Wait(r.nextWait(), deferred.WithOnResolve(func(struct{}) {
		r.pickNext()
	}))
}

// Play picks a sub-state and starts the timer. The returned signal stays
// pending until the state is stopped or cancelled. With no sub-states it
// resolves at once.
func (r *Random) Play(cb PlayCallbacks) *deferred.Signal {
	finish := r.Base.Play(cb)
	if r.container.Len() == 0 {
		Logger().Warn("random state has no sub-states", zap.String("state", r.name))
		r.Base.Stop()
		return finish
	}
	r.pickNext()
	return finish
}

func (r *Random) Pause() bool {
	r.player.PauseCurrent()
	return r.Base.Pause()
}

// Resume continues the active sub-state, or picks one if none is active
func (r *Random) Resume(cb PlayCallbacks) *deferred.Signal {
	finish := r.Base.Resume(cb)
	if r.container.Len() == 0 {
		r.Base.Stop()
		return finish
	}
	if r.player.CurrentState() == nil {
		r.pickNext()
		return finish
	}
	r.player.Resume("", WithTransition(r.transitionMs), WithEasing(r.easing))
	if !r.timer.Pending() {
		r.armTimer()
	}
	return finish
}

func (r *Random) Cancel() bool {
	r.timer.Cancel(struct{}{})
	r.player.CancelCurrent()
	return r.Base.Cancel()
}

func (r *Random) Stop() bool {
	r.timer.Cancel(struct{}{})
	r.player.StopCurrent()
	return r.Base.Stop()
}

func (r *Random) UpdateInternalWeight(factor float64) {
	r.Base.UpdateInternalWeight(factor)
	if cur := r.player.CurrentState(); cur != nil {
		cur.UpdateInternalWeight(r.internalWeight)
	}
}

func (r *Random) Update(deltaMs float64) {
	r.Base.Update(deltaMs)
	if !r.paused {
		r.timer.Execute(deltaMs)
	}
	r.player.Update(deltaMs)
}

func (r *Random) Deactivate() {
	r.Base.Deactivate()
	if cur := r.player.CurrentState(); cur != nil {
		cur.Deactivate()
	}
}

func (r *Random) Discard() {
	r.Cancel()
	r.container.DiscardStates()
	r.player.Discard()
}
