package state

import (
	"fmt"

	"github.com/comalice/hostanim/deferred"
	"github.com/comalice/hostanim/easing"
)

// Method selects how Prepare treats a target that is already current
type Method int

const (
	// MethodPlay restarts a target that is already current
	MethodPlay Method = iota
	// MethodResume leaves a current target running
	MethodResume
)

func (m Method) String() string {
	if m == MethodResume {
		return "resume"
	}
	return "play"
}

// Player keeps exactly one state of a Container active. Switching to another
// state either cuts immediately or cross-fades through an internal
// Transition.
type Player struct {
	container      *Container
	transition     *Transition
	current        State
	paused         bool
	transitionMs   float64
	easing         easing.Func
	internalWeight func() float64
}

// PlayerOption configures a Player
type PlayerOption func(*Player)

// WithDefaultTransition sets the cross-fade used when a call does not specify one
func WithDefaultTransition(ms float64) PlayerOption {
	return func(p *Player) { p.transitionMs = max(ms, 0) }
}

// WithDefaultEasing sets the curve used when a call does not specify one
func WithDefaultEasing(fn easing.Func) PlayerOption {
	return func(p *Player) {
		if fn != nil {
			p.easing = fn
		}
	}
}

// NewPlayer creates a player over container. internalWeight supplies the
// owner's internal weight, which is pushed into each newly current state.
func NewPlayer(container *Container, internalWeight func() float64, opts ...PlayerOption) *Player {
	p := &Player{
		container:      container,
		transition:     NewTransition("transition"),
		easing:         easing.Linear,
		internalWeight: internalWeight,
	}
	if p.internalWeight == nil {
		p.internalWeight = func() float64 { return 1 }
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// PlayOption overrides per-call playback settings
type PlayOption func(*playOptions)

type playOptions struct {
	transitionMs float64
	easing       easing.Func
	callbacks    PlayCallbacks
}

// WithTransition cross-fades over ms. 0 cuts immediately.
func WithTransition(ms float64) PlayOption {
	return func(o *playOptions) { o.transitionMs = ms }
}

// WithEasing sets the cross-fade curve
func WithEasing(fn easing.Func) PlayOption {
	return func(o *playOptions) {
		if fn != nil {
			o.easing = fn
		}
	}
}

// WithCallbacks attaches lifecycle callbacks to the returned signal
func WithCallbacks(cb PlayCallbacks) PlayOption {
	return func(o *playOptions) { o.callbacks = cb }
}

func (p *Player) options(opts []PlayOption) playOptions {
	o := playOptions{transitionMs: p.transitionMs, easing: p.easing}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (p *Player) Container() *Container { return p.container }

func (p *Player) Paused() bool { return p.paused }

func (p *Player) SetPaused(paused bool) { p.paused = paused }

func (p *Player) TransitionMs() float64 { return p.transitionMs }

func (p *Player) SetTransitionMs(ms float64) { p.transitionMs = max(ms, 0) }

func (p *Player) Easing() easing.Func { return p.easing }

func (p *Player) SetEasing(fn easing.Func) {
	if fn != nil {
		p.easing = fn
	}
}

// CurrentState is the active state, which is the internal Transition while
// a cross-fade is running.
func (p *Player) CurrentState() State { return p.current }

// CurrentAnimation names the active state. During a cross-fade it names the
// target of the fade.
func (p *Player) CurrentAnimation() string {
	switch {
	case p.current == nil:
		return ""
	case p.current == State(p.transition):
		if to := p.transition.To(); to != nil {
			return to.Name()
		}
		return ""
	}
	return p.current.Name()
}

// IsTransitioning reports whether a cross-fade is running
func (p *Player) IsTransitioning() bool {
	return p.current != nil && p.current == State(p.transition)
}

// Transition exposes the internal cross-fade state
func (p *Player) Transition() *Transition { return p.transition }

// Prepare makes name the current state. An unknown name returns an error
// and leaves the player untouched.
func (p *Player) Prepare(name string, method Method, ms float64, ease easing.Func) error {
	target, ok := p.container.State(name)
	if !ok {
		return fmt.Errorf("cannot %s animation %q: %w", method, name, ErrStateNotFound)
	}
	if ease == nil {
		ease = p.easing
	}

	switch {
	case p.CurrentAnimation() != name:
		if ms <= 0 {
			if p.current != nil {
				p.current.Cancel()
				p.current.SetWeight(0, 0, nil)
				p.current.Deactivate()
			}
			p.current = target
			break
		}

		var from []State
		for _, s := range p.container.States() {
			if s != target && (s.Weight() > 0 || s.WeightPending()) {
				from = append(from, s)
			}
		}
		p.transition.Configure(from, target, ms, ease, p.promote(target))
		p.current = p.transition

	case method == MethodPlay:
		p.current.Cancel()
		if p.IsTransitioning() {
			p.transition.Reset(ms, ease, p.promote(target))
		}
	}

	p.current.SetWeight(1, 0, nil)
	p.current.UpdateInternalWeight(p.internalWeight())
	return nil
}

func (p *Player) promote(target State) func() {
	return func() {
		p.current = target
		p.transition.SetWeight(0, 0, nil)
	}
}

// Play starts name from the beginning. Errors come back as a rejected signal.
func (p *Player) Play(name string, opts ...PlayOption) *deferred.Signal {
	o := p.options(opts)
	if err := p.Prepare(name, MethodPlay, o.transitionMs, o.easing); err != nil {
		if o.callbacks.OnError != nil {
			o.callbacks.OnError(err)
		}
		return deferred.Rejected[struct{}](err)
	}
	return p.current.Play(o.callbacks)
}

// Resume continues name, or the current animation when name is empty
func (p *Player) Resume(name string, opts ...PlayOption) *deferred.Signal {
	o := p.options(opts)
	if name == "" {
		name = p.CurrentAnimation()
	}
	if name == "" {
		err := fmt.Errorf("cannot resume: %w", ErrNoCurrentState)
		if o.callbacks.OnError != nil {
			o.callbacks.OnError(err)
		}
		return deferred.Rejected[struct{}](err)
	}
	if err := p.Prepare(name, MethodResume, o.transitionMs, o.easing); err != nil {
		if o.callbacks.OnError != nil {
			o.callbacks.OnError(err)
		}
		return deferred.Rejected[struct{}](err)
	}
	return p.current.Resume(o.callbacks)
}

// PauseCurrent pauses the active state. False when nothing is active.
func (p *Player) PauseCurrent() bool {
	if p.current == nil {
		return false
	}
	return p.current.Pause()
}

func (p *Player) CancelCurrent() bool {
	if p.current == nil {
		return false
	}
	return p.current.Cancel()
}

func (p *Player) StopCurrent() bool {
	if p.current == nil {
		return false
	}
	return p.current.Stop()
}

// Update advances the active state
func (p *Player) Update(deltaMs float64) {
	if p.current != nil {
		p.current.Update(deltaMs)
	}
}

// Discard releases the internal transition
func (p *Player) Discard() {
	p.transition.Discard()
	p.current = nil
}
