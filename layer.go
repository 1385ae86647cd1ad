package hostanim

import (
	"github.com/comalice/hostanim/deferred"
	"github.com/comalice/hostanim/easing"
	"github.com/comalice/hostanim/engine"
	"github.com/comalice/hostanim/state"
)

// Layer is one level of the animation stack. It plays at most one of its
// states at a time and composites against the layers below it according to
// its blend mode.
type Layer struct {
	name           string
	blendMode      engine.BlendMode
	weight         float64
	internalWeight float64
	paused         bool
	weightPaused   bool
	weightSig      *deferred.Signal

	container *state.Container
	player    *state.Player
}

// LayerOption configures a layer created by AnimationFeature.AddLayer
type LayerOption func(*layerOptions)

type layerOptions struct {
	index        *int
	blendMode    engine.BlendMode
	weight       float64
	transitionMs float64
	easing       easing.Func
}

// WithLayerIndex inserts the layer at i. Negative values count from the end,
// so -1 appends.
func WithLayerIndex(i int) LayerOption {
	return func(o *layerOptions) { o.index = &i }
}

func WithBlendMode(mode engine.BlendMode) LayerOption {
	return func(o *layerOptions) { o.blendMode = mode }
}

// WithLayerWeight sets the initial layer weight, 1 by default
func WithLayerWeight(w float64) LayerOption {
	return func(o *layerOptions) { o.weight = w }
}

// WithTransitionMs sets the default cross-fade for animations on the layer
func WithTransitionMs(ms float64) LayerOption {
	return func(o *layerOptions) { o.transitionMs = ms }
}

func WithLayerEasing(fn easing.Func) LayerOption {
	return func(o *layerOptions) { o.easing = fn }
}

func newLayerOptions(opts []LayerOption) layerOptions {
	o := layerOptions{weight: 1, easing: easing.Linear}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func newLayer(name string, o layerOptions) *Layer {
	w := easing.Clamp01(o.weight)
	l := &Layer{
		name:           name,
		blendMode:      o.blendMode,
		weight:         w,
		internalWeight: w,
		weightSig:      deferred.Done(),
		container:      state.NewContainer(name),
	}
	l.player = state.NewPlayer(l.container, l.InternalWeight,
		state.WithDefaultTransition(o.transitionMs),
		state.WithDefaultEasing(o.easing),
	)
	return l
}

func (l *Layer) Name() string { return l.name }

func (l *Layer) BlendMode() engine.BlendMode { return l.blendMode }

// SetBlendMode changes the layer mode and every clip action on the layer
func (l *Layer) SetBlendMode(mode engine.BlendMode) {
	l.blendMode = mode
	for _, s := range l.container.States() {
		state.Walk(s, func(s state.State) {
			if single, ok := s.(*state.Single); ok {
				single.SetBlendMode(mode)
			}
		})
	}
}

func (l *Layer) Container() *state.Container { return l.container }

func (l *Layer) Player() *state.Player { return l.player }

func (l *Layer) CurrentState() state.State { return l.player.CurrentState() }

func (l *Layer) CurrentAnimation() string { return l.player.CurrentAnimation() }

func (l *Layer) IsTransitioning() bool { return l.player.IsTransitioning() }

func (l *Layer) Weight() float64 { return l.weight }

// SetWeight fades the layer weight to w over ms. A nil ease uses the
// layer's transition easing.
func (l *Layer) SetWeight(w, ms float64, ease easing.Func) *deferred.Signal {
	w = easing.Clamp01(w)
	if ease == nil {
		ease = l.player.Easing()
	}
	l.weightSig.Cancel(struct{}{})
	if ms <= 0 {
		l.weight = w
		l.weightSig = deferred.Done()
		return l.weightSig
	}
	l.weightSig = deferred.Interpolate(
		func() float64 { return l.weight },
		func(v float64) { l.weight = easing.Clamp01(v) },
		w, ms, ease,
	)
	return l.weightSig
}

func (l *Layer) WeightPending() bool { return l.weightSig.Pending() }

func (l *Layer) PauseWeight() { l.weightPaused = true }

func (l *Layer) ResumeWeight() { l.weightPaused = false }

func (l *Layer) InternalWeight() float64 { return l.internalWeight }

// UpdateInternalWeight sets the layer's share of the budget and pushes it
// into the current state.
func (l *Layer) UpdateInternalWeight(factor float64) {
	l.internalWeight = l.weight * easing.Clamp01(factor)
	if cur := l.player.CurrentState(); cur != nil {
		cur.UpdateInternalWeight(l.internalWeight)
	}
}

func (l *Layer) Paused() bool { return l.paused }

// Pause halts the current animation and the weight fade
func (l *Layer) Pause() bool {
	l.paused = true
	l.weightPaused = true
	l.player.SetPaused(true)
	return l.player.PauseCurrent()
}

// Resume continues the current animation and the weight fade
func (l *Layer) Resume() bool {
	l.paused = false
	l.weightPaused = false
	l.player.SetPaused(false)
	if l.player.CurrentState() == nil {
		return false
	}
	l.player.Resume("")
	return true
}

func (l *Layer) Update(deltaMs float64) {
	l.player.Update(deltaMs)
	if !l.paused && !l.weightPaused {
		l.weightSig.Execute(deltaMs)
	}
}

// removeAnimation drops a state, clearing the player first if the state is
// part of what is playing.
func (l *Layer) removeAnimation(name string) bool {
	s, ok := l.container.State(name)
	if !ok {
		return false
	}
	if l.playerUses(s) {
		l.player.CancelCurrent()
		l.player.Discard()
	}
	return l.container.Remove(name)
}

func (l *Layer) playerUses(s state.State) bool {
	cur := l.player.CurrentState()
	if cur == nil {
		return false
	}
	if cur == s {
		return true
	}
	if l.player.IsTransitioning() {
		tr := l.player.Transition()
		if tr.To() == s {
			return true
		}
		for _, from := range tr.From() {
			if from == s {
				return true
			}
		}
	}
	return false
}

func (l *Layer) Discard() {
	l.player.Discard()
	l.container.DiscardStates()
	l.weightSig.Cancel(struct{}{})
}
