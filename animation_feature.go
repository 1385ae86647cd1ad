package hostanim

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"go.uber.org/zap"

	"github.com/comalice/hostanim/deferred"
	"github.com/comalice/hostanim/easing"
	"github.com/comalice/hostanim/engine"
	"github.com/comalice/hostanim/state"
)

// AnimationFeatureName is the feature name AnimationFeature registers under
const AnimationFeatureName = "AnimationFeature"

// LayerInfo reports where AddLayer put a layer
type LayerInfo struct {
	Name  string
	Index int
}

// AnimationFeature owns a stack of layers and the mixer their clips are bound
// on. Later layers sit on top: an Override layer takes a share of the weight
// budget away from the layers beneath it, an Additive layer never does.
type AnimationFeature struct {
	FeatureBase

	mixer  engine.Mixer
	layers []*Layer
	paused bool
	rng    *rand.Rand
}

var _ Feature = (*AnimationFeature)(nil)

// FeatureOption configures an AnimationFeature
type FeatureOption func(*AnimationFeature)

// WithRandomSource seeds every Random animation added to the feature
func WithRandomSource(rng *rand.Rand) FeatureOption {
	return func(f *AnimationFeature) { f.rng = rng }
}

// NewAnimationFeature creates a feature for host that binds clips on mixer.
// The feature is not added to the host; call host.AddFeature.
func NewAnimationFeature(host *Host, mixer engine.Mixer, opts ...FeatureOption) *AnimationFeature {
	f := &AnimationFeature{
		FeatureBase: NewFeatureBase(host, AnimationFeatureName),
		mixer:       mixer,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *AnimationFeature) Mixer() engine.Mixer { return f.mixer }

func (f *AnimationFeature) layer(name string) (*Layer, int) {
	idx := slices.IndexFunc(f.layers, func(l *Layer) bool { return l.name == name })
	if idx < 0 {
		return nil, -1
	}
	return f.layers[idx], idx
}

func (f *AnimationFeature) warnNoLayer(op, name string) {
	Logger().Warn("layer not found", zap.String("op", op), zap.String("layer", name))
}

// clampIndex resolves a requested position among n slots
func clampIndex(index, n int, name string) int {
	i := index
	if i < 0 {
		i = n + 1 + i
	}
	if i < 0 || i > n {
		clamped := max(0, min(i, n))
		Logger().Warn("layer index out of range, clamped",
			zap.String("layer", name), zap.Int("index", index), zap.Int("clamped", clamped))
		return clamped
	}
	return i
}

// Layer returns the named layer
func (f *AnimationFeature) Layer(name string) (*Layer, bool) {
	l, _ := f.layer(name)
	return l, l != nil
}

// LayerNames returns layer names from bottom to top
func (f *AnimationFeature) LayerNames() []string {
	names := make([]string, len(f.layers))
	for i, l := range f.layers {
		names[i] = l.name
	}
	return names
}

// AddLayer creates a layer. A name already in use is made unique.
func (f *AnimationFeature) AddLayer(name string, opts ...LayerOption) LayerInfo {
	o := newLayerOptions(opts)

	unique := state.UniqueName(name, f.LayerNames())
	if unique != name {
		Logger().Warn("layer name not unique, renamed", zap.String("name", name), zap.String("renamed", unique))
	}

	index := len(f.layers)
	if o.index != nil {
		index = clampIndex(*o.index, len(f.layers), unique)
	}

	l := newLayer(unique, o)
	f.layers = slices.Insert(f.layers, index, l)

	f.Emit(EventAddLayer, AnimationEvent{Layer: unique, Index: index})
	return LayerInfo{Name: unique, Index: index}
}

// RemoveLayer discards the layer and its animations
func (f *AnimationFeature) RemoveLayer(name string) bool {
	l, idx := f.layer(name)
	if l == nil {
		f.warnNoLayer("remove", name)
		return false
	}
	l.Discard()
	f.layers = slices.Delete(f.layers, idx, idx+1)

	f.Emit(EventRemoveLayer, AnimationEvent{Layer: name, Index: idx})
	return true
}

// MoveLayer moves a layer to index and returns the index used
func (f *AnimationFeature) MoveLayer(name string, index int) (int, error) {
	l, idx := f.layer(name)
	if l == nil {
		return -1, fmt.Errorf("move layer %q: %w", name, ErrLayerNotFound)
	}
	f.layers = slices.Delete(f.layers, idx, idx+1)
	to := clampIndex(index, len(f.layers), name)
	f.layers = slices.Insert(f.layers, to, l)
	return to, nil
}

// RenameLayer renames a layer and returns the unique name used
func (f *AnimationFeature) RenameLayer(current, name string) (string, error) {
	l, idx := f.layer(current)
	if l == nil {
		return "", fmt.Errorf("rename layer %q: %w", current, ErrLayerNotFound)
	}
	if current == name {
		return name, nil
	}

	others := slices.DeleteFunc(f.LayerNames(), func(n string) bool { return n == current })
	unique := state.UniqueName(name, others)
	if unique != name {
		Logger().Warn("layer name not unique, renamed", zap.String("name", name), zap.String("renamed", unique))
	}
	l.name = unique

	f.Emit(EventRenameLayer, AnimationEvent{Layer: unique, OldName: current, Index: idx})
	return unique, nil
}

// AddAnimation builds an animation from spec on the named layer and returns
// the unique name it was stored under.
func (f *AnimationFeature) AddAnimation(layerName, name string, spec AnimationSpec) (string, error) {
	l, _ := f.layer(layerName)
	if l == nil {
		return "", fmt.Errorf("add animation %q to %q: %w", name, layerName, ErrLayerNotFound)
	}

	s, err := buildState(name, spec, f.mixer, l.blendMode, f.rng)
	if err != nil {
		return "", err
	}
	unique := l.container.Add(s)

	f.Emit(EventAddAnimation, AnimationEvent{Layer: layerName, Animation: unique})
	return unique, nil
}

// RemoveAnimation discards an animation. A playing animation is cancelled.
func (f *AnimationFeature) RemoveAnimation(layerName, name string) bool {
	l, _ := f.layer(layerName)
	if l == nil {
		f.warnNoLayer("remove animation", layerName)
		return false
	}
	if !l.removeAnimation(name) {
		return false
	}

	f.Emit(EventRemoveAnimation, AnimationEvent{Layer: layerName, Animation: name})
	return true
}

// RenameAnimation renames an animation and returns the unique name used
func (f *AnimationFeature) RenameAnimation(layerName, current, name string) (string, error) {
	l, _ := f.layer(layerName)
	if l == nil {
		return "", fmt.Errorf("rename animation %q: %w", current, ErrLayerNotFound)
	}
	unique, err := l.container.Rename(current, name)
	if err != nil {
		return "", fmt.Errorf("rename animation %q on %q: %w", current, layerName, ErrAnimationNotFound)
	}

	f.Emit(EventRenameAnimation, AnimationEvent{Layer: layerName, Animation: unique, OldName: current})
	return unique, nil
}

// AnimationNames lists a layer's animations in insertion order
func (f *AnimationFeature) AnimationNames(layerName string) []string {
	l, _ := f.layer(layerName)
	if l == nil {
		f.warnNoLayer("animation names", layerName)
		return nil
	}
	return l.container.Names()
}

// PlayOption adjusts a single PlayAnimation or ResumeAnimation call
type PlayOption func(*playOptions)

type playOptions struct {
	transitionMs *float64
	easing       easing.Func
	callbacks    state.PlayCallbacks
}

// WithPlayTransition overrides the layer's default cross-fade
func WithPlayTransition(ms float64) PlayOption {
	return func(o *playOptions) { o.transitionMs = &ms }
}

func WithPlayEasing(fn easing.Func) PlayOption {
	return func(o *playOptions) { o.easing = fn }
}

// WithPlayCallbacks attaches callbacks that run after the feature events
func WithPlayCallbacks(cb state.PlayCallbacks) PlayOption {
	return func(o *playOptions) { o.callbacks = cb }
}

// playerOptions wires feature events in front of the caller's callbacks
func (f *AnimationFeature) playerOptions(layerName, anim string, opts []PlayOption) []state.PlayOption {
	var o playOptions
	for _, opt := range opts {
		opt(&o)
	}
	user := o.callbacks

	cb := state.PlayCallbacks{
		OnFinish: func() {
			f.Emit(EventStop, AnimationEvent{Layer: layerName, Animation: anim})
			if user.OnFinish != nil {
				user.OnFinish()
			}
		},
		OnCancel: func() {
			f.Emit(EventInterrupt, AnimationEvent{Layer: layerName, Animation: anim})
			if user.OnCancel != nil {
				user.OnCancel()
			}
		},
		OnError: user.OnError,
		OnNext: func(next string) {
			f.Emit(EventPlayNextAnimation, AnimationEvent{Layer: layerName, Animation: anim, Next: next})
			if user.OnNext != nil {
				user.OnNext(next)
			}
		},
	}

	out := []state.PlayOption{state.WithCallbacks(cb)}
	if o.transitionMs != nil {
		out = append(out, state.WithTransition(*o.transitionMs))
	}
	if o.easing != nil {
		out = append(out, state.WithEasing(o.easing))
	}
	return out
}

func rejected(err error, opts []PlayOption) *deferred.Signal {
	var o playOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.callbacks.OnError != nil {
		o.callbacks.OnError(err)
	}
	return deferred.Rejected[struct{}](err)
}

// PlayAnimation plays anim from the start on the named layer. The signal
// resolves when the animation finishes or is stopped and is cancelled when
// it is interrupted. Unknown names give a rejected signal.
func (f *AnimationFeature) PlayAnimation(layerName, anim string, opts ...PlayOption) *deferred.Signal {
	l, _ := f.layer(layerName)
	if l == nil {
		return rejected(fmt.Errorf("play %q on %q: %w", anim, layerName, ErrLayerNotFound), opts)
	}
	if _, ok := l.container.State(anim); !ok {
		return rejected(fmt.Errorf("play %q on %q: %w", anim, layerName, ErrAnimationNotFound), opts)
	}

	sig := l.player.Play(anim, f.playerOptions(layerName, anim, opts)...)
	if !sig.Rejected() {
		f.Emit(EventPlay, AnimationEvent{Layer: layerName, Animation: anim})
	}
	return sig
}

// ResumeAnimation continues anim, or the current animation when anim is
// empty.
func (f *AnimationFeature) ResumeAnimation(layerName, anim string, opts ...PlayOption) *deferred.Signal {
	l, _ := f.layer(layerName)
	if l == nil {
		return rejected(fmt.Errorf("resume %q on %q: %w", anim, layerName, ErrLayerNotFound), opts)
	}
	if anim == "" {
		anim = l.CurrentAnimation()
	}
	if anim == "" {
		return rejected(fmt.Errorf("resume on %q: %w", layerName, ErrNoCurrentState), opts)
	}
	if _, ok := l.container.State(anim); !ok {
		return rejected(fmt.Errorf("resume %q on %q: %w", anim, layerName, ErrAnimationNotFound), opts)
	}

	sig := l.player.Resume(anim, f.playerOptions(layerName, anim, opts)...)
	if !sig.Rejected() {
		f.Emit(EventResume, AnimationEvent{Layer: layerName, Animation: anim})
	}
	return sig
}

// PauseAnimation pauses the current animation of a layer
func (f *AnimationFeature) PauseAnimation(layerName string) bool {
	l, _ := f.layer(layerName)
	if l == nil {
		f.warnNoLayer("pause", layerName)
		return false
	}
	if !l.player.PauseCurrent() {
		return false
	}
	f.Emit(EventPause, AnimationEvent{Layer: layerName, Animation: l.CurrentAnimation()})
	return true
}

// StopAnimation ends the current animation of a layer as finished
func (f *AnimationFeature) StopAnimation(layerName string) bool {
	l, _ := f.layer(layerName)
	if l == nil {
		f.warnNoLayer("stop", layerName)
		return false
	}
	return l.player.StopCurrent()
}

// CancelAnimation ends the current animation of a layer as interrupted
func (f *AnimationFeature) CancelAnimation(layerName string) bool {
	l, _ := f.layer(layerName)
	if l == nil {
		f.warnNoLayer("cancel", layerName)
		return false
	}
	return l.player.CancelCurrent()
}

// SetLayerWeight fades a layer's weight to w over ms
func (f *AnimationFeature) SetLayerWeight(layerName string, w, ms float64, ease easing.Func) *deferred.Signal {
	l, _ := f.layer(layerName)
	if l == nil {
		return deferred.Rejected[struct{}](fmt.Errorf("set weight of %q: %w", layerName, ErrLayerNotFound))
	}
	return l.SetWeight(w, ms, ease)
}

// SetLayerBlendMode switches a layer between Override and Additive
func (f *AnimationFeature) SetLayerBlendMode(layerName string, mode engine.BlendMode) bool {
	l, _ := f.layer(layerName)
	if l == nil {
		f.warnNoLayer("set blend mode", layerName)
		return false
	}
	l.SetBlendMode(mode)
	return true
}

func (f *AnimationFeature) PauseLayer(layerName string) bool {
	l, _ := f.layer(layerName)
	if l == nil {
		f.warnNoLayer("pause layer", layerName)
		return false
	}
	l.Pause()
	return true
}

func (f *AnimationFeature) ResumeLayer(layerName string) bool {
	l, _ := f.layer(layerName)
	if l == nil {
		f.warnNoLayer("resume layer", layerName)
		return false
	}
	l.Resume()
	return true
}

// SetAnimationBlendWeight fades one sub-state of a FreeBlend animation
func (f *AnimationFeature) SetAnimationBlendWeight(layerName, anim, blend string, w, ms float64, ease easing.Func) *deferred.Signal {
	l, _ := f.layer(layerName)
	if l == nil {
		return deferred.Rejected[struct{}](fmt.Errorf("blend weight on %q: %w", layerName, ErrLayerNotFound))
	}
	s, ok := l.container.State(anim)
	if !ok {
		return deferred.Rejected[struct{}](fmt.Errorf("blend weight on %q: %w", anim, ErrAnimationNotFound))
	}
	fb, ok := s.(*state.FreeBlend)
	if !ok {
		return deferred.Rejected[struct{}](fmt.Errorf("blend weight on %q: %w", anim, ErrNotBlendState))
	}
	sig, err := fb.SetBlendWeight(blend, w, ms, ease)
	if err != nil {
		return deferred.Rejected[struct{}](err)
	}
	return sig
}

// Pause freezes time for every layer. Update keeps running the weight
// cascade with a zero delta.
func (f *AnimationFeature) Pause() { f.paused = true }

func (f *AnimationFeature) Resume() { f.paused = false }

func (f *AnimationFeature) Paused() bool { return f.paused }

// updateInternalWeights walks the stack from the top. Each layer gets what
// is left of the budget; an Override layer with a current state then
// consumes its share.
func (f *AnimationFeature) updateInternalWeights() {
	multiplier := 1.0
	for i := len(f.layers) - 1; i >= 0; i-- {
		l := f.layers[i]
		l.UpdateInternalWeight(multiplier)

		if cur := l.CurrentState(); cur != nil && l.blendMode == engine.Override {
			multiplier *= 1 - cur.InternalWeight()
		}
	}
}

func (f *AnimationFeature) Update(deltaMs float64) {
	if len(f.layers) == 0 {
		return
	}
	if f.paused {
		deltaMs = 0
	}

	f.updateInternalWeights()
	for _, l := range slices.Clone(f.layers) {
		l.Update(deltaMs)
	}
	f.mixer.Advance(deltaMs / 1000)
}

// Discard discards every layer and releases all mixer actions
func (f *AnimationFeature) Discard() {
	for _, l := range f.layers {
		l.Discard()
	}
	f.layers = nil
	f.mixer.ReleaseAll()
}
