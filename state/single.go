package state

import (
	"github.com/comalice/hostanim/deferred"
	"github.com/comalice/hostanim/easing"
	"github.com/comalice/hostanim/engine"
)

// Single plays exactly one clip through an engine action
type Single struct {
	Base

	mixer        engine.Mixer
	action       engine.Action
	unsubscribe  func()
	timeScale    float64
	timeScaleSig *deferred.Signal
	loopCount    int
	blendMode    engine.BlendMode
}

var _ State = (*Single)(nil)

// SingleOption configures a Single
type SingleOption func(*Single)

// WithTimeScale sets the initial playback speed
func WithTimeScale(scale float64) SingleOption {
	return func(s *Single) { s.timeScale = scale }
}

// WithLoopCount sets how many times the clip plays. 0 repeats forever.
func WithLoopCount(n int) SingleOption {
	return func(s *Single) { s.loopCount = max(n, 0) }
}

// WithBlendMode sets how the action composites
func WithBlendMode(mode engine.BlendMode) SingleOption {
	return func(s *Single) { s.blendMode = mode }
}

// WithWeight sets the initial user weight
func WithWeight(w float64) SingleOption {
	return func(s *Single) {
		s.weight = easing.Clamp01(w)
		s.internalWeight = s.weight
	}
}

// NewSingle binds clip to a fresh action on mixer. The action holds its last
// frame when a finite loop count completes.
func NewSingle(name string, mixer engine.Mixer, clip engine.Clip, opts ...SingleOption) *Single {
	s := &Single{
		Base:         NewBase(name, 0),
		mixer:        mixer,
		timeScale:    1,
		timeScaleSig: deferred.Done(),
		blendMode:    engine.Override,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.action = mixer.ResolveAction(clip)
	s.action.SetClampWhenFinished(true)
	s.action.SetEnabled(false)
	s.applyLoop()
	s.action.SetBlendMode(s.blendMode)
	s.sync()

	s.unsubscribe = mixer.OnFinished(s.onFinished)
	return s
}

func (s *Single) applyLoop() {
	if s.loopCount == 1 {
		s.action.SetLoop(engine.LoopOnce, 1)
		return
	}
	s.action.SetLoop(engine.LoopRepeat, s.loopCount)
}

func (s *Single) sync() {
	s.action.SetPaused(s.paused)
	s.action.SetTimeScale(s.timeScale)
	s.action.SetWeight(s.internalWeight)
}

func (s *Single) onFinished(a engine.Action) {
	if a != s.action {
		return
	}
	s.play.Resolve(struct{}{})

	// freeze on the last frame once nothing else is animating
	if !s.WeightPending() && !s.TimeScalePending() {
		s.paused = true
		s.action.SetPaused(true)
	}
}

// Action returns the bound engine action
func (s *Single) Action() engine.Action { return s.action }

func (s *Single) BlendMode() engine.BlendMode { return s.blendMode }

func (s *Single) SetBlendMode(mode engine.BlendMode) {
	s.blendMode = mode
	s.action.SetBlendMode(mode)
}

func (s *Single) LoopCount() int { return s.loopCount }

// SetLoopCount changes the loop count for the next play
func (s *Single) SetLoopCount(n int) {
	s.loopCount = max(n, 0)
	s.applyLoop()
}

func (s *Single) TimeScale() float64 { return s.timeScale }

func (s *Single) TimeScalePending() bool { return s.timeScaleSig.Pending() }

// SetTimeScale fades the playback speed to scale over ms
func (s *Single) SetTimeScale(scale, ms float64, ease easing.Func) *deferred.Signal {
	s.timeScaleSig.Cancel(struct{}{})
	if ms <= 0 {
		s.timeScale = scale
		s.timeScaleSig = deferred.Done()
		s.action.SetTimeScale(scale)
		return s.timeScaleSig
	}
	s.timeScaleSig = deferred.Interpolate(
		func() float64 { return s.timeScale },
		func(v float64) { s.timeScale = v },
		scale, ms, ease,
	)
	return s.timeScaleSig
}

// NormalizedTime is the playhead position as a fraction of the clip
func (s *Single) NormalizedTime() float64 {
	d := s.action.Clip().Duration()
	if d <= 0 {
		return 0
	}
	return s.action.Time() / d
}

// SetNormalizedTime moves the playhead to t of the clip duration
func (s *Single) SetNormalizedTime(t float64) {
	s.action.SetTime(easing.Clamp01(t) * s.action.Clip().Duration())
}

func (s *Single) UpdateInternalWeight(factor float64) {
	s.Base.UpdateInternalWeight(factor)
	s.action.SetWeight(s.internalWeight)
}

func (s *Single) Update(deltaMs float64) {
	if !s.paused {
		s.Base.Update(deltaMs)
		s.timeScaleSig.Execute(deltaMs)
	}
	s.sync()
}

func (s *Single) Play(cb PlayCallbacks) *deferred.Signal {
	finish := s.Base.Play(cb)
	s.action.Reset()
	s.action.SetEnabled(true)
	s.sync()
	s.action.Play()
	return finish
}

func (s *Single) Pause() bool {
	s.Base.Pause()
	s.action.SetPaused(true)
	return true
}

func (s *Single) Resume(cb PlayCallbacks) *deferred.Signal {
	finish := s.Base.Resume(cb)
	s.action.SetEnabled(true)
	s.sync()
	s.action.Play()
	return finish
}

func (s *Single) Cancel() bool {
	s.Base.Cancel()
	s.action.SetPaused(true)
	return true
}

func (s *Single) Stop() bool {
	s.Base.Stop()
	s.action.SetPaused(true)
	return true
}

func (s *Single) Deactivate() {
	s.Base.Deactivate()
	s.action.SetWeight(0)
}

// Discard cancels playback and releases the action back to the mixer
func (s *Single) Discard() {
	s.Cancel()
	s.timeScaleSig.Cancel(struct{}{})
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
	s.action.SetEnabled(false)
	s.mixer.Release(s.action)
}
