package speech

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/comalice/hostanim"
	"github.com/comalice/hostanim/easing"
	"github.com/comalice/hostanim/state"
)

// LipsyncFeatureName is the name LipsyncFeature registers under
const LipsyncFeatureName = "LipsyncFeature"

// LipsyncConfig names the FreeBlend animation that holds one sub-state per
// viseme shape.
type LipsyncConfig struct {
	Layer     string
	Animation string
	// BlendMs is the fade time between viseme shapes
	BlendMs float64
	// LayerFadeMs fades the viseme layer in on speech start and out on end
	LayerFadeMs float64
	// Visemes maps viseme values to sub-state names. Unmapped values are
	// used as names directly.
	Visemes map[string]string
	Easing  easing.Func
}

// LipsyncFeature drives a viseme FreeBlend from SpeechFeature events
type LipsyncFeature struct {
	hostanim.FeatureBase

	anim      *hostanim.AnimationFeature
	cfg       LipsyncConfig
	listeners map[string]hostanim.ListenerID
}

var _ hostanim.Feature = (*LipsyncFeature)(nil)

// NewLipsyncFeature validates that cfg points at a FreeBlend on anim and
// starts listening for speech events on host.
func NewLipsyncFeature(host *hostanim.Host, anim *hostanim.AnimationFeature, cfg LipsyncConfig) (*LipsyncFeature, error) {
	if cfg.Easing == nil {
		cfg.Easing = easing.QuadOut
	}
	l := &LipsyncFeature{
		FeatureBase: hostanim.NewFeatureBase(host, LipsyncFeatureName),
		anim:        anim,
		cfg:         cfg,
		listeners:   make(map[string]hostanim.ListenerID),
	}
	if _, err := l.blend(); err != nil {
		return nil, err
	}

	l.listen(EventStart, func(any) { l.onStart() })
	l.listen(EventEnd, func(any) { l.onEnd() })
	l.listen(EventStop, func(any) { l.onEnd() })
	l.listen(EventViseme, func(v any) {
		if m, ok := v.(Mark); ok {
			l.onViseme(m.Value)
		}
	})
	return l, nil
}

func (l *LipsyncFeature) listen(event string, fn func(any)) {
	topic := hostanim.FeatureEvent(FeatureName, event)
	l.listeners[topic] = l.Host().ListenTo(topic, fn)
}

func (l *LipsyncFeature) blend() (*state.FreeBlend, error) {
	layer, ok := l.anim.Layer(l.cfg.Layer)
	if !ok {
		return nil, fmt.Errorf("lipsync layer %q: %w", l.cfg.Layer, hostanim.ErrLayerNotFound)
	}
	s, ok := layer.Container().State(l.cfg.Animation)
	if !ok {
		return nil, fmt.Errorf("lipsync animation %q: %w", l.cfg.Animation, hostanim.ErrAnimationNotFound)
	}
	fb, ok := s.(*state.FreeBlend)
	if !ok {
		return nil, fmt.Errorf("lipsync animation %q: %w", l.cfg.Animation, hostanim.ErrNotBlendState)
	}
	return fb, nil
}

func (l *LipsyncFeature) onStart() {
	l.anim.SetLayerWeight(l.cfg.Layer, 1, l.cfg.LayerFadeMs, l.cfg.Easing)
	if layer, ok := l.anim.Layer(l.cfg.Layer); ok && layer.CurrentAnimation() != l.cfg.Animation {
		l.anim.PlayAnimation(l.cfg.Layer, l.cfg.Animation)
	}
}

func (l *LipsyncFeature) onEnd() {
	l.fadeTo("")
	l.anim.SetLayerWeight(l.cfg.Layer, 0, l.cfg.LayerFadeMs, l.cfg.Easing)
}

func (l *LipsyncFeature) onViseme(value string) {
	target := value
	if mapped, ok := l.cfg.Visemes[value]; ok {
		target = mapped
	}
	l.fadeTo(target)
}

// fadeTo raises target to 1 and every other shape to 0. An empty target
// closes the mouth.
func (l *LipsyncFeature) fadeTo(target string) {
	fb, err := l.blend()
	if err != nil {
		hostanim.Logger().Warn("lipsync target missing", zap.Error(err))
		return
	}
	if _, ok := fb.Container().State(target); target != "" && !ok {
		hostanim.Logger().Debug("no viseme shape", zap.String("viseme", target))
	}
	for _, name := range fb.Container().Names() {
		w := 0.0
		if name == target {
			w = 1
		}
		l.anim.SetAnimationBlendWeight(l.cfg.Layer, l.cfg.Animation, name, w, l.cfg.BlendMs, l.cfg.Easing)
	}
}

// Discard stops listening for speech events
func (l *LipsyncFeature) Discard() {
	for topic, id := range l.listeners {
		l.Host().StopListening(topic, id)
	}
	clear(l.listeners)
}
