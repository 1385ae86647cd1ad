package primitives

import (
	"errors"
	"fmt"
	"strings"

	"github.com/comalice/hostanim/easing"
	"github.com/comalice/hostanim/engine"
)

// LayerConfig defines one layer of the stack. A nil Weight means full weight.
type LayerConfig struct {
	Name         string             `json:"name" yaml:"name"`
	BlendMode    engine.BlendMode   `json:"blendMode" yaml:"blendMode"`
	Weight       *float64           `json:"weight,omitempty" yaml:"weight,omitempty"`
	TransitionMs float64            `json:"transitionMs,omitempty" yaml:"transitionMs,omitempty"`
	Easing       string             `json:"easing,omitempty" yaml:"easing,omitempty"`
	Animations   []*AnimationConfig `json:"animations,omitempty" yaml:"animations,omitempty"`
}

// NewLayerConfig creates an override layer at full weight.
func NewLayerConfig(name string) *LayerConfig {
	return &LayerConfig{Name: name, BlendMode: engine.Override}
}

// Override sets the override blend mode.
func (l *LayerConfig) Override() *LayerConfig {
	l.BlendMode = engine.Override
	return l
}

// Additive sets the additive blend mode.
func (l *LayerConfig) Additive() *LayerConfig {
	l.BlendMode = engine.Additive
	return l
}

func (l *LayerConfig) WithWeight(w float64) *LayerConfig {
	l.Weight = &w
	return l
}

// WithTransition sets the default fade used when the layer switches animation.
func (l *LayerConfig) WithTransition(ms float64, easingName string) *LayerConfig {
	l.TransitionMs = ms
	l.Easing = easingName
	return l
}

// EffectiveWeight resolves the nil default.
func (l *LayerConfig) EffectiveWeight() float64 {
	if l.Weight == nil {
		return 1
	}
	return *l.Weight
}

// AddAnimation appends an animation.
func (l *LayerConfig) AddAnimation(a *AnimationConfig) *LayerConfig {
	l.Animations = append(l.Animations, a)
	return l
}

// Animation creates and adds an animation, returning it for chaining.
func (l *LayerConfig) Animation(name string, typ AnimationType) *AnimationConfig {
	a := NewAnimationConfig(name, typ)
	l.AddAnimation(a)
	return a
}

// FindAnimation returns the top-level animation called name, or nil.
func (l *LayerConfig) FindAnimation(name string) *AnimationConfig {
	for _, a := range l.Animations {
		if a != nil && a.Name == name {
			return a
		}
	}
	return nil
}

// Validate checks the layer and every animation in it.
func (l *LayerConfig) Validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return errors.New("layer name is required")
	}
	if l.BlendMode != engine.Override && l.BlendMode != engine.Additive {
		return fmt.Errorf("invalid blend mode %v for layer %s", l.BlendMode, l.Name)
	}
	if w := l.EffectiveWeight(); w < 0 || w > 1 {
		return fmt.Errorf("layer %s weight %v outside [0,1]", l.Name, w)
	}
	if l.TransitionMs < 0 {
		return fmt.Errorf("layer %s has negative transitionMs", l.Name)
	}
	if _, ok := easing.ByName(l.Easing); !ok {
		return fmt.Errorf("unknown easing %q for layer %s", l.Easing, l.Name)
	}

	seen := make(map[string]struct{}, len(l.Animations))
	for i, a := range l.Animations {
		if a == nil {
			return fmt.Errorf("animation %d of layer %s is nil", i, l.Name)
		}
		if err := a.Validate(); err != nil {
			return fmt.Errorf("layer %s: %w", l.Name, err)
		}
		if _, dup := seen[a.Name]; dup {
			return fmt.Errorf("duplicate animation %q in layer %s", a.Name, l.Name)
		}
		seen[a.Name] = struct{}{}
	}
	return nil
}
