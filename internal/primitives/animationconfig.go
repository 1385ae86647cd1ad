package primitives

import (
	"errors"
	"fmt"
	"strings"

	"github.com/comalice/hostanim/easing"
)

// AnimationType names the kind of state an AnimationConfig builds
type AnimationType string

const (
	Single    AnimationType = "single"
	Random    AnimationType = "random"
	FreeBlend AnimationType = "freeblend"
)

// normalize folds case, dashes and underscores. Empty means Single.
func (t AnimationType) normalize() AnimationType {
	s := strings.NewReplacer("-", "", "_", "").Replace(strings.ToLower(strings.TrimSpace(string(t))))
	switch s {
	case "":
		return Single
	case "blend":
		return FreeBlend
	}
	return AnimationType(s)
}

// AnimationConfig describes one animation. Clip, LoopCount and TimeScale apply
// to singles; PlayIntervalMs and TransitionMs to random animations. Weight is
// the blend weight of a free-blend child and the initial state weight
// otherwise.
type AnimationConfig struct {
	Name           string             `json:"name" yaml:"name"`
	Type           AnimationType      `json:"type,omitempty" yaml:"type,omitempty"`
	Clip           string             `json:"clip,omitempty" yaml:"clip,omitempty"`
	LoopCount      int                `json:"loopCount,omitempty" yaml:"loopCount,omitempty"`
	TimeScale      float64            `json:"timeScale,omitempty" yaml:"timeScale,omitempty"`
	Weight         float64            `json:"weight,omitempty" yaml:"weight,omitempty"`
	PlayIntervalMs float64            `json:"playIntervalMs,omitempty" yaml:"playIntervalMs,omitempty"`
	TransitionMs   float64            `json:"transitionMs,omitempty" yaml:"transitionMs,omitempty"`
	Easing         string             `json:"easing,omitempty" yaml:"easing,omitempty"`
	SubAnimations  []*AnimationConfig `json:"subAnimations,omitempty" yaml:"subAnimations,omitempty"`
}

// NewAnimationConfig creates an AnimationConfig with Name and Type.
func NewAnimationConfig(name string, typ AnimationType) *AnimationConfig {
	return &AnimationConfig{
		Name: name,
		Type: typ,
	}
}

// Kind returns the normalized type
func (a *AnimationConfig) Kind() AnimationType {
	return a.Type.normalize()
}

// WithClip sets the clip name.
func (a *AnimationConfig) WithClip(clip string) *AnimationConfig {
	a.Clip = clip
	return a
}

// WithLoopCount sets the repetitions; 0 loops forever.
func (a *AnimationConfig) WithLoopCount(n int) *AnimationConfig {
	a.LoopCount = n
	return a
}

func (a *AnimationConfig) WithTimeScale(scale float64) *AnimationConfig {
	a.TimeScale = scale
	return a
}

func (a *AnimationConfig) WithWeight(w float64) *AnimationConfig {
	a.Weight = w
	return a
}

// WithPlayInterval sets the base wait between random picks.
func (a *AnimationConfig) WithPlayInterval(ms float64) *AnimationConfig {
	a.PlayIntervalMs = ms
	return a
}

// WithTransition sets the fade used between random picks.
func (a *AnimationConfig) WithTransition(ms float64, easingName string) *AnimationConfig {
	a.TransitionMs = ms
	a.Easing = easingName
	return a
}

// AddSub appends a sub-animation.
func (a *AnimationConfig) AddSub(child *AnimationConfig) *AnimationConfig {
	a.SubAnimations = append(a.SubAnimations, child)
	return a
}

// Sub creates and adds a sub-animation (single by default, or specified type).
// Returns the child for fluent chaining: blink.Sub("blink1").WithClip("blink_a").
func (a *AnimationConfig) Sub(name string, typ ...AnimationType) *AnimationConfig {
	t := Single
	if len(typ) > 0 {
		t = typ[0]
	}
	child := NewAnimationConfig(name, t)
	a.AddSub(child)
	return child
}

// Flatten returns this config and every descendant, depth first.
func (a *AnimationConfig) Flatten() []*AnimationConfig {
	var out []*AnimationConfig
	a.flattenHelper(&out)
	return out
}

func (a *AnimationConfig) flattenHelper(out *[]*AnimationConfig) {
	if a == nil {
		return
	}
	*out = append(*out, a)
	for _, child := range a.SubAnimations {
		child.flattenHelper(out)
	}
}

// Validate performs recursive validation of the AnimationConfig tree.
func (a *AnimationConfig) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return errors.New("animation name is required")
	}

	kind := a.Kind()
	switch kind {
	case Single:
		if a.Clip == "" {
			return fmt.Errorf("single animation %s requires a clip", a.Name)
		}
		if len(a.SubAnimations) > 0 {
			return fmt.Errorf("single animation %s cannot have sub-animations", a.Name)
		}
		if a.LoopCount < 0 {
			return fmt.Errorf("animation %s has negative loopCount %d", a.Name, a.LoopCount)
		}
	case Random, FreeBlend:
		if len(a.SubAnimations) == 0 {
			return fmt.Errorf("%s animation %s requires sub-animations", kind, a.Name)
		}
		if a.Clip != "" {
			return fmt.Errorf("%s animation %s cannot reference a clip", kind, a.Name)
		}
	default:
		return fmt.Errorf("invalid animation type %q for animation %s", a.Type, a.Name)
	}

	if a.Weight < 0 || a.Weight > 1 {
		return fmt.Errorf("animation %s weight %v outside [0,1]", a.Name, a.Weight)
	}
	if a.PlayIntervalMs < 0 || a.TransitionMs < 0 {
		return fmt.Errorf("animation %s has a negative duration", a.Name)
	}
	if _, ok := easing.ByName(a.Easing); !ok {
		return fmt.Errorf("unknown easing %q for animation %s", a.Easing, a.Name)
	}

	seen := make(map[string]struct{}, len(a.SubAnimations))
	for i, child := range a.SubAnimations {
		if child == nil {
			return fmt.Errorf("sub-animation %d of %s is nil", i, a.Name)
		}
		if err := child.Validate(); err != nil {
			return fmt.Errorf("sub-animation %d (%s) of %s failed validation: %w", i, child.Name, a.Name, err)
		}
		if _, dup := seen[child.Name]; dup {
			return fmt.Errorf("duplicate sub-animation %q in %s", child.Name, a.Name)
		}
		seen[child.Name] = struct{}{}
	}

	return nil
}
