package hostanim

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/comalice/hostanim/easing"
	"github.com/comalice/hostanim/engine"
	"github.com/comalice/hostanim/state"
)

// AnimationType selects the state built for an AnimationSpec
type AnimationType int

const (
	AnimationSingle AnimationType = iota
	AnimationRandom
	AnimationFreeBlend
)

func (t AnimationType) String() string {
	switch t {
	case AnimationSingle:
		return "single"
	case AnimationRandom:
		return "random"
	case AnimationFreeBlend:
		return "freeblend"
	}
	return fmt.Sprintf("AnimationType(%d)", int(t))
}

// ParseAnimationType accepts the String forms, ignoring case, dashes and
// underscores. Empty means single.
func ParseAnimationType(s string) (AnimationType, error) {
	norm := strings.NewReplacer("-", "", "_", "").Replace(strings.ToLower(strings.TrimSpace(s)))
	switch norm {
	case "", "single":
		return AnimationSingle, nil
	case "random":
		return AnimationRandom, nil
	case "freeblend", "blend":
		return AnimationFreeBlend, nil
	}
	return AnimationSingle, fmt.Errorf("%w: %q", ErrInvalidAnimationType, s)
}

// AnimationSpec describes an animation to add to a layer. Sub-animations are
// used by Random and FreeBlend.
type AnimationSpec struct {
	Type AnimationType
	Name string

	// Single
	Clip      engine.Clip
	LoopCount int
	TimeScale float64

	// Random
	PlayIntervalMs float64
	TransitionMs   float64
	Easing         easing.Func

	Weight        float64
	SubAnimations []AnimationSpec
}

// buildState turns spec into a state whose clips are bound on mixer
func buildState(name string, spec AnimationSpec, mixer engine.Mixer, mode engine.BlendMode, rng *rand.Rand) (state.State, error) {
	switch spec.Type {
	case AnimationSingle:
		if spec.Clip == nil {
			return nil, fmt.Errorf("animation %q: %w", name, ErrClipNotFound)
		}
		opts := []state.SingleOption{
			state.WithLoopCount(spec.LoopCount),
			state.WithBlendMode(mode),
			state.WithWeight(spec.Weight),
		}
		if spec.TimeScale != 0 {
			opts = append(opts, state.WithTimeScale(spec.TimeScale))
		}
		return state.NewSingle(name, mixer, spec.Clip, opts...), nil

	case AnimationRandom, AnimationFreeBlend:
		subs := make([]state.State, 0, len(spec.SubAnimations))
		for i, sub := range spec.SubAnimations {
			subName := sub.Name
			if subName == "" {
				subName = fmt.Sprintf("%s%d", name, i+1)
			}
			s, err := buildState(subName, sub, mixer, mode, rng)
			if err != nil {
				for _, built := range subs {
					built.Discard()
				}
				return nil, fmt.Errorf("animation %q: %w", name, err)
			}
			subs = append(subs, s)
		}

		if spec.Type == AnimationFreeBlend {
			return state.NewFreeBlend(name, spec.Weight, subs...), nil
		}
		opts := []state.RandomOption{
			state.WithSubStates(subs...),
			state.WithRandomTransition(spec.TransitionMs, spec.Easing),
			state.WithRandomWeight(spec.Weight),
			state.WithRand(rng),
		}
		if spec.PlayIntervalMs > 0 {
			opts = append(opts, state.WithPlayInterval(spec.PlayIntervalMs))
		}
		return state.NewRandom(name, opts...), nil
	}
	return nil, fmt.Errorf("animation %q: %w: %v", name, ErrInvalidAnimationType, spec.Type)
}

// typeOf reports the AnimationType of a built state
func typeOf(s state.State) AnimationType {
	switch s.(type) {
	case *state.Random:
		return AnimationRandom
	case *state.FreeBlend:
		return AnimationFreeBlend
	}
	return AnimationSingle
}
