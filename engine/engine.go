// Package engine defines the narrow seam between the animation runtime and a
// rendering engine. The runtime only orchestrates weights and timing; an
// engine adapter binds clips to actions and advances them every frame.
package engine

import (
	"fmt"
	"strings"
)

// BlendMode controls how an action or layer composites against lower layers
type BlendMode int

const (
	// Override consumes weight budget from lower layers
	Override BlendMode = iota
	// Additive blends on top without reducing the budget
	Additive
)

func (b BlendMode) String() string {
	switch b {
	case Override:
		return "Override"
	case Additive:
		return "Additive"
	}
	return fmt.Sprintf("BlendMode(%d)", int(b))
}

// ParseBlendMode accepts "override" or "additive" in any case. Empty is Override.
func ParseBlendMode(s string) (BlendMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "override":
		return Override, nil
	case "additive":
		return Additive, nil
	}
	return Override, fmt.Errorf("unknown blend mode %q", s)
}

func (b BlendMode) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(b.String())), nil
}

func (b *BlendMode) UnmarshalText(text []byte) error {
	mode, err := ParseBlendMode(string(text))
	if err != nil {
		return err
	}
	*b = mode
	return nil
}

// LoopMode selects between one-shot and repeating playback
type LoopMode int

const (
	LoopRepeat LoopMode = iota
	LoopOnce
)

func (l LoopMode) String() string {
	if l == LoopOnce {
		return "once"
	}
	return "repeat"
}

// Clip is an engine-owned animation resource. The runtime never inspects
// keyframe data.
type Clip interface {
	Name() string
	// Duration in seconds
	Duration() float64
	// Clone returns an independent copy that can be bound to a second action
	Clone() Clip
}

// Action is a mutable playback handle bound to exactly one clip instance.
// Times are in seconds.
type Action interface {
	Clip() Clip

	Enabled() bool
	SetEnabled(enabled bool)
	Paused() bool
	SetPaused(paused bool)

	Loop() LoopMode
	// Repetitions of 0 means repeat forever
	Repetitions() int
	SetLoop(mode LoopMode, repetitions int)
	ClampWhenFinished() bool
	SetClampWhenFinished(clamp bool)

	TimeScale() float64
	SetTimeScale(scale float64)
	Weight() float64
	SetWeight(weight float64)
	BlendMode() BlendMode
	SetBlendMode(mode BlendMode)

	Time() float64
	SetTime(t float64)

	// Reset rewinds to the start and clears the finished state
	Reset()
	Play()
}

// Mixer owns a pool of actions and mixes them into a pose each frame
type Mixer interface {
	// ResolveAction binds clip to a fresh action. A clip that already has
	// an action is cloned first so two states never share one action.
	ResolveAction(clip Clip) Action
	// Advance moves every playing action forward by deltaSeconds
	Advance(deltaSeconds float64)
	// OnFinished subscribes fn to finished notifications for every action
	// in the mixer. Call the returned func to unsubscribe.
	OnFinished(fn func(Action)) (unsubscribe func())
	Release(action Action)
	ReleaseAll()
}
