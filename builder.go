package hostanim

import (
	"fmt"

	"github.com/comalice/hostanim/internal/primitives"
)

// RigBuilder provides a fluent API for constructing a RigConfig in code.
// Layer starts a new layer; Random and FreeBlend open a group that
// collects the animations added after them until Up closes it.
//
//	cfg, err := NewRigBuilder("host").
//		Layer("base").Single("idle", "idle_clip").
//		Layer("blink").Additive().Random("blink").Interval(3000).
//		Single("blink_a", "blink_a").
//		Single("blink_b", "blink_b").Up().
//		Build()
type RigBuilder struct {
	config *RigConfig
	layer  *LayerConfig
	stack  []*AnimationConfig
	last   *AnimationConfig
	err    error
}

// NewRigBuilder creates a builder for a rig called name.
func NewRigBuilder(name string) *RigBuilder {
	return &RigBuilder{config: primitives.NewRigConfig(name)}
}

func (b *RigBuilder) fail(format string, args ...any) *RigBuilder {
	if b.err == nil {
		b.err = fmt.Errorf(format, args...)
	}
	return b
}

// Layer appends a layer and makes it current. Open groups are closed.
func (b *RigBuilder) Layer(name string) *RigBuilder {
	b.layer = b.config.Layer(name)
	b.stack = b.stack[:0]
	b.last = nil
	return b
}

// Override sets the current layer's blend mode to override.
func (b *RigBuilder) Override() *RigBuilder {
	if b.layer == nil {
		return b.fail("Override called before Layer")
	}
	b.layer.Override()
	return b
}

// Additive sets the current layer's blend mode to additive.
func (b *RigBuilder) Additive() *RigBuilder {
	if b.layer == nil {
		return b.fail("Additive called before Layer")
	}
	b.layer.Additive()
	return b
}

// LayerWeight sets the current layer's initial weight.
func (b *RigBuilder) LayerWeight(w float64) *RigBuilder {
	if b.layer == nil {
		return b.fail("LayerWeight called before Layer")
	}
	b.layer.WithWeight(w)
	return b
}

// LayerTransition sets the current layer's default cross-fade.
func (b *RigBuilder) LayerTransition(ms float64, easingName string) *RigBuilder {
	if b.layer == nil {
		return b.fail("LayerTransition called before Layer")
	}
	b.layer.WithTransition(ms, easingName)
	return b
}

// add attaches a to the innermost open group, or to the current layer
func (b *RigBuilder) add(a *AnimationConfig) *RigBuilder {
	if b.layer == nil {
		return b.fail("animation %q added before Layer", a.Name)
	}
	if n := len(b.stack); n > 0 {
		b.stack[n-1].AddSub(a)
	} else {
		b.layer.AddAnimation(a)
	}
	b.last = a
	return b
}

// Single adds a clip animation.
func (b *RigBuilder) Single(name, clip string) *RigBuilder {
	return b.add(primitives.NewAnimationConfig(name, primitives.Single).WithClip(clip))
}

// Random adds a random group and opens it.
func (b *RigBuilder) Random(name string) *RigBuilder {
	return b.open(primitives.NewAnimationConfig(name, primitives.Random))
}

// FreeBlend adds a free-blend group and opens it.
func (b *RigBuilder) FreeBlend(name string) *RigBuilder {
	return b.open(primitives.NewAnimationConfig(name, primitives.FreeBlend))
}

func (b *RigBuilder) open(a *AnimationConfig) *RigBuilder {
	b.add(a)
	if b.layer != nil {
		b.stack = append(b.stack, a)
	}
	return b
}

// Up closes the innermost open group.
func (b *RigBuilder) Up() *RigBuilder {
	if len(b.stack) == 0 {
		return b.fail("Up called with no open group")
	}
	b.last = b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	return b
}

// Loop sets the loop count of the last animation added.
func (b *RigBuilder) Loop(n int) *RigBuilder {
	if b.last == nil {
		return b.fail("Loop called before any animation")
	}
	b.last.WithLoopCount(n)
	return b
}

// TimeScale sets the playback speed of the last animation added.
func (b *RigBuilder) TimeScale(scale float64) *RigBuilder {
	if b.last == nil {
		return b.fail("TimeScale called before any animation")
	}
	b.last.WithTimeScale(scale)
	return b
}

// Weight sets the weight of the last animation added.
func (b *RigBuilder) Weight(w float64) *RigBuilder {
	if b.last == nil {
		return b.fail("Weight called before any animation")
	}
	b.last.WithWeight(w)
	return b
}

func (b *RigBuilder) group(method string) *AnimationConfig {
	if len(b.stack) == 0 {
		b.fail("%s called with no open group", method)
		return nil
	}
	return b.stack[len(b.stack)-1]
}

// Interval sets the base play interval of the open random group.
func (b *RigBuilder) Interval(ms float64) *RigBuilder {
	if g := b.group("Interval"); g != nil {
		g.WithPlayInterval(ms)
	}
	return b
}

// Transition sets the fade between picks of the open random group.
func (b *RigBuilder) Transition(ms float64, easingName string) *RigBuilder {
	if g := b.group("Transition"); g != nil {
		g.WithTransition(ms, easingName)
	}
	return b
}

// Build validates and returns the rig. The first misuse of the builder is
// reported ahead of validation errors.
func (b *RigBuilder) Build() (*RigConfig, error) {
	if b.err != nil {
		return nil, b.err
	}
	if err := b.config.Validate(); err != nil {
		return nil, err
	}
	return b.config, nil
}

// MustBuild is Build that panics on error.
func (b *RigBuilder) MustBuild() *RigConfig {
	cfg, err := b.Build()
	if err != nil {
		panic(err)
	}
	return cfg
}
