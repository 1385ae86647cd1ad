package deferred

import (
	"fmt"

	"github.com/comalice/hostanim/easing"
)

// Wait returns a Signal that resolves once ms of time has been fed to it
// through Execute. Progress hooks receive the elapsed fraction on every
// non-zero step. ms <= 0 resolves immediately.
func Wait(ms float64, opts ...Option[struct{}]) *Signal {
	d := New[struct{}](nil, opts...)
	if ms <= 0 {
		d.Resolve(struct{}{})
		return d
	}

	var elapsed float64
	d.exec = func(d *Signal, deltaMs float64) {
		if !validDelta(deltaMs) {
			d.Reject(fmt.Errorf("wait: %w: %v", ErrInvalidDelta, deltaMs))
			return
		}
		if deltaMs == 0 {
			return
		}
		elapsed += deltaMs
		d.Progress(min(elapsed/ms, 1))
		if elapsed >= ms {
			d.Resolve(struct{}{})
		}
	}
	return d
}

// Interpolate animates a value from its current reading to target over ms.
// Each Execute writes lerp(start, target, ease(t)) through set and the final
// step writes target exactly. Progress hooks receive the written value.
// ms <= 0 writes target immediately and returns a resolved Signal.
func Interpolate(get func() float64, set func(float64), target, ms float64, ease easing.Func, opts ...Option[struct{}]) *Signal {
	d := New[struct{}](nil, opts...)
	if ms <= 0 {
		set(target)
		d.Resolve(struct{}{})
		return d
	}
	if ease == nil {
		ease = easing.Linear
	}

	start := get()
	var elapsed float64
	d.exec = func(d *Signal, deltaMs float64) {
		if !validDelta(deltaMs) {
			d.Reject(fmt.Errorf("interpolate: %w: %v", ErrInvalidDelta, deltaMs))
			return
		}
		elapsed += deltaMs
		t := min(elapsed/ms, 1)
		v := easing.Lerp(start, target, ease(t))
		if t >= 1 {
			v = target
		}
		set(v)
		if deltaMs != 0 {
			d.Progress(v)
		}
		if t >= 1 {
			d.Resolve(struct{}{})
		}
	}
	return d
}
