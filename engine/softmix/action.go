package softmix

import (
	"github.com/comalice/hostanim/engine"
)

// Action tracks playback of one clip inside a Mixer. All accessors take the
// mixer lock so a renderer goroutine can sample while the host updates.
type Action struct {
	mixer *Mixer
	clip  engine.Clip

	enabled, paused bool
	running         bool
	loop            engine.LoopMode
	repetitions     int
	loopsDone       int
	clamp           bool
	timeScale       float64
	weight          float64
	blend           engine.BlendMode
	time            float64
}

var _ engine.Action = (*Action)(nil)

func (a *Action) Clip() engine.Clip { return a.clip }

func (a *Action) Enabled() bool {
	a.mixer.mu.Lock()
	defer a.mixer.mu.Unlock()
	return a.enabled
}

func (a *Action) SetEnabled(enabled bool) {
	a.mixer.mu.Lock()
	defer a.mixer.mu.Unlock()
	a.enabled = enabled
}

func (a *Action) Paused() bool {
	a.mixer.mu.Lock()
	defer a.mixer.mu.Unlock()
	return a.paused
}

func (a *Action) SetPaused(paused bool) {
	a.mixer.mu.Lock()
	defer a.mixer.mu.Unlock()
	a.paused = paused
}

func (a *Action) Loop() engine.LoopMode {
	a.mixer.mu.Lock()
	defer a.mixer.mu.Unlock()
	return a.loop
}

func (a *Action) Repetitions() int {
	a.mixer.mu.Lock()
	defer a.mixer.mu.Unlock()
	return a.repetitions
}

func (a *Action) SetLoop(mode engine.LoopMode, repetitions int) {
	a.mixer.mu.Lock()
	defer a.mixer.mu.Unlock()
	a.loop = mode
	a.repetitions = max(repetitions, 0)
}

func (a *Action) ClampWhenFinished() bool {
	a.mixer.mu.Lock()
	defer a.mixer.mu.Unlock()
	return a.clamp
}

func (a *Action) SetClampWhenFinished(clamp bool) {
	a.mixer.mu.Lock()
	defer a.mixer.mu.Unlock()
	a.clamp = clamp
}

func (a *Action) TimeScale() float64 {
	a.mixer.mu.Lock()
	defer a.mixer.mu.Unlock()
	return a.timeScale
}

func (a *Action) SetTimeScale(scale float64) {
	a.mixer.mu.Lock()
	defer a.mixer.mu.Unlock()
	a.timeScale = scale
}

func (a *Action) Weight() float64 {
	a.mixer.mu.Lock()
	defer a.mixer.mu.Unlock()
	return a.weight
}

func (a *Action) SetWeight(weight float64) {
	a.mixer.mu.Lock()
	defer a.mixer.mu.Unlock()
	a.weight = weight
}

func (a *Action) BlendMode() engine.BlendMode {
	a.mixer.mu.Lock()
	defer a.mixer.mu.Unlock()
	return a.blend
}

func (a *Action) SetBlendMode(mode engine.BlendMode) {
	a.mixer.mu.Lock()
	defer a.mixer.mu.Unlock()
	a.blend = mode
}

func (a *Action) Time() float64 {
	a.mixer.mu.Lock()
	defer a.mixer.mu.Unlock()
	return a.time
}

func (a *Action) SetTime(t float64) {
	a.mixer.mu.Lock()
	defer a.mixer.mu.Unlock()
	a.time = t
}

// Running reports whether the action is scheduled and has not finished
func (a *Action) Running() bool {
	a.mixer.mu.Lock()
	defer a.mixer.mu.Unlock()
	return a.running
}

func (a *Action) Reset() {
	a.mixer.mu.Lock()
	defer a.mixer.mu.Unlock()
	a.time = 0
	a.loopsDone = 0
	a.paused = false
	a.enabled = true
}

func (a *Action) Play() {
	a.mixer.mu.Lock()
	defer a.mixer.mu.Unlock()
	a.running = true
}

// step advances the action and reports whether it finished this frame.
// Caller holds the mixer lock.
func (a *Action) step(dt float64) bool {
	if !a.running || !a.enabled || a.paused || dt == 0 {
		return false
	}
	duration := a.clip.Duration()
	a.time += dt * a.timeScale
	if duration <= 0 {
		return false
	}

	switch a.loop {
	case engine.LoopOnce:
		if a.time >= duration || a.time < 0 {
			a.finishAt(duration)
			return true
		}
	default:
		for a.time >= duration {
			a.time -= duration
			a.loopsDone++
			if a.repetitions > 0 && a.loopsDone >= a.repetitions {
				a.finishAt(duration)
				return true
			}
		}
		for a.time < 0 {
			a.time += duration
		}
	}
	return false
}

func (a *Action) finishAt(duration float64) {
	a.running = false
	if a.timeScale < 0 {
		a.time = 0
	} else {
		a.time = duration
	}
	if !a.clamp {
		a.enabled = false
		a.time = 0
	}
}
