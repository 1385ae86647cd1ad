// Package softmix is a headless reference implementation of engine.Mixer.
// It advances action clocks, honours loop modes and emits finished
// notifications, but computes no pose. It backs tests, the demo commands
// and any host that only needs weights and timing.
package softmix

import (
	"sort"
	"sync"

	"github.com/comalice/hostanim/engine"
	"go.uber.org/zap"
)

// Mixer owns a set of actions. It is safe for concurrent use, but finished
// listeners always run on the goroutine calling Advance.
type Mixer struct {
	mu        sync.Mutex
	actions   []*Action
	byClip    map[engine.Clip]*Action
	listeners map[int]func(engine.Action)
	nextID    int
	elapsed   float64
}

var _ engine.Mixer = (*Mixer)(nil)

// NewMixer creates an empty mixer
func NewMixer() *Mixer {
	return &Mixer{
		byClip:    make(map[engine.Clip]*Action),
		listeners: make(map[int]func(engine.Action)),
	}
}

// ResolveAction binds clip to a new action, cloning the clip when it is
// already bound.
func (m *Mixer) ResolveAction(clip engine.Clip) engine.Action {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byClip[clip]; exists {
		clip = clip.Clone()
		Logger().Debug("clip already bound, cloned", zap.String("clip", clip.Name()))
	}
	a := &Action{
		mixer:     m,
		clip:      clip,
		timeScale: 1,
		weight:    0,
	}
	m.actions = append(m.actions, a)
	m.byClip[clip] = a
	return a
}

// Advance steps every running action by deltaSeconds and then notifies
// finished listeners outside the lock.
func (m *Mixer) Advance(deltaSeconds float64) {
	m.mu.Lock()
	m.elapsed += deltaSeconds
	var finished []*Action
	for _, a := range m.actions {
		if a.step(deltaSeconds) {
			finished = append(finished, a)
		}
	}
	listeners := m.sortedListeners()
	m.mu.Unlock()

	for _, a := range finished {
		for _, fn := range listeners {
			fn(a)
		}
	}
}

func (m *Mixer) sortedListeners() []func(engine.Action) {
	ids := make([]int, 0, len(m.listeners))
	for id := range m.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]func(engine.Action), 0, len(ids))
	for _, id := range ids {
		out = append(out, m.listeners[id])
	}
	return out
}

// OnFinished subscribes fn to finished notifications
func (m *Mixer) OnFinished(fn func(engine.Action)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.listeners, id)
	}
}

// Release unbinds an action. Unknown actions are ignored.
func (m *Mixer) Release(action engine.Action) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, a := range m.actions {
		if engine.Action(a) == action {
			m.actions = append(m.actions[:i], m.actions[i+1:]...)
			delete(m.byClip, a.clip)
			return
		}
	}
	Logger().Debug("release of unknown action ignored")
}

// ReleaseAll unbinds every action and drops all listeners
func (m *Mixer) ReleaseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.actions = nil
	m.byClip = make(map[engine.Clip]*Action)
	m.listeners = make(map[int]func(engine.Action))
}

// Elapsed returns the total time advanced, in seconds
func (m *Mixer) Elapsed() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.elapsed
}

// ActionState is a point-in-time copy of one action
type ActionState struct {
	Clip      string           `json:"clip" yaml:"clip"`
	Weight    float64          `json:"weight" yaml:"weight"`
	TimeScale float64          `json:"timeScale" yaml:"timeScale"`
	Time      float64          `json:"time" yaml:"time"`
	Enabled   bool             `json:"enabled" yaml:"enabled"`
	Paused    bool             `json:"paused" yaml:"paused"`
	Running   bool             `json:"running" yaml:"running"`
	BlendMode engine.BlendMode `json:"blendMode" yaml:"blendMode"`
}

// Snapshot copies the state of every bound action in binding order
func (m *Mixer) Snapshot() []ActionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ActionState, 0, len(m.actions))
	for _, a := range m.actions {
		out = append(out, ActionState{
			Clip:      a.clip.Name(),
			Weight:    a.weight,
			TimeScale: a.timeScale,
			Time:      a.time,
			Enabled:   a.enabled,
			Paused:    a.paused,
			Running:   a.running,
			BlendMode: a.blend,
		})
	}
	return out
}

// Len returns the number of bound actions
func (m *Mixer) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.actions)
}
