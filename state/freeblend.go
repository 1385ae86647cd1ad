package state

import (
	"fmt"

	"github.com/comalice/hostanim/deferred"
	"github.com/comalice/hostanim/easing"
)

// FreeBlend plays all of its sub-states at once. Each sub-state keeps its
// own user weight, so the blend is shaped by tweening those weights.
type FreeBlend struct {
	Base

	container *Container
}

var _ State = (*FreeBlend)(nil)

func NewFreeBlend(name string, weight float64, states ...State) *FreeBlend {
	f := &FreeBlend{
		Base:      NewBase(name, weight),
		container: NewContainer(name),
	}
	for _, s := range states {
		f.container.Add(s)
	}
	return f
}

// Container holds the blend sub-states
func (f *FreeBlend) Container() *Container { return f.container }

// BlendWeight returns the user weight of one sub-state
func (f *FreeBlend) BlendWeight(name string) (float64, error) {
	s, ok := f.container.State(name)
	if !ok {
		return 0, fmt.Errorf("blend %q in %q: %w", name, f.name, ErrStateNotFound)
	}
	return s.Weight(), nil
}

// SetBlendWeight fades one sub-state to w over ms
func (f *FreeBlend) SetBlendWeight(name string, w, ms float64, ease easing.Func) (*deferred.Signal, error) {
	s, ok := f.container.State(name)
	if !ok {
		return nil, fmt.Errorf("blend %q in %q: %w", name, f.name, ErrStateNotFound)
	}
	return s.SetWeight(w, ms, ease), nil
}

func (f *FreeBlend) UpdateInternalWeight(factor float64) {
	f.Base.UpdateInternalWeight(factor)
	for _, s := range f.container.States() {
		s.UpdateInternalWeight(f.internalWeight)
	}
}

func (f *FreeBlend) Update(deltaMs float64) {
	f.Base.Update(deltaMs)
	for _, s := range f.container.States() {
		s.Update(deltaMs)
	}
}

// Play starts every sub-state. The returned signal settles with the blend
// itself, not with its sub-states.
func (f *FreeBlend) Play(cb PlayCallbacks) *deferred.Signal {
	finish := f.Base.Play(cb)
	for _, s := range f.container.States() {
		s.Play(PlayCallbacks{})
	}
	return finish
}

func (f *FreeBlend) Pause() bool {
	ok := true
	for _, s := range f.container.States() {
		ok = s.Pause() && ok
	}
	f.Base.Pause()
	return ok
}

func (f *FreeBlend) Resume(cb PlayCallbacks) *deferred.Signal {
	finish := f.Base.Resume(cb)
	for _, s := range f.container.States() {
		s.Resume(PlayCallbacks{})
	}
	return finish
}

func (f *FreeBlend) Cancel() bool {
	for _, s := range f.container.States() {
		s.Cancel()
	}
	return f.Base.Cancel()
}

func (f *FreeBlend) Stop() bool {
	for _, s := range f.container.States() {
		s.Stop()
	}
	return f.Base.Stop()
}

func (f *FreeBlend) Deactivate() {
	f.Base.Deactivate()
	for _, s := range f.container.States() {
		s.Deactivate()
	}
}

func (f *FreeBlend) Discard() {
	f.Base.Discard()
	f.container.DiscardStates()
}
