package hostanim

import (
	"github.com/comalice/hostanim/engine"
	"github.com/comalice/hostanim/state"
)

// Snapshot is a point-in-time copy of a feature's layer stack, bottom first
type Snapshot struct {
	Paused bool            `json:"paused" yaml:"paused"`
	Layers []LayerSnapshot `json:"layers" yaml:"layers"`
}

type LayerSnapshot struct {
	Name           string              `json:"name" yaml:"name"`
	BlendMode      engine.BlendMode    `json:"blendMode" yaml:"blendMode"`
	Weight         float64             `json:"weight" yaml:"weight"`
	InternalWeight float64             `json:"internalWeight" yaml:"internalWeight"`
	Current        string              `json:"current,omitempty" yaml:"current,omitempty"`
	Transitioning  bool                `json:"transitioning" yaml:"transitioning"`
	Paused         bool                `json:"paused" yaml:"paused"`
	Animations     []AnimationSnapshot `json:"animations" yaml:"animations"`
}

type AnimationSnapshot struct {
	Name           string              `json:"name" yaml:"name"`
	Type           string              `json:"type" yaml:"type"`
	Weight         float64             `json:"weight" yaml:"weight"`
	InternalWeight float64             `json:"internalWeight" yaml:"internalWeight"`
	Paused         bool                `json:"paused" yaml:"paused"`
	SubAnimations  []AnimationSnapshot `json:"subAnimations,omitempty" yaml:"subAnimations,omitempty"`
}

// Snapshot copies the current layer stack
func (f *AnimationFeature) Snapshot() Snapshot {
	snap := Snapshot{Paused: f.paused, Layers: make([]LayerSnapshot, 0, len(f.layers))}
	for _, l := range f.layers {
		ls := LayerSnapshot{
			Name:           l.name,
			BlendMode:      l.blendMode,
			Weight:         l.weight,
			InternalWeight: l.internalWeight,
			Current:        l.CurrentAnimation(),
			Transitioning:  l.IsTransitioning(),
			Paused:         l.paused,
		}
		for _, s := range l.container.States() {
			ls.Animations = append(ls.Animations, snapshotState(s))
		}
		snap.Layers = append(snap.Layers, ls)
	}
	return snap
}

func snapshotState(s state.State) AnimationSnapshot {
	as := AnimationSnapshot{
		Name:           s.Name(),
		Type:           typeOf(s).String(),
		Weight:         s.Weight(),
		InternalWeight: s.InternalWeight(),
		Paused:         s.Paused(),
	}
	if c, ok := s.(interface{ Container() *state.Container }); ok {
		for _, sub := range c.Container().States() {
			as.SubAnimations = append(as.SubAnimations, snapshotState(sub))
		}
	}
	return as
}
