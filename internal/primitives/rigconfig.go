package primitives

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// RigConfig defines a complete rig. Layers are ordered bottom to top.
type RigConfig struct {
	Version string         `json:"version,omitempty" yaml:"version,omitempty"`
	Name    string         `json:"name" yaml:"name"`
	Layers  []*LayerConfig `json:"layers" yaml:"layers"`
}

// NewRigConfig creates an empty rig.
func NewRigConfig(name string) *RigConfig {
	return &RigConfig{Name: name}
}

// AddLayer appends a layer on top of the stack.
func (r *RigConfig) AddLayer(l *LayerConfig) *RigConfig {
	r.Layers = append(r.Layers, l)
	return r
}

// Layer creates and adds a layer, returning it for chaining.
func (r *RigConfig) Layer(name string) *LayerConfig {
	l := NewLayerConfig(name)
	r.AddLayer(l)
	return l
}

// FindLayer returns the layer called name, or nil.
func (r *RigConfig) FindLayer(name string) *LayerConfig {
	for _, l := range r.Layers {
		if l != nil && l.Name == name {
			return l
		}
	}
	return nil
}

// Validate validates the entire rig:
// - Non-empty Name
// - At least one layer
// - Unique layer names (reported here, renamed only at runtime)
// - All layers and animations validate (recursive)
func (r *RigConfig) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("rig name is required")
	}
	if len(r.Layers) == 0 {
		return errors.New("rig requires at least one layer")
	}

	seen := make(map[string]int, len(r.Layers))
	for i, l := range r.Layers {
		if l == nil {
			return fmt.Errorf("layer %d is nil", i)
		}
		if err := l.Validate(); err != nil {
			return fmt.Errorf("layer %d validation failed: %w", i, err)
		}
		if prev, dup := seen[l.Name]; dup {
			return fmt.Errorf("duplicate layer name %q (layers %d and %d)", l.Name, prev, i)
		}
		seen[l.Name] = i
	}
	return nil
}

// FindAnimation resolves an animation by path: "layer.animation.sub...".
func (r *RigConfig) FindAnimation(path string) (*AnimationConfig, error) {
	if path == "" {
		return nil, errors.New("path cannot be empty")
	}
	segments := strings.Split(path, ".")
	if len(segments) < 2 {
		return nil, fmt.Errorf("path %q must name a layer and an animation", path)
	}
	layer := r.FindLayer(segments[0])
	if layer == nil {
		return nil, fmt.Errorf("layer %q not found", segments[0])
	}
	current := layer.FindAnimation(segments[1])
	if current == nil {
		return nil, fmt.Errorf("animation %q not found in layer %q", segments[1], segments[0])
	}
	for i := 2; i < len(segments); i++ {
		seg := segments[i]
		var next *AnimationConfig
		for _, child := range current.SubAnimations {
			if child.Name == seg {
				next = child
				break
			}
		}
		if next == nil {
			prefix := strings.Join(segments[:i], ".")
			return nil, fmt.Errorf("sub-animation %q not found in %q", seg, prefix)
		}
		current = next
	}
	return current, nil
}

// Clips lists the distinct clip names the rig references, sorted.
func (r *RigConfig) Clips() []string {
	set := make(map[string]struct{})
	for _, l := range r.Layers {
		if l == nil {
			continue
		}
		for _, a := range l.Animations {
			if a == nil {
				continue
			}
			for _, node := range a.Flatten() {
				if node.Clip != "" {
					set[node.Clip] = struct{}{}
				}
			}
		}
	}
	out := make([]string, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
