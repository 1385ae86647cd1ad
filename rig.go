package hostanim

import (
	"fmt"
	"os"

	"github.com/comalice/hostanim/easing"
	"github.com/comalice/hostanim/engine"
	"github.com/comalice/hostanim/internal/primitives"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Rig configuration types. See internal/primitives for validation rules.
type (
	RigConfig       = primitives.RigConfig
	LayerConfig     = primitives.LayerConfig
	AnimationConfig = primitives.AnimationConfig
)

// ClipSource resolves clip names. softmix.Library satisfies it.
type ClipSource interface {
	Clip(name string) (engine.Clip, bool)
}

// ParseRig decodes a YAML (or JSON) rig and validates it.
func ParseRig(data []byte) (*RigConfig, error) {
	var cfg RigConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal rig: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rig %q: %w", cfg.Name, err)
	}
	return &cfg, nil
}

// LoadRig reads and parses a rig file.
func LoadRig(path string) (*RigConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rig: %w", err)
	}
	return ParseRig(data)
}

// MarshalRig encodes cfg as YAML.
func MarshalRig(cfg *RigConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal rig: %w", err)
	}
	return data, nil
}

// RigVersion returns the explicit version of cfg or a content hash.
func RigVersion(cfg *RigConfig) string {
	return primitives.ComputeVersion(cfg)
}

// ApplyRig adds every layer and animation of cfg to f, on top of any layers
// already present. Clips are resolved before anything is added, so a missing
// clip leaves f untouched. Names that collide with existing layers are made
// unique; the returned infos carry the names actually used.
func ApplyRig(f *AnimationFeature, cfg *RigConfig, clips ClipSource) ([]LayerInfo, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rig %q: %w", cfg.Name, err)
	}

	type plannedLayer struct {
		cfg   *LayerConfig
		opts  []LayerOption
		specs []AnimationSpec
	}
	plan := make([]plannedLayer, 0, len(cfg.Layers))
	for _, lc := range cfg.Layers {
		ease, _ := easing.ByName(lc.Easing)
		p := plannedLayer{
			cfg: lc,
			opts: []LayerOption{
				WithBlendMode(lc.BlendMode),
				WithLayerWeight(lc.EffectiveWeight()),
				WithTransitionMs(lc.TransitionMs),
				WithLayerEasing(ease),
			},
		}
		for _, ac := range lc.Animations {
			spec, err := specFromConfig(ac, clips)
			if err != nil {
				return nil, fmt.Errorf("rig %q layer %q: %w", cfg.Name, lc.Name, err)
			}
			p.specs = append(p.specs, spec)
		}
		plan = append(plan, p)
	}

	infos := make([]LayerInfo, 0, len(plan))
	for _, p := range plan {
		info := f.AddLayer(p.cfg.Name, p.opts...)
		for i, spec := range p.specs {
			if _, err := f.AddAnimation(info.Name, p.cfg.Animations[i].Name, spec); err != nil {
				for _, added := range infos {
					f.RemoveLayer(added.Name)
				}
				f.RemoveLayer(info.Name)
				return nil, fmt.Errorf("rig %q layer %q: %w", cfg.Name, info.Name, err)
			}
		}
		infos = append(infos, info)
	}

	Logger().Debug("rig applied",
		zap.String("rig", cfg.Name),
		zap.String("version", RigVersion(cfg)),
		zap.Int("layers", len(infos)))
	return infos, nil
}

// specFromConfig resolves clip and easing names of ac into an AnimationSpec
func specFromConfig(ac *AnimationConfig, clips ClipSource) (AnimationSpec, error) {
	typ, err := ParseAnimationType(string(ac.Type))
	if err != nil {
		return AnimationSpec{}, err
	}
	ease, ok := easing.ByName(ac.Easing)
	if !ok {
		return AnimationSpec{}, fmt.Errorf("animation %q: unknown easing %q", ac.Name, ac.Easing)
	}
	spec := AnimationSpec{
		Type:           typ,
		Name:           ac.Name,
		LoopCount:      ac.LoopCount,
		TimeScale:      ac.TimeScale,
		PlayIntervalMs: ac.PlayIntervalMs,
		TransitionMs:   ac.TransitionMs,
		Easing:         ease,
		Weight:         ac.Weight,
	}
	if typ == AnimationSingle {
		clip, ok := clips.Clip(ac.Clip)
		if !ok {
			return AnimationSpec{}, fmt.Errorf("animation %q clip %q: %w", ac.Name, ac.Clip, ErrClipNotFound)
		}
		spec.Clip = clip
		return spec, nil
	}
	for _, sub := range ac.SubAnimations {
		s, err := specFromConfig(sub, clips)
		if err != nil {
			return AnimationSpec{}, fmt.Errorf("animation %q: %w", ac.Name, err)
		}
		spec.SubAnimations = append(spec.SubAnimations, s)
	}
	return spec, nil
}
