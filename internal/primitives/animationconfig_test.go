package primitives

import (
	"strings"
	"testing"
)

func TestAnimationConfigValidate(t *testing.T) {
	tests := []struct {
		name        string
		newConfig   func() *AnimationConfig
		wantErr     bool
		errContains string
	}{
		{
			name: "valid single",
			newConfig: func() *AnimationConfig {
				return NewAnimationConfig("idle", Single).WithClip("idle_clip")
			},
		},
		{
			name: "empty type is single",
			newConfig: func() *AnimationConfig {
				return &AnimationConfig{Name: "idle", Clip: "idle_clip"}
			},
		},
		{
			name: "missing name",
			newConfig: func() *AnimationConfig {
				return NewAnimationConfig("", Single).WithClip("c")
			},
			wantErr:     true,
			errContains: "name is required",
		},
		{
			name: "single without clip",
			newConfig: func() *AnimationConfig {
				return NewAnimationConfig("idle", Single)
			},
			wantErr:     true,
			errContains: "requires a clip",
		},
		{
			name: "single with subs",
			newConfig: func() *AnimationConfig {
				a := NewAnimationConfig("idle", Single).WithClip("c")
				a.Sub("x").WithClip("c2")
				return a
			},
			wantErr:     true,
			errContains: "cannot have sub-animations",
		},
		{
			name: "unknown type",
			newConfig: func() *AnimationConfig {
				return NewAnimationConfig("idle", "sequence").WithClip("c")
			},
			wantErr:     true,
			errContains: "invalid animation type",
		},
		{
			name: "random without subs",
			newConfig: func() *AnimationConfig {
				return NewAnimationConfig("blink", Random)
			},
			wantErr:     true,
			errContains: "requires sub-animations",
		},
		{
			name: "valid random",
			newConfig: func() *AnimationConfig {
				a := NewAnimationConfig("blink", Random).WithPlayInterval(2000).WithTransition(150, "quadOut")
				a.Sub("blink_a").WithClip("a")
				a.Sub("blink_b").WithClip("b")
				return a
			},
		},
		{
			name: "free blend spelled with dash",
			newConfig: func() *AnimationConfig {
				a := NewAnimationConfig("visemes", "free-blend")
				a.Sub("aa").WithClip("aa")
				return a
			},
		},
		{
			name: "weight above one",
			newConfig: func() *AnimationConfig {
				return NewAnimationConfig("idle", Single).WithClip("c").WithWeight(1.5)
			},
			wantErr:     true,
			errContains: "outside [0,1]",
		},
		{
			name: "unknown easing",
			newConfig: func() *AnimationConfig {
				a := NewAnimationConfig("blink", Random).WithTransition(100, "wobble")
				a.Sub("a").WithClip("a")
				return a
			},
			wantErr:     true,
			errContains: "unknown easing",
		},
		{
			name: "nested failure is wrapped",
			newConfig: func() *AnimationConfig {
				a := NewAnimationConfig("blink", Random)
				a.Sub("a")
				return a
			},
			wantErr:     true,
			errContains: "sub-animation 0 (a) of blink",
		},
		{
			name: "duplicate sub names",
			newConfig: func() *AnimationConfig {
				a := NewAnimationConfig("blink", Random)
				a.Sub("a").WithClip("a")
				a.Sub("a").WithClip("b")
				return a
			},
			wantErr:     true,
			errContains: "duplicate sub-animation",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.newConfig().Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q does not contain %q", err, tt.errContains)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestAnimationConfigFlatten(t *testing.T) {
	root := NewAnimationConfig("gestures", Random)
	root.Sub("wave").WithClip("wave")
	nested := root.Sub("moods", FreeBlend)
	nested.Sub("happy").WithClip("happy")

	var names []string
	for _, a := range root.Flatten() {
		names = append(names, a.Name)
	}
	got := strings.Join(names, ",")
	if got != "gestures,wave,moods,happy" {
		t.Errorf("Flatten order = %s", got)
	}
}
