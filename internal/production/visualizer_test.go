// Tests for DefaultVisualizer DOT export and snapshot serialization.
package production

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/comalice/hostanim"
	"github.com/comalice/hostanim/engine"
	"gopkg.in/yaml.v3"
)

func testSnapshot() hostanim.Snapshot {
	return hostanim.Snapshot{
		Layers: []hostanim.LayerSnapshot{
			{
				Name:           "base",
				BlendMode:      engine.Override,
				Weight:         1,
				InternalWeight: 1,
				Current:        "idle",
				Animations: []hostanim.AnimationSnapshot{
					{Name: "idle", Type: "single", Weight: 1, InternalWeight: 1},
					{Name: "walk", Type: "single"},
				},
			},
			{
				Name:           "lipsync",
				BlendMode:      engine.Additive,
				Weight:         0.5,
				InternalWeight: 0.5,
				Current:        "visemes",
				Paused:         true,
				Animations: []hostanim.AnimationSnapshot{
					{
						Name: "visemes", Type: "freeblend", Weight: 1, InternalWeight: 0.5,
						SubAnimations: []hostanim.AnimationSnapshot{
							{Name: "aa", Type: "single", Weight: 1, InternalWeight: 0.5},
							{Name: "oh", Type: "single"},
						},
					},
				},
			},
		},
	}
}

func TestDefaultVisualizer_ExportDOT(t *testing.T) {
	v := &DefaultVisualizer{}
	dot := v.ExportDOT(testSnapshot())

	tests := []struct {
		name string
		want string
	}{
		{"header", "digraph Layers {"},
		{"layer cluster", "subgraph cluster_0 {"},
		{"layer label", `label="lipsync (Additive, w=0.50)" style=dashed;`},
		{"current animation", `"layer_0.idle" [label="idle [single] 1.00" style=filled fillcolor=lightgreen];`},
		{"idle animation", `"layer_0.walk" [label="walk [single] 0.00"];`},
		{"stack edge", `"layer_0" -> "layer_1" [label="Additive 0.50"];`},
		{"active sub", `"layer_1.visemes.aa" [label="aa [single] 0.50" style=filled fillcolor=lightgreen];`},
		{"inactive sub", `"layer_1.visemes.oh" [label="oh [single] 0.00"];`},
		{"sub edge", `"layer_1.visemes" -> "layer_1.visemes.oh" [arrowhead=none];`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.Contains(dot, tt.want) {
				t.Errorf("DOT missing %s:\n%s", tt.want, dot)
			}
		})
	}
	if !strings.HasSuffix(dot, "}\n") {
		t.Error("DOT not terminated")
	}
}

func TestDefaultVisualizer_ExportDOT_Empty(t *testing.T) {
	v := &DefaultVisualizer{}
	dot := v.ExportDOT(hostanim.Snapshot{})
	if strings.Contains(dot, "->") || strings.Contains(dot, "subgraph") {
		t.Errorf("empty snapshot rendered content:\n%s", dot)
	}
}

func TestDefaultVisualizer_ExportJSON(t *testing.T) {
	v := &DefaultVisualizer{}
	data, err := v.ExportJSON(testSnapshot())
	if err != nil {
		t.Fatal(err)
	}
	var back hostanim.Snapshot
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back.Layers[1].BlendMode != engine.Additive || back.Layers[1].Current != "visemes" {
		t.Errorf("decoded layer = %+v", back.Layers[1])
	}
	if !strings.Contains(string(data), `"blendMode": "additive"`) {
		t.Errorf("blend mode not exported as text:\n%s", data)
	}
}

func TestDefaultVisualizer_ExportYAML(t *testing.T) {
	v := &DefaultVisualizer{}
	data, err := v.ExportYAML(testSnapshot())
	if err != nil {
		t.Fatal(err)
	}
	var back hostanim.Snapshot
	if err := yaml.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if len(back.Layers) != 2 || len(back.Layers[1].Animations[0].SubAnimations) != 2 {
		t.Errorf("decoded = %+v", back)
	}
	if !strings.Contains(string(data), "blendMode: additive") {
		t.Errorf("blend mode not exported as text:\n%s", data)
	}
}
