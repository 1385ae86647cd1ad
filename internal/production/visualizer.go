// Package production provides production integrations: message publishing
// and visualization of a host's layer stack.
package production

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/comalice/hostanim"
	"gopkg.in/yaml.v3"
)

// DefaultVisualizer renders animation snapshots.
type DefaultVisualizer struct{}

// ExportDOT generates Graphviz DOT source for a layer stack. Each layer is
// a cluster, layers are chained bottom to top, and the playing animation of
// each layer is highlighted.
func (v *DefaultVisualizer) ExportDOT(snap hostanim.Snapshot) string {
	var buf bytes.Buffer
	buf.WriteString(`digraph Layers {
  rankdir=BT;
  node [shape=box, fontsize=10, style=rounded];
  edge [fontsize=9];
`)

	for i, layer := range snap.Layers {
		renderLayer(&buf, i, layer)
	}

	for i := 1; i < len(snap.Layers); i++ {
		upper := snap.Layers[i]
		buf.WriteString(fmt.Sprintf("  %q -> %q [label=\"%s %.2f\"];\n",
			layerNode(i-1), layerNode(i), upper.BlendMode, upper.InternalWeight))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// ExportJSON serializes the snapshot to indented JSON.
func (v *DefaultVisualizer) ExportJSON(snap hostanim.Snapshot) ([]byte, error) {
	return json.MarshalIndent(snap, "", "  ")
}

// ExportYAML serializes the snapshot to YAML.
func (v *DefaultVisualizer) ExportYAML(snap hostanim.Snapshot) ([]byte, error) {
	return yaml.Marshal(snap)
}

func layerNode(i int) string {
	return fmt.Sprintf("layer_%d", i)
}

// renderLayer writes one layer cluster with its animations
func renderLayer(buf *bytes.Buffer, i int, layer hostanim.LayerSnapshot) {
	buf.WriteString(fmt.Sprintf("  subgraph cluster_%d {\n", i))
	label := fmt.Sprintf("%s (%s, w=%.2f)", layer.Name, layer.BlendMode, layer.Weight)
	style := ""
	if layer.Paused {
		style = ` style=dashed`
	}
	buf.WriteString(fmt.Sprintf("    label=%q%s;\n", label, style))
	buf.WriteString(fmt.Sprintf("    %q [label=%q shape=ellipse];\n", layerNode(i), layer.Name))

	for _, anim := range layer.Animations {
		renderAnimation(buf, layerNode(i), layerNode(i), anim, anim.Name == layer.Current)
	}
	buf.WriteString("  }\n")
}

// renderAnimation writes anim and its sub-animations, linked to parent
func renderAnimation(buf *bytes.Buffer, prefix, parent string, anim hostanim.AnimationSnapshot, current bool) {
	id := prefix + "." + anim.Name
	style := ""
	if current {
		style = ` style=filled fillcolor=lightgreen`
	}
	label := fmt.Sprintf("%s [%s] %.2f", anim.Name, anim.Type, anim.InternalWeight)
	buf.WriteString(fmt.Sprintf("    %q [label=%q%s];\n", id, label, style))
	buf.WriteString(fmt.Sprintf("    %q -> %q [arrowhead=none];\n", parent, id))

	for _, sub := range anim.SubAnimations {
		renderAnimation(buf, id, id, sub, current && sub.InternalWeight > 0)
	}
}
