// Package primitives defines the declarative form of a character rig.
//
// A RigConfig is an ordered stack of LayerConfig values, bottom layer first.
// Each layer owns AnimationConfig trees: singles reference a clip by name,
// random and free-blend animations own sub-animations. Configs carry yaml and
// json tags so rigs can be kept in files; Validate reports every structural
// problem before anything is bound to a mixer.
package primitives
