// Package state implements the playable units of the animation runtime and
// the two behaviours shared by everything that owns them: a named state
// registry (Container) and a single-active-state player (Player).
//
// A state carries a user weight in [0,1] and an internal weight, which is
// the user weight multiplied by a factor pushed down from the owning layer.
// Playback completion, weight fades and time-scale fades are modelled as
// deferred.Signals advanced by Update.
//
// Concrete states:
//
//   - Single plays one clip through an engine.Action
//   - Transition cross-fades from any number of states into one target
//   - Random picks a sub-state at random intervals
//   - FreeBlend plays every sub-state at once with independent weights
package state
