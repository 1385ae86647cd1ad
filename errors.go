package hostanim

import (
	"errors"

	"github.com/comalice/hostanim/deferred"
	"github.com/comalice/hostanim/state"
)

var (
	ErrLayerNotFound        = errors.New("layer not found")
	ErrAnimationNotFound    = errors.New("animation not found")
	ErrInvalidAnimationType = errors.New("invalid animation type")
	ErrFeatureExists        = errors.New("feature already exists")
	ErrFeatureNotFound      = errors.New("feature not found")
	ErrClipNotFound         = errors.New("clip not found")
	ErrNotBlendState        = errors.New("animation is not a free blend")

	// Re-exported so callers only need this package for errors.Is checks.
	ErrStateNotFound  = state.ErrStateNotFound
	ErrNoCurrentState = state.ErrNoCurrentState
	ErrInvalidDelta   = deferred.ErrInvalidDelta
)
