package hostanim

import (
	"slices"

	"go.uber.org/zap"

	"github.com/comalice/hostanim/deferred"
)

// Host events
const (
	EventUpdate        = "onUpdate"
	EventAddFeature    = "onAddFeature"
	EventRemoveFeature = "onRemoveFeature"
)

// Host owns the features of one character and drives them from Update. It
// is not safe for concurrent use; see the realtime package for a runtime
// that serialises access from other goroutines.
type Host struct {
	*Messenger

	owner    any
	features map[string]Feature
	order    []string
	waits    []*deferred.Signal
	nowMs    float64
}

// HostOption configures a Host
type HostOption func(*Host)

// WithOwner attaches the engine object the host animates
func WithOwner(owner any) HostOption {
	return func(h *Host) { h.owner = owner }
}

func NewHost(id string, opts ...HostOption) *Host {
	h := &Host{
		Messenger: NewMessenger(id),
		features:  make(map[string]Feature),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Host) Owner() any { return h.owner }

// Now is the accumulated host clock in ms
func (h *Host) Now() float64 { return h.nowMs }

// Update advances pending waits, then every feature in insertion order,
// then emits EventUpdate with deltaMs.
func (h *Host) Update(deltaMs float64) {
	if deltaMs > 0 {
		h.nowMs += deltaMs
	}

	for _, w := range h.waits {
		w.Execute(deltaMs)
	}
	h.waits = slices.DeleteFunc(h.waits, func(w *deferred.Signal) bool { return w.Settled() })

	for _, name := range slices.Clone(h.order) {
		if f, ok := h.features[name]; ok {
			f.Update(deltaMs)
		}
	}

	h.Emit(EventUpdate, deltaMs)
}

// Wait returns a signal that resolves after ms of host time
func (h *Host) Wait(ms float64, opts ...deferred.Option[struct{}]) *deferred.Signal {
	w := deferred.Wait(ms, opts...)
	if w.Pending() {
		h.waits = append(h.waits, w)
	}
	return w
}

// AddFeature registers f under its name. An existing feature with the same
// name is kept unless force is set, in which case it is discarded.
func (h *Host) AddFeature(f Feature, force bool) bool {
	name := f.Name()
	if old, ok := h.features[name]; ok {
		if !force {
			Logger().Warn("feature already exists, use force to overwrite",
				zap.String("host", h.ID()), zap.String("feature", name))
			return false
		}
		Logger().Warn("feature overwritten", zap.String("host", h.ID()), zap.String("feature", name))
		if old != f {
			old.Discard()
		}
	} else {
		h.order = append(h.order, name)
	}

	h.features[name] = f
	h.Emit(EventAddFeature, name)
	return true
}

// RemoveFeature discards and unregisters the named feature
func (h *Host) RemoveFeature(name string) bool {
	f, ok := h.features[name]
	if !ok {
		Logger().Warn("no feature to remove", zap.String("host", h.ID()), zap.String("feature", name))
		return false
	}
	f.Discard()
	delete(h.features, name)
	h.order = slices.DeleteFunc(h.order, func(n string) bool { return n == name })
	h.Emit(EventRemoveFeature, name)
	return true
}

func (h *Host) HasFeature(name string) bool {
	_, ok := h.features[name]
	return ok
}

// ListFeatures returns feature names in insertion order
func (h *Host) ListFeatures() []string { return slices.Clone(h.order) }

func (h *Host) Feature(name string) (Feature, bool) {
	f, ok := h.features[name]
	return f, ok
}

// Discard discards every feature and cancels pending waits
func (h *Host) Discard() {
	for _, name := range h.order {
		h.features[name].Discard()
	}
	for _, w := range h.waits {
		w.Cancel(struct{}{})
	}
	h.features = make(map[string]Feature)
	h.order = nil
	h.waits = nil
}
