package hostanim

// Feature is a unit of host behaviour updated once per host tick
type Feature interface {
	Name() string
	Update(deltaMs float64)
	Discard()
}

// FeatureEvent returns the event name a feature emits on its host
func FeatureEvent(feature, event string) string {
	return feature + "." + event
}

// FeatureBase carries the host reference and feature-scoped events. Embed it
// and override Update and Discard as needed.
type FeatureBase struct {
	host *Host
	name string
}

func NewFeatureBase(host *Host, name string) FeatureBase {
	return FeatureBase{host: host, name: name}
}

func (f *FeatureBase) Name() string { return f.name }

func (f *FeatureBase) Host() *Host { return f.host }

// Emit sends event prefixed with the feature name on the host messenger
func (f *FeatureBase) Emit(event string, value any) {
	if f.host != nil {
		f.host.Emit(FeatureEvent(f.name, event), value)
	}
}

func (f *FeatureBase) Update(float64) {}

func (f *FeatureBase) Discard() {}
