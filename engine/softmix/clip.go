package softmix

import "github.com/comalice/hostanim/engine"

// Clip is a named clip with a fixed duration and no keyframe data
type Clip struct {
	name     string
	duration float64
}

// NewClip creates a clip lasting durationSeconds
func NewClip(name string, durationSeconds float64) *Clip {
	return &Clip{name: name, duration: durationSeconds}
}

func (c *Clip) Name() string { return c.name }
func (c *Clip) Duration() float64 { return c.duration }

// Clone returns a distinct clip with the same name and duration
func (c *Clip) Clone() engine.Clip {
	cp := *c
	return &cp
}

// Library is a name-indexed set of clips
type Library map[string]*Clip

// NewLibrary builds a library from clips
func NewLibrary(clips ...*Clip) Library {
	lib := make(Library, len(clips))
	for _, c := range clips {
		lib[c.name] = c
	}
	return lib
}

// Clip looks up a clip by name
func (l Library) Clip(name string) (engine.Clip, bool) {
	c, ok := l[name]
	if !ok {
		return nil, false
	}
	return c, true
}
