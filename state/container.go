package state

import (
	"fmt"
	"slices"

	"go.uber.org/zap"
)

// Container is an insertion-ordered registry of uniquely named states
type Container struct {
	owner  string
	order  []string
	states map[string]State
}

// NewContainer creates an empty container. owner only labels log output.
func NewContainer(owner string) *Container {
	return &Container{
		owner:  owner,
		states: make(map[string]State),
	}
}

// State returns the state registered under name
func (c *Container) State(name string) (State, bool) {
	s, ok := c.states[name]
	return s, ok
}

// Names returns state names in insertion order
func (c *Container) Names() []string {
	return slices.Clone(c.order)
}

// States returns states in insertion order
func (c *Container) States() []State {
	out := make([]State, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.states[name])
	}
	return out
}

func (c *Container) Len() int { return len(c.order) }

// Add registers s and returns the name it was stored under. A colliding
// name is made unique and written back to the state. Adding the same state
// twice is a no-op.
func (c *Container) Add(s State) string {
	for _, existing := range c.states {
		if existing == s {
			Logger().Warn("state already in container",
				zap.String("owner", c.owner), zap.String("state", s.Name()))
			return s.Name()
		}
	}

	unique := UniqueName(s.Name(), c.order)
	if unique != s.Name() {
		Logger().Warn("state name not unique, renamed",
			zap.String("owner", c.owner), zap.String("name", s.Name()), zap.String("renamed", unique))
		s.SetName(unique)
	}

	c.states[unique] = s
	c.order = append(c.order, unique)
	return unique
}

// Remove discards and unregisters the named state
func (c *Container) Remove(name string) bool {
	s, ok := c.states[name]
	if !ok {
		Logger().Warn("no state to remove", zap.String("owner", c.owner), zap.String("state", name))
		return false
	}
	s.Discard()
	delete(c.states, name)
	c.order = slices.DeleteFunc(c.order, func(n string) bool { return n == name })
	return true
}

// Rename moves a state to a new unique name and returns the name used
func (c *Container) Rename(current, name string) (string, error) {
	s, ok := c.states[current]
	if !ok {
		return "", fmt.Errorf("rename %q in %q: %w", current, c.owner, ErrStateNotFound)
	}
	if current == name {
		return current, nil
	}

	others := slices.DeleteFunc(c.Names(), func(n string) bool { return n == current })
	unique := UniqueName(name, others)
	if unique != name {
		Logger().Warn("state name not unique, renamed",
			zap.String("owner", c.owner), zap.String("name", name), zap.String("renamed", unique))
	}

	s.SetName(unique)
	delete(c.states, current)
	c.states[unique] = s
	idx := slices.Index(c.order, current)
	c.order[idx] = unique
	return unique, nil
}

// DiscardStates discards every state but keeps them registered
func (c *Container) DiscardStates() {
	for _, name := range c.order {
		c.states[name].Discard()
	}
}

// Walk calls fn for s and then, depth first, for every state nested in it
func Walk(s State, fn func(State)) {
	fn(s)
	if c, ok := s.(interface{ Container() *Container }); ok {
		for _, sub := range c.Container().States() {
			Walk(sub, fn)
		}
	}
}
