package hostanim

import (
	"slices"
	"sync"
)

// ListenerID identifies a registered listener for StopListening
type ListenerID uint64

// Message is one emitted event as seen by a Subscribe tap
type Message struct {
	Topic string
	Event string
	Value any
}

type listener struct {
	id ListenerID
	fn func(any)
}

// Messenger is a synchronous event bus. Every topic is scoped to the
// messenger id, so two hosts never see each other's events.
type Messenger struct {
	mu        sync.RWMutex
	id        string
	nextID    ListenerID
	listeners map[string][]listener
	taps      []func(Message)
}

// NewMessenger creates a messenger whose topics are prefixed with id
func NewMessenger(id string) *Messenger {
	return &Messenger{
		id:        id,
		listeners: make(map[string][]listener),
	}
}

func (m *Messenger) ID() string { return m.id }

// Topic returns the scoped topic for event
func (m *Messenger) Topic(event string) string {
	return m.id + "." + event
}

// ListenTo registers fn for event. Listeners run in registration order.
func (m *Messenger) ListenTo(event string, fn func(value any)) ListenerID {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	topic := m.Topic(event)
	m.listeners[topic] = append(m.listeners[topic], listener{id: m.nextID, fn: fn})
	return m.nextID
}

// StopListening removes one listener. False if it was not registered.
func (m *Messenger) StopListening(event string, id ListenerID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	topic := m.Topic(event)
	ls := m.listeners[topic]
	idx := slices.IndexFunc(ls, func(l listener) bool { return l.id == id })
	if idx < 0 {
		return false
	}
	// copy so an emit already iterating the old slice is unaffected
	m.listeners[topic] = slices.Delete(slices.Clone(ls), idx, idx+1)
	return true
}

// StopListeningAll removes every listener for event
func (m *Messenger) StopListeningAll(event string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.listeners, m.Topic(event))
}

// Subscribe taps every message emitted on this messenger
func (m *Messenger) Subscribe(fn func(Message)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.taps = append(m.taps, fn)
}

// Emit calls the listeners for event with value. Listeners added or removed
// during the call take effect on the next Emit.
func (m *Messenger) Emit(event string, value any) {
	topic := m.Topic(event)

	m.mu.RLock()
	ls := m.listeners[topic]
	taps := m.taps
	m.mu.RUnlock()

	for _, l := range ls {
		l.fn(value)
	}
	msg := Message{Topic: topic, Event: event, Value: value}
	for _, tap := range taps {
		tap(msg)
	}
}
