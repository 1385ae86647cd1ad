package production

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/comalice/hostanim"
)

// PublishedMessage bundles a host message with publishing metadata.
type PublishedMessage struct {
	Message   hostanim.Message
	HostID    string
	Timestamp time.Time
}

// ChannelPublisher forwards messages to a Go channel.
// Non-blocking publish with drop on backpressure.
type ChannelPublisher struct {
	mu      sync.RWMutex
	ch      chan<- PublishedMessage
	closed  bool
	dropped atomic.Uint64
}

// NewChannelPublisher creates a ChannelPublisher with the given output channel.
func NewChannelPublisher(ch chan<- PublishedMessage) *ChannelPublisher {
	return &ChannelPublisher{ch: ch}
}

// Attach taps every message emitted on m. Taps cannot be removed; Close
// turns this one into a no-op.
func (p *ChannelPublisher) Attach(m *hostanim.Messenger) {
	hostID := m.ID()
	m.Subscribe(func(msg hostanim.Message) {
		p.Publish(context.Background(), hostID, msg)
	})
}

func (p *ChannelPublisher) Publish(ctx context.Context, hostID string, msg hostanim.Message) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return nil
	}

	select {
	case p.ch <- PublishedMessage{Message: msg, HostID: hostID, Timestamp: time.Now()}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		p.dropped.Add(1)
		return nil // Non-blocking drop
	}
}

// Dropped returns how many messages were dropped on a full channel
func (p *ChannelPublisher) Dropped() uint64 {
	return p.dropped.Load()
}

func (p *ChannelPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	close(p.ch)
	return nil
}
