package realtime

import (
	"context"
	"time"

	"github.com/comalice/hostanim"
	"go.uber.org/zap"
)

// Cue is an external trigger for a host, such as a gesture request or a
// speech timeline ready to play. Cues are values; do not mutate Data after
// sending.
type Cue struct {
	Type string
	Data any
}

func NewCue(cueType string, data any) Cue {
	return Cue{Type: cueType, Data: data}
}

// CueSource supplies cues on a channel. A closed channel ends the source.
type CueSource interface {
	Cues() <-chan Cue
}

// ChannelSource is a CueSource backed by a Go channel.
type ChannelSource struct {
	ch chan Cue
}

// NewChannelSource wraps ch. The channel should be buffered if the
// producer must not block on a busy runtime.
func NewChannelSource(ch chan Cue) *ChannelSource {
	return &ChannelSource{ch: ch}
}

func (s *ChannelSource) Cues() <-chan Cue {
	return s.ch
}

// TimerSource emits the same cue every interval, dropping ticks while the
// buffer is full. Useful for idle fidgets and heartbeats.
type TimerSource struct {
	ch     chan Cue
	cue    Cue
	ticker *time.Ticker
	stop   chan struct{}
}

// NewTimerSource creates a TimerSource that emits a cue every d.
func NewTimerSource(cueType string, data any, d time.Duration) *TimerSource {
	t := &TimerSource{
		ch:     make(chan Cue, 10),
		cue:    NewCue(cueType, data),
		ticker: time.NewTicker(d),
		stop:   make(chan struct{}),
	}
	go t.run()
	return t
}

func (t *TimerSource) run() {
	for {
		select {
		case <-t.ticker.C:
			select {
			case t.ch <- t.cue:
			default:
				// drop if full
			}
		case <-t.stop:
			t.ticker.Stop()
			close(t.ch)
			return
		}
	}
}

func (t *TimerSource) Cues() <-chan Cue {
	return t.ch
}

// Stop stops the ticker and closes the channel.
func (t *TimerSource) Stop() {
	close(t.stop)
}

// Handler applies a cue to the host on the tick goroutine
type Handler func(h *hostanim.Host, cue Cue)

// Route maps cue types to handlers
type Route map[string]Handler

// Listen forwards cues from src into rt as commands until ctx is done or
// the source closes. Cues without a handler are logged and dropped. The
// returned channel is closed when forwarding ends.
func (rt *Runtime) Listen(ctx context.Context, src CueSource, priority int, route Route) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		cues := src.Cues()
		for {
			select {
			case <-ctx.Done():
				return
			case cue, ok := <-cues:
				if !ok {
					return
				}
				handler, found := route[cue.Type]
				if !found {
					Logger().Warn("no handler for cue", zap.String("cue", cue.Type))
					continue
				}
				err := rt.Submit(Command{
					Name:     cue.Type,
					Priority: priority,
					Apply:    func(h *hostanim.Host) { handler(h, cue) },
				})
				if err != nil {
					Logger().Warn("cue dropped", zap.String("cue", cue.Type), zap.Error(err))
				}
			}
		}
	}()
	return done
}
