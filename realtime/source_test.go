package realtime

import (
	"context"
	"testing"
	"time"

	"github.com/comalice/hostanim"
)

func TestChannelSource(t *testing.T) {
	ch := make(chan Cue, 1)
	s := NewChannelSource(ch)
	ch <- NewCue("wave", 2)
	if cue := <-s.Cues(); cue.Type != "wave" || cue.Data != 2 {
		t.Errorf("cue = %+v", cue)
	}
}

func TestTimerSource(t *testing.T) {
	s := NewTimerSource("fidget", "data", 10*time.Millisecond)
	defer s.Stop()

	for i := 0; i < 2; i++ {
		select {
		case cue := <-s.Cues():
			if cue.Type != "fidget" || cue.Data != "data" {
				t.Errorf("wrong cue: %+v", cue)
			}
		case <-time.After(200 * time.Millisecond):
			t.Fatalf("no cue %d received", i)
		}
	}
}

func TestTimerSourceStopClosesChannel(t *testing.T) {
	s := NewTimerSource("tick", nil, time.Millisecond)
	s.Stop()
	deadline := time.After(200 * time.Millisecond)
	for {
		select {
		case _, ok := <-s.Cues():
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("channel not closed after Stop")
		}
	}
}

func TestListenRoutesCues(t *testing.T) {
	h, _ := newTestHost(t, "host")
	rt := NewRuntime(h, Config{})

	ch := make(chan Cue, 4)
	var got []string
	route := Route{
		"gesture": func(h *hostanim.Host, cue Cue) {
			got = append(got, h.ID()+":"+cue.Data.(string))
		},
	}
	done := rt.Listen(context.Background(), NewChannelSource(ch), 0, route)

	ch <- NewCue("gesture", "wave")
	ch <- NewCue("unknown", nil)
	ch <- NewCue("gesture", "nod")
	close(ch)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Listen did not end when the source closed")
	}
	if rt.Pending() != 2 {
		t.Fatalf("pending = %d, want 2", rt.Pending())
	}
	rt.Step()
	if len(got) != 2 || got[0] != "host:wave" || got[1] != "host:nod" {
		t.Errorf("applied = %v", got)
	}
}

func TestListenStopsOnContext(t *testing.T) {
	h, _ := newTestHost(t, "host")
	rt := NewRuntime(h, Config{})
	ctx, cancel := context.WithCancel(context.Background())
	done := rt.Listen(ctx, NewChannelSource(make(chan Cue)), 0, Route{})
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Listen ignored cancellation")
	}
}
