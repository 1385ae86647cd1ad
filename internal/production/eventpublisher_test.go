// Tests for ChannelPublisher delivery and Messenger integration.
package production

import (
	"context"
	"testing"
	"time"

	"github.com/comalice/hostanim"
	"github.com/comalice/hostanim/engine/softmix"
)

func TestChannelPublisher_Delivery(t *testing.T) {
	ch := make(chan PublishedMessage, 10)
	p := NewChannelPublisher(ch)

	msg := hostanim.Message{Topic: "host.test", Event: "test", Value: "data"}
	if err := p.Publish(context.Background(), "host", msg); err != nil {
		t.Errorf("Publish failed: %v", err)
	}

	select {
	case got := <-ch:
		if got.Message.Topic != msg.Topic || got.HostID != "host" {
			t.Errorf("got %+v", got)
		}
		if got.Timestamp.IsZero() {
			t.Error("timestamp not set")
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("No message delivered")
	}
}

func TestChannelPublisher_BackpressureDrop(t *testing.T) {
	ch := make(chan PublishedMessage, 1)
	p := NewChannelPublisher(ch)
	ch <- PublishedMessage{} // Fill buffer

	if err := p.Publish(context.Background(), "host", hostanim.Message{Event: "drop"}); err != nil {
		t.Errorf("Publish on full channel failed: %v", err)
	}
	if p.Dropped() != 1 {
		t.Errorf("Dropped = %d, want 1", p.Dropped())
	}
}

func TestChannelPublisher_Close(t *testing.T) {
	ch := make(chan PublishedMessage, 1)
	p := NewChannelPublisher(ch)

	if err := p.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
	if err := p.Publish(context.Background(), "host", hostanim.Message{}); err != nil {
		t.Errorf("Publish after Close = %v", err)
	}
	if _, ok := <-ch; ok {
		t.Error("channel should be closed and empty")
	}
}

func TestChannelPublisher_AttachToHost(t *testing.T) {
	ch := make(chan PublishedMessage, 32)
	publisher := NewChannelPublisher(ch)

	h := hostanim.NewHost("narrator")
	publisher.Attach(h.Messenger)

	anim := hostanim.NewAnimationFeature(h, softmix.NewMixer())
	h.AddFeature(anim, false)
	anim.AddLayer("base")
	anim.AddAnimation("base", "idle", hostanim.AnimationSpec{Clip: softmix.NewClip("idle", 1)})
	anim.PlayAnimation("base", "idle")

	want := hostanim.FeatureEvent(hostanim.AnimationFeatureName, hostanim.EventPlay)
	for {
		select {
		case got := <-ch:
			if got.HostID != "narrator" {
				t.Errorf("HostID = %q", got.HostID)
			}
			if got.Message.Event != want {
				continue
			}
			ev, ok := got.Message.Value.(hostanim.AnimationEvent)
			if !ok || ev.Animation != "idle" {
				t.Errorf("play payload = %#v", got.Message.Value)
			}
			return
		case <-time.After(100 * time.Millisecond):
			t.Fatalf("no %s message published", want)
		}
	}
}
