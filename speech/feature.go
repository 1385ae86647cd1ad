package speech

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/comalice/hostanim"
	"github.com/comalice/hostanim/deferred"
)

// FeatureName is the name SpeechFeature registers under
const FeatureName = "SpeechFeature"

// SpeechFeature events
const (
	EventStart    = "onStart"
	EventEnd      = "onEnd"
	EventStop     = "onStop"
	EventPause    = "onPause"
	EventResume   = "onResume"
	EventMark     = "onMark"
	EventSentence = "onSentence"
	EventWord     = "onWord"
	EventViseme   = "onViseme"
	EventSSML     = "onSsml"
)

var (
	ErrEmptyTimeline = errors.New("speech timeline has no marks")
	ErrNotSpeaking   = errors.New("no speech is playing")
)

// SpeechFeature plays one Timeline at a time against the host clock
type SpeechFeature struct {
	hostanim.FeatureBase

	offsetMs float64
	timeline Timeline
	next     int
	localMs  float64
	playing  bool
	done     *deferred.Signal
}

var _ hostanim.Feature = (*SpeechFeature)(nil)

// Option configures a SpeechFeature
type Option func(*SpeechFeature)

// WithMarkOffset delays every mark by ms, to line marks up with audio latency
func WithMarkOffset(ms float64) Option {
	return func(f *SpeechFeature) { f.offsetMs = ms }
}

func NewSpeechFeature(host *hostanim.Host, opts ...Option) *SpeechFeature {
	f := &SpeechFeature{
		FeatureBase: hostanim.NewFeatureBase(host, FeatureName),
		done:        deferred.Done(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Speaking reports whether a timeline is playing
func (f *SpeechFeature) Speaking() bool { return f.playing }

// Current returns the loaded timeline
func (f *SpeechFeature) Current() Timeline { return f.timeline }

// Play starts t from the beginning, cancelling any speech in progress. The
// returned signal resolves once the last mark has been passed.
func (f *SpeechFeature) Play(t Timeline) *deferred.Signal {
	if len(t.Marks) == 0 {
		return deferred.Rejected[struct{}](ErrEmptyTimeline)
	}
	if f.done.Pending() {
		f.Stop()
	}

	f.timeline = t
	f.next = 0
	f.localMs = 0
	f.playing = true
	f.done = deferred.NewSignal(nil)

	f.Emit(EventStart, t.Text)
	f.emitDue()
	return f.done
}

func (f *SpeechFeature) Pause() bool {
	if !f.playing {
		hostanim.Logger().Warn("cannot pause speech", zap.String("host", f.Host().ID()))
		return false
	}
	f.playing = false
	f.Emit(EventPause, f.timeline.Text)
	return true
}

// Resume continues a paused timeline where it stopped
func (f *SpeechFeature) Resume() error {
	if f.playing {
		return nil
	}
	if !f.done.Pending() {
		return fmt.Errorf("resume speech on %s: %w", f.Host().ID(), ErrNotSpeaking)
	}
	f.playing = true
	f.Emit(EventResume, f.timeline.Text)
	return nil
}

// Stop abandons the current timeline. Its signal is cancelled.
func (f *SpeechFeature) Stop() bool {
	if !f.done.Pending() {
		hostanim.Logger().Warn("cannot stop speech", zap.String("host", f.Host().ID()))
		return false
	}
	f.playing = false
	f.done.Cancel(struct{}{})
	f.Emit(EventStop, f.timeline.Text)
	return true
}

func (f *SpeechFeature) Update(deltaMs float64) {
	if !f.playing || deltaMs <= 0 {
		return
	}
	f.localMs += deltaMs
	f.emitDue()
}

func (f *SpeechFeature) emitDue() {
	marks := f.timeline.Marks
	for f.next < len(marks) && marks[f.next].TimeMs+f.offsetMs <= f.localMs {
		m := marks[f.next]
		f.next++
		f.Emit(EventMark, m)
		f.Emit(eventFor(m.Type), m)
	}

	if f.next >= len(marks) && f.localMs >= f.timeline.EndMs()+f.offsetMs {
		f.playing = false
		f.Emit(EventEnd, f.timeline.Text)
		f.done.Resolve(struct{}{})
	}
}

func eventFor(t MarkType) string {
	switch t {
	case MarkWord:
		return EventWord
	case MarkViseme:
		return EventViseme
	case MarkSSML:
		return EventSSML
	}
	return EventSentence
}

func (f *SpeechFeature) Discard() {
	if f.done.Pending() {
		f.Stop()
	}
}
