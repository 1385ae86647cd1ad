// Package character assembles the narrator used by the commands and
// examples: a host with animation, speech and lip sync features bound to a
// headless softmix mixer.
package character

import (
	_ "embed"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/comalice/hostanim"
	"github.com/comalice/hostanim/deferred"
	"github.com/comalice/hostanim/engine/softmix"
	"github.com/comalice/hostanim/speech"
)

//go:embed narrator.yaml
var DefaultRig []byte

// Layer and animation names in DefaultRig
const (
	LayerBase    = "base"
	LayerGesture = "gesture"
	LayerBlink   = "blink"
	LayerViseme  = "viseme"
)

var clipSeconds = map[string]float64{
	"idle":         4,
	"talk_idle":    3,
	"wave":         1.6,
	"nod":          0.8,
	"shrug":        1.2,
	"blink_single": 0.15,
	"blink_double": 0.4,
	"blink_slow":   0.35,
	"viseme_sil":   1,
	"viseme_aa":    1,
	"viseme_ee":    1,
	"viseme_oh":    1,
	"viseme_mbp":   1,
	"viseme_fv":    1,
}

// Library returns the clips DefaultRig references
func Library() softmix.Library {
	lib := make(softmix.Library, len(clipSeconds))
	for name, s := range clipSeconds {
		lib[name] = softmix.NewClip(name, s)
	}
	return lib
}

// visemeShapes maps speech viseme values to sub-animations of "visemes"
var visemeShapes = map[string]string{
	"a": "aa", "@": "aa",
	"e": "ee", "E": "ee", "i": "ee",
	"o": "oh", "O": "oh", "u": "oh",
	"p": "mbp",
	"f": "fv",
}

// Character is one assembled narrator
type Character struct {
	Host    *hostanim.Host
	Mixer   *softmix.Mixer
	Anim    *hostanim.AnimationFeature
	Speech  *speech.SpeechFeature
	Lipsync *speech.LipsyncFeature
	Rig     *hostanim.RigConfig
}

// New builds a character from rig YAML, DefaultRig when rigData is empty.
// The same seed gives the same blink sequence.
func New(id string, rigData []byte, seed uint64) (*Character, error) {
	if len(rigData) == 0 {
		rigData = DefaultRig
	}
	rig, err := hostanim.ParseRig(rigData)
	if err != nil {
		return nil, err
	}

	h := hostanim.NewHost(id)
	mixer := softmix.NewMixer()
	anim := hostanim.NewAnimationFeature(h, mixer,
		hostanim.WithRandomSource(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))))
	if _, err := hostanim.ApplyRig(anim, rig, Library()); err != nil {
		return nil, err
	}

	sp := speech.NewSpeechFeature(h)
	lip, err := speech.NewLipsyncFeature(h, anim, speech.LipsyncConfig{
		Layer:       LayerViseme,
		Animation:   "visemes",
		BlendMs:     60,
		LayerFadeMs: 120,
		Visemes:     visemeShapes,
	})
	if err != nil {
		return nil, fmt.Errorf("character %s: %w", id, err)
	}

	h.AddFeature(anim, false)
	h.AddFeature(sp, false)
	h.AddFeature(lip, false)

	c := &Character{Host: h, Mixer: mixer, Anim: anim, Speech: sp, Lipsync: lip, Rig: rig}
	if anim.PlayAnimation(LayerBase, "idle").Rejected() {
		return nil, fmt.Errorf("character %s: rig has no base idle", id)
	}
	anim.PlayAnimation(LayerBlink, "blink")
	return c, nil
}

// Gesture plays a one-shot animation on the gesture layer.
func (c *Character) Gesture(name string) *deferred.Signal {
	return c.Anim.PlayAnimation(LayerGesture, name)
}

// Say speaks text with a synthetic mark timeline, switching the base layer
// to its talking loop until speech ends.
func (c *Character) Say(text string) *deferred.Signal {
	sig := c.Speech.Play(SampleTimeline(text))
	if sig.Rejected() {
		return sig
	}
	c.Anim.PlayAnimation(LayerBase, "talk")
	return sig.Then(func(*deferred.Signal) {
		c.Anim.PlayAnimation(LayerBase, "idle")
	})
}

const (
	letterMs = 70.0
	gapMs    = 120.0
)

// SampleTimeline fakes TTS speech marks for text: one word mark per word
// and a viseme for each vowel or lip consonant, letterMs apart.
func SampleTimeline(text string) speech.Timeline {
	var words, visemes []speech.Mark
	t := 0.0
	offset := 0
	for _, word := range strings.Fields(text) {
		start := strings.Index(text[offset:], word) + offset
		offset = start + len(word)
		words = append(words, speech.Mark{TimeMs: t, Type: speech.MarkWord, Value: word, Start: start, End: offset})
		for _, r := range strings.ToLower(word) {
			if v := letterViseme(r); v != "" {
				visemes = append(visemes, speech.Mark{TimeMs: t, Type: speech.MarkViseme, Value: v})
			}
			t += letterMs
		}
		visemes = append(visemes, speech.Mark{TimeMs: t, Type: speech.MarkViseme, Value: "sil"})
		t += gapMs
	}
	sentence := []speech.Mark{{TimeMs: 0, Type: speech.MarkSentence, Value: text, Start: 0, End: len(text)}}
	return speech.BuildTimeline(text, sentence, words, visemes)
}

func letterViseme(r rune) string {
	switch r {
	case 'a':
		return "a"
	case 'e', 'i', 'y':
		return "e"
	case 'o', 'u', 'w':
		return "o"
	case 'm', 'b', 'p':
		return "p"
	case 'f', 'v':
		return "f"
	}
	return ""
}
