// Package speech replays text-to-speech marks on a host. A SpeechFeature
// walks a timeline of sentence, word and viseme marks in step with the host
// clock and emits one event per mark; LipsyncFeature turns viseme events into
// blend weights on a FreeBlend animation.
package speech

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// MarkType is the kind of a speech mark
type MarkType int

const (
	MarkSentence MarkType = iota
	MarkWord
	MarkViseme
	MarkSSML
)

func (t MarkType) String() string {
	switch t {
	case MarkSentence:
		return "sentence"
	case MarkWord:
		return "word"
	case MarkViseme:
		return "viseme"
	case MarkSSML:
		return "ssml"
	}
	return fmt.Sprintf("MarkType(%d)", int(t))
}

func ParseMarkType(s string) (MarkType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sentence":
		return MarkSentence, nil
	case "word":
		return MarkWord, nil
	case "viseme":
		return MarkViseme, nil
	case "ssml":
		return MarkSSML, nil
	}
	return MarkSentence, fmt.Errorf("unknown speech mark type %q", s)
}

func (t MarkType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *MarkType) UnmarshalText(text []byte) error {
	mt, err := ParseMarkType(string(text))
	if err != nil {
		return err
	}
	*t = mt
	return nil
}

// Mark is one timed event of synthesized speech. Start and End are byte
// offsets into the spoken text for sentence and word marks.
type Mark struct {
	TimeMs float64  `json:"time" yaml:"time"`
	Type   MarkType `json:"type" yaml:"type"`
	Value  string   `json:"value" yaml:"value"`
	Start  int      `json:"start,omitempty" yaml:"start,omitempty"`
	End    int      `json:"end,omitempty" yaml:"end,omitempty"`
}

// ParseMarks decodes newline-delimited JSON marks, the format TTS services
// stream them in. Blank lines are skipped.
func ParseMarks(data []byte) ([]Mark, error) {
	var marks []Mark
	sc := bufio.NewScanner(bytes.NewReader(data))
	line := 0
	for sc.Scan() {
		line++
		text := bytes.TrimSpace(sc.Bytes())
		if len(text) == 0 {
			continue
		}
		var m Mark
		if err := json.Unmarshal(text, &m); err != nil {
			return nil, fmt.Errorf("speech mark line %d: %w", line, err)
		}
		marks = append(marks, m)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read speech marks: %w", err)
	}
	return marks, nil
}

// Timeline is a time-ordered list of marks for one utterance
type Timeline struct {
	Text  string
	Marks []Mark
}

// BuildTimeline merges groups of marks into one timeline sorted by time.
// Marks with equal times keep their input order.
func BuildTimeline(text string, groups ...[]Mark) Timeline {
	var marks []Mark
	for _, g := range groups {
		marks = append(marks, g...)
	}
	sort.SliceStable(marks, func(i, j int) bool {
		return marks[i].TimeMs < marks[j].TimeMs
	})
	return Timeline{Text: text, Marks: marks}
}

// EndMs is the time of the last mark
func (t Timeline) EndMs() float64 {
	if len(t.Marks) == 0 {
		return 0
	}
	return t.Marks[len(t.Marks)-1].TimeMs
}

// Visemes returns only the viseme marks
func (t Timeline) Visemes() []Mark {
	var out []Mark
	for _, m := range t.Marks {
		if m.Type == MarkViseme {
			out = append(out, m)
		}
	}
	return out
}
