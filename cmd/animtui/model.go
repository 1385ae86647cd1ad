package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/comalice/hostanim"
	"github.com/comalice/hostanim/internal/character"
	"github.com/comalice/hostanim/speech"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	layerStyle = lipgloss.NewStyle().
			Width(10).
			Foreground(lipgloss.Color("#87CEEB"))

	currentStyle = lipgloss.NewStyle().
			Width(14).
			Foreground(lipgloss.Color("#98FB98"))

	pausedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

const maxLogLines = 8

var (
	gestures = []string{"wave", "nod", "shrug"}
	lines    = []string{
		"Hello there, I am the narrator",
		"Watch my mouth move while I speak",
		"Press g and I will wave at you",
	}
)

type frameMsg time.Time

type model struct {
	c       *character.Character
	frame   time.Duration
	bar     progress.Model
	log     []string
	gesture int
	line    int
	last    time.Time
}

func newModel(c *character.Character, frame time.Duration) *model {
	m := &model{
		c:     c,
		frame: frame,
		bar:   progress.New(progress.WithDefaultGradient(), progress.WithWidth(30)),
	}
	c.Host.Subscribe(m.record)
	return m
}

// record keeps feature events for the log pane; it runs inside Update
func (m *model) record(msg hostanim.Message) {
	if msg.Event == hostanim.EventUpdate || strings.HasSuffix(msg.Event, speech.EventMark) {
		return
	}
	entry := fmt.Sprintf("%7.0fms %s", m.c.Host.Now(), msg.Event)
	switch v := msg.Value.(type) {
	case hostanim.AnimationEvent:
		entry += fmt.Sprintf(" %s/%s", v.Layer, v.Animation)
		if v.Next != "" {
			entry += " -> " + v.Next
		}
	case speech.Mark:
		entry += " " + v.Value
	}
	m.log = append(m.log, entry)
	if len(m.log) > maxLogLines {
		m.log = m.log[len(m.log)-maxLogLines:]
	}
}

func (m *model) tick() tea.Cmd {
	return tea.Tick(m.frame, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m *model) Init() tea.Cmd {
	m.last = time.Now()
	return m.tick()
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.c.Host.Discard()
			return m, tea.Quit
		case " ":
			if m.c.Anim.Paused() {
				m.c.Anim.Resume()
				m.c.Speech.Resume()
			} else {
				m.c.Anim.Pause()
				m.c.Speech.Pause()
			}
		case "g":
			m.c.Gesture(gestures[m.gesture%len(gestures)])
			m.gesture++
		case "t":
			m.c.Say(lines[m.line%len(lines)])
			m.line++
		}

	case frameMsg:
		now := time.Time(msg)
		m.c.Host.Update(float64(now.Sub(m.last)) / float64(time.Millisecond))
		m.last = now
		return m, m.tick()
	}
	return m, nil
}

func (m *model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("hostanim · "+m.c.Rig.Name) + "\n\n")

	snap := m.c.Anim.Snapshot()
	for _, l := range snap.Layers {
		current := l.Current
		if l.Transitioning {
			current += "*"
		}
		row := lipgloss.JoinHorizontal(lipgloss.Top,
			layerStyle.Render(l.Name),
			currentStyle.Render(current),
			m.bar.ViewAs(l.InternalWeight),
			fmt.Sprintf("  %s", l.BlendMode),
		)
		b.WriteString(row + "\n")
	}

	status := fmt.Sprintf("\nclock %.0fms", m.c.Host.Now())
	if snap.Paused {
		status += pausedStyle.Render("  PAUSED")
	}
	if m.c.Speech.Speaking() {
		status += "  speaking: " + m.c.Speech.Current().Text
	}
	b.WriteString(status + "\n\n")

	for _, entry := range m.log {
		b.WriteString(entry + "\n")
	}
	b.WriteString(helpStyle.Render("\nspace: pause · g: gesture · t: talk · q: quit") + "\n")
	return b.String()
}
