package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/comalice/hostanim"
	"github.com/comalice/hostanim/internal/character"
	"github.com/comalice/hostanim/state"
)

func main() {
	rigPath := flag.String("rig", "", "rig YAML file (embedded narrator when empty)")
	fps := flag.Int("fps", 30, "frames per second")
	plainSeconds := flag.Float64("plain-seconds", 5, "run time when stdout is not a terminal")
	verbose := flag.Bool("v", false, "log warnings to stderr")
	flag.Parse()

	if *verbose {
		log, err := zap.NewDevelopment()
		if err == nil {
			hostanim.SetLogger(log)
			state.SetLogger(log)
			defer log.Sync()
		}
	}

	var rigData []byte
	if *rigPath != "" {
		data, err := os.ReadFile(*rigPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "read rig:", err)
			os.Exit(1)
		}
		rigData = data
	}
	c, err := character.New("narrator", rigData, uint64(time.Now().UnixNano()))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	frame := time.Second / time.Duration(max(*fps, 1))
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		runPlain(c, frame, *plainSeconds)
		return
	}

	p := tea.NewProgram(newModel(c, frame), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runPlain steps the host without a UI and prints one line per layer each
// second, for pipes and CI logs.
func runPlain(c *character.Character, frame time.Duration, seconds float64) {
	c.Say("Plain output mode")
	frameMs := float64(frame) / float64(time.Millisecond)
	frames := int(seconds * 1000 / frameMs)
	perSecond := int(1000 / frameMs)
	for i := 1; i <= frames; i++ {
		c.Host.Update(frameMs)
		if i%perSecond != 0 {
			continue
		}
		snap := c.Anim.Snapshot()
		fmt.Printf("t=%6.0fms", c.Host.Now())
		for _, l := range snap.Layers {
			fmt.Printf("  %s[%s %.2f]", l.Name, l.Current, l.InternalWeight)
		}
		fmt.Println()
	}
}
