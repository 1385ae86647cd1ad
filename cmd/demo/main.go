package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/comalice/hostanim"
	"github.com/comalice/hostanim/engine/softmix"
	"github.com/comalice/hostanim/internal/character"
	"github.com/comalice/hostanim/internal/production"
	"github.com/comalice/hostanim/realtime"
	"github.com/comalice/hostanim/state"
)

var gestures = []string{"wave", "nod", "shrug"}

func main() {
	// Load .env file if it exists
	envErr := godotenv.Load()

	rigPath := flag.String("rig", os.Getenv("HOSTANIM_RIG"), "rig YAML file (embedded narrator when empty)")
	seconds := flag.Float64("seconds", 8, "how long to run")
	tick := flag.Duration("tick", envDuration("HOSTANIM_TICK_RATE", 16667*time.Microsecond), "tick length")
	dot := flag.Bool("dot", false, "print the final layer stack as Graphviz DOT")
	asJSON := flag.Bool("json", false, "print the final snapshot as JSON")
	verbose := flag.Bool("v", false, "development logging")
	flag.Parse()

	log := newLogger(*verbose)
	defer log.Sync()
	if envErr != nil {
		log.Debug("no .env file found, using system environment variables")
	}

	if err := run(log, *rigPath, *seconds, *tick, *dot, *asJSON); err != nil {
		log.Error("demo failed", zap.Error(err))
		os.Exit(1)
	}
}

func newLogger(verbose bool) *zap.Logger {
	build := zap.NewProduction
	if verbose {
		build = zap.NewDevelopment
	}
	log, err := build()
	if err != nil {
		panic(err)
	}
	hostanim.SetLogger(log.Named("hostanim"))
	state.SetLogger(log.Named("state"))
	softmix.SetLogger(log.Named("softmix"))
	realtime.SetLogger(log.Named("realtime"))
	return log
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func run(log *zap.Logger, rigPath string, seconds float64, tick time.Duration, dot, asJSON bool) error {
	var rigData []byte
	if rigPath != "" {
		data, err := os.ReadFile(rigPath)
		if err != nil {
			return fmt.Errorf("read rig: %w", err)
		}
		rigData = data
	}

	c, err := character.New("narrator", rigData, uint64(time.Now().UnixNano()))
	if err != nil {
		return err
	}
	log.Info("rig loaded",
		zap.String("rig", c.Rig.Name),
		zap.String("version", hostanim.RigVersion(c.Rig)),
		zap.Strings("layers", c.Anim.LayerNames()))

	publishCh := make(chan production.PublishedMessage, 256)
	publisher := production.NewChannelPublisher(publishCh)
	publisher.Attach(c.Host.Messenger)
	go func() {
		for msg := range publishCh {
			if msg.Message.Event == hostanim.EventUpdate {
				continue
			}
			log.Info("event",
				zap.String("host", msg.HostID),
				zap.String("event", msg.Message.Event),
				zap.Any("value", msg.Message.Value))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt := realtime.NewRuntime(c.Host, realtime.Config{TickRate: tick, MaxCommandsPerTick: 100})
	if err := rt.Start(ctx); err != nil {
		return err
	}

	timer := realtime.NewTimerSource("gesture", nil, 2*time.Second)
	defer timer.Stop()
	speechCh := make(chan realtime.Cue, 1)
	next := 0
	route := realtime.Route{
		"gesture": func(*hostanim.Host, realtime.Cue) {
			c.Gesture(gestures[next%len(gestures)])
			next++
		},
		"say": func(_ *hostanim.Host, cue realtime.Cue) {
			text, _ := cue.Data.(string)
			c.Say(text)
		},
	}
	rt.Listen(ctx, timer, 0, route)
	rt.Listen(ctx, realtime.NewChannelSource(speechCh), 1, route)

	speechCh <- realtime.NewCue("say", "Hello there, welcome to the animation demo")

	select {
	case <-ctx.Done():
		log.Info("shutting down")
	case <-time.After(time.Duration(seconds * float64(time.Second))):
	}

	snapCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	snap, snapErr := rt.Snapshot(snapCtx)
	cancel()
	if err := rt.Stop(); err != nil {
		return err
	}
	publisher.Close()
	if snapErr != nil {
		return snapErr
	}

	log.Info("demo complete", zap.Uint64("ticks", rt.TickNum()), zap.Float64("clockMs", c.Host.Now()))

	v := &production.DefaultVisualizer{}
	if dot {
		fmt.Print(v.ExportDOT(snap))
	}
	if asJSON {
		data, err := v.ExportJSON(snap)
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	}
	return nil
}
