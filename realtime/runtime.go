package realtime

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/comalice/hostanim"
	"go.uber.org/zap"
)

var (
	ErrQueueFull      = errors.New("command queue full")
	ErrAlreadyRunning = errors.New("runtime already running")
	ErrStopped        = errors.New("runtime stopped")
)

// Runtime provides tick-based deterministic execution for one host.
type Runtime struct {
	host     *hostanim.Host
	tickRate time.Duration
	tickMs   float64
	ticker   *time.Ticker
	tickNum  uint64

	// Command batching
	batch       []commandWithMeta
	maxPerTick  int
	maxQueued   int
	batchMu     sync.Mutex
	sequenceNum uint64

	// tickMu serialises ticks from the loop and from Step
	tickMu sync.Mutex

	// Control
	tickCtx    context.Context
	tickCancel context.CancelFunc
	stopped    chan struct{}
}

// Config configures the runtime
type Config struct {
	TickRate           time.Duration // Fixed tick rate (e.g., 16.67ms for 60 FPS)
	MaxCommandsPerTick int           // Commands applied per tick (default: 1000)
	MaxQueued          int           // Queue capacity (default: 16 * MaxCommandsPerTick)
}

// NewRuntime creates a runtime for host. The runtime owns the host from now
// on; reach it through Submit, Do or Step.
func NewRuntime(host *hostanim.Host, cfg Config) *Runtime {
	if cfg.MaxCommandsPerTick <= 0 {
		cfg.MaxCommandsPerTick = 1000
	}
	if cfg.MaxQueued <= 0 {
		cfg.MaxQueued = 16 * cfg.MaxCommandsPerTick
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 16667 * time.Microsecond // Default 60 FPS
	}

	return &Runtime{
		host:       host,
		tickRate:   cfg.TickRate,
		tickMs:     float64(cfg.TickRate) / float64(time.Millisecond),
		batch:      make([]commandWithMeta, 0, cfg.MaxCommandsPerTick),
		maxPerTick: cfg.MaxCommandsPerTick,
		maxQueued:  cfg.MaxQueued,
	}
}

// TickRate returns the configured tick length
func (rt *Runtime) TickRate() time.Duration { return rt.tickRate }

// Start begins tick-based execution on a new goroutine.
func (rt *Runtime) Start(ctx context.Context) error {
	rt.batchMu.Lock()
	defer rt.batchMu.Unlock()
	if rt.tickCancel != nil {
		return ErrAlreadyRunning
	}

	rt.tickCtx, rt.tickCancel = context.WithCancel(ctx)
	rt.ticker = time.NewTicker(rt.tickRate)
	rt.stopped = make(chan struct{})

	go rt.tickLoop(rt.tickCtx, rt.ticker, rt.stopped)

	Logger().Debug("runtime started",
		zap.String("host", rt.host.ID()),
		zap.Duration("tickRate", rt.tickRate))
	return nil
}

// Stop halts the tick loop and waits for it to exit. Queued commands are
// kept; a later Start or Step applies them.
func (rt *Runtime) Stop() error {
	rt.batchMu.Lock()
	cancel, ticker, stopped := rt.tickCancel, rt.ticker, rt.stopped
	rt.tickCancel, rt.ticker = nil, nil
	rt.batchMu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()
	ticker.Stop()

	// Wait for tick loop to exit
	<-stopped
	return nil
}

// Running reports whether the tick loop is active
func (rt *Runtime) Running() bool {
	rt.batchMu.Lock()
	defer rt.batchMu.Unlock()
	return rt.tickCancel != nil
}

// tickLoop is the main tick execution loop
func (rt *Runtime) tickLoop(ctx context.Context, ticker *time.Ticker, stopped chan struct{}) {
	defer close(stopped)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rt.Step()
		}
	}
}

// Step runs one tick synchronously: apply due commands, then advance the
// host by one tick length. Tests and manual loops call it directly.
func (rt *Runtime) Step() {
	rt.tickMu.Lock()
	defer rt.tickMu.Unlock()

	func() {
		defer func() {
			if r := recover(); r != nil {
				Logger().Error("panic in tick",
					zap.String("host", rt.host.ID()),
					zap.Any("panic", r),
					zap.Stack("stack"))
			}
		}()
		rt.processTick()
	}()

	rt.batchMu.Lock()
	rt.tickNum++
	rt.batchMu.Unlock()
}

// Submit queues cmd for the next tick. It is safe for concurrent use.
func (rt *Runtime) Submit(cmd Command) error {
	if cmd.Apply == nil {
		return errors.New("command has no Apply func")
	}

	rt.batchMu.Lock()
	defer rt.batchMu.Unlock()

	if len(rt.batch) >= rt.maxQueued {
		return ErrQueueFull
	}

	rt.batch = append(rt.batch, commandWithMeta{
		Command:     cmd,
		SequenceNum: rt.sequenceNum,
	})
	rt.sequenceNum++
	return nil
}

// Do submits fn and waits until a tick has applied it.
func (rt *Runtime) Do(ctx context.Context, fn func(*hostanim.Host)) error {
	done := make(chan struct{})
	err := rt.Submit(Command{Name: "do", Apply: func(h *hostanim.Host) {
		defer close(done)
		fn(h)
	}})
	if err != nil {
		return err
	}

	rt.batchMu.Lock()
	stopped := rt.stopped
	rt.batchMu.Unlock()
	if stopped == nil {
		stopped = make(chan struct{})
	}

	select {
	case <-done:
		return nil
	case <-stopped:
		// The command may still have run in the final tick.
		select {
		case <-done:
			return nil
		default:
			return ErrStopped
		}
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Snapshot reads the host's AnimationFeature state on the tick goroutine.
func (rt *Runtime) Snapshot(ctx context.Context) (hostanim.Snapshot, error) {
	var snap hostanim.Snapshot
	var found bool
	err := rt.Do(ctx, func(h *hostanim.Host) {
		f, ok := h.Feature(hostanim.AnimationFeatureName)
		if !ok {
			return
		}
		if anim, ok := f.(*hostanim.AnimationFeature); ok {
			snap, found = anim.Snapshot(), true
		}
	})
	if err != nil {
		return hostanim.Snapshot{}, err
	}
	if !found {
		return hostanim.Snapshot{}, hostanim.ErrFeatureNotFound
	}
	return snap, nil
}

// TickNum returns the current tick count
func (rt *Runtime) TickNum() uint64 {
	rt.batchMu.Lock()
	defer rt.batchMu.Unlock()
	return rt.tickNum
}

// Pending returns the number of queued commands
func (rt *Runtime) Pending() int {
	rt.batchMu.Lock()
	defer rt.batchMu.Unlock()
	return len(rt.batch)
}
