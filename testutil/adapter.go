// Package testutil lets one animation scenario run against a host stepped
// directly or against a host owned by a realtime runtime.
package testutil

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/comalice/hostanim"
	"github.com/comalice/hostanim/realtime"
)

// HostAdapter provides a common interface over the ways a host is driven
type HostAdapter interface {
	Start(ctx context.Context) error
	Stop() error
	// Apply runs fn against the host where it is safe to do so
	Apply(fn func(*hostanim.Host)) error
	// Advance moves the host clock forward by at least ms
	Advance(ms float64) error
	// Now reads the host clock
	Now() (float64, error)
}

// DirectAdapter calls Host.Update on the caller's goroutine in fixed steps
type DirectAdapter struct {
	host   *hostanim.Host
	stepMs float64
}

// NewDirectAdapter creates an adapter that advances host in stepMs frames
func NewDirectAdapter(host *hostanim.Host, stepMs float64) *DirectAdapter {
	return &DirectAdapter{host: host, stepMs: stepMs}
}

func (a *DirectAdapter) Start(ctx context.Context) error { return nil }

func (a *DirectAdapter) Stop() error { return nil }

func (a *DirectAdapter) Apply(fn func(*hostanim.Host)) error {
	fn(a.host)
	return nil
}

func (a *DirectAdapter) Advance(ms float64) error {
	for range steps(ms, a.stepMs) {
		a.host.Update(a.stepMs)
	}
	return nil
}

func (a *DirectAdapter) Now() (float64, error) { return a.host.Now(), nil }

// TickBasedAdapter wraps a realtime runtime running on its own goroutine
type TickBasedAdapter struct {
	rt      *realtime.Runtime
	timeout time.Duration
}

// NewTickBasedAdapter creates a runtime for host at tickRate
func NewTickBasedAdapter(host *hostanim.Host, tickRate time.Duration) *TickBasedAdapter {
	return &TickBasedAdapter{
		rt:      realtime.NewRuntime(host, realtime.Config{TickRate: tickRate}),
		timeout: 2 * time.Second,
	}
}

// Runtime exposes the wrapped runtime
func (a *TickBasedAdapter) Runtime() *realtime.Runtime { return a.rt }

func (a *TickBasedAdapter) Start(ctx context.Context) error {
	return a.rt.Start(ctx)
}

func (a *TickBasedAdapter) Stop() error {
	return a.rt.Stop()
}

func (a *TickBasedAdapter) Apply(fn func(*hostanim.Host)) error {
	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()
	return a.rt.Do(ctx, fn)
}

// Advance waits until enough ticks have run to cover ms
func (a *TickBasedAdapter) Advance(ms float64) error {
	tickMs := float64(a.rt.TickRate()) / float64(time.Millisecond)
	target := a.rt.TickNum() + uint64(steps(ms, tickMs))
	deadline := time.Now().Add(a.timeout)
	for a.rt.TickNum() < target {
		if time.Now().After(deadline) {
			return fmt.Errorf("advance %vms: timed out at tick %d of %d", ms, a.rt.TickNum(), target)
		}
		time.Sleep(a.rt.TickRate() / 2)
	}
	return nil
}

func (a *TickBasedAdapter) Now() (float64, error) {
	var now float64
	err := a.Apply(func(h *hostanim.Host) { now = h.Now() })
	return now, err
}

// steps returns how many frames of stepMs cover ms
func steps(ms, stepMs float64) int {
	if ms <= 0 || stepMs <= 0 {
		return 0
	}
	return int(math.Ceil(ms/stepMs - 1e-9))
}
