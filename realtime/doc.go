// Package realtime drives hosts at a fixed tick rate.
//
// A Host is not safe for concurrent use. Runtime owns one host on its tick
// goroutine: other goroutines hand it work through Submit, and the runtime
// applies the batch at the start of the next tick before calling
// Host.Update with the tick length.
//
// # Example Usage
//
//	host := hostanim.NewHost("narrator")
//	rt := realtime.NewRuntime(host, realtime.Config{
//		TickRate: 16667 * time.Microsecond, // 60 FPS
//	})
//	rt.Start(ctx)
//	defer rt.Stop()
//	rt.Submit(realtime.Command{Name: "wave", Apply: func(h *hostanim.Host) {
//		anim.PlayAnimation("gesture", "wave")
//	}})
//
// # Command Ordering Guarantees
//
// Commands are ordered deterministically using:
//  1. Priority (higher priority applied first)
//  2. Sequence number (FIFO for same priority)
//  3. Stable sorting (preserves relative order)
//
// MaxCommandsPerTick bounds the work of a single tick. Commands beyond the
// cap stay queued and are re-sorted with the next tick's arrivals, so a
// late high-priority command can overtake an earlier low-priority one.
//
// Given the same sequence of Submit calls and Step calls, a host always
// ends in the same state regardless of goroutine scheduling.
//
// # Fleets and Sources
//
// Fleet updates many hosts per frame on a worker pool, waiting on a barrier
// before returning. Sources turn external cue streams (timers, speech or
// gesture channels) into commands.
package realtime
