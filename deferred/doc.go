// Package deferred implements a cancelable, externally driven promise.
//
// A Deferred settles exactly once as resolved, rejected or cancelled. It
// never schedules work on its own: an executor function is re-run every time
// the owner calls Execute with the elapsed milliseconds since the previous
// call, which lets interpolations and timers advance in lockstep with a host
// frame loop.
//
// Deferreds are not safe for concurrent use. They are meant to be driven
// from the single goroutine that owns the host update cascade.
//
//	fade := deferred.Interpolate(get, set, 1, 500, easing.CubicOut)
//	for !fade.Settled() {
//	    fade.Execute(16)
//	}
package deferred
