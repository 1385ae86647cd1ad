package deferred

import (
	"errors"
	"math"
)

var (
	// ErrRejected is reported when Reject is called with a nil error
	ErrRejected = errors.New("deferred rejected")
	// ErrCancelled is returned by Result for a cancelled Deferred
	ErrCancelled = errors.New("deferred cancelled")
	// ErrInvalidDelta rejects executors that receive a negative or NaN delta
	ErrInvalidDelta = errors.New("invalid delta time")
)

// Status is the settlement state of a Deferred
type Status int

const (
	StatusPending Status = iota
	StatusResolved
	StatusRejected
	StatusCancelled
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusResolved:
		return "resolved"
	case StatusRejected:
		return "rejected"
	case StatusCancelled:
		return "cancelled"
	}
	return "unknown"
}

// Executor advances a pending Deferred by deltaMs. It may settle d.
type Executor[T any] func(d *Deferred[T], deltaMs float64)

// Deferred is a promise that can be settled by its owner at any time and
// stepped forward by Execute.
type Deferred[T any] struct {
	status Status
	value  T
	err    error
	exec   Executor[T]

	// propagate runs before user hooks; used by join to pull siblings along
	propagate  []func(s Status, v any, err error)
	onResolve  []func(T)
	onReject   []func(error)
	onCancel   []func(T)
	onProgress []func(float64)
	thens      []func(*Deferred[T])
}

// Signal is a Deferred that carries no value. Playback completion is
// modelled with Signals throughout the runtime.
type Signal = Deferred[struct{}]

// Option configures hooks on a Deferred
type Option[T any] func(*Deferred[T])

// WithOnResolve registers fn to run when the Deferred resolves
func WithOnResolve[T any](fn func(T)) Option[T] {
	return func(d *Deferred[T]) {
		if fn != nil {
			d.onResolve = append(d.onResolve, fn)
		}
	}
}

// WithOnReject registers fn to run when the Deferred rejects
func WithOnReject[T any](fn func(error)) Option[T] {
	return func(d *Deferred[T]) {
		if fn != nil {
			d.onReject = append(d.onReject, fn)
		}
	}
}

// WithOnCancel registers fn to run when the Deferred is cancelled
func WithOnCancel[T any](fn func(T)) Option[T] {
	return func(d *Deferred[T]) {
		if fn != nil {
			d.onCancel = append(d.onCancel, fn)
		}
	}
}

// WithOnProgress registers fn to receive progress reports from the executor
func WithOnProgress[T any](fn func(float64)) Option[T] {
	return func(d *Deferred[T]) {
		if fn != nil {
			d.onProgress = append(d.onProgress, fn)
		}
	}
}

// New creates a pending Deferred. A nil executor makes Execute a no-op.
func New[T any](exec Executor[T], opts ...Option[T]) *Deferred[T] {
	d := &Deferred[T]{exec: exec}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// NewSignal creates a pending Signal
func NewSignal(exec Executor[struct{}], opts ...Option[struct{}]) *Signal {
	return New(exec, opts...)
}

// Resolved returns a Deferred already resolved with v
func Resolved[T any](v T) *Deferred[T] {
	return &Deferred[T]{status: StatusResolved, value: v}
}

// Rejected returns a Deferred already rejected with err
func Rejected[T any](err error) *Deferred[T] {
	if err == nil {
		err = ErrRejected
	}
	return &Deferred[T]{status: StatusRejected, err: err}
}

// Cancelled returns a Deferred already cancelled with v
func Cancelled[T any](v T) *Deferred[T] {
	return &Deferred[T]{status: StatusCancelled, value: v}
}

// Done returns an already resolved Signal
func Done() *Signal {
	return Resolved(struct{}{})
}

func (d *Deferred[T]) Status() Status { return d.status }
func (d *Deferred[T]) Pending() bool { return d.status == StatusPending }
func (d *Deferred[T]) Resolved() bool { return d.status == StatusResolved }
func (d *Deferred[T]) Rejected() bool { return d.status == StatusRejected }
func (d *Deferred[T]) Cancelled() bool { return d.status == StatusCancelled }
func (d *Deferred[T]) Settled() bool { return d.status != StatusPending }

// Value returns the resolved or cancelled value, or the zero value
func (d *Deferred[T]) Value() T { return d.value }

// Err returns the rejection error, or nil
func (d *Deferred[T]) Err() error { return d.err }

// Result reports the outcome in (value, error) form. Pending Deferreds
// return the zero value and a nil error.
func (d *Deferred[T]) Result() (T, error) {
	switch d.status {
	case StatusRejected:
		return d.value, d.err
	case StatusCancelled:
		return d.value, ErrCancelled
	}
	return d.value, nil
}

// Resolve settles the Deferred with v. No-op once settled.
func (d *Deferred[T]) Resolve(v T) {
	d.finish(StatusResolved, v, nil, v)
}

// Reject settles the Deferred with err. No-op once settled.
func (d *Deferred[T]) Reject(err error) {
	if err == nil {
		err = ErrRejected
	}
	var zero T
	d.finish(StatusRejected, zero, err, nil)
}

// Cancel settles the Deferred as cancelled with v. No-op once settled.
func (d *Deferred[T]) Cancel(v T) {
	d.finish(StatusCancelled, v, nil, v)
}

// Execute re-runs the executor with the elapsed time if still pending
func (d *Deferred[T]) Execute(deltaMs float64) {
	if d.status == StatusPending && d.exec != nil {
		d.exec(d, deltaMs)
	}
}

// Progress forwards a progress report to WithOnProgress hooks
func (d *Deferred[T]) Progress(p float64) {
	for _, fn := range d.onProgress {
		fn(p)
	}
}

// Then registers fn to run once the Deferred settles. If it has already
// settled fn runs immediately.
func (d *Deferred[T]) Then(fn func(*Deferred[T])) *Deferred[T] {
	if fn == nil {
		return d
	}
	if d.status != StatusPending {
		fn(d)
		return d
	}
	d.thens = append(d.thens, fn)
	return d
}

func (d *Deferred[T]) finish(s Status, v T, err error, raw any) {
	if d.status != StatusPending {
		return
	}
	d.status = s
	d.value = v
	d.err = err

	for _, fn := range d.propagate {
		fn(s, raw, err)
	}
	d.propagate = nil

	switch s {
	case StatusResolved:
		for _, fn := range d.onResolve {
			fn(v)
		}
	case StatusRejected:
		for _, fn := range d.onReject {
			fn(err)
		}
	case StatusCancelled:
		for _, fn := range d.onCancel {
			fn(v)
		}
	}

	thens := d.thens
	d.thens = nil
	for _, fn := range thens {
		fn(d)
	}
}

// Awaitable is anything All and Join can compose: any *Deferred[T] or a
// plain value wrapped with Value.
type Awaitable interface {
	Status() Status
	Err() error
	result() any
	settle(s Status, v any, err error)
	onSettled(fn func())
}

func (d *Deferred[T]) result() any { return d.value }

func (d *Deferred[T]) settle(s Status, v any, err error) {
	tv, _ := v.(T)
	d.finish(s, tv, err, v)
}

func (d *Deferred[T]) onSettled(fn func()) {
	d.Then(func(*Deferred[T]) { fn() })
}

type plain struct{ v any }

// Value wraps a plain value so it can be passed to All. It counts as an
// input that resolved immediately.
func Value(v any) Awaitable { return plain{v: v} }

func (p plain) Status() Status { return StatusResolved }
func (p plain) Err() error { return nil }
func (p plain) result() any { return p.v }
func (p plain) settle(Status, any, error) {}
func (p plain) onSettled(fn func()) { fn() }

func validDelta(deltaMs float64) bool {
	return !math.IsNaN(deltaMs) && !math.IsInf(deltaMs, 0) && deltaMs >= 0
}
