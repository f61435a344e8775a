package expiringmap

import (
	"time"
)

// KeyConstraint is an interface for key constraints.
type KeyConstraint interface {
	comparable
}

// ValueConstraint is an interface for value constraints.
type ValueConstraint interface {
	any
}

// Entry is a key-value pair.
type Entry[K KeyConstraint, V ValueConstraint] struct {
	// Key is the key of the entry.
	Key K

	// Value is the value associated with the key.
	Value V
}

// TimerHandle is a pending callback created by a Scheduler.
type TimerHandle interface {
	// Stop prevents the callback from running.
	// It returns false if the callback has already run or the handle has already been stopped.
	// Calling Stop more than once must be safe.
	Stop() bool
}

// Scheduler runs callbacks after a delay.
// Implementations must be thread-safe.
type Scheduler interface {
	// AfterFunc arranges for f to be called after d has elapsed and returns a handle to cancel it.
	// A non-positive d runs f as soon as possible.
	// f must not be called synchronously from within AfterFunc.
	AfterFunc(d time.Duration, f func()) TimerHandle
}

// SchedulerFunc is a function type that implements the Scheduler interface.
type SchedulerFunc func(time.Duration, func()) TimerHandle

// AfterFunc calls the function.
func (f SchedulerFunc) AfterFunc(d time.Duration, fn func()) TimerHandle {
	return f(d, fn)
}

// SystemScheduler is the default scheduler backed by time.AfterFunc.
// Each callback runs on its own goroutine.
var SystemScheduler Scheduler = SchedulerFunc(func(d time.Duration, f func()) TimerHandle {
	return time.AfterFunc(d, f)
})
