// Package fakescheduler provides a virtual-time implementation of expiringmap.Scheduler
// and expiringmap.Clock.
//
// Time only moves when Advance or AdvanceTo is called. Due callbacks run on the
// goroutine that advances the clock, in deadline order, after the scheduler has
// released its own lock, so callbacks may schedule or stop other timers.
package fakescheduler
