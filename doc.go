// Package expiringmap provides a concurrency-safe map whose entries remove
// themselves after a per-entry time-to-live.
//
// Every Set arms a timer for the key through a Scheduler. Setting the same key
// again stops the previous timer and arms a new one, so a key always has
// exactly one pending removal. Delete stops the timer before the key leaves
// the map, and a timer that fires late only removes the entry it was armed
// for.
//
// The Scheduler and the Clock are injected with options. The default
// scheduler is backed by time.AfterFunc; tests can use the virtual-time
// scheduler in the scheduler/fakescheduler package instead.
//
// Timeouts are described with the expiration package: a duration, a number
// of seconds, or the time elapsed since a point in time. A zero timeout falls
// back to the map default, which itself falls back to DefaultTimeout.
package expiringmap
