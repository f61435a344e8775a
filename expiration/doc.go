// Package expiration describes how long entries of an expiring map live.
//
// Timeout is a small tagged union over the accepted timeout forms: a
// duration, a number of seconds, the time elapsed since a point in time, or
// nothing at all. It is resolved into a single time.Duration once, when a
// value is stored. Policy adjusts the resolved delay before the removal is
// scheduled, for example to spread out expirations of entries written at the
// same moment.
package expiration
