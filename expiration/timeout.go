package expiration

import (
	"fmt"
	"math"
	"time"
)

// Kind identifies the form a Timeout was built from.
type Kind uint8

const (
	// KindDefault means no timeout was given.
	KindDefault Kind = iota

	// KindDuration is a timeout given as a time.Duration.
	KindDuration

	// KindSeconds is a timeout given as a number of seconds.
	KindSeconds

	// KindSince is a timeout given as the time elapsed since a point in time.
	KindSince
)

// Timeout is a timeout in one of the accepted forms.
// The zero value is equivalent to Default().
type Timeout struct {
	kind    Kind
	d       time.Duration
	seconds float64
	since   time.Time
}

// Default returns a Timeout that resolves to the fallback.
func Default() Timeout {
	return Timeout{}
}

// After returns a Timeout of d.
func After(d time.Duration) Timeout {
	return Timeout{kind: KindDuration, d: d}
}

// Seconds returns a Timeout of s seconds.
func Seconds(s float64) Timeout {
	return Timeout{kind: KindSeconds, seconds: s}
}

// Since returns a Timeout equal to the time elapsed between t and the moment it is resolved.
// A t in the future resolves to a negative duration.
func Since(t time.Time) Timeout {
	return Timeout{kind: KindSince, since: t}
}

// Kind returns the form of the timeout.
func (t Timeout) Kind() Kind {
	return t.kind
}

// Resolve converts the timeout into a duration.
// now is used for KindSince. A zero result, or a Default timeout, resolves to fallback.
// Negative results are returned as is.
func (t Timeout) Resolve(now time.Time, fallback time.Duration) time.Duration {
	var d time.Duration
	switch t.kind {
	case KindDuration:
		d = t.d
	case KindSeconds:
		d = secondsToDuration(t.seconds)
	case KindSince:
		if !t.since.IsZero() {
			d = now.Sub(t.since)
		}
	}
	if d == 0 {
		return fallback
	}
	return d
}

func (t Timeout) String() string {
	switch t.kind {
	case KindDuration:
		return t.d.String()
	case KindSeconds:
		return fmt.Sprintf("%gs", t.seconds)
	case KindSince:
		return "since " + t.since.Format(time.RFC3339Nano)
	default:
		return "default"
	}
}

func secondsToDuration(s float64) time.Duration {
	switch ns := s * float64(time.Second); {
	case math.IsNaN(ns):
		return 0
	case ns >= math.MaxInt64:
		return math.MaxInt64
	case ns <= math.MinInt64:
		return math.MinInt64
	default:
		return time.Duration(ns)
	}
}
