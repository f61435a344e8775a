package expiration

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Policy adjusts the delay after which an entry is removed.
// Implementations must be thread-safe.
type Policy interface {
	// Delay returns the delay to schedule for an entry whose resolved timeout is d.
	Delay(d time.Duration) time.Duration
}

// GeneralExpirationPolicy is a policy that removes a value exactly when its timeout elapses.
type GeneralExpirationPolicy struct{}

var _ Policy = GeneralExpirationPolicy{}

// Delay returns d unchanged.
func (GeneralExpirationPolicy) Delay(d time.Duration) time.Duration {
	return d
}

// EarlyExpirationPolicy is a policy that can remove a value before its timeout elapses.
// Entries written together then expire at different times, which avoids a burst of
// reloads when they all disappear at once.
type EarlyExpirationPolicy struct {
	// Duration is how much earlier the value can expire.
	// The delay never drops below zero.
	Duration time.Duration

	// Percentage is the chance (between 0 and 1) that the value will expire early.
	Percentage float64

	// Random is the random number generator to decide early expiration.
	// If not set, the default system random generator is used.
	Random *rand.Rand

	mu sync.Mutex
}

var _ Policy = (*EarlyExpirationPolicy)(nil)

// Delay returns d, or d shortened by Duration with probability Percentage.
// Non-positive delays are returned unchanged.
func (p *EarlyExpirationPolicy) Delay(d time.Duration) time.Duration {
	if d <= 0 || p.randFloat64() > p.Percentage {
		return d
	}
	if d <= p.Duration {
		return 0
	}
	return d - p.Duration
}

func (p *EarlyExpirationPolicy) randFloat64() float64 {
	if p.Random == nil {
		return rand.Float64()
	}

	// *rand.Rand is not safe for concurrent use
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.Random.Float64()
}
