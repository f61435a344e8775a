package expiration_test

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/karupanerura/expiring-map/expiration"
)

// halfSource makes rand.Rand.Float64 always return 0.5.
type halfSource struct{}

func (halfSource) Uint64() uint64 {
	return 1 << 52
}

func TestGeneralExpirationPolicy(t *testing.T) {
	t.Parallel()

	policy := expiration.GeneralExpirationPolicy{}
	for _, d := range []time.Duration{-time.Second, 0, 1, time.Minute} {
		if got := policy.Delay(d); got != d {
			t.Errorf("GeneralExpirationPolicy.Delay(%v) = %v, want %v", d, got, d)
		}
	}
}

func TestEarlyExpirationPolicy(t *testing.T) {
	t.Parallel()

	earlyDuration := 10 * time.Minute

	t.Run("use default random generator", func(t *testing.T) {
		t.Parallel()

		policy := &expiration.EarlyExpirationPolicy{
			Duration:   earlyDuration,
			Percentage: 0.5,
		}

		// Can't test random behavior deterministically, so just check the bounds
		got := policy.Delay(15 * time.Minute)
		if got != 15*time.Minute && got != 5*time.Minute {
			t.Errorf("unexpected delay: %v", got)
		}
	})

	t.Run("random above percentage threshold - keep the delay", func(t *testing.T) {
		t.Parallel()

		policy := &expiration.EarlyExpirationPolicy{
			Duration:   earlyDuration,
			Percentage: 0.3,
			Random:     rand.New(halfSource{}), // deterministic random generator
		}

		if got := policy.Delay(15 * time.Minute); got != 15*time.Minute {
			t.Errorf("Should keep the delay when random > percentage, got %v", got)
		}
		if got := policy.Delay(5 * time.Minute); got != 5*time.Minute {
			t.Errorf("Should keep the delay when random > percentage, got %v", got)
		}
	})

	t.Run("random below percentage threshold - shorten the delay", func(t *testing.T) {
		t.Parallel()

		policy := &expiration.EarlyExpirationPolicy{
			Duration:   earlyDuration,
			Percentage: 0.8,
			Random:     rand.New(halfSource{}),
		}

		if got := policy.Delay(15 * time.Minute); got != 5*time.Minute {
			t.Errorf("Should be shortened by the early duration, got %v", got)
		}

		// 5min - 10min would be negative
		if got := policy.Delay(5 * time.Minute); got != 0 {
			t.Errorf("Should not go below zero, got %v", got)
		}
	})

	t.Run("edge cases", func(t *testing.T) {
		t.Parallel()

		policy := &expiration.EarlyExpirationPolicy{
			Duration:   earlyDuration,
			Percentage: 1,
			Random:     rand.New(halfSource{}),
		}

		if got := policy.Delay(0); got != 0 {
			t.Errorf("Zero delay must be kept, got %v", got)
		}
		if got := policy.Delay(-time.Second); got != -time.Second {
			t.Errorf("Negative delay must be kept, got %v", got)
		}

		policy.Percentage = 0
		if got := policy.Delay(time.Hour); got != time.Hour {
			t.Errorf("With 0%% chance, should never apply early expiration, got %v", got)
		}

		policy.Percentage = 1
		if got := policy.Delay(time.Hour); got != 50*time.Minute {
			t.Errorf("With 100%% chance, should always apply early expiration, got %v", got)
		}

		policy.Percentage = 1
		policy.Duration = 0
		if got := policy.Delay(time.Hour); got != time.Hour {
			t.Errorf("With zero early duration, should behave like general policy, got %v", got)
		}
	})
}
