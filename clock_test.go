package expiringmap_test

import (
	"testing"
	"time"

	expiringmap "github.com/karupanerura/expiring-map"
)

func TestClockFunc_Now(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := expiringmap.ClockFunc(func() time.Time {
		return fixedTime
	})
	if got := clock.Now(); !got.Equal(fixedTime) {
		t.Errorf("expected %v, got %v", fixedTime, got)
	}
}

func TestSystemClock_Now(t *testing.T) {
	t.Parallel()

	before := time.Now()
	got := expiringmap.SystemClock.Now()
	after := time.Now()
	if got.Before(before) || got.After(after) {
		t.Errorf("expected a time between %v and %v, got %v", before, after, got)
	}
}

func TestSystemScheduler_AfterFunc(t *testing.T) {
	t.Parallel()

	t.Run("fires", func(t *testing.T) {
		t.Parallel()

		fired := make(chan struct{})
		expiringmap.SystemScheduler.AfterFunc(time.Millisecond, func() {
			close(fired)
		})
		select {
		case <-fired:
		case <-time.After(time.Second):
			t.Error("expected the callback to run")
		}
	})

	t.Run("stop", func(t *testing.T) {
		t.Parallel()

		h := expiringmap.SystemScheduler.AfterFunc(time.Hour, func() {
			t.Error("a stopped timer must not fire")
		})
		if !h.Stop() {
			t.Error("expected the first Stop to cancel the timer")
		}
		if h.Stop() {
			t.Error("expected the second Stop to report nothing was cancelled")
		}
	})
}
