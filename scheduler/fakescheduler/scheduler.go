package fakescheduler

import (
	"container/heap"
	"sync"
	"time"

	expiringmap "github.com/karupanerura/expiring-map"
)

// Scheduler is a manually driven scheduler.
type Scheduler struct {
	mu     sync.Mutex
	now    time.Time
	seq    uint64
	timers timerHeap
}

var (
	_ expiringmap.Scheduler = (*Scheduler)(nil)
	_ expiringmap.Clock     = (*Scheduler)(nil)
)

// New creates a new Scheduler whose clock starts at start.
func New(start time.Time) *Scheduler {
	return &Scheduler{now: start}
}

// Now returns the virtual current time.
func (s *Scheduler) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// AfterFunc schedules f to run once the virtual clock reaches Now()+d.
// A non-positive d makes f due on the next call to Advance or AdvanceTo.
func (s *Scheduler) AfterFunc(d time.Duration, f func()) expiringmap.TimerHandle {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	t := &Timer{
		s:    s,
		when: s.now.Add(d),
		seq:  s.seq,
		f:    f,
	}
	heap.Push(&s.timers, t)
	return t
}

// Advance moves the virtual clock forward by d and runs every callback that becomes due.
func (s *Scheduler) Advance(d time.Duration) {
	s.AdvanceTo(s.Now().Add(d))
}

// AdvanceTo moves the virtual clock to target and runs every callback that becomes due.
// Callbacks with the same deadline run in scheduling order.
// The clock never moves backwards.
func (s *Scheduler) AdvanceTo(target time.Time) {
	for {
		s.mu.Lock()
		if len(s.timers) == 0 || s.timers[0].when.After(target) {
			if target.After(s.now) {
				s.now = target
			}
			s.mu.Unlock()
			return
		}

		t := heap.Pop(&s.timers).(*Timer)
		if t.when.After(s.now) {
			s.now = t.when
		}
		s.mu.Unlock()

		t.f()
	}
}

// Pending returns the number of callbacks that have neither run nor been stopped.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Timer is a callback scheduled on a Scheduler.
type Timer struct {
	s     *Scheduler
	when  time.Time
	seq   uint64
	f     func()
	index int
}

// Stop prevents the callback from running.
// It returns false if the callback has already run or been stopped.
func (t *Timer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	if t.index < 0 {
		return false
	}
	heap.Remove(&t.s.timers, t.index)
	return true
}

// When returns the virtual time at which the callback is due.
func (t *Timer) When() time.Time {
	return t.when
}

// timerHeap orders timers by deadline, then by scheduling order.
type timerHeap []*Timer

func (h timerHeap) Len() int {
	return len(h)
}

func (h timerHeap) Less(i, j int) bool {
	if h[i].when.Equal(h[j].when) {
		return h[i].seq < h[j].seq
	}
	return h[i].when.Before(h[j].when)
}

func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *timerHeap) Push(x any) {
	t := x.(*Timer)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}
