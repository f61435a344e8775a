package expiringmap

import (
	"sync"
	"time"
)

// entry is the stored form of a value. Its timer belongs to it alone.
type entry[V ValueConstraint] struct {
	value     V
	timer     TimerHandle
	expiresAt time.Time
}

type bucket[K KeyConstraint, V ValueConstraint] struct {
	m  map[K]*entry[V]
	mu sync.Mutex
}

func newBuckets[K KeyConstraint, V ValueConstraint](size int) []*bucket[K, V] {
	buckets := make([]*bucket[K, V], size)
	for i := range buckets {
		buckets[i] = &bucket[K, V]{m: map[K]*entry[V]{}}
	}
	return buckets
}

// resolveBucket returns the bucket that corresponds to the given key.
func (m *ExpiringMap[K, V]) resolveBucket(key K) *bucket[K, V] {
	if len(m.buckets) == 1 {
		return m.buckets[0]
	}

	index := m.hashKey(key) % len(m.buckets)
	if index < 0 {
		index *= -1
	}
	return m.buckets[index]
}

// lockAll locks every bucket in index order and returns a function to unlock them.
// Single-key operations hold at most one bucket lock, so the fixed order cannot deadlock.
func (m *ExpiringMap[K, V]) lockAll() (unlock func()) {
	for _, b := range m.buckets {
		b.mu.Lock()
	}
	return func() {
		for i := len(m.buckets) - 1; i >= 0; i-- {
			m.buckets[i].mu.Unlock()
		}
	}
}
