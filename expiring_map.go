package expiringmap

import (
	"fmt"
	"iter"
	"log/slog"
	"time"

	"github.com/karupanerura/expiring-map/expiration"
	"github.com/karupanerura/expiring-map/internal/iterutil"
	"github.com/karupanerura/expiring-map/internal/keyhash"
	"github.com/karupanerura/expiring-map/internal/panicutil"
)

// DefaultTimeout is the timeout used when neither the map nor the call gives one.
const DefaultTimeout = 600 * time.Second

// ExpiringMap is a map whose entries remove themselves after a timeout.
// It is safe for concurrent use. It must not be copied after first use.
type ExpiringMap[K KeyConstraint, V ValueConstraint] struct {
	buckets []*bucket[K, V]
	hashKey func(K) int
	timeout time.Duration
	options options[K, V]
	stats   counters
	loads   waitlists[K, V]
}

// New creates a new expiring map.
// It returns an error wrapping ErrConfiguration if the default timeout resolves to a negative duration,
// if the buckets size is not a natural number, or if the map has several buckets and no key hash is available.
func New[K KeyConstraint, V ValueConstraint](opts ...Option[K, V]) (*ExpiringMap[K, V], error) {
	options := defaultOptions[K, V]()
	for _, opt := range opts {
		opt.apply(&options)
	}

	timeout := options.timeout.Resolve(options.clock.Now(), DefaultTimeout)
	if timeout < 0 {
		return nil, fmt.Errorf("%w: negative timeout %s (from %s)", ErrConfiguration, timeout, options.timeout)
	}
	if options.bucketsSize <= 0 {
		return nil, fmt.Errorf("%w: buckets size must be a natural number, got %d", ErrConfiguration, options.bucketsSize)
	}

	hashKey := options.hashKey
	if hashKey == nil && options.bucketsSize > 1 {
		h, err := keyhash.For[K]()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
		}
		hashKey = h
	}

	return &ExpiringMap[K, V]{
		buckets: newBuckets[K, V](options.bucketsSize),
		hashKey: hashKey,
		timeout: timeout,
		options: options,
		loads:   waitlists[K, V]{m: map[K][]chan loadResult[V]{}},
	}, nil
}

// Timeout returns the default timeout of the map.
func (m *ExpiringMap[K, V]) Timeout() time.Duration {
	return m.timeout
}

// Set stores the value under the key with the default timeout and returns the value.
// If the key already exists, its timer is stopped and replaced.
func (m *ExpiringMap[K, V]) Set(key K, value V) V {
	return m.set(key, value, m.timeout)
}

// SetWithTimeout stores the value under the key with the given timeout and returns the value.
// A zero timeout falls back to the default timeout of the map.
// A negative timeout removes the entry as soon as the scheduler runs it.
func (m *ExpiringMap[K, V]) SetWithTimeout(key K, value V, timeout expiration.Timeout) V {
	return m.set(key, value, timeout.Resolve(m.options.clock.Now(), m.timeout))
}

func (m *ExpiringMap[K, V]) set(key K, value V, timeout time.Duration) V {
	delay := m.options.policy.Delay(timeout)
	b := m.resolveBucket(key)

	b.mu.Lock()
	if prev, ok := b.m[key]; ok {
		prev.timer.Stop()
		m.stats.overwrites.Add(1)
	}
	e := &entry[V]{
		value:     value,
		expiresAt: m.options.clock.Now().Add(delay),
	}
	e.timer = m.options.scheduler.AfterFunc(delay, func() {
		m.expire(b, key, e)
	})
	b.m[key] = e
	m.stats.sets.Add(1)
	b.mu.Unlock()

	m.options.logger.Debug("entry stored", slog.Any("key", key), slog.Duration("delay", delay))
	return value
}

// expire removes the key if it still holds e.
// A timer that lost a race with Set or Delete finds another entry, or none, and does nothing.
func (m *ExpiringMap[K, V]) expire(b *bucket[K, V], key K, e *entry[V]) {
	b.mu.Lock()
	if current, ok := b.m[key]; !ok || current != e {
		b.mu.Unlock()
		return
	}
	delete(b.m, key)
	m.stats.expirations.Add(1)
	b.mu.Unlock()

	m.options.logger.Debug("entry expired", slog.Any("key", key))
	if m.options.onExpire != nil {
		m.notifyExpired(Entry[K, V]{Key: key, Value: e.value})
	}
}

func (m *ExpiringMap[K, V]) notifyExpired(entry Entry[K, V]) {
	err := panicutil.Call(func() {
		m.options.onExpire(entry)
	}, func() {
		m.options.logger.Warn("expire callback called runtime.Goexit", slog.Any("key", entry.Key))
	})
	if err == nil {
		return
	}

	if m.options.onBackgroundError != nil {
		m.options.onBackgroundError(err)
		return
	}
	m.options.logger.Error("expire callback panicked", slog.Any("key", entry.Key), slog.Any("error", err))
}

// Get returns the value stored under the key.
// It does not extend the lifetime of the entry.
func (m *ExpiringMap[K, V]) Get(key K) (V, bool) {
	b := m.resolveBucket(key)
	b.mu.Lock()
	defer b.mu.Unlock()

	if e, ok := b.m[key]; ok {
		return e.value, true
	}
	var zero V
	return zero, false
}

// GetOrDefault returns the value stored under the key, or def if the key is absent.
func (m *ExpiringMap[K, V]) GetOrDefault(key K, def V) V {
	if v, ok := m.Get(key); ok {
		return v
	}
	return def
}

// Lookup returns the value stored under the key.
// It returns an error wrapping ErrKeyNotFound if the key is absent.
func (m *ExpiringMap[K, V]) Lookup(key K) (V, error) {
	v, ok := m.Get(key)
	if !ok {
		return v, fmt.Errorf("%w: %v", ErrKeyNotFound, key)
	}
	return v, nil
}

// Contains reports whether the key is present.
func (m *ExpiringMap[K, V]) Contains(key K) bool {
	_, ok := m.Get(key)
	return ok
}

// ExpiresAt returns the time at which the entry under the key is scheduled to expire,
// according to the clock of the map.
func (m *ExpiringMap[K, V]) ExpiresAt(key K) (time.Time, bool) {
	b := m.resolveBucket(key)
	b.mu.Lock()
	defer b.mu.Unlock()

	if e, ok := b.m[key]; ok {
		return e.expiresAt, true
	}
	return time.Time{}, false
}

// Delete removes the key and stops its timer.
// It returns an error wrapping ErrKeyNotFound if the key is absent.
func (m *ExpiringMap[K, V]) Delete(key K) error {
	b := m.resolveBucket(key)

	b.mu.Lock()
	e, ok := b.m[key]
	if !ok {
		b.mu.Unlock()
		return fmt.Errorf("%w: %v", ErrKeyNotFound, key)
	}
	e.timer.Stop()
	delete(b.m, key)
	m.stats.deletions.Add(1)
	b.mu.Unlock()

	m.options.logger.Debug("entry deleted", slog.Any("key", key))
	return nil
}

// Clear removes every entry and stops every timer.
func (m *ExpiringMap[K, V]) Clear() {
	unlock := m.lockAll()
	var n int
	for _, b := range m.buckets {
		for _, e := range b.m {
			e.timer.Stop()
		}
		n += len(b.m)
		clear(b.m)
	}
	m.stats.deletions.Add(uint64(n))
	unlock()

	m.options.logger.Debug("entries cleared", slog.Int("count", n))
}

// Len returns the number of live entries.
func (m *ExpiringMap[K, V]) Len() int {
	if len(m.buckets) == 1 {
		b := m.buckets[0]
		b.mu.Lock()
		defer b.mu.Unlock()
		return len(b.m)
	}

	unlock := m.lockAll()
	defer unlock()

	var n int
	for _, b := range m.buckets {
		n += len(b.m)
	}
	return n
}

// snapshot copies every live entry while all buckets are locked.
func (m *ExpiringMap[K, V]) snapshot() []Entry[K, V] {
	unlock := m.lockAll()
	defer unlock()

	var n int
	for _, b := range m.buckets {
		n += len(b.m)
	}
	entries := make([]Entry[K, V], 0, n)
	for _, b := range m.buckets {
		for k, e := range b.m {
			entries = append(entries, Entry[K, V]{Key: k, Value: e.value})
		}
	}
	return entries
}

// All returns an iterator over the key-value pairs of the map.
// Each iteration works on a snapshot taken when it starts, so the map may be
// modified, and entries may expire, while iterating. The order is unspecified.
func (m *ExpiringMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for k, v := range iterutil.Pairs(m.snapshot(), splitEntry[K, V]) {
			if !yield(k, v) {
				return
			}
		}
	}
}

// Keys returns an iterator over the keys of the map. See All.
func (m *ExpiringMap[K, V]) Keys() iter.Seq[K] {
	return iterutil.Keys(m.All())
}

// Values returns an iterator over the values of the map. See All.
func (m *ExpiringMap[K, V]) Values() iter.Seq[V] {
	return iterutil.Values(m.All())
}

// ToMap returns a copy of the current contents of the map.
func (m *ExpiringMap[K, V]) ToMap() map[K]V {
	entries := m.snapshot()
	result := make(map[K]V, len(entries))
	for _, e := range entries {
		result[e.Key] = e.Value
	}
	return result
}

// String renders the current contents of the map.
func (m *ExpiringMap[K, V]) String() string {
	return fmt.Sprint(m.ToMap())
}

func splitEntry[K KeyConstraint, V ValueConstraint](e Entry[K, V]) (K, V) {
	return e.Key, e.Value
}
