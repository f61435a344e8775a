package expiringmap

import (
	"context"
	"log/slog"
	"sync"

	"github.com/karupanerura/expiring-map/internal/panicutil"
)

// LoadFunc produces the value for a key that is missing from the map.
type LoadFunc[K KeyConstraint, V ValueConstraint] func(ctx context.Context, key K) (V, error)

type loadResult[V ValueConstraint] struct {
	value V
	err   error
}

// waitlists tracks the callers waiting for an in-flight load, per key.
type waitlists[K KeyConstraint, V ValueConstraint] struct {
	mu sync.Mutex
	m  map[K][]chan loadResult[V]
}

// GetOrLoad returns the value stored under the key.
// If the key is absent, it calls load and stores the result with the default timeout.
// Concurrent calls for the same key share a single call of load, and every caller
// but the first receives a copy made by the value cloner of the map.
//
// The load keeps running when ctx is cancelled, so the waiting callers and the map
// still receive its result. A panic in load is returned as an error of type
// *panics.ErrRecovered, and the value is not stored when load fails.
func (m *ExpiringMap[K, V]) GetOrLoad(ctx context.Context, key K, load LoadFunc[K, V]) (V, error) {
	if v, ok := m.Get(key); ok {
		return v, nil
	}

	ch := m.registerLoad(ctx, key, load)
	select {
	case r := <-ch:
		return r.value, r.err
	case <-ctx.Done():
		var zero V
		return zero, ctx.Err()
	}
}

// registerLoad adds a waiter for the key and starts the load for the first one.
func (m *ExpiringMap[K, V]) registerLoad(ctx context.Context, key K, load LoadFunc[K, V]) <-chan loadResult[V] {
	m.loads.mu.Lock()
	defer m.loads.mu.Unlock()

	ch := make(chan loadResult[V], 1)
	if len(m.loads.m[key]) == 0 {
		// a load that finished since the caller missed has already stored the value
		if v, ok := m.Get(key); ok {
			ch <- loadResult[V]{value: v}
			close(ch)
			return ch
		}
	}
	m.loads.m[key] = append(m.loads.m[key], ch)
	if len(m.loads.m[key]) == 1 {
		go m.loadAndStore(context.WithoutCancel(ctx), key, load)
	}
	return ch
}

func (m *ExpiringMap[K, V]) loadAndStore(ctx context.Context, key K, load LoadFunc[K, V]) {
	var (
		value   V
		loadErr error
	)
	err := panicutil.Call(func() {
		value, loadErr = load(ctx, key)
	}, func() {
		m.options.logger.Warn("load function called runtime.Goexit", slog.Any("key", key))
		m.finishLoad(key, loadResult[V]{err: ErrLoadAborted})
	})
	if err == nil {
		err = loadErr
	}
	if err != nil {
		m.options.logger.Debug("load failed", slog.Any("key", key), slog.Any("error", err))
		m.finishLoad(key, loadResult[V]{err: err})
		return
	}

	m.Set(key, value)
	m.finishLoad(key, loadResult[V]{value: value})
}

// finishLoad delivers the result to every waiter of the key.
func (m *ExpiringMap[K, V]) finishLoad(key K, r loadResult[V]) {
	m.loads.mu.Lock()
	defer m.loads.mu.Unlock()

	for i, ch := range m.loads.m[key] {
		if i != 0 && r.err == nil {
			// the first waiter receives the value stored in the map
			ch <- loadResult[V]{value: m.options.cloner.CloneValue(r.value)}
		} else {
			ch <- r
		}
		close(ch)
	}
	delete(m.loads.m, key)
}
