package iterutil

import (
	"iter"
)

// Pairs returns an iterator that yields the pairs produced by split for each element of s.
// The slice is read lazily, so callers must not modify it while iterating.
func Pairs[E, K, V any](s []E, split func(E) (K, V)) iter.Seq2[K, V] {
	return iter.Seq2[K, V](func(yield func(K, V) bool) {
		for _, e := range s {
			if !yield(split(e)) {
				return
			}
		}
	})
}

// Keys returns an iterator that yields the keys of the input iterator.
func Keys[K, V any](seq iter.Seq2[K, V]) iter.Seq[K] {
	return iter.Seq[K](func(yield func(K) bool) {
		for k := range seq {
			if !yield(k) {
				return
			}
		}
	})
}

// Values returns an iterator that yields the values of the input iterator.
func Values[K, V any](seq iter.Seq2[K, V]) iter.Seq[V] {
	return iter.Seq[V](func(yield func(V) bool) {
		for _, v := range seq {
			if !yield(v) {
				return
			}
		}
	})
}
