package keyhash

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash"
	"hash/fnv"
	"math"
	"sync"

	"github.com/goccy/go-reflect"
)

// ErrUnsupportedKey is returned when no default hash exists for a key type.
var ErrUnsupportedKey = errors.New("no default hash for key type")

var (
	// hashFuncsMutex is a mutex for the hashFuncs.
	hashFuncsMutex = sync.RWMutex{}

	// hashFuncs caches hash functions by type ID.
	hashFuncs = map[uintptr]func(any) int{}
)

// For returns a hash function for keys of type K.
// Keys whose underlying kind is a boolean, an integer, a float or a string are supported,
// including named types such as `type UserID string`.
// Keys of any other kind result in ErrUnsupportedKey.
func For[K comparable]() (func(K) int, error) {
	var zero K
	f, err := getOrCreate(zero)
	if err != nil {
		return nil, err
	}
	return func(key K) int {
		return f(key)
	}, nil
}

// getOrCreate retrieves or creates a hash function for the dynamic type of t.
func getOrCreate(t any) (func(any) int, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: interface key types have no fixed kind", ErrUnsupportedKey)
	}
	id := reflect.TypeID(t)

	hashFuncsMutex.RLock()
	f, ok := hashFuncs[id]
	hashFuncsMutex.RUnlock()
	if ok {
		return f, nil
	}

	hashFuncsMutex.Lock()
	defer hashFuncsMutex.Unlock()
	if f, ok := hashFuncs[id]; ok {
		return f, nil
	}

	f, err := create(reflect.TypeOf(t))
	if err != nil {
		return nil, err
	}
	hashFuncs[id] = f
	return f, nil
}

// create creates an FNV-1a based hash function for the given type.
func create(typ reflect.Type) (func(any) int, error) {
	switch typ.Kind() {
	case reflect.Bool:
		return func(v any) int {
			var b [1]byte
			if reflect.ValueOf(v).Bool() {
				b[0] = 1
			}
			return hash64(b[:])
		}, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return func(v any) int {
			var b [8]byte
			binary.BigEndian.PutUint64(b[:], uint64(reflect.ValueOf(v).Int()))
			return hash64(b[:])
		}, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return func(v any) int {
			var b [8]byte
			binary.BigEndian.PutUint64(b[:], reflect.ValueOf(v).Uint())
			return hash64(b[:])
		}, nil
	case reflect.Float32, reflect.Float64:
		return func(v any) int {
			f := reflect.ValueOf(v).Float()
			if f == 0 {
				f = 0 // -0 == +0
			}
			var b [8]byte
			binary.BigEndian.PutUint64(b[:], math.Float64bits(f))
			return hash64(b[:])
		}, nil
	case reflect.String:
		return func(v any) int {
			h := hash64Pool.Get().(hash.Hash64)
			defer func() {
				h.Reset()
				hash64Pool.Put(h)
			}()
			_, _ = h.Write([]byte(reflect.ValueOf(v).String()))
			return int(h.Sum64())
		}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedKey, typ.String())
	}
}

// hash64Pool is a pool for 64-bit FNV-1a hash objects.
var hash64Pool = sync.Pool{
	New: func() any {
		return fnv.New64a()
	},
}

// hash64 computes a 64-bit FNV-1a hash of the given byte slice.
func hash64(b []byte) int {
	h := hash64Pool.Get().(hash.Hash64)
	defer func() {
		h.Reset()
		hash64Pool.Put(h)
	}()
	_, _ = h.Write(b)
	return int(h.Sum64())
}
