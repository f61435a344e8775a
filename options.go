package expiringmap

import (
	"log/slog"

	"github.com/karupanerura/expiring-map/expiration"
)

// Option is the interface for the options of the expiring map.
type Option[K KeyConstraint, V ValueConstraint] interface {
	apply(*options[K, V])
}

type optionFunc[K KeyConstraint, V ValueConstraint] func(*options[K, V])

func (f optionFunc[K, V]) apply(o *options[K, V]) {
	f(o)
}

// WithTimeout sets the default timeout of the map.
// A zero timeout falls back to DefaultTimeout.
func WithTimeout[K KeyConstraint, V ValueConstraint](timeout expiration.Timeout) Option[K, V] {
	return optionFunc[K, V](func(o *options[K, V]) {
		o.timeout = timeout
	})
}

// WithScheduler sets the scheduler that runs the removal callbacks.
func WithScheduler[K KeyConstraint, V ValueConstraint](scheduler Scheduler) Option[K, V] {
	return optionFunc[K, V](func(o *options[K, V]) {
		if scheduler != nil {
			o.scheduler = scheduler
		}
	})
}

// WithClock sets the clock to the map.
func WithClock[K KeyConstraint, V ValueConstraint](clock Clock) Option[K, V] {
	return optionFunc[K, V](func(o *options[K, V]) {
		if clock != nil {
			o.clock = clock
		}
	})
}

// WithExpirationPolicy sets the policy that adjusts each delay before it is scheduled.
func WithExpirationPolicy[K KeyConstraint, V ValueConstraint](policy expiration.Policy) Option[K, V] {
	return optionFunc[K, V](func(o *options[K, V]) {
		if policy != nil {
			o.policy = policy
		}
	})
}

// WithBucketsSize sets the number of buckets in the map.
// The number of buckets must be a natural number.
// Keys are spread over the buckets with the key hash, and each bucket has its own lock.
func WithBucketsSize[K KeyConstraint, V ValueConstraint](bucketsSize int) Option[K, V] {
	return optionFunc[K, V](func(o *options[K, V]) {
		o.bucketsSize = bucketsSize
	})
}

// WithKeyHash sets the key hash function used to pick a bucket.
// It is required when the map has more than one bucket and K has no default hash.
func WithKeyHash[K KeyConstraint, V ValueConstraint](f func(K) int) Option[K, V] {
	return optionFunc[K, V](func(o *options[K, V]) {
		o.hashKey = f
	})
}

// WithOnExpire sets a function that is called after a timer removes an entry.
// It is not called for entries removed by Delete or Clear, nor for overwritten values.
// The function runs on the scheduler's goroutine without any lock held.
func WithOnExpire[K KeyConstraint, V ValueConstraint](f func(Entry[K, V])) Option[K, V] {
	return optionFunc[K, V](func(o *options[K, V]) {
		o.onExpire = f
	})
}

// WithOnBackgroundError sets a function that receives panics recovered from the OnExpire function.
// Without it, such panics are logged at error level.
func WithOnBackgroundError[K KeyConstraint, V ValueConstraint](f func(error)) Option[K, V] {
	return optionFunc[K, V](func(o *options[K, V]) {
		o.onBackgroundError = f
	})
}

// WithLogger sets the logger to the map.
// The default logger discards everything.
func WithLogger[K KeyConstraint, V ValueConstraint](logger *slog.Logger) Option[K, V] {
	return optionFunc[K, V](func(o *options[K, V]) {
		if logger != nil {
			o.logger = logger
		}
	})
}

// WithValueCloner sets the cloner that GetOrLoad uses to copy a loaded value for concurrent callers.
// The default is DefaultValueCloner.
func WithValueCloner[K KeyConstraint, V ValueConstraint](cloner ValueCloner[V]) Option[K, V] {
	return optionFunc[K, V](func(o *options[K, V]) {
		if cloner != nil {
			o.cloner = cloner
		}
	})
}

type options[K KeyConstraint, V ValueConstraint] struct {
	timeout           expiration.Timeout
	scheduler         Scheduler
	clock             Clock
	policy            expiration.Policy
	bucketsSize       int
	hashKey           func(K) int
	onExpire          func(Entry[K, V])
	onBackgroundError func(error)
	logger            *slog.Logger
	cloner            ValueCloner[V]
}

func defaultOptions[K KeyConstraint, V ValueConstraint]() options[K, V] {
	return options[K, V]{
		timeout:     expiration.Default(),
		scheduler:   SystemScheduler,
		clock:       SystemClock,
		policy:      expiration.GeneralExpirationPolicy{},
		bucketsSize: 1,
		logger:      slog.New(slog.DiscardHandler),
		cloner:      DefaultValueCloner[V](),
	}
}
