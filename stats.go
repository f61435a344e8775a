package expiringmap

import "sync/atomic"

// Stats is a point-in-time view of the map's activity.
// Counters only increase during the lifetime of the map.
type Stats struct {
	// Entries is the number of live entries.
	Entries int

	// Sets is the number of stored values, including overwrites.
	Sets uint64

	// Overwrites is the number of Set calls that replaced a live entry.
	Overwrites uint64

	// Expirations is the number of entries removed by their timer.
	Expirations uint64

	// Deletions is the number of entries removed by Delete or Clear.
	Deletions uint64
}

type counters struct {
	sets        atomic.Uint64
	overwrites  atomic.Uint64
	expirations atomic.Uint64
	deletions   atomic.Uint64
}

// Stats returns the current statistics of the map.
func (m *ExpiringMap[K, V]) Stats() Stats {
	return Stats{
		Entries:     m.Len(),
		Sets:        m.stats.sets.Load(),
		Overwrites:  m.stats.overwrites.Load(),
		Expirations: m.stats.expirations.Load(),
		Deletions:   m.stats.deletions.Load(),
	}
}
