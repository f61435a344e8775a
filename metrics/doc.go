// Package metrics exports the statistics of an expiring map as Prometheus metrics.
//
// A Collector reads Stats on every scrape, so it never falls behind the map and
// keeps no state of its own. Register one collector per map, with const labels to
// tell maps apart when several share a namespace.
package metrics
