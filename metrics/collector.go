package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	expiringmap "github.com/karupanerura/expiring-map"
)

// StatsSource is implemented by *expiringmap.ExpiringMap.
type StatsSource interface {
	Stats() expiringmap.Stats
}

// Collector is a prometheus.Collector for an expiring map.
type Collector struct {
	source StatsSource

	entries     *prometheus.Desc
	sets        *prometheus.Desc
	overwrites  *prometheus.Desc
	expirations *prometheus.Desc
	deletions   *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector creates a new Collector that reads source on every scrape.
// Metric names are prefixed with namespace.
func NewCollector(namespace string, source StatsSource, constLabels prometheus.Labels) *Collector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "", name), help, nil, constLabels)
	}
	return &Collector{
		source:      source,
		entries:     desc("entries", "Number of live entries."),
		sets:        desc("sets_total", "Total number of stored values, including overwrites."),
		overwrites:  desc("overwrites_total", "Total number of stores that replaced a live entry."),
		expirations: desc("expirations_total", "Total number of entries removed by their timer."),
		deletions:   desc("deletions_total", "Total number of entries removed explicitly."),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.entries
	ch <- c.sets
	ch <- c.overwrites
	ch <- c.expirations
	ch <- c.deletions
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	stats := c.source.Stats()
	ch <- prometheus.MustNewConstMetric(c.entries, prometheus.GaugeValue, float64(stats.Entries))
	ch <- prometheus.MustNewConstMetric(c.sets, prometheus.CounterValue, float64(stats.Sets))
	ch <- prometheus.MustNewConstMetric(c.overwrites, prometheus.CounterValue, float64(stats.Overwrites))
	ch <- prometheus.MustNewConstMetric(c.expirations, prometheus.CounterValue, float64(stats.Expirations))
	ch <- prometheus.MustNewConstMetric(c.deletions, prometheus.CounterValue, float64(stats.Deletions))
}
