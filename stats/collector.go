package stats

import "github.com/prometheus/client_golang/prometheus"

var (
	hitsDesc = prometheus.NewDesc(
		"memo_cache_hits_total",
		"Number of cache hits, by cache name.",
		[]string{"cache"}, nil,
	)
	missesDesc = prometheus.NewDesc(
		"memo_cache_misses_total",
		"Number of cache misses, by cache name.",
		[]string{"cache"}, nil,
	)
	hitRateDesc = prometheus.NewDesc(
		"memo_cache_hit_ratio",
		"Ratio of hits to total lookups, by cache name.",
		[]string{"cache"}, nil,
	)
)

// Collector exposes the registry's counters to Prometheus. Register
// it once with a prometheus.Registerer; it picks up caches registered
// after it on the next scrape.
type Collector struct{}

// NewCollector returns a Prometheus collector over the stats
// registry.
func NewCollector() *Collector {
	return &Collector{}
}

// Describe implements prometheus.Collector.
func (Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- hitsDesc
	ch <- missesDesc
	ch <- hitRateDesc
}

// Collect implements prometheus.Collector.
func (Collector) Collect(ch chan<- prometheus.Metric) {
	for _, name := range List() {
		c, ok := GetRef(name)
		if !ok {
			continue
		}
		snap := c.Snapshot()
		ch <- prometheus.MustNewConstMetric(hitsDesc, prometheus.CounterValue, float64(snap.Hits), name)
		ch <- prometheus.MustNewConstMetric(missesDesc, prometheus.CounterValue, float64(snap.Misses), name)
		ch <- prometheus.MustNewConstMetric(hitRateDesc, prometheus.GaugeValue, snap.HitRate, name)
	}
}
