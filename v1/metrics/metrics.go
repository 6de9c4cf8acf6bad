package metrics

import "github.com/prometheus/client_golang/prometheus"

// CacheMetrics groups the collectors exported for a single cache instance.
type CacheMetrics struct {
	Hits      prometheus.Counter
	Misses    prometheus.Counter
	Evictions prometheus.Counter
	Entries   prometheus.Gauge
	Latency   *prometheus.HistogramVec
}

// NewRegistry creates a new Prometheus registry.
func NewRegistry() *prometheus.Registry {
	return prometheus.NewRegistry()
}

// NewCacheMetrics creates the collectors for the cache called name and
// registers them on reg. Every collector carries a constant "cache" label so
// several caches can share one registry.
func NewCacheMetrics(reg prometheus.Registerer, name string) *CacheMetrics {
	labels := prometheus.Labels{"cache": name}
	m := &CacheMetrics{
		Hits: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "recency_cache_hits_total",
			Help:        "Total number of cache hits",
			ConstLabels: labels,
		}),
		Misses: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "recency_cache_misses_total",
			Help:        "Total number of cache misses",
			ConstLabels: labels,
		}),
		Evictions: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "recency_cache_evictions_total",
			Help:        "Total number of entries evicted to make room",
			ConstLabels: labels,
		}),
		Entries: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "recency_cache_entries",
			Help:        "Current number of live entries",
			ConstLabels: labels,
		}),
		Latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "recency_cache_latency_seconds",
			Help:        "Latency of cache operations",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: labels,
		}, []string{"op"}),
	}
	reg.MustRegister(m.Hits, m.Misses, m.Evictions, m.Entries, m.Latency)
	return m
}
