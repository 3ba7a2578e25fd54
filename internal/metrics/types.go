package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service is the Prometheus-backed Metrics implementation.
type Service struct {
	SyncRuns           prometheus.Counter
	Downloads          prometheus.Counter
	CacheHits          prometheus.Counter
	Fallbacks          *prometheus.CounterVec
	BuildDuration      prometheus.Histogram
	SearchDuration     prometheus.Histogram
	CatalogSize        prometheus.Gauge
	StartupTimeSeconds prometheus.Gauge
}
