package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncSyncRuns()
	IncDownloads()
	IncCacheHits()
	IncFallback(source string)
	ObserveBuildDuration(seconds float64)
	ObserveSearchDuration(seconds float64)
	SetCatalogSize(count float64)
	SetStartupTime(seconds float64)
}
