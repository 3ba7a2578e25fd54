package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		SyncRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fantavibe_dataset_sync_runs_total",
			Help: "The total number of dataset sync attempts.",
		}),
		Downloads: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fantavibe_dataset_downloads_total",
			Help: "The total number of dataset files downloaded from the remote source.",
		}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fantavibe_dataset_cache_hits_total",
			Help: "The total number of syncs served from the unexpired local cache.",
		}),
		Fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fantavibe_dataset_fallbacks_total",
			Help: "The total number of syncs that fell back to stale or bundled data.",
		}, []string{"source"}),
		BuildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "fantavibe_catalog_build_duration_seconds",
			Help:    "The duration of full catalog builds.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		SearchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "fantavibe_search_duration_seconds",
			Help:    "The duration of individual catalog searches.",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}),
		CatalogSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fantavibe_catalog_players",
			Help: "The number of players in the currently loaded catalog.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fantavibe_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.SyncRuns,
		s.Downloads,
		s.CacheHits,
		s.Fallbacks,
		s.BuildDuration,
		s.SearchDuration,
		s.CatalogSize,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncSyncRuns() {
	s.SyncRuns.Inc()
}

func (s *Service) IncDownloads() {
	s.Downloads.Inc()
}

func (s *Service) IncCacheHits() {
	s.CacheHits.Inc()
}

func (s *Service) IncFallback(source string) {
	s.Fallbacks.WithLabelValues(source).Inc()
}

func (s *Service) ObserveBuildDuration(seconds float64) {
	s.BuildDuration.Observe(seconds)
}

func (s *Service) ObserveSearchDuration(seconds float64) {
	s.SearchDuration.Observe(seconds)
}

func (s *Service) SetCatalogSize(count float64) {
	s.CatalogSize.Set(count)
}

func (s *Service) SetStartupTime(seconds float64) {
	s.StartupTimeSeconds.Set(seconds)
}
