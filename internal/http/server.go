package http

import (
	"net/http"

	"github.com/informagico/fantavibe/internal/catalog"
	"github.com/informagico/fantavibe/internal/config"
	"github.com/informagico/fantavibe/internal/loader"
	"github.com/informagico/fantavibe/internal/metrics"
	"github.com/informagico/fantavibe/internal/roster"
)

func NewServer(ldr loader.Loader, tracker roster.Tracker, searcher *catalog.Searcher, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config) *Server {
	server := &Server{
		Loader:         ldr,
		Roster:         tracker,
		Searcher:       searcher,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// This makes it easy to add more middlewares in the future, like an authentication middleware.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("/players", Chain(s.ListPlayersHandler(), paramsMiddleware))
	s.Router.Handle("/search", Chain(s.SearchHandler(), paramsMiddleware))
	s.Router.Handle("/refresh", Chain(s.RefreshHandler(), paramsMiddleware))
	s.Router.Handle("/status", Chain(s.StatusHandler(), paramsMiddleware))
	s.Router.Handle("/roster", Chain(s.RosterHandler(), paramsMiddleware))
	s.Router.Handle("/roster/acquire", Chain(s.AcquirePlayerHandler(), paramsMiddleware))
	s.Router.Handle("/roster/release", Chain(s.ReleasePlayerHandler(), paramsMiddleware))
	s.Router.Handle("/roster/unavailable", Chain(s.MarkUnavailableHandler(), paramsMiddleware))
	s.Router.Handle("/roster/export", Chain(s.ExportRosterHandler(), paramsMiddleware))
	s.Router.Handle("/roster/import", Chain(s.ImportRosterHandler(), paramsMiddleware))
	s.Router.Handle("/budget", Chain(s.BudgetHandler(), paramsMiddleware))
	s.Router.Handle("/budget/stats", Chain(s.BudgetStatsHandler(), paramsMiddleware))
	s.Router.Handle("/clear", Chain(s.ClearRosterHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
