package http

import (
	"net/http"

	"github.com/informagico/fantavibe/internal/catalog"
	"github.com/informagico/fantavibe/internal/config"
	"github.com/informagico/fantavibe/internal/loader"
	"github.com/informagico/fantavibe/internal/metrics"
	"github.com/informagico/fantavibe/internal/roster"
)

type Server struct {
	Loader         loader.Loader
	Roster         roster.Tracker
	Searcher       *catalog.Searcher
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Router         *http.ServeMux
}
