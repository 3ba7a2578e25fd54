package loader

import (
	"sync"
	"time"

	"github.com/informagico/fantavibe/internal/catalog"
	"github.com/informagico/fantavibe/internal/dataset"
	"github.com/informagico/fantavibe/internal/metrics"
	"github.com/informagico/fantavibe/internal/spreadsheet"
)

// Status is a snapshot of the last load for the status endpoint.
type Status struct {
	Loaded      bool           `json:"loaded"`
	PlayerCount int            `json:"player_count"`
	Source      dataset.Source `json:"source,omitempty"`
	LastLoadAt  time.Time      `json:"last_load_at,omitzero"`
	LastError   string         `json:"last_error,omitempty"`
}

type service struct {
	syncer  *dataset.Syncer
	decoder spreadsheet.Decoder
	builder *catalog.Builder
	metrics metrics.Metrics

	mu      sync.RWMutex
	catalog *catalog.Catalog
	status  Status
}
