package loader

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/informagico/fantavibe/internal/catalog"
	"github.com/informagico/fantavibe/internal/dataset"
	"github.com/informagico/fantavibe/internal/metrics"
	"github.com/informagico/fantavibe/internal/spreadsheet"
)

// New creates a Loader. The catalog starts empty until the first Load.
func New(syncer *dataset.Syncer, decoder spreadsheet.Decoder, builder *catalog.Builder, metricsSvc metrics.Metrics) Loader {
	return &service{
		syncer:  syncer,
		decoder: decoder,
		builder: builder,
		metrics: metricsSvc,
		catalog: &catalog.Catalog{Players: []catalog.Player{}, Index: catalog.Index{}},
	}
}

var _ Loader = (*service)(nil)

func (s *service) Load(ctx context.Context, force bool) error {
	var (
		result dataset.Result
		err    error
	)
	if force {
		result, err = s.syncer.Refresh(ctx)
	} else {
		result, err = s.syncer.Sync(ctx)
	}
	if err != nil {
		s.recordFailure(err)
		return err
	}

	rows, err := s.decoder.Decode(result.Data)
	if err != nil {
		s.recordFailure(err)
		return err
	}

	start := time.Now()
	built := s.builder.Build(rows)
	s.metrics.ObserveBuildDuration(time.Since(start).Seconds())
	s.metrics.SetCatalogSize(float64(len(built.Players)))

	s.mu.Lock()
	s.catalog = built
	s.status = Status{
		Loaded:      true,
		PlayerCount: len(built.Players),
		Source:      result.Source,
		LastLoadAt:  time.Now().UTC(),
	}
	s.mu.Unlock()

	log.Info("Catalog rebuilt", "players", len(built.Players), "source", string(result.Source), "forced", force)
	return nil
}

func (s *service) Catalog() *catalog.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog
}

func (s *service) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// recordFailure keeps the previous catalog in place so readers keep working
// with the last good data.
func (s *service) recordFailure(err error) {
	s.mu.Lock()
	s.status.LastError = err.Error()
	s.mu.Unlock()
	log.Error("Catalog load failed", "error", err)
}
