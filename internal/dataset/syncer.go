package dataset

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/informagico/fantavibe/internal/metrics"
)

// Syncer decides whether to serve cached dataset bytes, download a fresh
// copy, or fall back to the bundled file, and persists what it fetched.
type Syncer struct {
	client      Client
	cache       *Cache
	metrics     metrics.Metrics
	bundledPath string
	cacheTTL    time.Duration

	// Serializes overlapping invocations: a manual refresh while an
	// automatic sync is still pending simply waits its turn.
	mu sync.Mutex
}

// NewSyncer creates a Syncer.
func NewSyncer(client Client, cache *Cache, metricsSvc metrics.Metrics, bundledPath string, cacheTTL time.Duration) *Syncer {
	return &Syncer{
		client:      client,
		cache:       cache,
		metrics:     metricsSvc,
		bundledPath: bundledPath,
		cacheTTL:    cacheTTL,
	}
}

// Sync runs the acquisition state machine and returns the dataset bytes with
// their provenance. It fails only when the remote source, the cache and the
// bundled file are all unavailable.
func (s *Syncer) Sync(ctx context.Context) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.metrics.IncSyncRuns()
	log.Info("Starting dataset sync")

	var (
		current  state = stateCheckRemote
		remote   *FileInfo
		payload  []byte
		fetched  FileInfo
		result   Result
		finalErr error
	)

	stored := s.cache.LoadFileInfo(ctx)
	cached, savedAt, hasCache := s.cache.LoadContent(ctx)

	for current != stateDone && current != stateFailed {
		log.Debug("Sync state", "state", string(current))

		switch current {
		case stateCheckRemote:
			info, err := s.client.ProbeFile(ctx)
			if err != nil {
				log.Warn("Dataset probe failed, deciding from local state only", "error", err)
				current = s.decideWithoutRemote(hasCache, savedAt)
				continue
			}
			remote = &info
			if !HasChanged(remote, stored) && hasCache {
				current = stateUseCache
			} else {
				current = stateDownload
			}

		case stateUseCache:
			log.Info("Dataset unchanged, serving cached copy", "savedAt", savedAt)
			s.metrics.IncCacheHits()
			info := FileInfo{}
			if stored != nil {
				info = *stored
			} else if remote != nil {
				info = *remote
			}
			result = Result{Data: cached, Source: SourceCache, FileInfo: info}
			current = stateDone

		case stateDownload:
			data, info, err := s.client.DownloadFile(ctx)
			if err != nil {
				log.Warn("Dataset download failed, falling back", "error", err)
				current = stateUseStaleCache
				continue
			}
			payload = data
			fetched = info
			current = statePersist

		case statePersist:
			if err := s.cache.SaveContent(ctx, payload); err != nil {
				log.Error("Failed to persist dataset content", "error", err)
			}
			if err := s.cache.SaveFileInfo(ctx, fetched); err != nil {
				log.Error("Failed to persist dataset file info", "error", err)
			}
			s.metrics.IncDownloads()
			result = Result{Data: payload, Source: SourceRemote, FileInfo: fetched, WasUpdated: true}
			current = stateDone

		case stateUseStaleCache:
			if hasCache {
				log.Info("Serving stale cached dataset", "savedAt", savedAt)
				s.metrics.IncFallback(string(SourceCacheFallback))
				info := FileInfo{}
				if stored != nil {
					info = *stored
				}
				result = Result{Data: cached, Source: SourceCacheFallback, FileInfo: info}
				current = stateDone
				continue
			}
			current = stateUseBundledFallback

		case stateUseBundledFallback:
			data, err := os.ReadFile(s.bundledPath)
			if err != nil {
				log.Error("Bundled dataset unavailable", "path", s.bundledPath, "error", err)
				finalErr = fmt.Errorf("%w: %v", ErrDatasetUnavailable, err)
				current = stateFailed
				continue
			}
			log.Info("Serving bundled dataset", "path", s.bundledPath, "bytes", len(data))
			s.metrics.IncFallback(string(SourceBundledFallback))
			result = Result{Data: data, Source: SourceBundledFallback}
			current = stateDone
		}
	}

	if current == stateFailed {
		return Result{}, finalErr
	}
	log.Info("Dataset sync finished", "source", string(result.Source), "bytes", len(result.Data), "updated", result.WasUpdated)
	return result, nil
}

// Refresh forces a download by discarding the stored change-detection
// metadata before syncing. Cached bytes are kept as a fallback in case the
// forced download fails.
func (s *Syncer) Refresh(ctx context.Context) (Result, error) {
	s.cache.InvalidateFileInfo(ctx)
	return s.Sync(ctx)
}

// decideWithoutRemote picks the next state when the probe failed: trust the
// cache only while it is structurally present and younger than the expiry
// window, otherwise attempt a download anyway.
func (s *Syncer) decideWithoutRemote(hasCache bool, savedAt time.Time) state {
	if hasCache && !savedAt.IsZero() && time.Since(savedAt) < s.cacheTTL {
		return stateUseCache
	}
	return stateDownload
}
