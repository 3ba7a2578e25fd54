package dataset_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/informagico/fantavibe/internal/dataset"
	"github.com/informagico/fantavibe/internal/metrics"
	"github.com/informagico/fantavibe/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSyncer(t *testing.T, client dataset.Client, store *storage.MockStore, bundledPath string) *dataset.Syncer {
	t.Helper()
	if store == nil {
		store = storage.NewMock()
	}
	return dataset.NewSyncer(client, dataset.NewCache(store), metrics.NewMock(), bundledPath, 24*time.Hour)
}

func writeBundledFile(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bundled.xlsx")
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func seedCache(t *testing.T, store *storage.MockStore, content []byte, info dataset.FileInfo) {
	t.Helper()
	cache := dataset.NewCache(store)
	ctx := context.Background()
	require.NoError(t, cache.SaveContent(ctx, content))
	require.NoError(t, cache.SaveFileInfo(ctx, info))
}

func TestSyncDownloadsWhenNothingCached(t *testing.T) {
	client := dataset.NewMockClient()
	client.ProbeFileFunc = func(ctx context.Context) (dataset.FileInfo, error) {
		return dataset.FileInfo{ETag: `"v1"`}, nil
	}
	client.DownloadFileFunc = func(ctx context.Context) ([]byte, dataset.FileInfo, error) {
		return []byte("fresh"), dataset.FileInfo{ETag: `"v1"`, ContentLength: 5}, nil
	}
	store := storage.NewMock()
	s := setupSyncer(t, client, store, "")

	result, err := s.Sync(context.Background())
	require.NoError(t, err)

	assert.Equal(t, dataset.SourceRemote, result.Source)
	assert.Equal(t, []byte("fresh"), result.Data)
	assert.True(t, result.WasUpdated)
	assert.Equal(t, 1, client.DownloadFileCalls)

	// Both the bytes and the metadata must have been persisted.
	cache := dataset.NewCache(store)
	data, _, ok := cache.LoadContent(context.Background())
	require.True(t, ok)
	assert.Equal(t, []byte("fresh"), data)
	info := cache.LoadFileInfo(context.Background())
	require.NotNil(t, info)
	assert.Equal(t, `"v1"`, info.ETag)
}

func TestSyncUnchangedEtagServesCacheWithoutDownloading(t *testing.T) {
	store := storage.NewMock()
	seedCache(t, store, []byte("cached"), dataset.FileInfo{ETag: `"v1"`})

	client := dataset.NewMockClient()
	client.ProbeFileFunc = func(ctx context.Context) (dataset.FileInfo, error) {
		return dataset.FileInfo{ETag: `"v1"`}, nil
	}
	s := setupSyncer(t, client, store, "")

	result, err := s.Sync(context.Background())
	require.NoError(t, err)

	assert.Equal(t, dataset.SourceCache, result.Source)
	assert.Equal(t, []byte("cached"), result.Data)
	assert.False(t, result.WasUpdated)
	assert.Zero(t, client.DownloadFileCalls, "unchanged indicator must not trigger a download")
}

func TestSyncChangedEtagDownloads(t *testing.T) {
	store := storage.NewMock()
	seedCache(t, store, []byte("cached"), dataset.FileInfo{ETag: `"v1"`})

	client := dataset.NewMockClient()
	client.ProbeFileFunc = func(ctx context.Context) (dataset.FileInfo, error) {
		return dataset.FileInfo{ETag: `"v2"`}, nil
	}
	client.DownloadFileFunc = func(ctx context.Context) ([]byte, dataset.FileInfo, error) {
		return []byte("fresh"), dataset.FileInfo{ETag: `"v2"`}, nil
	}
	s := setupSyncer(t, client, store, "")

	result, err := s.Sync(context.Background())
	require.NoError(t, err)

	assert.Equal(t, dataset.SourceRemote, result.Source)
	assert.Equal(t, 1, client.DownloadFileCalls)
}

func TestSyncProbeFailureWithFreshCache(t *testing.T) {
	store := storage.NewMock()
	seedCache(t, store, []byte("cached"), dataset.FileInfo{ETag: `"v1"`})

	client := dataset.NewMockClient()
	client.ProbeFileFunc = func(ctx context.Context) (dataset.FileInfo, error) {
		return dataset.FileInfo{}, errors.New("network down")
	}
	s := setupSyncer(t, client, store, "")

	result, err := s.Sync(context.Background())
	require.NoError(t, err)

	assert.Equal(t, dataset.SourceCache, result.Source)
	assert.Equal(t, []byte("cached"), result.Data)
	assert.Zero(t, client.DownloadFileCalls, "fresh cache must be trusted when the probe fails")
}

func TestSyncDownloadFailureFallsBackToStaleCache(t *testing.T) {
	store := storage.NewMock()
	seedCache(t, store, []byte("stale"), dataset.FileInfo{ETag: `"v1"`})

	client := dataset.NewMockClient()
	client.ProbeFileFunc = func(ctx context.Context) (dataset.FileInfo, error) {
		return dataset.FileInfo{ETag: `"v2"`}, nil
	}
	client.DownloadFileFunc = func(ctx context.Context) ([]byte, dataset.FileInfo, error) {
		return nil, dataset.FileInfo{}, errors.New("download failed")
	}
	s := setupSyncer(t, client, store, "")

	result, err := s.Sync(context.Background())
	require.NoError(t, err)

	assert.Equal(t, dataset.SourceCacheFallback, result.Source)
	assert.Equal(t, []byte("stale"), result.Data)
}

func TestSyncProbeFailureNoCacheUsesBundledFile(t *testing.T) {
	client := dataset.NewMockClient()
	client.ProbeFileFunc = func(ctx context.Context) (dataset.FileInfo, error) {
		return dataset.FileInfo{}, errors.New("network down")
	}
	client.DownloadFileFunc = func(ctx context.Context) ([]byte, dataset.FileInfo, error) {
		return nil, dataset.FileInfo{}, errors.New("network down")
	}
	bundled := writeBundledFile(t, []byte("bundled"))
	s := setupSyncer(t, client, nil, bundled)

	result, err := s.Sync(context.Background())
	require.NoError(t, err)

	assert.Equal(t, dataset.SourceBundledFallback, result.Source)
	assert.Equal(t, []byte("bundled"), result.Data)
}

func TestSyncEverythingUnavailableFails(t *testing.T) {
	client := dataset.NewMockClient()
	client.ProbeFileFunc = func(ctx context.Context) (dataset.FileInfo, error) {
		return dataset.FileInfo{}, errors.New("network down")
	}
	client.DownloadFileFunc = func(ctx context.Context) ([]byte, dataset.FileInfo, error) {
		return nil, dataset.FileInfo{}, errors.New("network down")
	}
	s := setupSyncer(t, client, nil, filepath.Join(t.TempDir(), "missing.xlsx"))

	_, err := s.Sync(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, dataset.ErrDatasetUnavailable)
}

func TestHasChanged(t *testing.T) {
	tests := []struct {
		name     string
		current  dataset.FileInfo
		stored   *dataset.FileInfo
		expected bool
	}{
		{"no stored info", dataset.FileInfo{ETag: "a"}, nil, true},
		{"same etag", dataset.FileInfo{ETag: "a"}, &dataset.FileInfo{ETag: "a"}, false},
		{"different etag", dataset.FileInfo{ETag: "a"}, &dataset.FileInfo{ETag: "b"}, true},
		{
			"etag wins over size",
			dataset.FileInfo{ETag: "a", ContentLength: 1},
			&dataset.FileInfo{ETag: "a", ContentLength: 2},
			false,
		},
		{
			"last modified fallback",
			dataset.FileInfo{LastModified: "Mon"},
			&dataset.FileInfo{LastModified: "Tue"},
			true,
		},
		{
			"size fallback",
			dataset.FileInfo{ContentLength: 10},
			&dataset.FileInfo{ContentLength: 10},
			false,
		},
		{"nothing comparable", dataset.FileInfo{}, &dataset.FileInfo{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, dataset.HasChanged(&tt.current, tt.stored))
		})
	}
}
