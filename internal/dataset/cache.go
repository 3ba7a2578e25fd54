package dataset

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"github.com/informagico/fantavibe/internal/storage"
	"github.com/vmihailenco/msgpack/v5"
)

// Storage keys for the three logical cache entries.
const (
	keyFileInfo = "dataset_file_info"
	keyContent  = "dataset_content"
	keySavedAt  = "dataset_saved_at"
)

// contentRecord wraps the cached payload. Encoded with msgpack so the bytes
// go into the store without a text-encoding detour.
type contentRecord struct {
	Bytes []byte `msgpack:"bytes"`
	Size  int64  `msgpack:"size"`
}

// Cache persists the dataset file and its change-detection metadata through
// the key-value storage port. Every read is self-healing: a corrupted entry
// is purged and treated as a miss rather than surfaced as an error.
type Cache struct {
	store storage.Store
}

// NewCache creates a Cache over the given store.
func NewCache(store storage.Store) *Cache {
	return &Cache{store: store}
}

// LoadFileInfo returns the stored file metadata, or nil when absent or
// unreadable.
func (c *Cache) LoadFileInfo(ctx context.Context) *FileInfo {
	raw, ok, err := c.store.Get(ctx, keyFileInfo)
	if err != nil {
		log.Error("Failed to read cached file info", "error", err)
		return nil
	}
	if !ok {
		return nil
	}

	var info FileInfo
	if err := json.Unmarshal(raw, &info); err != nil {
		log.Warn("Cached file info is corrupted, purging", "error", err)
		c.deleteKey(ctx, keyFileInfo)
		return nil
	}
	return &info
}

// SaveFileInfo persists the file metadata, overwriting any prior entry.
func (c *Cache) SaveFileInfo(ctx context.Context, info FileInfo) error {
	raw, err := json.Marshal(info)
	if err != nil {
		return err
	}
	return c.setWithRecovery(ctx, keyFileInfo, raw)
}

// LoadContent returns the cached dataset bytes and when they were saved.
// The second return is zero when no timestamp survives; the caller decides
// what staleness means.
func (c *Cache) LoadContent(ctx context.Context) ([]byte, time.Time, bool) {
	raw, ok, err := c.store.Get(ctx, keyContent)
	if err != nil {
		log.Error("Failed to read cached dataset content", "error", err)
		return nil, time.Time{}, false
	}
	if !ok {
		return nil, time.Time{}, false
	}

	var record contentRecord
	if err := msgpack.Unmarshal(raw, &record); err != nil {
		log.Warn("Cached dataset content is corrupted, purging", "error", err)
		c.Purge(ctx)
		return nil, time.Time{}, false
	}
	if len(record.Bytes) == 0 {
		log.Warn("Cached dataset content is empty, purging")
		c.Purge(ctx)
		return nil, time.Time{}, false
	}

	return record.Bytes, c.loadSavedAt(ctx), true
}

// SaveContent persists the dataset bytes and stamps the save time.
func (c *Cache) SaveContent(ctx context.Context, data []byte) error {
	raw, err := msgpack.Marshal(contentRecord{Bytes: data, Size: int64(len(data))})
	if err != nil {
		return err
	}
	if err := c.setWithRecovery(ctx, keyContent, raw); err != nil {
		return err
	}
	return c.setWithRecovery(ctx, keySavedAt, []byte(time.Now().UTC().Format(time.RFC3339)))
}

// InvalidateFileInfo drops only the change-detection metadata. The next sync
// will treat the remote file as changed while the cached bytes stay around
// as a download fallback.
func (c *Cache) InvalidateFileInfo(ctx context.Context) {
	c.deleteKey(ctx, keyFileInfo)
}

// Purge drops all dataset cache entries.
func (c *Cache) Purge(ctx context.Context) {
	for _, key := range []string{keyFileInfo, keyContent, keySavedAt} {
		c.deleteKey(ctx, key)
	}
}

func (c *Cache) loadSavedAt(ctx context.Context) time.Time {
	raw, ok, err := c.store.Get(ctx, keySavedAt)
	if err != nil || !ok {
		return time.Time{}
	}
	savedAt, err := time.Parse(time.RFC3339, string(raw))
	if err != nil {
		log.Warn("Cached save timestamp is corrupted, purging", "error", err)
		c.deleteKey(ctx, keySavedAt)
		return time.Time{}
	}
	return savedAt
}

// setWithRecovery writes the entry, and on failure purges the cached content
// once and retries. This recovers from storage-quota errors at the cost of
// the old cached copy.
func (c *Cache) setWithRecovery(ctx context.Context, key string, value []byte) error {
	err := c.store.Set(ctx, key, value)
	if err == nil {
		return nil
	}

	log.Warn("Failed to persist cache entry, purging old content and retrying", "key", key, "error", err)
	c.deleteKey(ctx, keyContent)
	return c.store.Set(ctx, key, value)
}

func (c *Cache) deleteKey(ctx context.Context, key string) {
	if err := c.store.Delete(ctx, key); err != nil {
		log.Error("Failed to delete cache entry", "key", key, "error", err)
	}
}
