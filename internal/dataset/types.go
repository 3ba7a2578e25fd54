package dataset

import (
	"errors"
	"time"
)

// FileInfo is the lightweight change-detection metadata for the remote
// dataset file, taken from response headers.
type FileInfo struct {
	ETag          string    `json:"etag,omitempty"`
	LastModified  string    `json:"last_modified,omitempty"`
	ContentLength int64     `json:"content_length,omitempty"`
	CheckedAt     time.Time `json:"checked_at"`
}

// Source identifies where sync ultimately got the dataset bytes from.
type Source string

const (
	// SourceRemote means a fresh download was performed and persisted.
	SourceRemote Source = "remote"
	// SourceCache means the local cache was still trustworthy.
	SourceCache Source = "cache"
	// SourceCacheFallback means the download failed and stale cached bytes
	// were served instead.
	SourceCacheFallback Source = "cache_fallback"
	// SourceBundledFallback means the bundled static file was the only copy
	// left standing.
	SourceBundledFallback Source = "bundled_fallback"
)

// Result is the outcome of one sync run.
type Result struct {
	Data       []byte   `json:"-"`
	Source     Source   `json:"source"`
	FileInfo   FileInfo `json:"file_info"`
	WasUpdated bool     `json:"was_updated"`
}

// state names the positions of the sync state machine. The happy path is
// CHECK_REMOTE -> {USE_CACHE, DOWNLOAD} -> PERSIST -> DONE; every failure
// degrades through USE_STALE_CACHE -> USE_BUNDLED_FALLBACK -> FAILED.
type state string

const (
	stateCheckRemote        state = "CHECK_REMOTE"
	stateUseCache           state = "USE_CACHE"
	stateDownload           state = "DOWNLOAD"
	statePersist            state = "PERSIST"
	stateUseStaleCache      state = "USE_STALE_CACHE"
	stateUseBundledFallback state = "USE_BUNDLED_FALLBACK"
	stateDone               state = "DONE"
	stateFailed             state = "FAILED"
)

// ErrDatasetUnavailable is returned when the remote source, the local cache
// and the bundled file all failed. This is the only fatal sync outcome.
var ErrDatasetUnavailable = errors.New("dataset unavailable from remote, cache and bundled file")

// HasChanged compares remote file metadata against the stored copy, most
// authoritative field first: entity tag, then last-modified, then size. When
// no field is comparable on both sides, the file is treated as changed so we
// fail open into a refetch.
func HasChanged(current, stored *FileInfo) bool {
	if stored == nil {
		return true
	}
	if current.ETag != "" && stored.ETag != "" {
		return current.ETag != stored.ETag
	}
	if current.LastModified != "" && stored.LastModified != "" {
		return current.LastModified != stored.LastModified
	}
	if current.ContentLength > 0 && stored.ContentLength > 0 {
		return current.ContentLength != stored.ContentLength
	}
	return true
}
