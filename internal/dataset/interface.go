package dataset

import "context"

// Client defines the interface for reaching the remote dataset file.
// This allows for mock implementations to be used in tests.
type Client interface {
	// ProbeFile performs a headers-only existence and change probe.
	ProbeFile(ctx context.Context) (FileInfo, error)
	// DownloadFile fetches the full dataset payload.
	DownloadFile(ctx context.Context) ([]byte, FileInfo, error)
}
