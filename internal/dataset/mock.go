package dataset

import (
	"context"
	"sync"
)

// MockClient is a mock implementation of the Client interface for testing.
// It is safe for concurrent use.
type MockClient struct {
	mu sync.Mutex

	// Spies for method calls
	ProbeFileFunc    func(ctx context.Context) (FileInfo, error)
	DownloadFileFunc func(ctx context.Context) ([]byte, FileInfo, error)

	// Call counters
	ProbeFileCalls    int
	DownloadFileCalls int
}

// NewMockClient creates a new mock instance.
func NewMockClient() *MockClient {
	return &MockClient{}
}

var _ Client = (*MockClient)(nil)

func (m *MockClient) ProbeFile(ctx context.Context) (FileInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ProbeFileCalls++
	if m.ProbeFileFunc != nil {
		return m.ProbeFileFunc(ctx)
	}
	return FileInfo{}, nil
}

func (m *MockClient) DownloadFile(ctx context.Context) ([]byte, FileInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DownloadFileCalls++
	if m.DownloadFileFunc != nil {
		return m.DownloadFileFunc(ctx)
	}
	return nil, FileInfo{}, nil
}
