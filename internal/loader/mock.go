package loader

import (
	"context"
	"sync"

	"github.com/informagico/fantavibe/internal/catalog"
)

// MockLoader is a mock implementation of the Loader interface for testing.
// It is safe for concurrent use.
type MockLoader struct {
	mu sync.Mutex

	// Spies for method calls
	LoadFunc    func(ctx context.Context, force bool) error
	CatalogFunc func() *catalog.Catalog
	StatusFunc  func() Status

	// Call records
	LoadCalls []bool
}

// NewMock creates a new mock instance.
func NewMock() *MockLoader {
	return &MockLoader{}
}

var _ Loader = (*MockLoader)(nil)

func (m *MockLoader) Load(ctx context.Context, force bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LoadCalls = append(m.LoadCalls, force)
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx, force)
	}
	return nil
}

func (m *MockLoader) Catalog() *catalog.Catalog {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CatalogFunc != nil {
		return m.CatalogFunc()
	}
	return &catalog.Catalog{Players: []catalog.Player{}, Index: catalog.Index{}}
}

func (m *MockLoader) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.StatusFunc != nil {
		return m.StatusFunc()
	}
	return Status{}
}
