package storage

import (
	"context"
	"sync"
)

// MockStore is an in-memory implementation of the Store interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu   sync.Mutex
	data map[string][]byte

	// Spies for method calls
	GetFunc    func(ctx context.Context, key string) ([]byte, bool, error)
	SetFunc    func(ctx context.Context, key string, value []byte) error
	DeleteFunc func(ctx context.Context, key string) error
	ClearFunc  func(ctx context.Context) error

	// Call records
	GetCalls    []string
	SetCalls    []string
	DeleteCalls []string
	ClearCalls  int
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{
		data: make(map[string][]byte),
	}
}

var _ Store = (*MockStore)(nil)

func (m *MockStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetCalls = append(m.GetCalls, key)
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	value, ok := m.data[key]
	return value, ok, nil
}

func (m *MockStore) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetCalls = append(m.SetCalls, key)
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value)
	}
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *MockStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteCalls = append(m.DeleteCalls, key)
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	delete(m.data, key)
	return nil
}

func (m *MockStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClearCalls++
	if m.ClearFunc != nil {
		return m.ClearFunc(ctx)
	}
	m.data = make(map[string][]byte)
	return nil
}

// Seed stores a value directly, bypassing spies. Useful for test setup.
func (m *MockStore) Seed(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
}
