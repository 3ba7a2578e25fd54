package spreadsheet

import (
	"sync"

	"github.com/informagico/fantavibe/internal/catalog"
)

// MockDecoder is a mock implementation of the Decoder interface for testing.
// It is safe for concurrent use.
type MockDecoder struct {
	mu sync.Mutex

	// Spy for method calls
	DecodeFunc func(data []byte) ([]catalog.Row, error)

	// Call records
	DecodeCalls [][]byte
}

// NewMockDecoder creates a new mock instance.
func NewMockDecoder() *MockDecoder {
	return &MockDecoder{}
}

var _ Decoder = (*MockDecoder)(nil)

func (m *MockDecoder) Decode(data []byte) ([]catalog.Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DecodeCalls = append(m.DecodeCalls, data)
	if m.DecodeFunc != nil {
		return m.DecodeFunc(data)
	}
	return []catalog.Row{}, nil
}
