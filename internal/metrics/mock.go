package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	SyncRunsCount       int
	DownloadsCount      int
	CacheHitsCount      int
	FallbackCalls       []string
	BuildObservations   []float64
	SearchObservations  []float64
	CatalogSizeValue    float64
	StartupTimeObserved float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

var _ Metrics = (*Mock)(nil)

func (m *Mock) IncSyncRuns() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SyncRunsCount++
}

func (m *Mock) IncDownloads() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DownloadsCount++
}

func (m *Mock) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHitsCount++
}

func (m *Mock) IncFallback(source string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FallbackCalls = append(m.FallbackCalls, source)
}

func (m *Mock) ObserveBuildDuration(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BuildObservations = append(m.BuildObservations, seconds)
}

func (m *Mock) ObserveSearchDuration(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SearchObservations = append(m.SearchObservations, seconds)
}

func (m *Mock) SetCatalogSize(count float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CatalogSizeValue = count
}

func (m *Mock) SetStartupTime(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StartupTimeObserved = seconds
}
