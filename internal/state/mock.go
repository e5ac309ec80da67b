package state

import (
	"context"
	"sync"
)

// Mock is an in-memory Store for tests. It stores the encoded form so that
// corrupt records can be injected with SetRaw.
type Mock struct {
	mu      sync.Mutex
	key     KeyFunc
	records map[string]string
	saves   int
	loadErr error
	saveErr error
}

// NewMock creates a new mock store for testing.
func NewMock() *Mock {
	return &Mock{
		key:     PrefixKey(DefaultKeyPrefix),
		records: make(map[string]string),
	}
}

func (m *Mock) Load(_ context.Context, viewerID string) (*Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.loadErr != nil {
		return nil, m.loadErr
	}
	raw, ok := m.records[m.key(viewerID)]
	if !ok {
		return nil, nil
	}
	return decode(raw)
}

func (m *Mock) Save(_ context.Context, viewerID string, snap Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.saveErr != nil {
		return m.saveErr
	}
	raw, err := encode(snap)
	if err != nil {
		return err
	}
	m.records[m.key(viewerID)] = raw
	m.saves++
	return nil
}

func (m *Mock) Remove(_ context.Context, viewerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, m.key(viewerID))
	return nil
}

// Test helpers

// SetRaw stores a raw record for viewerID.
func (m *Mock) SetRaw(viewerID, raw string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[m.key(viewerID)] = raw
}

// Get returns the decoded snapshot for viewerID, or nil.
func (m *Mock) Get(viewerID string) *Snapshot {
	snap, _ := m.Load(context.Background(), viewerID)
	return snap
}

// Keys returns the stored keys.
func (m *Mock) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.records))
	for k := range m.records {
		keys = append(keys, k)
	}
	return keys
}

// Saves returns the number of successful saves.
func (m *Mock) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

func (m *Mock) SetLoadError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadErr = err
}

func (m *Mock) SetSaveError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveErr = err
}

var _ Store = (*Mock)(nil)
