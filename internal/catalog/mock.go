package catalog

import (
	"context"
	"sync"
)

// Mock is a test double for Client.
type Mock struct {
	mu         sync.Mutex
	playCounts []string
	likeCalls  []string
	liked      map[string]bool
	err        error
}

// NewMock creates a new mock catalog client.
func NewMock() *Mock {
	return &Mock{liked: make(map[string]bool)}
}

func (m *Mock) IncrementPlayCount(_ context.Context, trackID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playCounts = append(m.playCounts, trackID)
	return m.err
}

func (m *Mock) ToggleLike(_ context.Context, trackID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.likeCalls = append(m.likeCalls, trackID)
	if m.err != nil {
		return false, m.err
	}
	m.liked[trackID] = !m.liked[trackID]
	return m.liked[trackID], nil
}

// Test helpers

func (m *Mock) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *Mock) PlayCounts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.playCounts...)
}

func (m *Mock) LikeCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.likeCalls...)
}

// Verify Mock implements Client at compile time.
var _ Client = (*Mock)(nil)
