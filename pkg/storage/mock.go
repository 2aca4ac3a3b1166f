package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/jwebster45206/violeta/pkg/gdsf"
)

// MockStorage is an in-memory Storage for tests
type MockStorage struct {
	mu        sync.RWMutex
	documents map[uuid.UUID]*gdsf.Result
	pingError error
	saveError error
}

// Ensure MockStorage implements Storage interface
var _ Storage = (*MockStorage)(nil)

// NewMockStorage creates a new mock storage
func NewMockStorage() *MockStorage {
	return &MockStorage{
		documents: make(map[uuid.UUID]*gdsf.Result),
	}
}

// SetPingError configures the mock to fail on ping with the given error
func (m *MockStorage) SetPingError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingError = err
}

// SetSaveError configures the mock to fail every save with the given error
func (m *MockStorage) SetSaveError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveError = err
}

func (m *MockStorage) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pingError
}

func (m *MockStorage) Close() error {
	return nil
}

func (m *MockStorage) LoadDocument(ctx context.Context, id uuid.UUID) (*gdsf.Result, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.documents[id], nil
}

func (m *MockStorage) SaveDocument(ctx context.Context, id uuid.UUID, doc *gdsf.Result) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveError != nil {
		return m.saveError
	}
	// round-trip like the real backends so unencodable documents fail here too
	data, err := gdsf.Marshal(doc)
	if err != nil {
		return err
	}
	stored, err := gdsf.ParseString(string(data))
	if err != nil {
		return err
	}
	m.documents[id] = stored
	return nil
}

func (m *MockStorage) DeleteDocument(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.documents, id)
	return nil
}

func (m *MockStorage) ListSessions(ctx context.Context) ([]uuid.UUID, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]uuid.UUID, 0, len(m.documents))
	for id := range m.documents {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids, nil
}
