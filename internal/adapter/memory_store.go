package adapter

import (
	"context"
	"sync"

	"bookshelf/internal/core/model"
)

// MemorySnapshotStore keeps the snapshot in process memory. It backs tests
// and the "memory" store backend.
type MemorySnapshotStore struct {
	mu    sync.RWMutex
	books []model.Book
	saved bool
	saves int
}

func NewMemorySnapshotStore() *MemorySnapshotStore {
	return &MemorySnapshotStore{}
}

// NewMemorySnapshotStoreWith starts from an existing snapshot.
func NewMemorySnapshotStoreWith(books []model.Book) *MemorySnapshotStore {
	return &MemorySnapshotStore{books: model.CloneBooks(books), saved: true}
}

func (m *MemorySnapshotStore) Load(_ context.Context) ([]model.Book, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.saved {
		return nil, false, nil
	}
	return model.CloneBooks(m.books), true, nil
}

func (m *MemorySnapshotStore) Save(_ context.Context, books []model.Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.books = model.CloneBooks(books)
	m.saved = true
	m.saves++
	return nil
}

// Saves counts successful writes.
func (m *MemorySnapshotStore) Saves() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.saves
}
