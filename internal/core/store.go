package core

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"bookshelf/internal/core/model"

	"github.com/rs/zerolog"
)

// SnapshotStore persists the whole collection under a single key.
// Load reports found=false when nothing has been saved yet.
type SnapshotStore interface {
	Load(ctx context.Context) (books []model.Book, found bool, err error)
	Save(ctx context.Context, books []model.Book) error
}

// Store holds the current collection and writes every commit through to
// its SnapshotStore. The in-memory copy is authoritative: a failed write
// is logged and remembered but does not undo the commit.
type Store struct {
	mu      sync.RWMutex
	books   []model.Book
	backend SnapshotStore
	log     zerolog.Logger
	lastErr error
}

// OpenStore loads the persisted snapshot, or the seed collection when there
// is none or it does not decode. Any other load failure is returned so that
// the stored snapshot is never overwritten by the seed.
func OpenStore(ctx context.Context, backend SnapshotStore, log zerolog.Logger) (*Store, error) {
	s := &Store{backend: backend, log: log}
	books, found, err := backend.Load(ctx)
	switch {
	case errors.Is(err, model.ErrSnapshotCorrupt):
		log.Warn().Err(err).Msg("snapshot unreadable, starting from seed collection")
		s.books = SeedBooks()
	case err != nil:
		return nil, fmt.Errorf("load snapshot: %w", err)
	case !found:
		log.Info().Msg("no snapshot found, starting from seed collection")
		s.books = SeedBooks()
	default:
		s.books = model.CloneBooks(books)
		log.Info().Int("books", len(books)).Msg("snapshot loaded")
	}
	return s, nil
}

// Books returns a copy of the current collection.
func (s *Store) Books() []model.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return model.CloneBooks(s.books)
}

// Commit replaces the collection and persists it before returning.
func (s *Store) Commit(ctx context.Context, books []model.Book) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commitLocked(ctx, model.CloneBooks(books))
}

// Update applies fn to a copy of the collection and commits the result,
// holding the lock so no other mutation interleaves. Nothing is committed
// when fn returns an error or changed=false.
func (s *Store) Update(ctx context.Context, fn func(books []model.Book) ([]model.Book, bool, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, changed, err := fn(model.CloneBooks(s.books))
	if err != nil || !changed {
		return err
	}
	s.commitLocked(ctx, next)
	return nil
}

func (s *Store) commitLocked(ctx context.Context, books []model.Book) {
	s.books = books
	s.lastErr = s.backend.Save(ctx, model.CloneBooks(books))
	if s.lastErr != nil {
		s.log.Error().Err(s.lastErr).Int("books", len(books)).Msg("persist snapshot")
	}
}

// LastPersistError is the result of the most recent write-through.
func (s *Store) LastPersistError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}
