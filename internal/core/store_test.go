//go:build unit

package core

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"bookshelf/internal/core/model"
	"bookshelf/pkg/util"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend is a SnapshotStore whose load and save can be made to fail.
type fakeBackend struct {
	mu      sync.Mutex
	books   []model.Book
	found   bool
	loadErr error
	saveErr error
	saves   int
}

func (f *fakeBackend) Load(_ context.Context) ([]model.Book, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return nil, false, f.loadErr
	}
	return model.CloneBooks(f.books), f.found, nil
}

func (f *fakeBackend) Save(_ context.Context, books []model.Book) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.books = model.CloneBooks(books)
	f.found = true
	f.saves++
	return nil
}

func mustOpen(t *testing.T, backend SnapshotStore) *Store {
	t.Helper()
	s, err := OpenStore(context.Background(), backend, zerolog.Nop())
	require.NoError(t, err)
	return s
}

func TestOpenStore_SeedsWhenEmpty(t *testing.T) {
	s := mustOpen(t, &fakeBackend{})
	books := s.Books()
	require.Len(t, books, 5)
	assert.Equal(t, "Le Petit Prince", books[0].Title)
}

func TestOpenStore_SeedsWhenUnreadable(t *testing.T) {
	s := mustOpen(t, &fakeBackend{loadErr: fmt.Errorf("decode snapshot: %w", model.ErrSnapshotCorrupt)})
	assert.Len(t, s.Books(), 5)
}

func TestOpenStore_ReadFailureKeepsSnapshot(t *testing.T) {
	mine := []model.Book{{ID: "mine", Title: "T", Author: "A", Comments: []model.Comment{}}}
	be := &fakeBackend{books: mine, found: true, loadErr: context.DeadlineExceeded}

	s, err := OpenStore(context.Background(), be, zerolog.Nop())
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Nil(t, s)

	// once the backend recovers the original snapshot is still there
	be.loadErr = nil
	svc := NewService(mustOpen(t, be), nil, zerolog.Nop())
	_, err = svc.CreateBook(context.Background(), model.BookInput{Title: util.GetPtr("New"), Author: util.GetPtr("B")})
	require.NoError(t, err)
	require.Len(t, be.books, 2)
	assert.Equal(t, "mine", be.books[1].ID)
}

func TestOpenStore_LoadsSnapshot(t *testing.T) {
	be := &fakeBackend{found: true, books: []model.Book{{ID: "x", Title: "T", Author: "A", Comments: []model.Comment{}}}}
	s := mustOpen(t, be)
	books := s.Books()
	require.Len(t, books, 1)
	assert.Equal(t, "x", books[0].ID)
}

func TestOpenStore_EmptySnapshotIsNotSeeded(t *testing.T) {
	s := mustOpen(t, &fakeBackend{found: true})
	assert.Empty(t, s.Books())
}

func TestSeedBooks_CoversEveryStatus(t *testing.T) {
	seen := map[model.Status]bool{}
	commented := false
	for _, b := range SeedBooks() {
		seen[b.Status] = true
		if len(b.Comments) > 0 {
			commented = true
		}
	}
	for _, st := range model.Statuses {
		assert.True(t, seen[st], st)
	}
	assert.True(t, commented)
}

func TestStore_BooksIsACopy(t *testing.T) {
	s := mustOpen(t, &fakeBackend{})
	books := s.Books()
	books[0].Title = "changed"
	books[0].Comments[0].Text = "changed"
	fresh := s.Books()
	assert.Equal(t, "Le Petit Prince", fresh[0].Title)
	assert.NotEqual(t, "changed", fresh[0].Comments[0].Text)
}

func TestStore_CommitWritesThrough(t *testing.T) {
	be := &fakeBackend{}
	s := mustOpen(t, be)
	s.Commit(context.Background(), []model.Book{{ID: "only", Title: "T", Author: "A"}})

	assert.Equal(t, 1, be.saves)
	require.Len(t, be.books, 1)
	assert.Equal(t, "only", be.books[0].ID)
	assert.NoError(t, s.LastPersistError())
}

func TestStore_UpdateSkipsUnchanged(t *testing.T) {
	be := &fakeBackend{}
	s := mustOpen(t, be)

	err := s.Update(context.Background(), func(books []model.Book) ([]model.Book, bool, error) {
		books[0].Title = "discarded"
		return books, false, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 0, be.saves)
	assert.Equal(t, "Le Petit Prince", s.Books()[0].Title)

	boom := errors.New("boom")
	err = s.Update(context.Background(), func(books []model.Book) ([]model.Book, bool, error) {
		return books[:1], true, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Len(t, s.Books(), 5)
}

func TestStore_PersistFailureKeepsMemoryState(t *testing.T) {
	be := &fakeBackend{saveErr: errors.New("disk full")}
	s := mustOpen(t, be)

	err := s.Update(context.Background(), func(books []model.Book) ([]model.Book, bool, error) {
		return books[1:], true, nil
	})
	require.NoError(t, err)
	assert.Len(t, s.Books(), 4)
	assert.EqualError(t, s.LastPersistError(), "disk full")

	be.saveErr = nil
	s.Commit(context.Background(), s.Books())
	assert.NoError(t, s.LastPersistError())
	assert.Len(t, be.books, 4)
}
