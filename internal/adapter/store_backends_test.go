//go:build unit

package adapter

import (
	"context"
	"testing"

	"bookshelf/internal/config"
	"bookshelf/internal/core"
	"bookshelf/internal/core/model"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openInMemoryBadger(t *testing.T) *badger.DB {
	t.Helper()
	db, err := OpenBadger(BadgerConfig{InMemory: true}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestBadgerSnapshotStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewBadgerSnapshotStore(openInMemoryBadger(t), "")

	_, found, err := s.Load(ctx)
	require.NoError(t, err)
	assert.False(t, found)

	books := core.SeedBooks()
	require.NoError(t, s.Save(ctx, books))

	got, found, err := s.Load(ctx)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, books, got)
}

func TestBadgerSnapshotStore_CorruptValue(t *testing.T) {
	ctx := context.Background()
	db := openInMemoryBadger(t)
	require.NoError(t, db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte("shelf"), []byte("{not json"))
	}))

	s := NewBadgerSnapshotStore(db, "shelf")
	_, _, err := s.Load(ctx)
	require.ErrorIs(t, err, model.ErrSnapshotCorrupt)

	// the store falls back to the seed collection
	store := openStore(t, s)
	assert.Len(t, store.Books(), 5)
}

func TestBadgerSnapshotStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	db, err := OpenBadger(BadgerConfig{Path: dir}, zerolog.Nop())
	require.NoError(t, err)
	svc := core.NewService(openStore(t, NewBadgerSnapshotStore(db, DefaultStoreKey)), nil, zerolog.Nop())
	_, err = svc.DeleteBook(ctx, "b4")
	require.NoError(t, err)
	_, err = svc.AddComment(ctx, "b2", "Arrakis")
	require.NoError(t, err)
	want := svc.Store.Books()
	require.NoError(t, db.Close())

	db, err = OpenBadger(BadgerConfig{Path: dir}, zerolog.Nop())
	require.NoError(t, err)
	defer db.Close()
	reopened := openStore(t, NewBadgerSnapshotStore(db, DefaultStoreKey))
	assert.Equal(t, want, reopened.Books())
}

func TestBadgerSnapshotStore_ClosedDBIsNotCorrupt(t *testing.T) {
	db, err := OpenBadger(BadgerConfig{InMemory: true}, zerolog.Nop())
	require.NoError(t, err)
	s := NewBadgerSnapshotStore(db, "")
	require.NoError(t, db.Close())

	_, _, err = s.Load(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, model.ErrSnapshotCorrupt)

	_, err = core.OpenStore(context.Background(), s, zerolog.Nop())
	assert.Error(t, err)
}

func TestSnapshotCodec_NilCommentsBecomeEmpty(t *testing.T) {
	books, err := decodeSnapshot([]byte(`[{"id":"x","title":"T","author":"A","status":"read"}]`))
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.NotNil(t, books[0].Comments)

	data, err := encodeSnapshot([]model.Book{{ID: "y"}})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"comments":[]`)
}

func TestMemorySnapshotStore(t *testing.T) {
	ctx := context.Background()
	m := NewMemorySnapshotStore()
	_, found, err := m.Load(ctx)
	require.NoError(t, err)
	assert.False(t, found)

	books := []model.Book{{ID: "a", Comments: []model.Comment{{ID: "c"}}}}
	require.NoError(t, m.Save(ctx, books))
	books[0].Comments[0].ID = "mutated"

	got, found, err := m.Load(ctx)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "c", got[0].Comments[0].ID)
	assert.Equal(t, 1, m.Saves())

	preset := NewMemorySnapshotStoreWith(nil)
	_, found, _ = preset.Load(ctx)
	assert.True(t, found)
}

func TestOpenSnapshotStore_Backends(t *testing.T) {
	ctx := context.Background()

	s, closeFn, err := OpenSnapshotStore(ctx, config.StoreConfig{Backend: config.BackendMemory}, config.RedisConfig{}, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &MemorySnapshotStore{}, s)
	assert.NoError(t, closeFn())

	s, closeFn, err = OpenSnapshotStore(ctx, config.StoreConfig{Backend: config.BackendBadger, Key: "k", BadgerPath: t.TempDir()}, config.RedisConfig{}, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &BadgerSnapshotStore{}, s)
	assert.NoError(t, closeFn())

	_, _, err = OpenSnapshotStore(ctx, config.StoreConfig{Backend: "sqlite"}, config.RedisConfig{}, zerolog.Nop())
	assert.Error(t, err)
}

func TestNewCoverResolver(t *testing.T) {
	assert.Nil(t, NewCoverResolver(config.OpenLibraryConfig{}))
	assert.IsType(t, &OpenLibraryClient{}, NewCoverResolver(config.OpenLibraryConfig{Enabled: true}))
}
