package adapter

import (
	"context"
	"errors"
	"fmt"
	"os"

	"bookshelf/internal/core/model"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
)

type BadgerConfig struct {
	// Path is the database directory. Ignored when InMemory is set.
	Path     string
	InMemory bool
	// SyncWrites makes every Save durable before it returns.
	SyncWrites bool
}

// badgerLogger adapts zerolog to badger's Logger interface.
type badgerLogger struct {
	log zerolog.Logger
}

func (l badgerLogger) Errorf(format string, args ...interface{}) {
	l.log.Error().Msgf(format, args...)
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.log.Warn().Msgf(format, args...)
}

func (l badgerLogger) Infof(format string, args ...interface{}) {
	l.log.Debug().Msgf(format, args...)
}

func (l badgerLogger) Debugf(format string, args ...interface{}) {
	l.log.Trace().Msgf(format, args...)
}

// OpenBadger opens (creating if needed) the database described by cfg.
func OpenBadger(cfg BadgerConfig, log zerolog.Logger) (*badger.DB, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if cfg.Path == "" {
			return nil, errors.New("badger: path is required for persistent database")
		}
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, fmt.Errorf("badger: create directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites).
		WithNumVersionsToKeep(1).
		WithLogger(badgerLogger{log: log.With().Str("component", "badger").Logger()})

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("badger: open: %w", err)
	}
	return db, nil
}

// BadgerSnapshotStore keeps the collection as one JSON value in BadgerDB.
type BadgerSnapshotStore struct {
	db  *badger.DB
	key []byte
}

func NewBadgerSnapshotStore(db *badger.DB, key string) *BadgerSnapshotStore {
	if key == "" {
		key = DefaultStoreKey
	}
	return &BadgerSnapshotStore{db: db, key: []byte(key)}
}

func (s *BadgerSnapshotStore) Load(_ context.Context) ([]model.Book, bool, error) {
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(s.key)
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("badger: load %s: %w", s.key, err)
	}
	books, err := decodeSnapshot(data)
	if err != nil {
		return nil, false, err
	}
	return books, true, nil
}

func (s *BadgerSnapshotStore) Save(_ context.Context, books []model.Book) error {
	data, err := encodeSnapshot(books)
	if err != nil {
		return err
	}
	if err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(s.key, data)
	}); err != nil {
		return fmt.Errorf("badger: save %s: %w", s.key, err)
	}
	return nil
}
