package adapter

import (
	"context"
	"fmt"
	"time"

	"bookshelf/internal/config"
	"bookshelf/internal/core"
	"bookshelf/pkg/http_client"

	"github.com/rs/zerolog"
)

// OpenSnapshotStore builds the backend selected by cfg. The returned close
// function releases it.
func OpenSnapshotStore(ctx context.Context, cfg config.StoreConfig, rc config.RedisConfig, log zerolog.Logger) (core.SnapshotStore, func() error, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return NewMemorySnapshotStore(), func() error { return nil }, nil
	case config.BackendRedis:
		client := NewRedisClient(rc.Addr, rc.Password, rc.DB)
		s := NewRedisSnapshotStore(client, cfg.Key)
		if err := s.Ping(ctx); err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		log.Info().Str("addr", rc.Addr).Msg("redis snapshot store ready")
		return s, client.Close, nil
	case config.BackendBadger:
		db, err := OpenBadger(BadgerConfig{Path: cfg.BadgerPath, SyncWrites: true}, log)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("path", cfg.BadgerPath).Msg("badger snapshot store ready")
		return NewBadgerSnapshotStore(db, cfg.Key), db.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

// NewCoverResolver returns nil when cover lookups are disabled.
func NewCoverResolver(cfg config.OpenLibraryConfig) core.CoverResolver {
	if !cfg.Enabled {
		return nil
	}
	return NewOpenLibraryClient(cfg.BaseURL, cfg.Retry, http_client.CreateHTTPClient(3*time.Second))
}
