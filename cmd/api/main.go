package main

import (
	"bookshelf/internal/adapter"
	"bookshelf/internal/config"
	"bookshelf/internal/core"
	"bookshelf/pkg/logger"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New("development", "info").Fatal().Err(err).Msg("load config")
	}
	log := logger.New(cfg.App.Environment, cfg.App.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, closeBackend, err := adapter.OpenSnapshotStore(ctx, cfg.Store, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.Store.Backend).Msg("open snapshot store")
	}
	defer func() {
		if err := closeBackend(); err != nil {
			log.Error().Err(err).Msg("close snapshot store")
		}
	}()

	store, err := core.OpenStore(ctx, backend, log)
	if err != nil {
		_ = closeBackend()
		log.Fatal().Err(err).Str("backend", cfg.Store.Backend).Msg("open store")
	}
	svc := core.NewService(store, adapter.NewCoverResolver(cfg.OpenLibrary), log)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	adapter.RegisterCollectionGauge(reg, func() int { return len(store.Books()) })

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      adapter.NewRouter(adapter.NewHTTPHandler(svc, log), reg),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server error")
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
	log.Info().Msg("stopped")
}
