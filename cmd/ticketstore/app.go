package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-store/internal/config"
	"github.com/spec-kit/ticket-store/internal/events"
	"github.com/spec-kit/ticket-store/internal/observability"
	"github.com/spec-kit/ticket-store/internal/persistence"
	"github.com/spec-kit/ticket-store/internal/service"
	"github.com/spec-kit/ticket-store/internal/store"
)

// app wires the store and its collaborators for one CLI invocation. Every
// invocation rehydrates the snapshot, applies at most one mutation, and
// lets the store mirror the result back to storage.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	storage persistence.Storage
	store   *store.Store
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	storage, err := openStorage(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	dispatcher := events.NewInMemoryDispatcher(logger)
	service.NewActivityLog(dispatcher, logger).RegisterHandlers()

	st := store.New(store.Dependencies{
		Storage:    storage,
		Key:        cfg.Storage.Key,
		Logger:     logger,
		Dispatcher: dispatcher,
	})
	if err := st.Load(ctx); err != nil {
		storage.Close()
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	return &app{cfg: cfg, logger: logger, storage: storage, store: st}, nil
}

func (a *app) close() {
	if err := a.storage.Close(); err != nil {
		a.logger.Warn("close storage", zap.Error(err))
	}
	_ = a.logger.Sync()
}

func openStorage(ctx context.Context, cfg *config.Config, logger *zap.Logger) (persistence.Storage, error) {
	switch cfg.Storage.Backend {
	case config.BackendFile:
		return persistence.NewFileStorage(cfg.Storage.Dir), nil
	case config.BackendMemory:
		return persistence.NewMemoryStorage(), nil
	case config.BackendRedis:
		return persistence.NewRedisStorage(cfg.Redis, logger), nil
	case config.BackendPostgres:
		return persistence.NewPostgresStorage(ctx, cfg.Postgres, logger)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
