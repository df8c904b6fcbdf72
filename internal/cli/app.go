package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/wayfinder"
	"github.com/aretw0/wayfinder/internal/config"
	"github.com/aretw0/wayfinder/internal/logging"
	"github.com/aretw0/wayfinder/pkg/adapters/file"
	"github.com/aretw0/wayfinder/pkg/adapters/memory"
	"github.com/aretw0/wayfinder/pkg/adapters/redis"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/observability"
	"github.com/aretw0/wayfinder/pkg/persistence/middleware"
	"github.com/aretw0/wayfinder/pkg/ports"
)

// App bundles what every command needs, built once from the configuration.
type App struct {
	Config   config.Config
	Logger   *slog.Logger
	Store    ports.SolutionStore
	Metrics  *observability.Metrics
	Explorer *wayfinder.Explorer

	closeStore func() error
}

// NewApp wires the logger, the configured store backend and the explorer.
// Metrics and debug log hooks are always attached.
func NewApp(ctx context.Context, cfg config.Config) (*App, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := logging.New(level)

	store, closeStore, err := openStore(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}
	active, previous, err := cfg.Store.Keys()
	if err != nil {
		return nil, err
	}
	if active != nil {
		store = middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
			ActiveKey:    active,
			FallbackKeys: previous,
		})(store)
		logger.Debug("Solutions are sealed at rest")
	}

	strategy, err := domain.ParseStrategy(cfg.Strategy)
	if err != nil {
		return nil, err
	}

	metrics := observability.NewMetrics()
	hooks := metrics.Hooks()
	if level <= slog.LevelDebug {
		hooks = hooks.Merge(observability.LogHooks(logger))
	}

	return &App{
		Config:  cfg,
		Logger:  logger,
		Store:   store,
		Metrics: metrics,
		Explorer: wayfinder.New(
			wayfinder.WithStrategy(strategy),
			wayfinder.WithLogger(logger),
			wayfinder.WithStore(store),
			wayfinder.WithLifecycleHooks(hooks),
			wayfinder.WithVerifySensing(cfg.VerifySensing),
		),
		closeStore: closeStore,
	}, nil
}

// Close releases the store connection, if any.
func (a *App) Close() error {
	if a.closeStore == nil {
		return nil
	}
	return a.closeStore()
}

func openStore(ctx context.Context, cfg config.StoreConfig) (ports.SolutionStore, func() error, error) {
	switch cfg.Backend {
	case config.BackendMemory, "":
		return memory.NewStore(), nil, nil
	case config.BackendFile:
		return file.New(cfg.Path), nil, nil
	case config.BackendRedis:
		store := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			redis.WithPrefix(cfg.Redis.Prefix),
			redis.WithTTL(cfg.Redis.TTL),
		)
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, nil, fmt.Errorf("connect to redis at %s: %w", cfg.Redis.Addr, err)
		}
		return store, store.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
}
