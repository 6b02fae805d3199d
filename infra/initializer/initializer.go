package initializer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/amirasaad/agribank/infra"
	infra_eventbus "github.com/amirasaad/agribank/infra/eventbus"
	infra_lock "github.com/amirasaad/agribank/infra/lock"
	infra_repository "github.com/amirasaad/agribank/infra/repository"
	"github.com/amirasaad/agribank/infra/tracing"
	"github.com/amirasaad/agribank/pkg/config"
	"github.com/amirasaad/agribank/pkg/eventbus"
	"github.com/amirasaad/agribank/pkg/lock"
	"github.com/redis/go-redis/v9"
)

// InitializeDependencies initializes all the application dependencies.
func InitializeDependencies(cfg *config.App) (
	deps *config.Deps,
	err error,
) {
	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)
	deps = &config.Deps{Logger: logger, Config: cfg}

	// Initialize database
	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		return nil, err
	}

	// Initialize unit of work
	tracer := tracing.Tracer()
	deps.Uow = tracing.NewUnitOfWork(infra_repository.NewUoW(db), tracer)

	var client *redis.Client
	if needsRedis(cfg) {
		client, err = initRedisClient(cfg.Redis)
		if err != nil {
			logger.Error("Failed to connect to redis", "error", err)
			return nil, err
		}
	}

	locker, err := initLocker(cfg, client, logger)
	if err != nil {
		return nil, err
	}
	deps.Locker = tracing.NewLocker(locker, tracer)
	deps.EventBus, err = initEventBus(cfg, client, logger)
	if err != nil {
		return nil, err
	}

	logger.Info("Dependencies initialized",
		"lock_backend", lockBackend(cfg),
		"event_bus", busDriver(cfg),
	)
	return deps, nil
}

func lockBackend(cfg *config.App) string {
	if cfg.Lock == nil || cfg.Lock.Backend == "" {
		return "memory"
	}
	return cfg.Lock.Backend
}

func busDriver(cfg *config.App) string {
	if cfg.EventBus == nil || cfg.EventBus.Driver == "" {
		return "memory"
	}
	return cfg.EventBus.Driver
}

func needsRedis(cfg *config.App) bool {
	return lockBackend(cfg) == "redis" || busDriver(cfg) == "redis"
}

// initRedisClient connects and pings the configured redis.
func initRedisClient(cfg *config.Redis) (*redis.Client, error) {
	if cfg == nil || cfg.URL == "" {
		return nil, fmt.Errorf("redis url is required")
	}
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	if cfg.DialTimeout > 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	if cfg.ReadTimeout > 0 {
		opts.ReadTimeout = cfg.ReadTimeout
	}
	if cfg.WriteTimeout > 0 {
		opts.WriteTimeout = cfg.WriteTimeout
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), opts.DialTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

// initLocker picks the lock backend. A redis backend never falls back to
// memory: per-process locks would not serialize other instances.
func initLocker(cfg *config.App, client *redis.Client, logger *slog.Logger) (lock.Locker, error) {
	switch lockBackend(cfg) {
	case "memory":
		return infra_lock.NewMemoryLocker(), nil
	case "redis":
		if client == nil {
			return nil, fmt.Errorf("redis lock backend requires a redis client")
		}
		opts := infra_lock.RedisOptions{
			Expiry:     cfg.Lock.TTL,
			Tries:      cfg.Lock.MaxTries,
			RetryDelay: cfg.Lock.RetryDelay,
		}
		return infra_lock.NewRedisLocker(client, keyPrefix(cfg), opts, logger), nil
	default:
		return nil, fmt.Errorf("unsupported lock backend %q", cfg.Lock.Backend)
	}
}

// initEventBus picks the event bus driver.
func initEventBus(cfg *config.App, client *redis.Client, logger *slog.Logger) (eventbus.Bus, error) {
	switch busDriver(cfg) {
	case "memory":
		return infra_eventbus.NewWithMemory(logger), nil
	case "redis":
		if client == nil {
			return nil, fmt.Errorf("redis event bus requires a redis client")
		}
		return infra_eventbus.NewWithRedis(client, keyPrefix(cfg), logger), nil
	default:
		return nil, fmt.Errorf("unsupported event bus driver %q", cfg.EventBus.Driver)
	}
}

func keyPrefix(cfg *config.App) string {
	if cfg.Redis == nil {
		return ""
	}
	return cfg.Redis.KeyPrefix
}
