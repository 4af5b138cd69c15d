package session

import (
	"context"
	"io"
	"log/slog"

	"souq/config"
	"souq/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

const (
	ProviderRedis  = "redis"
	ProviderMemory = "memory"
)

// StoreParams holds dependencies for the SessionStore, injected by Fx.
type StoreParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewSessionStore creates a SessionStore based on configuration.
func NewSessionStore(params StoreParams) (service.SessionStore, error) {
	cfg := params.Config.Session
	logger := params.Logger

	var store service.SessionStore

	switch cfg.Provider {
	case ProviderRedis:
		if cfg.Redis == nil || cfg.Redis.Addr == "" {
			return nil, errors.New("redis address is required for redis session provider")
		}
		logger.Info("Using Redis session store",
			slog.String("addr", cfg.Redis.Addr),
			slog.Int("db", cfg.Redis.DB),
		)

		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(params.Ctx).Err(); err != nil {
			return nil, errors.Wrap(err, "failed to connect to redis")
		}

		store = NewRedisStore(client)

	case ProviderMemory, "":
		logger.Info("Using in-memory session store")

		store = NewMemoryStore()

	default:
		return nil, errors.Errorf("unknown session provider: %s", cfg.Provider)
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			logger.Info("Closing session store")
			if closer, ok := store.(io.Closer); ok {
				return closer.Close()
			}

			return nil
		},
	})

	return store, nil
}

// Module provides the session store FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewSessionStore),
)
