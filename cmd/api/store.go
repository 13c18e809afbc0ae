package main

import (
	"context"
	"fmt"

	"github.com/iamasit07/four-chain/backend/internal/config"
	"github.com/iamasit07/four-chain/backend/internal/logging"
	"github.com/iamasit07/four-chain/backend/internal/repository/memory"
	"github.com/iamasit07/four-chain/backend/internal/repository/postgres"
	"github.com/iamasit07/four-chain/backend/internal/repository/redis"
	"github.com/iamasit07/four-chain/backend/internal/repository/sqlite"
	"github.com/iamasit07/four-chain/backend/internal/service/game"
	"github.com/rs/zerolog"
)

// openStore connects the configured board store. The returned close func is
// never nil.
func openStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (game.BoardStore, func() error, error) {
	logger = logger.With().Str("component", "store").Str("store", cfg.Board.Store).Logger()
	width, height := cfg.Board.Width, cfg.Board.Height

	switch cfg.Board.Store {
	case config.StoreMemory:
		logger.Info().Msg("using in-memory board")
		return memory.NewStore(width, height), func() error { return nil }, nil

	case config.StoreSQLite:
		store, err := sqlite.Open(ctx, cfg.Database.SQLitePath, width, height)
		if err != nil {
			return nil, nil, err
		}
		logger.Info().Str("path", cfg.Database.SQLitePath).Msg("using sqlite board")
		return store, store.Close, nil

	case config.StorePostgres:
		db, err := postgres.Open(ctx, cfg.Database.Driver, cfg.Database.URL, postgres.PoolConfig{
			MaxOpenConns:       cfg.Database.MaxOpenConns,
			MaxIdleConns:       cfg.Database.MaxIdleConns,
			ConnMaxLifetimeMin: cfg.Database.ConnMaxLifetimeMin,
		})
		if err != nil {
			return nil, nil, err
		}

		logger.Info().Msg("running database migrations")
		if err := postgres.RunMigrations(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("migration failed: %w", err)
		}
		logger.Info().Str("driver", cfg.Database.Driver).Msg("using postgres board")
		return postgres.NewCellRepo(db, width, height), db.Close, nil

	case config.StoreRedis:
		client, err := redis.Connect(ctx, redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, err
		}
		logger.Info().Str("addr", cfg.Redis.Addr).Str("key", cfg.Redis.BoardKey).Msg("using redis board")
		return redis.NewCellStore(client, cfg.Redis.BoardKey, width, height), client.Close, nil
	}

	return nil, nil, fmt.Errorf("unknown board store %q", cfg.Board.Store)
}

// setup loads config and builds the logger every command needs.
func setup(g *Globals) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	return cfg, logger, nil
}
