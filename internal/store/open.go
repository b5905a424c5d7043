package store

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"restaurant-pos/config"
	"restaurant-pos/internal/database"
)

// Open builds the backend selected by cfg.Store.Backend.
func Open(ctx context.Context, cfg config.Config, logger *zap.Logger) (Backend, error) {
	switch cfg.Store.Backend {
	case config.BackendSQLite:
		db, err := database.OpenSQLite(cfg.Store.SQLitePath)
		if err != nil {
			return nil, err
		}
		logger.Info("store opened", zap.String("backend", "sqlite"), zap.String("path", cfg.Store.SQLitePath))
		return NewSQLiteBackend(db), nil

	case config.BackendRedis:
		client, err := config.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		logger.Info("store opened", zap.String("backend", "redis"), zap.String("addr", cfg.Redis.Addr()))
		return NewRedisBackend(client), nil

	case config.BackendPostgres:
		db, err := database.NewConnection(cfg.Store.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to db: %w", err)
		}
		if err := database.MigratePOSDB(db); err != nil {
			return nil, err
		}
		logger.Info("store opened", zap.String("backend", "postgres"))
		return NewPostgresBackend(db), nil

	case config.BackendMemory:
		logger.Warn("store opened in memory, state is lost on exit")
		return NewMemoryBackend(), nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}
