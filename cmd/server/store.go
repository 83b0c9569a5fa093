package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Hazembel/mamaty-dashboard-sub000/internal/config"
	"github.com/Hazembel/mamaty-dashboard-sub000/internal/domain/repositories"
	"github.com/Hazembel/mamaty-dashboard-sub000/internal/repository/memory"
	"github.com/Hazembel/mamaty-dashboard-sub000/internal/repository/postgres"
	"github.com/Hazembel/mamaty-dashboard-sub000/internal/repository/sqlite"
)

// preferencesStore is the storage picked by PREFERENCES_STORE
type preferencesStore struct {
	repo      repositories.ViewPreferencesRepository
	txManager repositories.TransactionManager
	close     func()
}

func openPreferencesStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*preferencesStore, error) {
	switch cfg.PreferencesStore {
	case "memory":
		return &preferencesStore{
			repo:      memory.NewViewPreferencesRepository(),
			txManager: repositories.NoTransactions{},
			close:     func() {},
		}, nil

	case "sqlite":
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		logger.Info("sqlite store opened", "path", cfg.SQLitePath)
		return &preferencesStore{
			repo:      sqlite.NewViewPreferencesRepository(db),
			txManager: repositories.NoTransactions{},
			close:     func() { _ = db.Close() },
		}, nil

	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for the postgres store")
		}
		pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		tables := postgres.NewTableNames(cfg.TablePrefix)
		if err := postgres.EnsureSchema(ctx, pool, tables); err != nil {
			pool.Close()
			return nil, err
		}
		logger.Info("database connected", "table_prefix", cfg.TablePrefix)

		repoConfig := &postgres.RepositoryConfig{
			Pool:   pool,
			Tables: tables,
			Logger: logger,
		}
		return &preferencesStore{
			repo:      postgres.NewViewPreferencesRepository(repoConfig),
			txManager: postgres.NewTransactionManager(repoConfig),
			close:     pool.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unknown PREFERENCES_STORE %q (want memory, sqlite or postgres)", cfg.PreferencesStore)
	}
}
