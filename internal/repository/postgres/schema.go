package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the console tables if they don't exist
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	createViewPreferences := `
		CREATE TABLE IF NOT EXISTS ` + tables.ViewPreferences + ` (
			operator_id TEXT NOT NULL,
			entity TEXT NOT NULL,
			page_size INTEGER NOT NULL DEFAULT 0,
			sort_key TEXT NOT NULL DEFAULT '',
			direction TEXT NOT NULL DEFAULT '',
			tab TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (operator_id, entity)
		)
	`
	if _, err := pool.Exec(ctx, createViewPreferences); err != nil {
		return fmt.Errorf("create %s: %w", tables.ViewPreferences, err)
	}
	return nil
}

// DropSchema drops the console tables
func DropSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	if _, err := pool.Exec(ctx, `DROP TABLE IF EXISTS `+tables.ViewPreferences+` CASCADE`); err != nil {
		return fmt.Errorf("drop %s: %w", tables.ViewPreferences, err)
	}
	return nil
}
