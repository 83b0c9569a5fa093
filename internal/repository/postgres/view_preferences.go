package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Hazembel/mamaty-dashboard-sub000/internal/domain/models"
	"github.com/Hazembel/mamaty-dashboard-sub000/internal/domain/repositories"
)

// PostgresViewPreferencesRepository implements the ViewPreferencesRepository interface
type PostgresViewPreferencesRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewViewPreferencesRepository creates a new PostgresViewPreferencesRepository
func NewViewPreferencesRepository(config *RepositoryConfig) repositories.ViewPreferencesRepository {
	return &PostgresViewPreferencesRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

const viewPreferencesColumns = `operator_id, entity, page_size, sort_key, direction, tab, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanViewPreferences(row rowScanner, prefs *models.ViewPreferences) error {
	return row.Scan(
		&prefs.OperatorID,
		&prefs.Entity,
		&prefs.PageSize,
		&prefs.SortKey,
		&prefs.Direction,
		&prefs.Tab,
		&prefs.CreatedAt,
		&prefs.UpdatedAt,
	)
}

// Get retrieves the saved view of one entity
func (r *PostgresViewPreferencesRepository) Get(ctx context.Context, operatorID, entity string) (*models.ViewPreferences, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE operator_id = $1 AND entity = $2
	`, viewPreferencesColumns, r.tables.ViewPreferences)

	var prefs models.ViewPreferences
	executor := GetExecutor(ctx, r.pool)
	if err := scanViewPreferences(executor.QueryRow(ctx, query, operatorID, entity), &prefs); err != nil {
		if IsPgNoRowsError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get view preferences: %w", err)
	}
	return &prefs, nil
}

// List retrieves every saved view of an operator
func (r *PostgresViewPreferencesRepository) List(ctx context.Context, operatorID string) ([]models.ViewPreferences, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE operator_id = $1
		ORDER BY entity
	`, viewPreferencesColumns, r.tables.ViewPreferences)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, operatorID)
	if err != nil {
		if IsPgUndefinedTableError(err) {
			return nil, fmt.Errorf("list view preferences: %s missing, run the seed command with -schema-only: %w", r.tables.ViewPreferences, err)
		}
		return nil, fmt.Errorf("list view preferences: %w", err)
	}
	defer rows.Close()

	out := []models.ViewPreferences{}
	for rows.Next() {
		var prefs models.ViewPreferences
		if err := scanViewPreferences(rows, &prefs); err != nil {
			return nil, fmt.Errorf("scan view preferences: %w", err)
		}
		out = append(out, prefs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate view preferences: %w", err)
	}
	return out, nil
}

// Upsert creates or updates the saved view of one entity
func (r *PostgresViewPreferencesRepository) Upsert(ctx context.Context, prefs *models.ViewPreferences) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (operator_id, entity) DO UPDATE SET
			page_size = EXCLUDED.page_size,
			sort_key = EXCLUDED.sort_key,
			direction = EXCLUDED.direction,
			tab = EXCLUDED.tab,
			updated_at = EXCLUDED.updated_at
		RETURNING %s
	`, r.tables.ViewPreferences, viewPreferencesColumns, viewPreferencesColumns)

	executor := GetExecutor(ctx, r.pool)
	err := scanViewPreferences(executor.QueryRow(ctx, query,
		prefs.OperatorID,
		prefs.Entity,
		prefs.PageSize,
		prefs.SortKey,
		prefs.Direction,
		prefs.Tab,
		prefs.CreatedAt,
		prefs.UpdatedAt,
	), prefs)
	if err != nil {
		return fmt.Errorf("upsert view preferences: %w", err)
	}

	r.logger.Debug("view preferences saved", "operator", prefs.OperatorID, "entity", prefs.Entity)
	return nil
}

// Delete removes the saved view of one entity
func (r *PostgresViewPreferencesRepository) Delete(ctx context.Context, operatorID, entity string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE operator_id = $1 AND entity = $2`, r.tables.ViewPreferences)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, operatorID, entity); err != nil {
		return fmt.Errorf("delete view preferences: %w", err)
	}
	return nil
}
