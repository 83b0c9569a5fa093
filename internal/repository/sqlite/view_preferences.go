package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Hazembel/mamaty-dashboard-sub000/internal/domain/models"
	"github.com/Hazembel/mamaty-dashboard-sub000/internal/domain/repositories"
)

// ViewPreferencesRepository implements repositories.ViewPreferencesRepository.
type ViewPreferencesRepository struct {
	db *sql.DB
}

// NewViewPreferencesRepository wraps an opened database.
func NewViewPreferencesRepository(db *sql.DB) repositories.ViewPreferencesRepository {
	return &ViewPreferencesRepository{db: db}
}

const columns = `operator_id, entity, page_size, sort_key, direction, tab, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scan(row scanner) (*models.ViewPreferences, error) {
	var (
		prefs            models.ViewPreferences
		created, updated string
	)
	if err := row.Scan(&prefs.OperatorID, &prefs.Entity, &prefs.PageSize, &prefs.SortKey,
		&prefs.Direction, &prefs.Tab, &created, &updated); err != nil {
		return nil, err
	}
	var err error
	if prefs.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if prefs.UpdatedAt, err = time.Parse(time.RFC3339Nano, updated); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &prefs, nil
}

func (r *ViewPreferencesRepository) Get(ctx context.Context, operatorID, entity string) (*models.ViewPreferences, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+columns+` FROM view_preferences WHERE operator_id = ? AND entity = ?`,
		operatorID, entity)
	prefs, err := scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get view preferences: %w", err)
	}
	return prefs, nil
}

func (r *ViewPreferencesRepository) List(ctx context.Context, operatorID string) ([]models.ViewPreferences, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+columns+` FROM view_preferences WHERE operator_id = ? ORDER BY entity`,
		operatorID)
	if err != nil {
		return nil, fmt.Errorf("list view preferences: %w", err)
	}
	defer rows.Close()

	out := []models.ViewPreferences{}
	for rows.Next() {
		prefs, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan view preferences: %w", err)
		}
		out = append(out, *prefs)
	}
	return out, rows.Err()
}

func (r *ViewPreferencesRepository) Upsert(ctx context.Context, prefs *models.ViewPreferences) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO view_preferences (`+columns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (operator_id, entity) DO UPDATE SET
			page_size = excluded.page_size,
			sort_key = excluded.sort_key,
			direction = excluded.direction,
			tab = excluded.tab,
			updated_at = excluded.updated_at`,
		prefs.OperatorID, prefs.Entity, prefs.PageSize, prefs.SortKey, prefs.Direction, prefs.Tab,
		prefs.CreatedAt.UTC().Format(time.RFC3339Nano), prefs.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("upsert view preferences: %w", err)
	}
	return nil
}

func (r *ViewPreferencesRepository) Delete(ctx context.Context, operatorID, entity string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM view_preferences WHERE operator_id = ? AND entity = ?`, operatorID, entity)
	if err != nil {
		return fmt.Errorf("delete view preferences: %w", err)
	}
	return nil
}
