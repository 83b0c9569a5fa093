package repositories

import (
	"context"

	"github.com/Hazembel/mamaty-dashboard-sub000/internal/domain/models"
)

// ViewPreferencesRepository stores operator view preferences.
type ViewPreferencesRepository interface {
	// Get returns nil, nil when the operator saved nothing for the entity
	Get(ctx context.Context, operatorID, entity string) (*models.ViewPreferences, error)

	// List returns every entity preference of an operator
	List(ctx context.Context, operatorID string) ([]models.ViewPreferences, error)

	// Upsert creates or replaces the row for (operator, entity)
	Upsert(ctx context.Context, prefs *models.ViewPreferences) error

	// Delete removes the row, no error if absent
	Delete(ctx context.Context, operatorID, entity string) error
}
