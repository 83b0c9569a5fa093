package services

import (
	"context"

	"github.com/Hazembel/mamaty-dashboard-sub000/internal/domain/models"
)

// ViewPreferencesService defines the business logic for saved list views
type ViewPreferencesService interface {
	// GetPreferences returns the saved view, or the catalog defaults when
	// nothing was saved
	GetPreferences(ctx context.Context, operatorID, entity string) (*models.ViewPreferences, error)

	// UpdatePreferences applies a partial update, validated against the catalog
	UpdatePreferences(ctx context.Context, operatorID, entity string, req *models.UpdateViewPreferencesRequest) (*models.ViewPreferences, error)

	// ListPreferences returns every view the operator saved
	ListPreferences(ctx context.Context, operatorID string) ([]models.ViewPreferences, error)

	// ResetPreferences drops the saved view
	ResetPreferences(ctx context.Context, operatorID, entity string) error
}
