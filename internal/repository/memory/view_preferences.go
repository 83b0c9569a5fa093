// Package memory keeps view preferences in process memory. They are lost
// on restart.
package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/Hazembel/mamaty-dashboard-sub000/internal/domain/models"
	"github.com/Hazembel/mamaty-dashboard-sub000/internal/domain/repositories"
)

type key struct{ operator, entity string }

// ViewPreferencesRepository implements repositories.ViewPreferencesRepository.
type ViewPreferencesRepository struct {
	mu   sync.RWMutex
	rows map[key]models.ViewPreferences
}

// NewViewPreferencesRepository creates an empty store.
func NewViewPreferencesRepository() repositories.ViewPreferencesRepository {
	return &ViewPreferencesRepository{rows: make(map[key]models.ViewPreferences)}
}

func (r *ViewPreferencesRepository) Get(_ context.Context, operatorID, entity string) (*models.ViewPreferences, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	prefs, ok := r.rows[key{operatorID, entity}]
	if !ok {
		return nil, nil
	}
	return &prefs, nil
}

func (r *ViewPreferencesRepository) List(_ context.Context, operatorID string) ([]models.ViewPreferences, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.ViewPreferences{}
	for k, prefs := range r.rows {
		if k.operator == operatorID {
			out = append(out, prefs)
		}
	}
	slices.SortFunc(out, func(a, b models.ViewPreferences) int { return strings.Compare(a.Entity, b.Entity) })
	return out, nil
}

func (r *ViewPreferencesRepository) Upsert(_ context.Context, prefs *models.ViewPreferences) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := key{prefs.OperatorID, prefs.Entity}
	if existing, ok := r.rows[k]; ok {
		prefs.CreatedAt = existing.CreatedAt
	}
	r.rows[k] = *prefs
	return nil
}

func (r *ViewPreferencesRepository) Delete(_ context.Context, operatorID, entity string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, key{operatorID, entity})
	return nil
}
