package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/Hazembel/mamaty-dashboard-sub000/internal/catalog"
	"github.com/Hazembel/mamaty-dashboard-sub000/internal/config"
	"github.com/Hazembel/mamaty-dashboard-sub000/internal/domain"
	"github.com/Hazembel/mamaty-dashboard-sub000/internal/domain/models"
	"github.com/Hazembel/mamaty-dashboard-sub000/internal/domain/repositories"
	"github.com/Hazembel/mamaty-dashboard-sub000/internal/domain/services"
	"github.com/Hazembel/mamaty-dashboard-sub000/internal/listview"
)

// ViewChecker rejects preferences that do not fit the entity's page.
type ViewChecker func(prefs *models.ViewPreferences) error

// ViewPreferencesService implements the ViewPreferencesService interface
type ViewPreferencesService struct {
	prefsRepo repositories.ViewPreferencesRepository
	txManager repositories.TransactionManager
	catalog   *catalog.Registry
	check     ViewChecker
	logger    *slog.Logger
	now       func() time.Time
}

// NewViewPreferencesService creates a new view preferences service
func NewViewPreferencesService(
	prefsRepo repositories.ViewPreferencesRepository,
	txManager repositories.TransactionManager,
	catalog *catalog.Registry,
	check ViewChecker,
	logger *slog.Logger,
) services.ViewPreferencesService {
	return &ViewPreferencesService{
		prefsRepo: prefsRepo,
		txManager: txManager,
		catalog:   catalog,
		check:     check,
		logger:    logger,
		now:       time.Now,
	}
}

// defaultPreferences returns the catalog setup of an entity
func (s *ViewPreferencesService) defaultPreferences(operatorID string, entry *catalog.Entity) (*models.ViewPreferences, error) {
	key, dir, err := listview.SplitSort(entry.Sort)
	if err != nil {
		return nil, fmt.Errorf("catalog sort of %s: %w", entry.Name, err)
	}
	now := s.now()
	return &models.ViewPreferences{
		OperatorID: operatorID,
		Entity:     entry.Name,
		PageSize:   entry.PageSize,
		SortKey:    key,
		Direction:  dir.String(),
		Tab:        entry.Tab,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// GetPreferences retrieves the saved view, or the catalog defaults
func (s *ViewPreferencesService) GetPreferences(ctx context.Context, operatorID, entity string) (*models.ViewPreferences, error) {
	entry, err := s.catalog.Get(entity)
	if err != nil {
		return nil, err
	}

	prefs, err := s.prefsRepo.Get(ctx, operatorID, entity)
	if err != nil {
		return nil, fmt.Errorf("get view preferences: %w", err)
	}
	if prefs == nil {
		s.logger.Debug("no saved view, returning defaults", "operator", operatorID, "entity", entity)
		return s.defaultPreferences(operatorID, entry)
	}
	return prefs, nil
}

// ListPreferences retrieves every saved view of an operator
func (s *ViewPreferencesService) ListPreferences(ctx context.Context, operatorID string) ([]models.ViewPreferences, error) {
	prefs, err := s.prefsRepo.List(ctx, operatorID)
	if err != nil {
		return nil, fmt.Errorf("list view preferences: %w", err)
	}
	return prefs, nil
}

func validateUpdate(req *models.UpdateViewPreferencesRequest) error {
	err := validation.ValidateStruct(req,
		validation.Field(&req.PageSize, validation.Min(config.MinPageSize), validation.Max(config.MaxPageSize)),
		validation.Field(&req.Sort, validation.NilOrNotEmpty, validation.Length(1, 64)),
		validation.Field(&req.Tab, validation.Length(0, 64)),
	)
	if err == nil {
		return nil
	}
	if errs, ok := err.(validation.Errors); ok {
		for _, field := range []string{"page_size", "sort", "tab"} {
			if fieldErr := errs[field]; fieldErr != nil {
				return domain.NewValidationError(field, "%s", fieldErr.Error())
			}
		}
	}
	return fmt.Errorf("%w: %v", domain.ErrValidation, err)
}

// UpdatePreferences applies a partial update to the saved view
func (s *ViewPreferencesService) UpdatePreferences(ctx context.Context, operatorID, entity string, req *models.UpdateViewPreferencesRequest) (*models.ViewPreferences, error) {
	if err := validateUpdate(req); err != nil {
		return nil, err
	}

	var saved *models.ViewPreferences
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		prefs, err := s.GetPreferences(ctx, operatorID, entity)
		if err != nil {
			return err
		}

		if req.PageSize != nil {
			prefs.PageSize = *req.PageSize
		}
		if req.Sort != nil {
			key, dir, err := listview.SplitSort(*req.Sort)
			if err != nil {
				return domain.NewValidationError("sort", "%v", err)
			}
			prefs.SortKey = key
			prefs.Direction = dir.String()
		}
		if req.Tab != nil {
			prefs.Tab = *req.Tab
		}

		if err := s.check(prefs); err != nil {
			return err
		}

		prefs.UpdatedAt = s.now()
		if err := s.prefsRepo.Upsert(ctx, prefs); err != nil {
			return fmt.Errorf("upsert view preferences: %w", err)
		}
		saved = prefs
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("view preferences updated",
		"operator", operatorID,
		"entity", entity,
		"has_page_size", req.PageSize != nil,
		"has_sort", req.Sort != nil,
		"has_tab", req.Tab != nil,
	)
	return saved, nil
}

// ResetPreferences drops the saved view
func (s *ViewPreferencesService) ResetPreferences(ctx context.Context, operatorID, entity string) error {
	if _, err := s.catalog.Get(entity); err != nil {
		return err
	}
	if err := s.prefsRepo.Delete(ctx, operatorID, entity); err != nil {
		return fmt.Errorf("reset view preferences: %w", err)
	}
	s.logger.Info("view preferences reset", "operator", operatorID, "entity", entity)
	return nil
}
