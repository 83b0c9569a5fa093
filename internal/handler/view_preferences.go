package handler

import (
	"log/slog"
	"net/http"

	"github.com/Hazembel/mamaty-dashboard-sub000/internal/domain/models"
	"github.com/Hazembel/mamaty-dashboard-sub000/internal/domain/services"
	"github.com/Hazembel/mamaty-dashboard-sub000/internal/httputil"
	"github.com/Hazembel/mamaty-dashboard-sub000/internal/service/console"
)

// ViewPreferencesHandler handles the operator's saved list views
type ViewPreferencesHandler struct {
	service    services.ViewPreferencesService
	workspaces *console.Workspaces
	logger     *slog.Logger
}

// NewViewPreferencesHandler creates a new view preferences handler
func NewViewPreferencesHandler(service services.ViewPreferencesService, workspaces *console.Workspaces, logger *slog.Logger) *ViewPreferencesHandler {
	return &ViewPreferencesHandler{
		service:    service,
		workspaces: workspaces,
		logger:     logger,
	}
}

// apply pushes the new defaults to the operator's live page, if any.
func (h *ViewPreferencesHandler) apply(operatorID string, prefs *models.ViewPreferences) {
	ws, ok := h.workspaces.Lookup(operatorID)
	if !ok {
		return
	}
	page, err := ws.Page(prefs.Entity)
	if err != nil {
		return
	}
	if err := page.Configure(prefs); err != nil {
		h.logger.Warn("saved view not applied", "operator", operatorID, "entity", prefs.Entity, "error", err)
	}
}

// ListPreferences lists every saved view
// GET /api/me/views
func (h *ViewPreferencesHandler) ListPreferences(w http.ResponseWriter, r *http.Request) {
	op, err := requireOperator(r)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	prefs, err := h.service.ListPreferences(r.Context(), op.ID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"views": prefs,
	})
}

// GetPreferences retrieves the view of one entity
// GET /api/me/views/{entity}
func (h *ViewPreferencesHandler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	op, err := requireOperator(r)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	prefs, err := h.service.GetPreferences(r.Context(), op.ID, r.PathValue("entity"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, prefs)
}

// UpdatePreferences updates the view of one entity
// PATCH /api/me/views/{entity}
func (h *ViewPreferencesHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	op, err := requireOperator(r)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	// Parse request
	var req models.UpdateViewPreferencesRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	prefs, err := h.service.UpdatePreferences(r.Context(), op.ID, r.PathValue("entity"), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	h.apply(op.ID, prefs)

	httputil.RespondJSON(w, http.StatusOK, prefs)
}

// ResetPreferences drops the saved view of one entity
// DELETE /api/me/views/{entity}
func (h *ViewPreferencesHandler) ResetPreferences(w http.ResponseWriter, r *http.Request) {
	op, err := requireOperator(r)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	entity := r.PathValue("entity")
	if err := h.service.ResetPreferences(r.Context(), op.ID, entity); err != nil {
		handleError(w, h.logger, err)
		return
	}
	if defaults, err := h.service.GetPreferences(r.Context(), op.ID, entity); err == nil {
		h.apply(op.ID, defaults)
	}

	w.WriteHeader(http.StatusNoContent)
}
