package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Hazembel/mamaty-dashboard-sub000/internal/domain"
	"github.com/Hazembel/mamaty-dashboard-sub000/internal/domain/models"
	"github.com/Hazembel/mamaty-dashboard-sub000/internal/httputil"
	"github.com/Hazembel/mamaty-dashboard-sub000/internal/service/console"
)

// ConsoleHandler serves the list pages and record mutations of every entity
type ConsoleHandler struct {
	workspaces *console.Workspaces
	logger     *slog.Logger
}

// NewConsoleHandler creates a new console handler
func NewConsoleHandler(workspaces *console.Workspaces, logger *slog.Logger) *ConsoleHandler {
	return &ConsoleHandler{
		workspaces: workspaces,
		logger:     logger,
	}
}

// fail answers with err. An expired session also drops the operator's
// workspace, so the next login starts from fresh collections.
func (h *ConsoleHandler) fail(w http.ResponseWriter, op *models.Operator, err error) {
	if op != nil && errors.Is(err, domain.ErrSessionExpired) {
		h.workspaces.Evict(op.ID)
	}
	handleError(w, h.logger, err)
}

// page resolves the operator's workspace and the page named by the
// {entity} path value.
func (h *ConsoleHandler) page(r *http.Request) (*models.Operator, console.EntityPage, error) {
	op, err := requireOperator(r)
	if err != nil {
		return nil, nil, err
	}
	ws, err := h.workspaces.Acquire(r.Context(), op)
	if err != nil {
		return op, nil, err
	}
	page, err := ws.Page(r.PathValue("entity"))
	return op, page, err
}

// List derives one page of rows
// GET /api/{entity}?search=&filter.{name}=&sort=&tab=&page=&pageSize=&reset&refresh
func (h *ConsoleHandler) List(w http.ResponseWriter, r *http.Request) {
	op, page, err := h.page(r)
	if err != nil {
		h.fail(w, op, err)
		return
	}

	req, err := parseQueryRequest(r)
	if err != nil {
		h.fail(w, op, err)
		return
	}

	listing, err := page.Query(r.Context(), op.Token, req)
	if err != nil {
		h.fail(w, op, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, listing)
}

// Create creates a record
// POST /api/{entity}
func (h *ConsoleHandler) Create(w http.ResponseWriter, r *http.Request) {
	op, page, err := h.page(r)
	if err != nil {
		h.fail(w, op, err)
		return
	}

	body, err := httputil.ReadObject(w, r)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := page.Create(r.Context(), op.Token, body)
	if err != nil {
		h.fail(w, op, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, created)
}

// Update applies a partial update to a record
// PATCH /api/{entity}/{id}
func (h *ConsoleHandler) Update(w http.ResponseWriter, r *http.Request) {
	op, page, err := h.page(r)
	if err != nil {
		h.fail(w, op, err)
		return
	}

	body, err := httputil.ReadObject(w, r)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := page.Update(r.Context(), op.Token, r.PathValue("id"), body)
	if err != nil {
		h.fail(w, op, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, updated)
}

// Delete removes a record
// DELETE /api/{entity}/{id}
func (h *ConsoleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	op, page, err := h.page(r)
	if err != nil {
		h.fail(w, op, err)
		return
	}

	if err := page.Delete(r.Context(), op.Token, r.PathValue("id")); err != nil {
		h.fail(w, op, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// setStatusRequest is the body of a status toggle
type setStatusRequest struct {
	Active httputil.OptionalBool `json:"active"`
}

// SetStatus toggles a record's activity flag
// POST /api/{entity}/{id}/status
func (h *ConsoleHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	op, page, err := h.page(r)
	if err != nil {
		h.fail(w, op, err)
		return
	}

	var req setStatusRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !req.Active.Set() {
		h.fail(w, op, domain.NewValidationError("active", "is required"))
		return
	}

	updated, err := page.SetStatus(r.Context(), op.Token, r.PathValue("id"), req.Active.Value)
	if err != nil {
		h.fail(w, op, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, updated)
}

// AdviceSlots returns the day grid of the advice scheduler
// GET /api/advices/slots?editing={id}
func (h *ConsoleHandler) AdviceSlots(w http.ResponseWriter, r *http.Request) {
	op, err := requireOperator(r)
	if err != nil {
		h.fail(w, op, err)
		return
	}
	ws, err := h.workspaces.Acquire(r.Context(), op)
	if err != nil {
		h.fail(w, op, err)
		return
	}

	cells, err := console.AdviceSlots(r.Context(), ws.Advices, op.Token, r.URL.Query().Get("editing"))
	if err != nil {
		h.fail(w, op, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"slots": cells,
	})
}
