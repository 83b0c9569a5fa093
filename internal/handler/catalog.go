package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Hazembel/mamaty-dashboard-sub000/internal/catalog"
	"github.com/Hazembel/mamaty-dashboard-sub000/internal/httputil"
	"github.com/Hazembel/mamaty-dashboard-sub000/internal/service/console"
)

// CatalogHandler exposes the page setup the console UI renders from
type CatalogHandler struct {
	catalog    *catalog.Registry
	workspaces *console.Workspaces
	logger     *slog.Logger
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(cat *catalog.Registry, workspaces *console.Workspaces, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog:    cat,
		workspaces: workspaces,
		logger:     logger,
	}
}

// GetCatalog lists every entity page with its labels, filters and tabs
// GET /api/catalog
func (h *CatalogHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	names := h.catalog.Names()
	entities := make([]*catalog.Entity, 0, len(names))
	for _, name := range names {
		entry, err := h.catalog.Get(name)
		if err != nil {
			handleError(w, h.logger, err)
			return
		}
		entities = append(entities, entry)
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"entities": entities,
	})
}

// HealthCheck is a simple health check endpoint
// GET /health
func (h *CatalogHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"status":     "ok",
		"time":       time.Now(),
		"workspaces": h.workspaces.Len(),
	})
}
