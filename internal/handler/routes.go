package handler

import "net/http"

// Handlers groups the HTTP handlers of the console gateway
type Handlers struct {
	Console *ConsoleHandler
	Views   *ViewPreferencesHandler
	Session *SessionHandler
	Catalog *CatalogHandler
}

// PublicPaths are served without a session token
var PublicPaths = []string{"/health", "/api/auth/login"}

// Register adds every route to mux (Go 1.22+ enhanced patterns)
func (h *Handlers) Register(mux *http.ServeMux) {
	// Health check
	mux.HandleFunc("GET /health", h.Catalog.HealthCheck)

	// Session routes
	mux.HandleFunc("POST /api/auth/login", h.Session.Login)
	mux.HandleFunc("POST /api/auth/logout", h.Session.Logout)

	// Page setup and saved views
	mux.HandleFunc("GET /api/catalog", h.Catalog.GetCatalog)
	mux.HandleFunc("GET /api/me/views", h.Views.ListPreferences)
	mux.HandleFunc("GET /api/me/views/{entity}", h.Views.GetPreferences)
	mux.HandleFunc("PATCH /api/me/views/{entity}", h.Views.UpdatePreferences)
	mux.HandleFunc("DELETE /api/me/views/{entity}", h.Views.ResetPreferences)

	// Advice scheduler grid
	mux.HandleFunc("GET /api/advices/slots", h.Console.AdviceSlots)

	// Entity pages
	mux.HandleFunc("GET /api/{entity}", h.Console.List)
	mux.HandleFunc("POST /api/{entity}", h.Console.Create)
	mux.HandleFunc("PATCH /api/{entity}/{id}", h.Console.Update)
	mux.HandleFunc("DELETE /api/{entity}/{id}", h.Console.Delete)
	mux.HandleFunc("POST /api/{entity}/{id}/status", h.Console.SetStatus)
}
