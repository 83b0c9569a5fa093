package handler

import (
	"log/slog"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/Hazembel/mamaty-dashboard-sub000/internal/auth"
	"github.com/Hazembel/mamaty-dashboard-sub000/internal/client"
	"github.com/Hazembel/mamaty-dashboard-sub000/internal/domain"
	"github.com/Hazembel/mamaty-dashboard-sub000/internal/httputil"
	"github.com/Hazembel/mamaty-dashboard-sub000/internal/service/console"
)

// SessionHandler opens and closes operator sessions
type SessionHandler struct {
	client     *client.Client
	inspector  auth.TokenInspector
	workspaces *console.Workspaces
	logger     *slog.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(c *client.Client, inspector auth.TokenInspector, workspaces *console.Workspaces, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		client:     c,
		inspector:  inspector,
		workspaces: workspaces,
		logger:     logger,
	}
}

func validateLogin(req *client.LoginRequest) error {
	err := validation.ValidateStruct(req,
		validation.Field(&req.Email, validation.Required, is.EmailFormat),
		validation.Field(&req.Password, validation.Required),
	)
	if errs, ok := err.(validation.Errors); ok {
		for _, field := range []string{"email", "password"} {
			if fieldErr := errs[field]; fieldErr != nil {
				return domain.NewValidationError(field, "%s", fieldErr.Error())
			}
		}
	}
	return err
}

// Login exchanges credentials for an upstream session token
// POST /api/auth/login
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req client.LoginRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validateLogin(&req); err != nil {
		handleError(w, h.logger, err)
		return
	}

	resp, err := h.client.Login(r.Context(), req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	op, err := h.inspector.Inspect(resp.Token)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	// A new session starts from freshly loaded collections
	h.workspaces.Evict(op.ID)
	h.logger.Info("operator logged in", "operator", op.ID, "role", op.Role)

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"token":    resp.Token,
		"operator": op,
		"user":     resp.User,
	})
}

// Logout drops the operator's workspace
// POST /api/auth/logout
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	op, err := requireOperator(r)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	h.workspaces.Evict(op.ID)
	h.logger.Info("operator logged out", "operator", op.ID)
	w.WriteHeader(http.StatusNoContent)
}
