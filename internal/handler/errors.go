package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Hazembel/mamaty-dashboard-sub000/internal/domain"
	"github.com/Hazembel/mamaty-dashboard-sub000/internal/httputil"
)

// handleError converts domain errors to HTTP responses
func handleError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var (
		sessionErr    *domain.SessionExpiredError
		validationErr *domain.ValidationError
		notFoundErr   *domain.NotFoundError
		serverErr     *domain.ServerError
	)

	switch normalized := domain.Normalize(err); {
	case errors.As(normalized, &sessionErr):
		httputil.RespondErrorWithExtras(w, http.StatusUnauthorized, sessionErr.Error(), map[string]interface{}{
			"logout": true,
		})
	case errors.As(normalized, &validationErr):
		extras := map[string]interface{}{}
		if validationErr.Field != "" {
			extras["field"] = validationErr.Field
		}
		httputil.RespondErrorWithExtras(w, http.StatusBadRequest, validationErr.Error(), extras)
	case errors.As(normalized, &notFoundErr):
		httputil.RespondError(w, http.StatusNotFound, notFoundErr.Error())
	case errors.As(normalized, &serverErr):
		logger.Warn("upstream request failed", "status", serverErr.Status, "error", serverErr.Message)
		httputil.RespondErrorWithExtras(w, http.StatusBadGateway, serverErr.Message, map[string]interface{}{
			"upstream_status": serverErr.Status,
		})
	default:
		logger.Error("unexpected error", "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, domain.GenericErrorMessage)
	}
}
