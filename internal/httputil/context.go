package httputil

import (
	"context"
	"net/http"

	"github.com/Hazembel/mamaty-dashboard-sub000/internal/domain/models"
)

// Context key type to avoid collisions
type contextKey string

const (
	operatorKey  contextKey = "operator"
	requestIDKey contextKey = "requestID"
)

// WithOperator adds the authenticated operator to the request context
func WithOperator(r *http.Request, op *models.Operator) *http.Request {
	ctx := context.WithValue(r.Context(), operatorKey, op)
	return r.WithContext(ctx)
}

// GetOperator retrieves the operator from context, nil if not authenticated
func GetOperator(r *http.Request) *models.Operator {
	op, _ := r.Context().Value(operatorKey).(*models.Operator)
	return op
}

// WithRequestID adds the request id to the request context
func WithRequestID(r *http.Request, id string) *http.Request {
	ctx := context.WithValue(r.Context(), requestIDKey, id)
	return r.WithContext(ctx)
}

// GetRequestID retrieves the request id, empty string if not found
func GetRequestID(r *http.Request) string {
	id, _ := r.Context().Value(requestIDKey).(string)
	return id
}
