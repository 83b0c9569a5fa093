package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
type HTTPError interface {
	error
	StatusCode() int
}

// Domain error types implementing HTTPError interface
type (
	// NotFoundError indicates a resource was not found
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input. It blocks the specific save
	// and is recoverable by correcting the input.
	ValidationError struct {
		Field   string
		Message string
	}

	// SessionExpiredError indicates the operator's token is no longer accepted.
	// It is not locally recoverable and forces a logout.
	SessionExpiredError struct {
		Message string
	}

	// UnknownError wraps failures whose shape is not recognised.
	UnknownError struct {
		Message string
		Cause   error
	}
)

// Error implementations
func (e *NotFoundError) Error() string       { return e.Message }
func (e *SessionExpiredError) Error() string { return e.Message }
func (e *UnknownError) Error() string        { return e.Message }

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// StatusCode implementations (HTTPError interface)
func (e *NotFoundError) StatusCode() int       { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int     { return http.StatusBadRequest }
func (e *SessionExpiredError) StatusCode() int { return http.StatusUnauthorized }
func (e *UnknownError) StatusCode() int        { return http.StatusInternalServerError }

// Is allows errors.Is() to match the typed errors against their sentinels
func (e *NotFoundError) Is(target error) bool       { return target == ErrNotFound }
func (e *ValidationError) Is(target error) bool     { return target == ErrValidation }
func (e *SessionExpiredError) Is(target error) bool { return target == ErrSessionExpired }

// Unwrap exposes the original failure for logging
func (e *UnknownError) Unwrap() error { return e.Cause }

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound       = errors.New("not found")
	ErrValidation     = errors.New("validation failed")
	ErrSessionExpired = errors.New("session expired")
	ErrUpstream       = errors.New("upstream request failed")
)

// ServerError represents a failed fetch or mutation reported by the upstream API.
// The local state that triggered it is left unchanged so the operator can retry.
type ServerError struct {
	Status  int    // Upstream HTTP status (0 when the request never got a response)
	Message string // Message extracted from the upstream error body
}

// Error implements the error interface
func (e *ServerError) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("upstream error (status %d): %s", e.Status, e.Message)
}

// StatusCode implements the HTTPError interface
func (e *ServerError) StatusCode() int {
	return http.StatusBadGateway
}

// Is allows errors.Is() to match against ErrUpstream
func (e *ServerError) Is(target error) bool {
	return target == ErrUpstream
}

// NewValidationError builds a field-scoped validation error
func NewValidationError(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// GenericErrorMessage is shown when a failure cannot be classified
const GenericErrorMessage = "an unexpected error occurred"

// Normalize maps any error onto the console taxonomy: session expired,
// validation, server or unknown. A nil error stays nil.
func Normalize(err error) error {
	if err == nil {
		return nil
	}

	var (
		sessionErr    *SessionExpiredError
		validationErr *ValidationError
		serverErr     *ServerError
		notFoundErr   *NotFoundError
		unknownErr    *UnknownError
	)

	switch {
	case errors.As(err, &sessionErr):
		return sessionErr
	case errors.As(err, &validationErr):
		return validationErr
	case errors.As(err, &serverErr):
		return serverErr
	case errors.As(err, &notFoundErr):
		return notFoundErr
	case errors.As(err, &unknownErr):
		return unknownErr
	case errors.Is(err, ErrSessionExpired):
		return &SessionExpiredError{Message: err.Error()}
	case errors.Is(err, ErrValidation):
		return &ValidationError{Message: err.Error()}
	case errors.Is(err, ErrNotFound):
		return &NotFoundError{Message: err.Error()}
	default:
		return &UnknownError{Message: GenericErrorMessage, Cause: err}
	}
}
