package httputil

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
)

// MaxBodyBytes caps request bodies. Record payloads carry image URLs, never
// the images themselves.
const MaxBodyBytes = 1 << 20

// ParseJSON decodes JSON from the request body into the given destination.
// It limits the request body size to prevent abuse and provides clear error messages.
func ParseJSON(w http.ResponseWriter, r *http.Request, dest interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)

	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	return nil
}

// ReadObject reads the request body as a raw JSON object. Record bodies are
// forwarded upstream field by field, so they are not decoded into a struct.
func ReadObject(w http.ResponseWriter, r *http.Request) (json.RawMessage, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, fmt.Errorf("request body exceeds %d bytes", tooLarge.Limit)
		}
		return nil, fmt.Errorf("failed to read body: %w", err)
	}

	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '{' || !json.Valid(body) {
		return nil, errors.New("body must be a JSON object")
	}
	return body, nil
}

// QueryInt reads an optional positive integer query parameter.
// Returns nil when the parameter is absent.
func QueryInt(r *http.Request, name string) (*int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return nil, fmt.Errorf("%s must be a positive integer", name)
	}
	return &n, nil
}

// QueryString reads an optional query parameter. Returns nil when the
// parameter is not in the query at all, so "?search=" clears a search.
func QueryString(r *http.Request, name string) *string {
	values, ok := r.URL.Query()[name]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}

// QueryBool reads a boolean flag such as "?refresh" or "?refresh=true".
func QueryBool(r *http.Request, name string) bool {
	values, ok := r.URL.Query()[name]
	if !ok {
		return false
	}
	if len(values) == 0 || values[0] == "" {
		return true
	}
	b, err := strconv.ParseBool(values[0])
	return err == nil && b
}
