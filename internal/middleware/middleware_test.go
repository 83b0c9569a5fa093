package middleware

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Hazembel/mamaty-dashboard-sub000/internal/client"
	"github.com/Hazembel/mamaty-dashboard-sub000/internal/domain"
	"github.com/Hazembel/mamaty-dashboard-sub000/internal/domain/models"
	"github.com/Hazembel/mamaty-dashboard-sub000/internal/httputil"
)

type stubInspector map[string]*models.Operator

func (s stubInspector) Inspect(token string) (*models.Operator, error) {
	op, ok := s[token]
	if !ok {
		return nil, &domain.SessionExpiredError{Message: "session expired"}
	}
	copied := *op
	return &copied, nil
}

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestAuthMiddleware(t *testing.T) {
	inspector := stubInspector{"good": {ID: "op-1", Email: "admin@mamaty.tn"}}
	var seen *models.Operator
	handler := AuthMiddleware(inspector, discard(), "/health")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = httputil.GetOperator(r)
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name       string
		method     string
		path       string
		header     string
		wantStatus int
		wantOp     string
	}{
		{name: "valid bearer", method: http.MethodGet, path: "/api/users", header: "Bearer good", wantStatus: http.StatusNoContent, wantOp: "op-1"},
		{name: "lowercase scheme", method: http.MethodGet, path: "/api/users", header: "bearer good", wantStatus: http.StatusNoContent, wantOp: "op-1"},
		{name: "unknown token", method: http.MethodGet, path: "/api/users", header: "Bearer bad", wantStatus: http.StatusUnauthorized},
		{name: "no header", method: http.MethodGet, path: "/api/users", wantStatus: http.StatusUnauthorized},
		{name: "basic scheme", method: http.MethodGet, path: "/api/users", header: "Basic good", wantStatus: http.StatusUnauthorized},
		{name: "public path", method: http.MethodGet, path: "/health", wantStatus: http.StatusNoContent},
		{name: "preflight", method: http.MethodOptions, path: "/api/users", wantStatus: http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			r := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, r)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusUnauthorized {
				var body map[string]interface{}
				_ = json.Unmarshal(w.Body.Bytes(), &body)
				if body["logout"] != true {
					t.Errorf("401 body should ask for logout: %v", body)
				}
				return
			}
			if tt.wantOp == "" {
				return
			}
			if seen == nil || seen.ID != tt.wantOp || seen.Token != "good" {
				t.Errorf("operator = %+v", seen)
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	var inner string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inner = httputil.GetRequestID(r)
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(client.RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	if inner != "abc-123" || w.Header().Get(client.RequestIDHeader) != "abc-123" {
		t.Errorf("caller id not kept: inner=%q header=%q", inner, w.Header().Get(client.RequestIDHeader))
	}

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if inner == "" || inner == "abc-123" || w.Header().Get(client.RequestIDHeader) != inner {
		t.Errorf("generated id = %q, header %q", inner, w.Header().Get(client.RequestIDHeader))
	}
}

func TestRecovery(t *testing.T) {
	handler := Recovery(discard())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}
