package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/Hazembel/mamaty-dashboard-sub000/internal/domain"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var pb dto.Metric
	if err := c.Write(&pb); err != nil {
		t.Fatalf("write metric: %v", err)
	}
	return pb.GetCounter().GetValue()
}

func TestRecordMutation(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.RecordMutation("advices", "create", nil)
	m.RecordMutation("advices", "create", nil)
	m.RecordMutation("advices", "create", domain.NewValidationError("day", "taken"))
	m.RecordMutation("users", "delete", errors.New("boom"))

	tests := []struct {
		labels []string
		want   float64
	}{
		{labels: []string{"advices", "create", "ok"}, want: 2},
		{labels: []string{"advices", "create", "rejected"}, want: 1},
		{labels: []string{"users", "delete", "error"}, want: 1},
	}
	for _, tt := range tests {
		if got := counterValue(t, m.mutations.WithLabelValues(tt.labels...)); got != tt.want {
			t.Errorf("%v = %v, want %v", tt.labels, got, tt.want)
		}
	}
}

func TestMiddleware_LabelsByPattern(t *testing.T) {
	m := New(prometheus.NewRegistry())
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/{entity}/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	handler := m.Middleware(mux)

	for _, path := range []string{"/api/users/1", "/api/users/2"} {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	if got := counterValue(t, m.requests.WithLabelValues("GET", "GET /api/{entity}/{id}", "404")); got != 2 {
		t.Errorf("requests = %v, want 2", got)
	}
}

func TestWatchWorkspaces(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.WatchWorkspaces(func() int { return 3 })

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, f := range families {
		if f.GetName() == "mamaty_console_workspaces" {
			if got := f.GetMetric()[0].GetGauge().GetValue(); got != 3 {
				t.Errorf("workspaces = %v, want 3", got)
			}
			return
		}
	}
	t.Error("workspaces gauge not registered")
}
