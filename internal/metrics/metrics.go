// Package metrics exposes the gateway's Prometheus collectors.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/Hazembel/mamaty-dashboard-sub000/internal/domain"
)

// Metrics holds the collectors. The zero value is not usable; call New.
type Metrics struct {
	mutations       *prometheus.CounterVec
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	reg             prometheus.Registerer
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		mutations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mamaty_console_mutations_total",
			Help: "Record mutations forwarded upstream, by entity, operation and result",
		}, []string{"entity", "operation", "result"}),
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mamaty_console_http_requests_total",
			Help: "HTTP requests served, by route and status code",
		}, []string{"method", "route", "code"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mamaty_console_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 15},
		}, []string{"method", "route"}),
		reg: reg,
	}
}

// result labels a mutation outcome.
func result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrValidation):
		return "rejected"
	case errors.Is(err, domain.ErrSessionExpired):
		return "session_expired"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}

// RecordMutation counts one mutation.
func (m *Metrics) RecordMutation(entity, operation string, err error) {
	m.mutations.WithLabelValues(entity, operation, result(err)).Inc()
}

// WatchWorkspaces exports the number of live workspaces, read from count
// at scrape time.
func (m *Metrics) WatchWorkspaces(count func() int) {
	promauto.With(m.reg).NewGaugeFunc(prometheus.GaugeOpts{
		Name: "mamaty_console_workspaces",
		Help: "Operator workspaces held in memory",
	}, func() float64 { return float64(count()) })
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter { return r.ResponseWriter }

// Middleware counts and times requests. Routes are labelled with the
// ServeMux pattern that matched, so ids do not inflate cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
		m.requestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
