package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/Hazembel/mamaty-dashboard-sub000/internal/client"
	"github.com/Hazembel/mamaty-dashboard-sub000/internal/httputil"
)

// maxRequestIDLength bounds ids accepted from callers
const maxRequestIDLength = 128

// RequestID tags every request with an id, reusing the caller's
// X-Request-ID when it sends one. The id is echoed in the response and
// forwarded on upstream calls.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(client.RequestIDHeader)
		if id == "" || len(id) > maxRequestIDLength {
			id = uuid.NewString()
		}

		w.Header().Set(client.RequestIDHeader, id)
		r = httputil.WithRequestID(r, id)
		r = r.WithContext(client.WithRequestID(r.Context(), id))
		next.ServeHTTP(w, r)
	})
}
