package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/Hazembel/mamaty-dashboard-sub000/internal/auth"
	"github.com/Hazembel/mamaty-dashboard-sub000/internal/httputil"
)

// bearerToken extracts the token of an "Authorization: Bearer" header.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// AuthMiddleware reads the operator out of the bearer token and stores it
// in the request context. Requests whose path is listed in public, and CORS
// pre-flights, pass through without a token.
func AuthMiddleware(inspector auth.TokenInspector, logger *slog.Logger, public ...string) func(http.Handler) http.Handler {
	open := make(map[string]bool, len(public))
	for _, p := range public {
		open[p] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions || open[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			token := bearerToken(r)
			op, err := inspector.Inspect(token)
			if err != nil {
				logger.Debug("request rejected",
					"path", r.URL.Path,
					"request_id", httputil.GetRequestID(r),
					"error", err,
				)
				httputil.RespondErrorWithExtras(w, http.StatusUnauthorized, err.Error(), map[string]interface{}{
					"logout": true,
				})
				return
			}

			op.Token = token
			next.ServeHTTP(w, httputil.WithOperator(r, op))
		})
	}
}
