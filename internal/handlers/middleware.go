package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/kateder/internal/app"
	"github.com/shrimpsizemoose/kateder/internal/metrics"
)

// RequireAuth resolves the bearer token before any handler code runs.
// Missing, unknown and expired tokens are rejected the same way.
func RequireAuth(service *app.Service, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resolved, err := service.ResolveSession(r.Context(), app.BearerToken(r))
		if err != nil {
			writeServerError(w, "Session resolution failed", err)
			return
		}
		if resolved == nil {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED")
			return
		}

		next(w, r.WithContext(app.WithUser(r.Context(), resolved.User)))
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Instrument records the request duration histogram under the route pattern.
func Instrument(pattern string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)

		duration := time.Since(start).Seconds()
		metrics.APIRequestDuration.WithLabelValues(
			pattern,
			r.Method,
			strconv.Itoa(rec.status),
		).Observe(duration)
		logger.Debug.Printf("%s %s -> %d (%.4fs)", r.Method, r.URL.Path, rec.status, duration)
	}
}
