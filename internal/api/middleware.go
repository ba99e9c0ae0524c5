package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"tradenotify/internal/metrics"
	"tradenotify/pkg/logger"
)

// statusRecorder captures the response status for logging and metrics
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// instrument wraps a handler with request-ID tagging, request logging
// and Prometheus metrics
func instrument(route string, log *logger.Logger, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)

		duration := time.Since(start)
		metrics.RecordHTTPRequest(route, rec.status, duration)

		log.Infow("Request handled",
			"request_id", requestID,
			"method", r.Method,
			"route", route,
			"status", rec.status,
			"duration", duration,
		)
	}
}
