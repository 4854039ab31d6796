package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Logging logs every request with a generated request ID, the outcome
// status and the handling duration. The request ID is echoed back in the
// X-Request-Id header so clients can correlate logs.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		w.Header().Set("X-Request-Id", requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, req)

		duration := time.Since(start).Milliseconds()
		userID := GetUserID(req.Context()) // empty if unauthenticated

		logFn := slog.Info
		if rec.status >= 500 {
			logFn = slog.Error
		} else if rec.status >= 400 {
			logFn = slog.Warn
		}
		logFn("HTTP request",
			"method", req.Method,
			"path", req.URL.Path,
			"status", rec.status,
			"request_id", requestID,
			"user_id", userID,
			"duration_ms", duration,
		)
	})
}
