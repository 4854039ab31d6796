package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "expense_tracker_request_duration_seconds",
			Help:    "HTTP request handling duration.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// ExpensesCreated counts expenses recorded since process start.
	ExpensesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "expense_tracker_expenses_created_total",
		Help: "Number of expenses recorded.",
	})

	// ExpensesDeleted counts expenses removed since process start.
	ExpensesDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "expense_tracker_expenses_deleted_total",
		Help: "Number of expenses deleted.",
	})
)

// Metrics records a duration histogram sample for every request, labeled
// by method, route pattern and status.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, req)

		path := req.Pattern
		if path == "" {
			path = req.URL.Path
		}
		requestDuration.
			WithLabelValues(req.Method, path, strconv.Itoa(rec.status)).
			Observe(time.Since(start).Seconds())
	})
}
