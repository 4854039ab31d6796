// Package server wires the ledger and auth services into an HTTP API.
package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AyushiKadu/Expense-Tracker/internal/auth"
	"github.com/AyushiKadu/Expense-Tracker/internal/middleware"
	"github.com/AyushiKadu/Expense-Tracker/internal/service"
)

// Server exposes the expense ledger over HTTP.
type Server struct {
	ledger     *service.LedgerService
	authSvc    *service.AuthService
	jwtManager *auth.JWTManager
}

// New creates a Server. authSvc and jwtManager may be nil, in which case the
// auth endpoints are not registered and no token handling happens.
func New(ledger *service.LedgerService, authSvc *service.AuthService, jwtManager *auth.JWTManager) *Server {
	return &Server{
		ledger:     ledger,
		authSvc:    authSvc,
		jwtManager: jwtManager,
	}
}

// Handler builds the full HTTP handler: routes plus the middleware chain.
// When a JWT manager is configured, writes require a valid token; reads
// stay open to the household but pick up the caller's identity for logging.
func (s *Server) Handler() http.Handler {
	protect := func(h http.HandlerFunc) http.Handler {
		if s.jwtManager == nil {
			return h
		}
		return middleware.RequireAuth(s.jwtManager, s.authFailure)(h)
	}
	identify := func(h http.HandlerFunc) http.Handler {
		if s.jwtManager == nil {
			return h
		}
		return middleware.OptionalAuth(s.jwtManager)(h)
	}

	mux := http.NewServeMux()

	mux.Handle("POST /expenses", protect(s.handleCreateExpense))
	mux.Handle("GET /expenses", identify(s.handleGetExpenses))
	// Form clients cannot issue DELETE, so deletion is offered both ways.
	mux.Handle("POST /expenses/delete", protect(s.handleDeleteExpenseForm))
	mux.Handle("DELETE /expenses/{id}", protect(s.handleDeleteExpense))

	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.Handle("GET /metrics", promhttp.Handler())

	if s.authSvc != nil {
		mux.HandleFunc("POST /auth/register", s.handleRegister)
		mux.HandleFunc("POST /auth/login", s.handleLogin)
	}

	var handler http.Handler = mux
	handler = middleware.Metrics(handler)
	handler = middleware.Logging(handler)
	handler = cors(handler)
	return handler
}

func (s *Server) authFailure(w http.ResponseWriter, status int, err error) {
	writeError(w, status, err.Error())
}

// cors allows browser clients on other origins to use the API.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if req.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, req)
	})
}
