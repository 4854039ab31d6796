package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/AyushiKadu/Expense-Tracker/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// UserIDKey is the context key for storing the authenticated user ID.
	UserIDKey contextKey = "user_id"
	// EmailKey is the context key for storing the authenticated user's email.
	EmailKey contextKey = "email"
)

// GetUserID extracts the user ID from the context.
// Returns empty string if not found.
func GetUserID(ctx context.Context) string {
	userID, _ := ctx.Value(UserIDKey).(string)
	return userID
}

// GetEmail extracts the user email from the context.
// Returns empty string if not found.
func GetEmail(ctx context.Context) string {
	email, _ := ctx.Value(EmailKey).(string)
	return email
}

// RequireAuth validates the Bearer token on every request and rejects
// requests without a valid one. The user ID and email from the token are
// added to the request context.
func RequireAuth(jwtManager *auth.JWTManager, onError func(w http.ResponseWriter, status int, err error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			claims, err := claimsFromRequest(jwtManager, req)
			if err != nil {
				onError(w, http.StatusUnauthorized, err)
				return
			}

			ctx := context.WithValue(req.Context(), UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, EmailKey, claims.Email)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	}
}

// OptionalAuth enriches the context from a Bearer token when one is
// present and valid, but never rejects a request. Used when accounts are
// configured but the ledger stays open to the household.
func OptionalAuth(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			claims, err := claimsFromRequest(jwtManager, req)
			if err == nil {
				ctx := context.WithValue(req.Context(), UserIDKey, claims.UserID)
				ctx = context.WithValue(ctx, EmailKey, claims.Email)
				req = req.WithContext(ctx)
			}
			next.ServeHTTP(w, req)
		})
	}
}

func claimsFromRequest(jwtManager *auth.JWTManager, req *http.Request) (*auth.Claims, error) {
	authHeader := req.Header.Get("Authorization")
	if authHeader == "" {
		return nil, auth.ErrMissingToken
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, auth.ErrInvalidToken
	}

	return jwtManager.Validate(parts[1])
}
