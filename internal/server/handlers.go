package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/AyushiKadu/Expense-Tracker/internal/auth"
	"github.com/AyushiKadu/Expense-Tracker/internal/middleware"
	"github.com/AyushiKadu/Expense-Tracker/internal/models"
	"github.com/AyushiKadu/Expense-Tracker/internal/service"
	"github.com/AyushiKadu/Expense-Tracker/internal/storage"
)

// response is the envelope every endpoint answers with.
type response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type createExpenseRequest struct {
	Name     string `json:"name"`
	Amount   string `json:"amount"`
	Users    string `json:"users"`
	Category string `json:"category"`
	Date     string `json:"date"`
}

type createExpenseResponse struct {
	response
	ExpenseID int64    `json:"id"`
	Users     []string `json:"users"`
}

type ledgerResponse struct {
	response
	Expenses   []models.LedgerRow `json:"expenses"`
	UserTotals []models.UserTotal `json:"userTotals"`
	Total      decimal.Decimal    `json:"total"`
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, req *http.Request) {
	var body createExpenseRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	expense, splits, err := s.ledger.CreateExpense(req.Context(), service.CreateExpenseInput{
		Name:     body.Name,
		Amount:   body.Amount,
		Users:    body.Users,
		Category: body.Category,
		Date:     body.Date,
	})
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("Failed to create expense", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to record expense")
		return
	}

	middleware.ExpensesCreated.Inc()

	users := make([]string, len(splits))
	for i, split := range splits {
		users[i] = split.User
	}
	writeJSON(w, http.StatusCreated, createExpenseResponse{
		response: response{
			Success: true,
			Message: fmt.Sprintf("Expense '%s' split between %s", expense.Name, strings.Join(users, ", ")),
		},
		ExpenseID: expense.ID,
		Users:     users,
	})
}

type deleteExpenseRequest struct {
	ID flexInt64 `json:"id"`
}

// flexInt64 accepts both a JSON number and a numeric string, since form
// clients submit every field as a string.
type flexInt64 int64

func (f *flexInt64) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid expense ID '%s'", raw)
	}
	*f = flexInt64(n)
	return nil
}

func (s *Server) handleDeleteExpenseForm(w http.ResponseWriter, req *http.Request) {
	var body deleteExpenseRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	s.deleteExpense(w, req, int64(body.ID))
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, req *http.Request) {
	id, err := strconv.ParseInt(req.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid expense ID")
		return
	}
	s.deleteExpense(w, req, id)
}

func (s *Server) deleteExpense(w http.ResponseWriter, req *http.Request, id int64) {
	if err := s.ledger.DeleteExpense(req.Context(), id); err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, storage.ErrNotFound):
			writeError(w, http.StatusNotFound, fmt.Sprintf("no expense with ID %d", id))
		default:
			slog.Error("Failed to delete expense", "expense_id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "failed to delete expense")
		}
		return
	}

	middleware.ExpensesDeleted.Inc()
	writeJSON(w, http.StatusOK, response{Success: true, Message: "Expense deleted successfully"})
}

func (s *Server) handleGetExpenses(w http.ResponseWriter, req *http.Request) {
	var selected []string
	if raw := req.URL.Query().Get("users"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				selected = append(selected, trimmed)
			}
		}
	}

	report, err := s.ledger.FetchLedger(req.Context(), selected)
	if err != nil {
		slog.Error("Failed to fetch ledger", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch expenses")
		return
	}

	writeJSON(w, http.StatusOK, ledgerResponse{
		response:   response{Success: true},
		Expenses:   report.Rows,
		UserTotals: report.UserTotals,
		Total:      report.GrandTotal,
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, response{Success: true, Message: "ok"})
}

type authRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password"`
}

type authResponse struct {
	response
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (s *Server) handleRegister(w http.ResponseWriter, req *http.Request) {
	var body authRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	user, token, err := s.authSvc.Register(req.Context(), body.Email, body.DisplayName, body.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrEmailExists):
			writeError(w, http.StatusConflict, err.Error())
		case errors.Is(err, auth.ErrWeakPassword), errors.Is(err, auth.ErrInvalidCredentials):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			slog.Error("Registration failed", "error", err)
			writeError(w, http.StatusInternalServerError, "registration failed")
		}
		return
	}

	writeJSON(w, http.StatusCreated, authResponse{
		response: response{Success: true, Message: "account created"},
		Token:    token,
		User:     user,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, req *http.Request) {
	var body authRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	user, token, err := s.authSvc.Login(req.Context(), body.Email, body.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}
		slog.Error("Login failed", "error", err)
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}

	writeJSON(w, http.StatusOK, authResponse{
		response: response{Success: true},
		Token:    token,
		User:     user,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, response{Success: false, Message: message})
}
