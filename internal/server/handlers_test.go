package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/AyushiKadu/Expense-Tracker/internal/auth"
	"github.com/AyushiKadu/Expense-Tracker/internal/cache"
	"github.com/AyushiKadu/Expense-Tracker/internal/events"
	"github.com/AyushiKadu/Expense-Tracker/internal/service"
	"github.com/AyushiKadu/Expense-Tracker/internal/storage/sqlite"
)

// newTestServer spins up the HTTP stack over a temp SQLite database,
// without accounts configured.
func newTestServer(t *testing.T) *httptest.Server {
	return newServer(t, false)
}

// newAuthTestServer is newTestServer with accounts and token checks enabled.
func newAuthTestServer(t *testing.T) *httptest.Server {
	return newServer(t, true)
}

func newServer(t *testing.T, withAuth bool) *httptest.Server {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	ledger := service.NewLedgerService(
		store,
		cache.NewInMemoryCache(time.Minute),
		events.NopPublisher{},
		[]string{"Ayushi", "Darshil", "Jesal"},
	)

	var (
		authSvc    *service.AuthService
		jwtManager *auth.JWTManager
	)
	if withAuth {
		jwtManager = auth.NewJWTManager("test-secret", time.Hour)
		authSvc = service.NewAuthService(auth.NewPasswordAuthenticator(store), jwtManager)
	}

	srv := httptest.NewServer(New(ledger, authSvc, jwtManager).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, payload any) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s failed: %v", url, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
}

func createExpense(t *testing.T, baseURL, name, amount, users string) int64 {
	t.Helper()

	resp := postJSON(t, baseURL+"/expenses", map[string]string{
		"name":     name,
		"amount":   amount,
		"users":    users,
		"category": "Food",
		"date":     "2024-03-01",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 creating expense, got %d", resp.StatusCode)
	}

	var body struct {
		Success   bool     `json:"success"`
		ExpenseID int64    `json:"id"`
		Users     []string `json:"users"`
	}
	decodeBody(t, resp, &body)
	if !body.Success || body.ExpenseID == 0 {
		t.Fatalf("unexpected create response: %+v", body)
	}
	return body.ExpenseID
}

func TestCreateAndFetchExpenses(t *testing.T) {
	srv := newTestServer(t)

	createExpense(t, srv.URL, "Groceries", "90.00", "All")
	createExpense(t, srv.URL, "Cab", "25.50", "Ayushi, Darshil")

	resp, err := http.Get(srv.URL + "/expenses")
	if err != nil {
		t.Fatalf("GET /expenses failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Success  bool `json:"success"`
		Expenses []struct {
			ExpenseID   int64  `json:"expense_id"`
			Name        string `json:"name"`
			User        string `json:"user"`
			SplitAmount string `json:"split_amount"`
		} `json:"expenses"`
		UserTotals []struct {
			User  string `json:"user"`
			Total string `json:"total"`
		} `json:"userTotals"`
		Total string `json:"total"`
	}
	decodeBody(t, resp, &body)

	if !body.Success {
		t.Error("expected success=true")
	}
	if len(body.Expenses) != 5 {
		t.Errorf("expected 5 ledger rows, got %d", len(body.Expenses))
	}
	if body.Total != "115.5" {
		t.Errorf("expected grand total 115.5, got %s", body.Total)
	}
	if len(body.UserTotals) != 3 {
		t.Errorf("expected 3 user totals, got %d", len(body.UserTotals))
	}
}

func TestGetExpensesFiltered(t *testing.T) {
	srv := newTestServer(t)

	createExpense(t, srv.URL, "Groceries", "90.00", "All")

	resp, err := http.Get(srv.URL + "/expenses?users=Jesal")
	if err != nil {
		t.Fatalf("GET /expenses failed: %v", err)
	}
	var body struct {
		Expenses   []json.RawMessage `json:"expenses"`
		UserTotals []struct {
			User  string `json:"user"`
			Total string `json:"total"`
		} `json:"userTotals"`
	}
	decodeBody(t, resp, &body)

	if len(body.Expenses) != 3 {
		t.Errorf("expected all 3 rows regardless of filter, got %d", len(body.Expenses))
	}
	if len(body.UserTotals) != 1 || body.UserTotals[0].User != "Jesal" {
		t.Fatalf("expected totals only for Jesal, got %+v", body.UserTotals)
	}
	if body.UserTotals[0].Total != "30" {
		t.Errorf("expected Jesal total 30, got %s", body.UserTotals[0].Total)
	}
}

func TestCreateExpenseValidation(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name    string
		payload map[string]string
	}{
		{"missing name", map[string]string{"amount": "10", "users": "All", "category": "Misc", "date": "2024-03-01"}},
		{"bad amount", map[string]string{"name": "X", "amount": "ten", "users": "All", "category": "Misc", "date": "2024-03-01"}},
		{"bad date", map[string]string{"name": "X", "amount": "10", "users": "All", "category": "Misc", "date": "yesterday"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, srv.URL+"/expenses", tt.payload)
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", resp.StatusCode)
			}
			var body struct {
				Success bool   `json:"success"`
				Message string `json:"message"`
			}
			decodeBody(t, resp, &body)
			if body.Success || body.Message == "" {
				t.Errorf("expected failure envelope with message, got %+v", body)
			}
		})
	}
}

func TestDeleteExpense(t *testing.T) {
	srv := newTestServer(t)
	client := srv.Client()

	id := createExpense(t, srv.URL, "Rent", "1500.00", "All")

	req, _ := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/expenses/%d", srv.URL, id), nil)
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("DELETE failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}

	// Deleting again reports not found.
	req, _ = http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/expenses/%d", srv.URL, id), nil)
	resp, err = client.Do(req)
	if err != nil {
		t.Fatalf("DELETE failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for missing expense, got %d", resp.StatusCode)
	}
}

func TestDeleteExpenseForm(t *testing.T) {
	srv := newTestServer(t)

	id := createExpense(t, srv.URL, "Cab", "25.50", "Ayushi")

	// Form clients send the ID as a string.
	resp := postJSON(t, srv.URL+"/expenses/delete", map[string]string{"id": fmt.Sprint(id)})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}

	resp = postJSON(t, srv.URL+"/expenses/delete", map[string]string{"id": "not-a-number"})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for junk ID, got %d", resp.StatusCode)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	srv := newAuthTestServer(t)

	// Without a token, writes are rejected.
	resp := postJSON(t, srv.URL+"/expenses", map[string]string{
		"name": "Groceries", "amount": "90.00", "users": "All",
		"category": "Food", "date": "2024-03-01",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", resp.StatusCode)
	}

	// Reads stay open.
	getResp, err := http.Get(srv.URL + "/expenses")
	if err != nil {
		t.Fatalf("GET /expenses failed: %v", err)
	}
	getResp.Body.Close()
	if getResp.StatusCode != http.StatusOK {
		t.Errorf("expected 200 for unauthenticated read, got %d", getResp.StatusCode)
	}

	// Register, then write with the returned token.
	resp = postJSON(t, srv.URL+"/auth/register", map[string]string{
		"email": "darshil@example.com", "display_name": "Darshil", "password": "long-enough",
	})
	var registered struct {
		Token string `json:"token"`
	}
	decodeBody(t, resp, &registered)

	body, _ := json.Marshal(map[string]string{
		"name": "Groceries", "amount": "90.00", "users": "All",
		"category": "Food", "date": "2024-03-01",
	})
	req, _ := http.NewRequest(http.MethodPost, srv.URL+"/expenses", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+registered.Token)
	authResp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("POST /expenses failed: %v", err)
	}
	authResp.Body.Close()
	if authResp.StatusCode != http.StatusCreated {
		t.Errorf("expected 201 with token, got %d", authResp.StatusCode)
	}
}

func TestAuthEndpoints(t *testing.T) {
	srv := newAuthTestServer(t)

	register := map[string]string{
		"email":        "ayushi@example.com",
		"display_name": "Ayushi",
		"password":     "correct-horse",
	}

	resp := postJSON(t, srv.URL+"/auth/register", register)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 registering, got %d", resp.StatusCode)
	}
	var registered struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
	}
	decodeBody(t, resp, &registered)
	if !registered.Success || registered.Token == "" {
		t.Fatalf("expected token in register response, got %+v", registered)
	}

	// Duplicate email rejected.
	resp = postJSON(t, srv.URL+"/auth/register", register)
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("expected 409 for duplicate email, got %d", resp.StatusCode)
	}

	resp = postJSON(t, srv.URL+"/auth/login", map[string]string{
		"email":    "ayushi@example.com",
		"password": "correct-horse",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 logging in, got %d", resp.StatusCode)
	}
	var logged struct {
		Token string `json:"token"`
	}
	decodeBody(t, resp, &logged)
	if logged.Token == "" {
		t.Error("expected token in login response")
	}

	resp = postJSON(t, srv.URL+"/auth/login", map[string]string{
		"email":    "ayushi@example.com",
		"password": "wrong",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 for bad password, got %d", resp.StatusCode)
	}
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
}
