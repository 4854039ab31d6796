// Package auth implements account registration, password verification and
// JWT session tokens for the ledger API.
package auth

import (
	"context"

	"github.com/AyushiKadu/Expense-Tracker/internal/models"
)

// Authenticator defines the interface for authentication implementations,
// so the HTTP layer does not care whether credentials are passwords or
// something else (OAuth, passkeys) later on.
type Authenticator interface {
	// Register creates a new account with the given email and credential.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate verifies the credentials and returns the account if valid.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential checks if the credential meets the implementation's
	// requirements before any storage work happens.
	ValidateCredential(credential string) error
}
