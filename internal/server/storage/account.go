package storage

import (
	"context"

	"github.com/iudanet/passvault/internal/models"
)

// AccountStorage defines interface for account persistence
type AccountStorage interface {
	// CreateAccount creates a new account in the storage
	// Returns ErrAccountExists if email is already registered
	CreateAccount(ctx context.Context, account *models.Account) error

	// GetAccountByEmail retrieves account by normalised email
	// Returns ErrAccountNotFound if account doesn't exist
	GetAccountByEmail(ctx context.Context, email string) (*models.Account, error)
}
