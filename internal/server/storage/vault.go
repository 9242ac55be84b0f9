package storage

import (
	"context"
	"time"

	"github.com/iudanet/passvault/internal/models"
)

// VaultStorage defines interface for vault entry persistence.
// Every method that touches an existing entry takes the owner email:
// the owner filter is the only tenant isolation the store has.
type VaultStorage interface {
	// CreateEntry inserts a new entry; entry.Secret must already be encrypted
	CreateEntry(ctx context.Context, entry *models.VaultEntry) error

	// ListEntries retrieves all entries of the owner, newest created first
	// Returns empty slice if no entries found
	ListEntries(ctx context.Context, ownerEmail string) ([]*models.VaultEntry, error)

	// ReplaceEntry atomically replaces title/username/secret/url/notes and
	// updated_at of the entry matching (id, ownerEmail) and returns the stored row
	// Returns ErrEntryNotFound if no row matches
	ReplaceEntry(ctx context.Context, ownerEmail, id string, fields EntryFields, updatedAt time.Time) (*models.VaultEntry, error)

	// DeleteEntry removes the entry matching (id, ownerEmail)
	// Returns ErrEntryNotFound if no row matches
	DeleteEntry(ctx context.Context, ownerEmail, id string) error
}

// EntryFields is the replaceable part of a stored entry.
// Secret is ciphertext.
type EntryFields struct {
	Title    string
	Username string
	Secret   string
	URL      string
	Notes    string
}
