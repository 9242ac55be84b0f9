package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/iudanet/passvault/internal/models"
)

// ErrStoreClosed indicates that the lazy store was closed
var ErrStoreClosed = errors.New("store is closed")

// Lazy connects to the backend on first use and reuses the connection.
// Concurrent first callers wait for a single connect; a failed connect
// is not cached, the next call tries again.
type Lazy struct {
	open   Opener
	store  Store
	mu     sync.RWMutex
	closed bool
}

// NewLazy wraps opener into a Store that connects on demand
func NewLazy(open Opener) *Lazy {
	return &Lazy{open: open}
}

// Connect returns the connected store, opening it if needed
func (l *Lazy) Connect(ctx context.Context) (Store, error) {
	l.mu.RLock()
	s, closed := l.store, l.closed
	l.mu.RUnlock()
	if closed {
		return nil, ErrStoreClosed
	}
	if s != nil {
		return s, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Повторная проверка под эксклюзивной блокировкой
	if l.closed {
		return nil, ErrStoreClosed
	}
	if l.store != nil {
		return l.store, nil
	}

	s, err := l.open(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to connect store: %w", err)
	}
	l.store = s

	return s, nil
}

// CreateAccount implements AccountStorage
func (l *Lazy) CreateAccount(ctx context.Context, account *models.Account) error {
	s, err := l.Connect(ctx)
	if err != nil {
		return err
	}
	return s.CreateAccount(ctx, account)
}

// GetAccountByEmail implements AccountStorage
func (l *Lazy) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	s, err := l.Connect(ctx)
	if err != nil {
		return nil, err
	}
	return s.GetAccountByEmail(ctx, email)
}

// CreateEntry implements VaultStorage
func (l *Lazy) CreateEntry(ctx context.Context, entry *models.VaultEntry) error {
	s, err := l.Connect(ctx)
	if err != nil {
		return err
	}
	return s.CreateEntry(ctx, entry)
}

// ListEntries implements VaultStorage
func (l *Lazy) ListEntries(ctx context.Context, ownerEmail string) ([]*models.VaultEntry, error) {
	s, err := l.Connect(ctx)
	if err != nil {
		return nil, err
	}
	return s.ListEntries(ctx, ownerEmail)
}

// ReplaceEntry implements VaultStorage
func (l *Lazy) ReplaceEntry(ctx context.Context, ownerEmail, id string, fields EntryFields, updatedAt time.Time) (*models.VaultEntry, error) {
	s, err := l.Connect(ctx)
	if err != nil {
		return nil, err
	}
	return s.ReplaceEntry(ctx, ownerEmail, id, fields, updatedAt)
}

// DeleteEntry implements VaultStorage
func (l *Lazy) DeleteEntry(ctx context.Context, ownerEmail, id string) error {
	s, err := l.Connect(ctx)
	if err != nil {
		return err
	}
	return s.DeleteEntry(ctx, ownerEmail, id)
}

// Ping connects if needed and pings the backend
func (l *Lazy) Ping(ctx context.Context) error {
	s, err := l.Connect(ctx)
	if err != nil {
		return err
	}
	return s.Ping(ctx)
}

// Close closes the underlying store if it was opened.
// Subsequent calls return ErrStoreClosed.
func (l *Lazy) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true

	if l.store == nil {
		return nil
	}
	return l.store.Close()
}
