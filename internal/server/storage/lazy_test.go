package storage

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/passvault/internal/models"
)

// fakeStore is a minimal Store used to observe Lazy behaviour
type fakeStore struct {
	pingErr error
	closed  atomic.Bool
}

func (f *fakeStore) CreateAccount(ctx context.Context, account *models.Account) error { return nil }
func (f *fakeStore) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	return &models.Account{Email: email}, nil
}
func (f *fakeStore) CreateEntry(ctx context.Context, entry *models.VaultEntry) error { return nil }
func (f *fakeStore) ListEntries(ctx context.Context, ownerEmail string) ([]*models.VaultEntry, error) {
	return []*models.VaultEntry{}, nil
}
func (f *fakeStore) ReplaceEntry(ctx context.Context, ownerEmail, id string, fields EntryFields, updatedAt time.Time) (*models.VaultEntry, error) {
	return nil, ErrEntryNotFound
}
func (f *fakeStore) DeleteEntry(ctx context.Context, ownerEmail, id string) error {
	return ErrEntryNotFound
}
func (f *fakeStore) Ping(ctx context.Context) error { return f.pingErr }
func (f *fakeStore) Close() error {
	f.closed.Store(true)
	return nil
}

func TestLazy_ConnectsOnce(t *testing.T) {
	var opens atomic.Int32
	store := &fakeStore{}

	lazy := NewLazy(func(ctx context.Context) (Store, error) {
		opens.Add(1)
		// Имитируем медленное подключение, чтобы вызовы пересеклись
		time.Sleep(20 * time.Millisecond)
		return store, nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, err := lazy.Connect(context.Background())
			assert.NoError(t, err)
			assert.Same(t, store, s)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), opens.Load())
}

func TestLazy_FailureIsNotCached(t *testing.T) {
	var opens atomic.Int32
	store := &fakeStore{}

	lazy := NewLazy(func(ctx context.Context) (Store, error) {
		if opens.Add(1) == 1 {
			return nil, errors.New("connection refused")
		}
		return store, nil
	})

	_, err := lazy.Connect(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")

	s, err := lazy.Connect(context.Background())
	require.NoError(t, err)
	assert.Same(t, store, s)
	assert.Equal(t, int32(2), opens.Load())
}

func TestLazy_Delegates(t *testing.T) {
	ctx := context.Background()
	lazy := NewLazy(func(ctx context.Context) (Store, error) {
		return &fakeStore{}, nil
	})

	acc, err := lazy.GetAccountByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", acc.Email)

	entries, err := lazy.ListEntries(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Empty(t, entries)

	err = lazy.DeleteEntry(ctx, "a@b.com", "missing")
	assert.ErrorIs(t, err, ErrEntryNotFound)

	_, err = lazy.ReplaceEntry(ctx, "a@b.com", "missing", EntryFields{}, time.Now())
	assert.ErrorIs(t, err, ErrEntryNotFound)

	assert.NoError(t, lazy.Ping(ctx))
}

func TestLazy_Close(t *testing.T) {
	store := &fakeStore{}
	lazy := NewLazy(func(ctx context.Context) (Store, error) {
		return store, nil
	})

	_, err := lazy.Connect(context.Background())
	require.NoError(t, err)

	require.NoError(t, lazy.Close())
	assert.True(t, store.closed.Load())

	_, err = lazy.Connect(context.Background())
	assert.ErrorIs(t, err, ErrStoreClosed)

	// Повторное закрытие безопасно
	assert.NoError(t, lazy.Close())
}
