package boltdb

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/passvault/internal/client/storage"
)

// создаём тестовое BoltDB хранилище во временном каталоге
func createTestStorage(t *testing.T) *Storage {
	t.Helper()
	store, err := New(context.Background(), filepath.Join(t.TempDir(), "session_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStorage_SaveGetDeleteSession(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	session := &storage.SessionData{
		ExpiresAt: time.Now().Add(time.Hour).UTC().Truncate(time.Second),
		Email:     "alice@example.com",
		UserID:    "user-id-123",
		Token:     "jwt-token",
		ServerURL: "http://localhost:8080",
	}

	// До сохранения сессии нет
	_, err := store.GetSession(ctx)
	assert.ErrorIs(t, err, storage.ErrSessionNotFound)

	require.NoError(t, store.SaveSession(ctx, session))

	got, err := store.GetSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, session.Email, got.Email)
	assert.Equal(t, session.UserID, got.UserID)
	assert.Equal(t, session.Token, got.Token)
	assert.Equal(t, session.ServerURL, got.ServerURL)
	assert.True(t, session.ExpiresAt.Equal(got.ExpiresAt))

	require.NoError(t, store.DeleteSession(ctx))

	_, err = store.GetSession(ctx)
	assert.ErrorIs(t, err, storage.ErrSessionNotFound)

	// Повторное удаление
	assert.ErrorIs(t, store.DeleteSession(ctx), storage.ErrSessionNotFound)
}

func TestStorage_SaveSessionReplaces(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	require.NoError(t, store.SaveSession(ctx, &storage.SessionData{Email: "first@example.com", Token: "t1"}))
	require.NoError(t, store.SaveSession(ctx, &storage.SessionData{Email: "second@example.com", Token: "t2"}))

	got, err := store.GetSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second@example.com", got.Email)
	assert.Equal(t, "t2", got.Token)
}

func TestStorage_SessionPersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "persist.db")

	store, err := New(ctx, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.SaveSession(ctx, &storage.SessionData{Email: "bob@example.com", Token: "tok"}))
	require.NoError(t, store.Close())

	store, err = New(ctx, dbPath)
	require.NoError(t, err)
	defer store.Close()

	got, err := store.GetSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", got.Email)
}

func TestStorage_Closed(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)
	require.NoError(t, store.Close())

	assert.ErrorIs(t, store.SaveSession(ctx, &storage.SessionData{}), storage.ErrStorageClosed)
	_, err := store.GetSession(ctx)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
	assert.ErrorIs(t, store.DeleteSession(ctx), storage.ErrStorageClosed)
}

func TestStorage_SaveNilSession(t *testing.T) {
	store := createTestStorage(t)
	assert.Error(t, store.SaveSession(context.Background(), nil))
}

func TestSessionData_Expired(t *testing.T) {
	now := time.Now()
	assert.False(t, (&storage.SessionData{ExpiresAt: now.Add(time.Minute)}).Expired(now))
	assert.True(t, (&storage.SessionData{ExpiresAt: now}).Expired(now))
	assert.True(t, (&storage.SessionData{ExpiresAt: now.Add(-time.Minute)}).Expired(now))
}
