// Package vault implements the ownership-scoped vault operations.
//
// Every operation takes the caller identity resolved from the session;
// the owner email is never taken from request input.
package vault

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/passvault/internal/models"
	"github.com/iudanet/passvault/internal/server/storage"
)

// Сообщения валидации, возвращаемые клиенту как есть
const (
	MsgFieldsRequired = "Title, username, and password are required"
	MsgIDRequired     = "ID is required"
)

var (
	// ErrUnauthorized indicates that the call has no caller identity
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound indicates that no entry matches the id for this owner
	ErrNotFound = errors.New("item not found")
)

// ValidationError describes rejected input
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Cipher encrypts entry secrets at rest
type Cipher interface {
	EncryptString(plaintext string) (string, error)
	DecryptString(ciphertext string) (string, error)
}

// Service performs vault CRUD for the calling user
type Service struct {
	logger *slog.Logger
	store  storage.VaultStorage
	cipher Cipher
	now    func() time.Time
}

// NewService создает сервис хранилища
func NewService(logger *slog.Logger, store storage.VaultStorage, cipher Cipher) *Service {
	return &Service{
		logger: logger,
		store:  store,
		cipher: cipher,
		now:    time.Now,
	}
}

// Create шифрует пароль и сохраняет новую запись владельца
func (s *Service) Create(ctx context.Context, id *models.Identity, fields models.VaultFields) (*models.VaultEntry, error) {
	owner, err := ownerOf(id)
	if err != nil {
		return nil, err
	}

	if err := validateFields(fields); err != nil {
		return nil, err
	}

	secret, err := s.cipher.EncryptString(fields.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt secret: %w", err)
	}

	now := s.now().UTC()
	entry := &models.VaultEntry{
		ID:         uuid.New().String(),
		OwnerEmail: owner,
		Title:      fields.Title,
		Username:   fields.Username,
		Secret:     secret,
		URL:        fields.URL,
		Notes:      fields.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.store.CreateEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to create entry: %w", err)
	}

	// Клиенту возвращаем открытый текст
	out := *entry
	out.Secret = fields.Password

	return &out, nil
}

// List возвращает все записи владельца с расшифрованными паролями, новые первыми.
// Если хотя бы одна запись не расшифровывается, возвращается ошибка.
func (s *Service) List(ctx context.Context, id *models.Identity) ([]*models.VaultEntry, error) {
	owner, err := ownerOf(id)
	if err != nil {
		return nil, err
	}

	entries, err := s.store.ListEntries(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	for _, entry := range entries {
		if err := s.decrypt(entry); err != nil {
			return nil, err
		}
	}

	return entries, nil
}

// Update полностью заменяет изменяемые поля записи владельца
func (s *Service) Update(ctx context.Context, id *models.Identity, entryID string, fields models.VaultFields) (*models.VaultEntry, error) {
	owner, err := ownerOf(id)
	if err != nil {
		return nil, err
	}

	if entryID == "" {
		return nil, &ValidationError{Message: MsgIDRequired}
	}

	if err := validateFields(fields); err != nil {
		return nil, err
	}

	secret, err := s.cipher.EncryptString(fields.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt secret: %w", err)
	}

	entry, err := s.store.ReplaceEntry(ctx, owner, entryID, storage.EntryFields{
		Title:    fields.Title,
		Username: fields.Username,
		Secret:   secret,
		URL:      fields.URL,
		Notes:    fields.Notes,
	}, s.now().UTC())
	if err != nil {
		if errors.Is(err, storage.ErrEntryNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update entry: %w", err)
	}

	entry.Secret = fields.Password

	return entry, nil
}

// Delete удаляет запись владельца
func (s *Service) Delete(ctx context.Context, id *models.Identity, entryID string) error {
	owner, err := ownerOf(id)
	if err != nil {
		return err
	}

	if entryID == "" {
		return &ValidationError{Message: MsgIDRequired}
	}

	if err := s.store.DeleteEntry(ctx, owner, entryID); err != nil {
		if errors.Is(err, storage.ErrEntryNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete entry: %w", err)
	}

	return nil
}

func (s *Service) decrypt(entry *models.VaultEntry) error {
	plain, err := s.cipher.DecryptString(entry.Secret)
	if err != nil {
		return fmt.Errorf("failed to decrypt entry %s: %w", entry.ID, err)
	}
	entry.Secret = plain
	return nil
}

func ownerOf(id *models.Identity) (string, error) {
	if id == nil || id.Email == "" {
		return "", ErrUnauthorized
	}
	return id.Email, nil
}

func validateFields(fields models.VaultFields) error {
	if fields.Title == "" || fields.Username == "" || fields.Password == "" {
		return &ValidationError{Message: MsgFieldsRequired}
	}
	return nil
}
