// Package auth implements account registration and credential verification.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/passvault/internal/crypto"
	"github.com/iudanet/passvault/internal/models"
	"github.com/iudanet/passvault/internal/server/storage"
	"github.com/iudanet/passvault/internal/validation"
)

var (
	// ErrCredentialsRequired indicates that email or password is empty
	ErrCredentialsRequired = errors.New("email and password required")

	// ErrInvalidInput indicates that email or password fails validation
	ErrInvalidInput = errors.New("invalid credentials format")

	// ErrEmailTaken indicates that an account with this email already exists
	ErrEmailTaken = errors.New("user already exists")

	// ErrNoUser indicates that no account is registered with this email
	ErrNoUser = errors.New("no user found with this email")

	// ErrInvalidPassword indicates that the password does not match
	ErrInvalidPassword = errors.New("invalid password")
)

// Service registers accounts and verifies credentials
type Service struct {
	logger   *slog.Logger
	accounts storage.AccountStorage
	now      func() time.Time
}

// NewService создает сервис аутентификации
func NewService(logger *slog.Logger, accounts storage.AccountStorage) *Service {
	return &Service{
		logger:   logger,
		accounts: accounts,
		now:      time.Now,
	}
}

// Signup создает учетную запись с bcrypt хешем пароля
func (s *Service) Signup(ctx context.Context, email, password string) (*models.Account, error) {
	email = validation.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrCredentialsRequired
	}

	if err := validation.ValidateEmail(email); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now().UTC()
	account := &models.Account{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.accounts.CreateAccount(ctx, account); err != nil {
		if errors.Is(err, storage.ErrAccountExists) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.logger.InfoContext(ctx, "account created", slog.String("user_id", account.ID))

	return account, nil
}

// Authenticate проверяет email и пароль и возвращает идентичность пользователя.
// "Нет пользователя" и "неверный пароль" различаются намеренно.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.Identity, error) {
	email = validation.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrCredentialsRequired
	}

	account, err := s.accounts.GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrAccountNotFound) {
			return nil, ErrNoUser
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	ok, err := crypto.VerifyPassword(password, account.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		return nil, ErrInvalidPassword
	}

	return account.Identity(), nil
}
