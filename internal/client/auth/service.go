// Package auth manages the CLI session: signup, signin with token caching,
// signout and restoring the cached session on later runs.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	clientapi "github.com/iudanet/passvault/internal/client/api"
	"github.com/iudanet/passvault/internal/client/storage"
	"github.com/iudanet/passvault/internal/validation"
	pkgapi "github.com/iudanet/passvault/pkg/api"
)

// ErrNotSignedIn returned when no valid session is cached
var ErrNotSignedIn = errors.New("not signed in, run 'passvault signin' first")

// APIClient is the subset of the HTTP client used for authentication
type APIClient interface {
	BaseURL() string
	SetToken(token string)
	Signup(ctx context.Context, req pkgapi.CredentialsRequest) (string, error)
	Signin(ctx context.Context, req pkgapi.CredentialsRequest) (*pkgapi.SigninResponse, error)
	Signout(ctx context.Context) error
	Session(ctx context.Context) (*pkgapi.SessionResponse, error)
}

// Service предоставляет функции авторизации клиента
type Service struct {
	apiClient APIClient
	sessions  storage.SessionStorage
	logger    *slog.Logger
	now       func() time.Time
}

// NewService создает новый сервис авторизации
func NewService(apiClient APIClient, sessions storage.SessionStorage, logger *slog.Logger) *Service {
	return &Service{
		apiClient: apiClient,
		sessions:  sessions,
		logger:    logger,
		now:       time.Now,
	}
}

// validateCredentials проверяет данные до отправки на сервер
func validateCredentials(email, password string) (string, error) {
	email = validation.NormalizeEmail(email)
	if err := validation.ValidateEmail(email); err != nil {
		return "", fmt.Errorf("invalid email: %w", err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return "", fmt.Errorf("invalid password: %w", err)
	}
	return email, nil
}

// Signup регистрирует нового пользователя. Сессия не создается.
func (s *Service) Signup(ctx context.Context, email, password string) (string, error) {
	email, err := validateCredentials(email, password)
	if err != nil {
		return "", err
	}

	msg, err := s.apiClient.Signup(ctx, pkgapi.CredentialsRequest{Email: email, Password: password})
	if err != nil {
		return "", fmt.Errorf("registration failed: %w", err)
	}

	return msg, nil
}

// Signin выполняет вход и сохраняет токен сессии локально
func (s *Service) Signin(ctx context.Context, email, password string) (*storage.SessionData, error) {
	email, err := validateCredentials(email, password)
	if err != nil {
		return nil, err
	}

	resp, err := s.apiClient.Signin(ctx, pkgapi.CredentialsRequest{Email: email, Password: password})
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	session := &storage.SessionData{
		ExpiresAt: resp.ExpiresAt,
		Email:     resp.User.Email,
		UserID:    resp.User.ID,
		Token:     resp.Token,
		ServerURL: s.apiClient.BaseURL(),
	}

	if err := s.sessions.SaveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	s.apiClient.SetToken(session.Token)

	return session, nil
}

// Current возвращает сохраненную сессию и подставляет ее токен в клиент.
// Истекшая сессия или сессия другого сервера считается отсутствующей.
func (s *Service) Current(ctx context.Context) (*storage.SessionData, error) {
	session, err := s.sessions.GetSession(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return nil, ErrNotSignedIn
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	if session.Expired(s.now()) {
		return nil, fmt.Errorf("session expired: %w", ErrNotSignedIn)
	}

	if session.ServerURL != "" && session.ServerURL != s.apiClient.BaseURL() {
		return nil, fmt.Errorf("session belongs to %s: %w", session.ServerURL, ErrNotSignedIn)
	}

	s.apiClient.SetToken(session.Token)

	return session, nil
}

// Verify проверяет сохраненную сессию на сервере.
// Отклоненный сервером токен удаляется из кэша.
func (s *Service) Verify(ctx context.Context) (*storage.SessionData, error) {
	session, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := s.apiClient.Session(ctx)
	if err != nil {
		if !errors.Is(err, clientapi.ErrUnauthorized) {
			return nil, fmt.Errorf("failed to verify session: %w", err)
		}
		if err := s.sessions.DeleteSession(ctx); err != nil && !errors.Is(err, storage.ErrSessionNotFound) {
			s.logger.Warn("failed to delete rejected session", slog.Any("error", err))
		}
		s.apiClient.SetToken("")
		return nil, fmt.Errorf("session rejected by server: %w", ErrNotSignedIn)
	}

	session.Email = resp.User.Email
	session.UserID = resp.User.ID
	session.ExpiresAt = resp.ExpiresAt

	return session, nil
}

// Signout удаляет локальную сессию и уведомляет сервер.
// Ошибка сервера не мешает выходу.
func (s *Service) Signout(ctx context.Context) error {
	session, err := s.sessions.GetSession(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return ErrNotSignedIn
		}
		return fmt.Errorf("failed to load session: %w", err)
	}

	s.apiClient.SetToken(session.Token)
	if err := s.apiClient.Signout(ctx); err != nil {
		s.logger.Warn("server signout failed", slog.Any("error", err))
	}

	if err := s.sessions.DeleteSession(ctx); err != nil && !errors.Is(err, storage.ErrSessionNotFound) {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	s.apiClient.SetToken("")

	return nil
}
