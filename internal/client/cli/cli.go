// Package cli implements the passvault command-line client on top of cobra.
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/iudanet/passvault/internal/client/iocli"
	"github.com/iudanet/passvault/internal/client/storage"
	pkgapi "github.com/iudanet/passvault/pkg/api"
)

//go:generate moq -out services_mock.go . AuthService VaultAPI

// EnvPassword переменная окружения с паролем учетной записи
const EnvPassword = "PASSVAULT_PASSWORD"

// AuthService управляет сессией клиента
type AuthService interface {
	Signup(ctx context.Context, email, password string) (string, error)
	Signin(ctx context.Context, email, password string) (*storage.SessionData, error)
	Signout(ctx context.Context) error
	Current(ctx context.Context) (*storage.SessionData, error)
	Verify(ctx context.Context) (*storage.SessionData, error)
}

// VaultAPI операции с хранилищем на сервере
type VaultAPI interface {
	ListEntries(ctx context.Context) ([]pkgapi.Entry, error)
	CreateEntry(ctx context.Context, req pkgapi.EntryRequest) (*pkgapi.Entry, error)
	UpdateEntry(ctx context.Context, req pkgapi.EntryRequest) (*pkgapi.Entry, error)
	DeleteEntry(ctx context.Context, id string) error
}

// Services собранные зависимости для команд, которым нужен сервер
type Services struct {
	Auth  AuthService
	Vault VaultAPI
	Close func() error
}

// Opener открывает локальный кэш сессии и клиент сервера
type Opener func(ctx context.Context, serverURL, dbPath string) (*Services, error)

// Cli хранит глобальные опции и лениво открытые сервисы
type Cli struct {
	io        iocli.IO
	clipboard Clipboard
	open      Opener
	services  *Services
	sleep     func(time.Duration)

	serverURL    string
	dbPath       string
	passwordFile string
}

// New создает CLI; open вызывается только командами, работающими с сервером
func New(io iocli.IO, clipboard Clipboard, open Opener) *Cli {
	return &Cli{
		io:        io,
		clipboard: clipboard,
		open:      open,
		sleep:     time.Sleep,
	}
}

// connect открывает сервисы при первом обращении
func (c *Cli) connect(ctx context.Context) (*Services, error) {
	if c.services != nil {
		return c.services, nil
	}
	s, err := c.open(ctx, c.serverURL, c.dbPath)
	if err != nil {
		return nil, err
	}
	c.services = s
	return s, nil
}

// close освобождает сервисы, если они были открыты
func (c *Cli) close() error {
	if c.services == nil || c.services.Close == nil {
		return nil
	}
	err := c.services.Close()
	c.services = nil
	return err
}

// requireSession открывает сервисы и проверяет сохраненную сессию
func (c *Cli) requireSession(ctx context.Context) (*Services, *storage.SessionData, error) {
	s, err := c.connect(ctx)
	if err != nil {
		return nil, nil, err
	}
	session, err := s.Auth.Current(ctx)
	if err != nil {
		return nil, nil, err
	}
	return s, session, nil
}

// readAccountPassword retrieves the account password with priority:
// 1. Environment variable PASSVAULT_PASSWORD
// 2. File given by --password-file
// 3. Interactive prompt (fallback)
func (c *Cli) readAccountPassword(prompt string) (string, error) {
	if envPassword := os.Getenv(EnvPassword); envPassword != "" {
		return envPassword, nil
	}

	if c.passwordFile != "" {
		content, err := os.ReadFile(c.passwordFile)
		if err != nil {
			return "", fmt.Errorf("failed to read password file: %w", err)
		}
		// Убираем trailing newline/whitespace
		password := strings.TrimSpace(string(content))
		if password == "" {
			return "", fmt.Errorf("password file is empty")
		}
		return password, nil
	}

	password, err := c.io.ReadPassword(prompt)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}
	return password, nil
}

// readRequired запрашивает непустое значение, если оно не задано флагом
func (c *Cli) readRequired(value, prompt string) (string, error) {
	if strings.TrimSpace(value) != "" {
		return value, nil
	}
	input, err := c.io.ReadInput(prompt)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	if strings.TrimSpace(input) == "" {
		return "", fmt.Errorf("%s cannot be empty", strings.TrimSuffix(strings.ToLower(strings.TrimSpace(prompt)), ":"))
	}
	return input, nil
}
