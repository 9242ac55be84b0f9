package cli

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestReadAccountPassword_FromEnvVar проверяет чтение пароля из переменной окружения
func TestReadAccountPassword_FromEnvVar(t *testing.T) {
	h := newHarness(t, "")
	t.Setenv(EnvPassword, "env-password")

	password, err := h.cli.readAccountPassword("Password: ")

	require.NoError(t, err)
	assert.Equal(t, "env-password", password)
}

// TestReadAccountPassword_FromFile проверяет чтение пароля из файла
func TestReadAccountPassword_FromFile(t *testing.T) {
	h := newHarness(t, "")
	path := filepath.Join(t.TempDir(), "password.txt")
	require.NoError(t, os.WriteFile(path, []byte("file-password\n"), 0o600))
	h.cli.passwordFile = path

	password, err := h.cli.readAccountPassword("Password: ")

	require.NoError(t, err)
	assert.Equal(t, "file-password", password)
}

func TestReadAccountPassword_FileErrors(t *testing.T) {
	h := newHarness(t, "")

	h.cli.passwordFile = filepath.Join(t.TempDir(), "missing.txt")
	_, err := h.cli.readAccountPassword("Password: ")
	assert.Error(t, err)

	empty := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(empty, []byte("  \n"), 0o600))
	h.cli.passwordFile = empty
	_, err = h.cli.readAccountPassword("Password: ")
	assert.Error(t, err)
}

// TestReadAccountPassword_Prompt проверяет запрос пароля как последний вариант
func TestReadAccountPassword_Prompt(t *testing.T) {
	h := newHarness(t, "typed-password\n")

	password, err := h.cli.readAccountPassword("Password: ")

	require.NoError(t, err)
	assert.Equal(t, "typed-password", password)
	assert.Contains(t, h.out.String(), "Password: ")
}

func TestReadAccountPassword_EmptyPrompt(t *testing.T) {
	h := newHarness(t, "\n")

	_, err := h.cli.readAccountPassword("Password: ")
	assert.Error(t, err)
}

func TestExecute_GlobalFlagsReachOpener(t *testing.T) {
	h := newHarness(t, "").signedIn()

	require.NoError(t, h.run("--server", "https://vault.example.com", "--db", "/tmp/x.db", "status"))

	assert.Equal(t, "https://vault.example.com", h.serverURL)
	assert.Equal(t, "/tmp/x.db", h.dbPath)
	assert.Equal(t, 1, h.opened)
	assert.Equal(t, 1, h.closed)
}

func TestExecute_OpenError(t *testing.T) {
	h := newHarness(t, "")
	h.cli.open = func(ctx context.Context, serverURL, dbPath string) (*Services, error) {
		return nil, errBoom
	}

	err := h.run("status")
	assert.True(t, errors.Is(err, errBoom))
}

func TestExecute_UnknownCommand(t *testing.T) {
	h := newHarness(t, "")
	assert.Error(t, h.run("frobnicate"))
	assert.Equal(t, 0, h.opened)
}
