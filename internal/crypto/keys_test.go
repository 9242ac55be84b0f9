package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveVaultKey(t *testing.T) {
	key, err := DeriveVaultKey("server-secret")
	require.NoError(t, err)
	assert.Len(t, key, KeySize)

	// Детерминированность: один секрет - один ключ между запусками
	again, err := DeriveVaultKey("server-secret")
	require.NoError(t, err)
	assert.Equal(t, key, again)

	other, err := DeriveVaultKey("another-secret")
	require.NoError(t, err)
	assert.NotEqual(t, key, other)
}

func TestDeriveVaultKey_Empty(t *testing.T) {
	_, err := DeriveVaultKey("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "encryption secret cannot be empty")
}
