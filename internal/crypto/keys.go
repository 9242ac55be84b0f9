package crypto

import (
	"fmt"

	"golang.org/x/crypto/argon2"
)

// Параметры Argon2id для деривации ключа хранилища
const (
	// Argon2Time - количество итераций (time cost)
	Argon2Time = 1
	// Argon2Memory - объем памяти в KB (64MB = 64*1024 KB)
	Argon2Memory = 64 * 1024
	// Argon2Threads - количество параллельных потоков
	Argon2Threads = 4
)

// vaultKeySalt - фиксированная соль приложения. Ключ должен быть
// одинаковым при каждом запуске процесса с тем же секретом.
var vaultKeySalt = []byte("passvault/vault-secret/v1")

// DeriveVaultKey получает 32-байтный AES ключ из статического секрета сервера.
// Один ключ на весь процесс: компрометация секрета раскрывает все записи.
func DeriveVaultKey(secret string) ([]byte, error) {
	if secret == "" {
		return nil, fmt.Errorf("encryption secret cannot be empty")
	}

	key := argon2.IDKey([]byte(secret), vaultKeySalt, Argon2Time, Argon2Memory, Argon2Threads, KeySize)
	return key, nil
}
