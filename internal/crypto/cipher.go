package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
)

const (
	// NonceSize - размер nonce для AES-GCM (12 bytes стандартный размер)
	NonceSize = 12
	// KeySize - размер ключа AES-256
	KeySize = 32
)

// ErrDecrypt возвращается, когда шифротекст не удалось расшифровать:
// неверный ключ, поврежденные или усеченные данные, невалидный base64.
var ErrDecrypt = errors.New("failed to decrypt")

// Encrypt шифрует данные с использованием AES-256-GCM
// Формат результата: nonce (12 bytes) + ciphertext + auth_tag (16 bytes)
func Encrypt(plaintext, key []byte) ([]byte, error) {
	if len(plaintext) == 0 {
		return nil, fmt.Errorf("plaintext cannot be empty")
	}
	if len(key) != KeySize {
		return nil, fmt.Errorf("encryption key must be %d bytes, got %d", KeySize, len(key))
	}

	aesGCM, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	// Генерируем случайный nonce
	nonce := make([]byte, NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	// GCM автоматически добавляет authentication tag в конец
	ciphertext := aesGCM.Seal(nil, nonce, plaintext, nil)

	result := make([]byte, 0, len(nonce)+len(ciphertext))
	result = append(result, nonce...)
	result = append(result, ciphertext...)

	return result, nil
}

// EncryptToBase64 шифрует данные и возвращает результат в Base64
// Формат хранения секретов в БД
func EncryptToBase64(plaintext, key []byte) (string, error) {
	encrypted, err := Encrypt(plaintext, key)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(encrypted), nil
}

// Decrypt дешифрует данные, зашифрованные с помощью Encrypt.
// Любая ошибка расшифровки оборачивает ErrDecrypt.
func Decrypt(encrypted, key []byte) ([]byte, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("encryption key must be %d bytes, got %d", KeySize, len(key))
	}
	if len(encrypted) < NonceSize {
		return nil, fmt.Errorf("%w: encrypted data too short", ErrDecrypt)
	}

	aesGCM, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := encrypted[:NonceSize]
	ciphertext := encrypted[NonceSize:]

	// Дешифруем и проверяем authentication tag
	plaintext, err := aesGCM.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: authentication failed or corrupted data", ErrDecrypt)
	}

	return plaintext, nil
}

// DecryptFromBase64 дешифрует данные из Base64
func DecryptFromBase64(encryptedBase64 string, key []byte) ([]byte, error) {
	encrypted, err := base64.StdEncoding.DecodeString(encryptedBase64)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode base64: %v", ErrDecrypt, err)
	}
	return Decrypt(encrypted, key)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return aesGCM, nil
}

// SecretCipher шифрует секреты хранилища одним статическим ключом процесса
type SecretCipher struct {
	key []byte
}

// NewSecretCipher создает шифр из статического секрета конфигурации
func NewSecretCipher(secret string) (*SecretCipher, error) {
	key, err := DeriveVaultKey(secret)
	if err != nil {
		return nil, err
	}
	return &SecretCipher{key: key}, nil
}

// NewSecretCipherFromKey создает шифр из готового 32-байтного ключа
func NewSecretCipherFromKey(key []byte) (*SecretCipher, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("encryption key must be %d bytes, got %d", KeySize, len(key))
	}
	k := make([]byte, KeySize)
	copy(k, key)
	return &SecretCipher{key: k}, nil
}

// EncryptString шифрует секрет и возвращает base64 строку для хранения
func (c *SecretCipher) EncryptString(plaintext string) (string, error) {
	return EncryptToBase64([]byte(plaintext), c.key)
}

// DecryptString расшифровывает секрет, сохраненный EncryptString
func (c *SecretCipher) DecryptString(ciphertext string) (string, error) {
	plaintext, err := DecryptFromBase64(ciphertext, c.key)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}
