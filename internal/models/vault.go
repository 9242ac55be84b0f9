package models

import "time"

// VaultEntry представляет запись хранилища паролей.
// Secret хранится в БД только в зашифрованном виде; в памяти сервиса
// после расшифровки содержит открытый текст.
type VaultEntry struct {
	CreatedAt  time.Time `json:"created_at"`  // время создания
	UpdatedAt  time.Time `json:"updated_at"`  // время последнего обновления
	ID         string    `json:"id"`          // UUID записи
	OwnerEmail string    `json:"owner_email"` // email владельца (внешний ключ на Account.Email)
	Title      string    `json:"title"`       // название (например, "Gmail")
	Username   string    `json:"username"`    // логин на целевом сервисе
	Secret     string    `json:"secret"`      // пароль: шифротекст в хранилище, открытый текст в ответе
	URL        string    `json:"url"`         // опциональный URL
	Notes      string    `json:"notes"`       // опциональные заметки
}

// VaultFields содержит изменяемые пользователем поля записи.
// Используется при создании и при полной замене записи.
type VaultFields struct {
	Title    string
	Username string
	Password string
	URL      string
	Notes    string
}
