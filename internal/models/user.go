package models

import "time"

// Account представляет учетную запись пользователя в системе
type Account struct {
	CreatedAt    time.Time `json:"created_at"`    // время создания
	UpdatedAt    time.Time `json:"updated_at"`    // время последнего обновления
	ID           string    `json:"id"`            // UUID пользователя
	Email        string    `json:"email"`         // уникальный email (нормализованный)
	PasswordHash string    `json:"password_hash"` // bcrypt хеш пароля
}

// Identity описывает вызывающего пользователя, извлеченного из сессии
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Identity возвращает публичную идентичность учетной записи
func (a *Account) Identity() *Identity {
	return &Identity{ID: a.ID, Email: a.Email}
}
