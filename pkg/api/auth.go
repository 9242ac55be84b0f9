package api

import "time"

// CredentialsRequest представляет запрос на регистрацию или вход
type CredentialsRequest struct {
	Email    string `json:"email"`    // email пользователя
	Password string `json:"password"` // пароль в открытом виде (только по TLS)
}

// UserInfo представляет публичные данные пользователя
type UserInfo struct {
	ID    string `json:"id"`    // UUID пользователя
	Email string `json:"email"` // нормализованный email
}

// SigninResponse представляет ответ на успешный вход
type SigninResponse struct {
	ExpiresAt time.Time `json:"expires_at"` // время истечения сессии
	User      UserInfo  `json:"user"`       // данные пользователя
	Token     string    `json:"token"`      // JWT сессии
}

// SessionResponse представляет текущую сессию
type SessionResponse struct {
	ExpiresAt time.Time `json:"expires_at"` // время истечения сессии
	User      UserInfo  `json:"user"`       // данные пользователя
}

// HealthResponse представляет ответ health check
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}
