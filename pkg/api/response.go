package api

import "encoding/json"

// Response общий конверт всех ответов API
type Response struct {
	Data    any    `json:"data,omitempty"`    // полезная нагрузка при успехе
	Message string `json:"message,omitempty"` // сообщение для пользователя
	Success bool   `json:"success"`
}

// RawResponse конверт с неразобранной полезной нагрузкой, используется клиентом
type RawResponse struct {
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Success bool            `json:"success"`
}
