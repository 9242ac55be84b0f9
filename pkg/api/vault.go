package api

import "time"

// EntryRequest представляет тело POST и PUT /api/vault.
// ID обязателен только для PUT.
type EntryRequest struct {
	ID       string `json:"id,omitempty"`
	Title    string `json:"title"`
	Username string `json:"username"`
	Password string `json:"password"`
	URL      string `json:"url,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// Entry представляет запись хранилища с расшифрованным паролем
type Entry struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	Username  string    `json:"username"`
	Password  string    `json:"password"`
	URL       string    `json:"url"`
	Notes     string    `json:"notes"`
}
