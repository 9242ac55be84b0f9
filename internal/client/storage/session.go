package storage

import (
	"context"
	"time"
)

//go:generate moq -out session_mock.go . SessionStorage

// SessionStorage keeps the current CLI session between invocations
type SessionStorage interface {
	// SaveSession replaces the stored session
	SaveSession(ctx context.Context, session *SessionData) error

	// GetSession returns the stored session.
	// Returns ErrSessionNotFound if nobody is signed in.
	GetSession(ctx context.Context) (*SessionData, error)

	// DeleteSession removes the stored session (signout)
	DeleteSession(ctx context.Context) error
}

// SessionData is the cached result of a successful sign-in
type SessionData struct {
	ExpiresAt time.Time `json:"expires_at"`
	Email     string    `json:"email"`
	UserID    string    `json:"user_id"`
	Token     string    `json:"token"`
	ServerURL string    `json:"server_url"`
}

// Expired reports whether the session token is past its expiry at now
func (s *SessionData) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
