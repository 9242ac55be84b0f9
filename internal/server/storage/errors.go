package storage

import "errors"

// Common storage errors
var (
	// ErrAccountNotFound indicates that account was not found in storage
	ErrAccountNotFound = errors.New("account not found")

	// ErrAccountExists indicates that account with this email already exists
	ErrAccountExists = errors.New("account already exists")

	// ErrEntryNotFound indicates that vault entry was not found
	// or belongs to another owner
	ErrEntryNotFound = errors.New("vault entry not found")

	// ErrNotConnected indicates that the store has not been opened yet
	ErrNotConnected = errors.New("store is not connected")
)
