package storage

import "context"

// Store is a connected credential store holding both collections
type Store interface {
	AccountStorage
	VaultStorage

	// Ping checks that the backend is reachable
	Ping(ctx context.Context) error

	// Close releases the underlying connection
	Close() error
}

// Opener connects to a concrete backend
type Opener func(ctx context.Context) (Store, error)
