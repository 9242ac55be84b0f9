package cli

import (
	"context"
	"log/slog"

	"github.com/iudanet/passvault/internal/client/api"
	"github.com/iudanet/passvault/internal/client/auth"
	"github.com/iudanet/passvault/internal/client/storage/boltdb"
)

// DefaultOpener opens the BoltDB session cache and an HTTP client for serverURL
func DefaultOpener(logger *slog.Logger) Opener {
	return func(ctx context.Context, serverURL, dbPath string) (*Services, error) {
		store, err := boltdb.New(ctx, dbPath)
		if err != nil {
			return nil, err
		}

		apiClient := api.NewClient(serverURL)

		return &Services{
			Auth:  auth.NewService(apiClient, store, logger),
			Vault: apiClient,
			Close: store.Close,
		}, nil
	}
}
