// Package mongo implements the credential store on MongoDB.
//
// Collections reuse the field names of the Next.js deployment,
// users{email,password,createdAt,updatedAt} and
// vaults{userEmail,title,username,password,url,notes,createdAt,updatedAt},
// but the data is not compatible with it: _id is a UUID string rather than
// an ObjectId, and secrets are AES-GCM/base64 rather than CryptoJS passphrase
// ciphertext. Legacy documents cannot be updated or deleted by id, and List
// fails on them with a decrypt error. Migrate or use a fresh database.
package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/iudanet/passvault/internal/server/storage"
)

const (
	accountsCollection = "users"
	vaultCollection    = "vaults"
)

var _ storage.Store = (*Storage)(nil)

// Storage is the MongoDB storage implementation
type Storage struct {
	client   *mongo.Client
	accounts *mongo.Collection
	vault    *mongo.Collection
}

// New connects to MongoDB, verifies the connection and ensures indexes
func New(ctx context.Context, uri, database string) (*Storage, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	s := NewWithDatabase(client.Database(database))

	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to create indexes: %w", err)
	}

	return s, nil
}

// NewWithDatabase wraps an already connected database handle
func NewWithDatabase(db *mongo.Database) *Storage {
	return &Storage{
		client:   db.Client(),
		accounts: db.Collection(accountsCollection),
		vault:    db.Collection(vaultCollection),
	}
}

// Ping checks the connection to the primary
func (s *Storage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client
func (s *Storage) Close() error {
	return s.client.Disconnect(context.Background())
}

func (s *Storage) ensureIndexes(ctx context.Context) error {
	_, err := s.accounts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = s.vault.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userEmail", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	return err
}
