package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/iudanet/passvault/internal/models"
	"github.com/iudanet/passvault/internal/server/storage"
)

type entryDocument struct {
	CreatedAt  time.Time `bson:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt"`
	ID         string    `bson:"_id"`
	OwnerEmail string    `bson:"userEmail"`
	Title      string    `bson:"title"`
	Username   string    `bson:"username"`
	Secret     string    `bson:"password"`
	URL        string    `bson:"url"`
	Notes      string    `bson:"notes"`
}

func (d *entryDocument) toModel() *models.VaultEntry {
	return &models.VaultEntry{
		ID:         d.ID,
		OwnerEmail: d.OwnerEmail,
		Title:      d.Title,
		Username:   d.Username,
		Secret:     d.Secret,
		URL:        d.URL,
		Notes:      d.Notes,
		CreatedAt:  d.CreatedAt.UTC(),
		UpdatedAt:  d.UpdatedAt.UTC(),
	}
}

func ownedBy(ownerEmail, id string) bson.D {
	return bson.D{{Key: "_id", Value: id}, {Key: "userEmail", Value: ownerEmail}}
}

// CreateEntry inserts a new vault document
func (s *Storage) CreateEntry(ctx context.Context, entry *models.VaultEntry) error {
	doc := entryDocument{
		ID:         entry.ID,
		OwnerEmail: entry.OwnerEmail,
		Title:      entry.Title,
		Username:   entry.Username,
		Secret:     entry.Secret,
		URL:        entry.URL,
		Notes:      entry.Notes,
		CreatedAt:  entry.CreatedAt,
		UpdatedAt:  entry.UpdatedAt,
	}

	if _, err := s.vault.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert entry: %w", err)
	}

	return nil
}

// ListEntries retrieves all entries of the owner, newest first
func (s *Storage) ListEntries(ctx context.Context, ownerEmail string) ([]*models.VaultEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})

	cursor, err := s.vault.Find(ctx, bson.D{{Key: "userEmail", Value: ownerEmail}}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}

	var docs []entryDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode entries: %w", err)
	}

	entries := make([]*models.VaultEntry, 0, len(docs))
	for i := range docs {
		entries = append(entries, docs[i].toModel())
	}

	return entries, nil
}

// ReplaceEntry replaces the mutable fields of the owner's entry atomically
func (s *Storage) ReplaceEntry(ctx context.Context, ownerEmail, id string, fields storage.EntryFields, updatedAt time.Time) (*models.VaultEntry, error) {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "title", Value: fields.Title},
		{Key: "username", Value: fields.Username},
		{Key: "password", Value: fields.Secret},
		{Key: "url", Value: fields.URL},
		{Key: "notes", Value: fields.Notes},
		{Key: "updatedAt", Value: updatedAt},
	}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc entryDocument
	err := s.vault.FindOneAndUpdate(ctx, ownedBy(ownerEmail, id), update, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, storage.ErrEntryNotFound
		}
		return nil, fmt.Errorf("failed to update entry: %w", err)
	}

	return doc.toModel(), nil
}

// DeleteEntry removes the owner's entry
func (s *Storage) DeleteEntry(ctx context.Context, ownerEmail, id string) error {
	result, err := s.vault.DeleteOne(ctx, ownedBy(ownerEmail, id))
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}

	if result.DeletedCount == 0 {
		return storage.ErrEntryNotFound
	}

	return nil
}
