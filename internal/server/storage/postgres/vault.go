package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/passvault/internal/models"
	"github.com/iudanet/passvault/internal/server/storage"
)

func (s *Storage) CreateEntry(ctx context.Context, entry *models.VaultEntry) error {
	query :=
		`INSERT INTO vault_entries (id, owner_email, title, username, secret, url, notes, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 `

	_, err := s.db.ExecContext(ctx, query,
		entry.ID, entry.OwnerEmail, entry.Title, entry.Username, entry.Secret,
		entry.URL, entry.Notes, entry.CreatedAt, entry.UpdatedAt)

	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (s *Storage) ListEntries(ctx context.Context, ownerEmail string) ([]*models.VaultEntry, error) {
	query :=
		`SELECT id, owner_email, title, username, secret, url, notes, created_at, updated_at FROM vault_entries
		 WHERE owner_email = $1
		 ORDER BY created_at DESC, id DESC
		 `

	rows, err := s.db.QueryContext(ctx, query, ownerEmail)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	entries := make([]*models.VaultEntry, 0)
	for rows.Next() {
		entry := &models.VaultEntry{}
		if err := rows.Scan(
			&entry.ID, &entry.OwnerEmail, &entry.Title, &entry.Username, &entry.Secret,
			&entry.URL, &entry.Notes, &entry.CreatedAt, &entry.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return entries, nil
}

func (s *Storage) ReplaceEntry(ctx context.Context, ownerEmail, id string, fields storage.EntryFields, updatedAt time.Time) (*models.VaultEntry, error) {
	query :=
		`UPDATE vault_entries
		 SET title = $1, username = $2, secret = $3, url = $4, notes = $5, updated_at = $6
		 WHERE id = $7 AND owner_email = $8
		 RETURNING id, owner_email, title, username, secret, url, notes, created_at, updated_at
		 `

	entry := &models.VaultEntry{}
	err := s.db.QueryRowContext(ctx, query,
		fields.Title, fields.Username, fields.Secret, fields.URL, fields.Notes, updatedAt,
		id, ownerEmail).Scan(
		&entry.ID, &entry.OwnerEmail, &entry.Title, &entry.Username, &entry.Secret,
		&entry.URL, &entry.Notes, &entry.CreatedAt, &entry.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrEntryNotFound
		}
		// Невалидный UUID тоже означает, что записи нет
		if isInvalidText(err) {
			return nil, storage.ErrEntryNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return entry, nil
}

func (s *Storage) DeleteEntry(ctx context.Context, ownerEmail, id string) error {
	query :=
		`DELETE FROM vault_entries
		 WHERE id = $1 AND owner_email = $2
		 `

	result, err := s.db.ExecContext(ctx, query, id, ownerEmail)
	if err != nil {
		if isInvalidText(err) {
			return storage.ErrEntryNotFound
		}
		return fmt.Errorf("db error: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	if n == 0 {
		return storage.ErrEntryNotFound
	}

	return nil
}
