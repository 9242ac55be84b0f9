package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/passvault/internal/models"
	"github.com/iudanet/passvault/internal/server/storage"
)

const entryColumns = `id, owner_email, title, username, secret, url, notes, created_at, updated_at`

// CreateEntry inserts a new vault entry
func (s *Storage) CreateEntry(ctx context.Context, entry *models.VaultEntry) error {
	query := `
		INSERT INTO vault_entries (` + entryColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		entry.ID,
		entry.OwnerEmail,
		entry.Title,
		entry.Username,
		entry.Secret,
		entry.URL,
		entry.Notes,
		timeToUnix(entry.CreatedAt),
		timeToUnix(entry.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert entry: %w", err)
	}

	return nil
}

// ListEntries retrieves all entries of the owner, newest first
func (s *Storage) ListEntries(ctx context.Context, ownerEmail string) (entries []*models.VaultEntry, err error) {
	query := `
		SELECT ` + entryColumns + `
		FROM vault_entries
		WHERE owner_email = ?
		ORDER BY created_at DESC, id DESC
	`

	rows, err := s.db.QueryContext(ctx, query, ownerEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	entries = make([]*models.VaultEntry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return entries, nil
}

// ReplaceEntry replaces the mutable fields of the owner's entry in one statement
func (s *Storage) ReplaceEntry(ctx context.Context, ownerEmail, id string, fields storage.EntryFields, updatedAt time.Time) (*models.VaultEntry, error) {
	query := `
		UPDATE vault_entries
		SET title = ?, username = ?, secret = ?, url = ?, notes = ?, updated_at = ?
		WHERE id = ? AND owner_email = ?
		RETURNING ` + entryColumns

	row := s.db.QueryRowContext(ctx, query,
		fields.Title,
		fields.Username,
		fields.Secret,
		fields.URL,
		fields.Notes,
		timeToUnix(updatedAt),
		id,
		ownerEmail,
	)

	entry, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrEntryNotFound
		}
		return nil, err
	}

	return entry, nil
}

// DeleteEntry removes the owner's entry
func (s *Storage) DeleteEntry(ctx context.Context, ownerEmail, id string) error {
	query := `DELETE FROM vault_entries WHERE id = ? AND owner_email = ?`

	result, err := s.db.ExecContext(ctx, query, id, ownerEmail)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrEntryNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*models.VaultEntry, error) {
	entry := &models.VaultEntry{}
	var createdAt, updatedAt int64

	err := row.Scan(
		&entry.ID,
		&entry.OwnerEmail,
		&entry.Title,
		&entry.Username,
		&entry.Secret,
		&entry.URL,
		&entry.Notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan entry: %w", err)
	}

	entry.CreatedAt = unixToTime(createdAt)
	entry.UpdatedAt = unixToTime(updatedAt)

	return entry, nil
}
