package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/iudanet/passvault/internal/models"
	"github.com/iudanet/passvault/internal/server/storage"
)

const (
	uniqueViolation           = "23505"
	invalidTextRepresentation = "22P02"
)

func (s *Storage) CreateAccount(ctx context.Context, account *models.Account) error {
	query :=
		`INSERT INTO accounts (id, email, password_hash, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)
		 `

	_, err := s.db.ExecContext(ctx, query,
		account.ID, account.Email, account.PasswordHash, account.CreatedAt, account.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return storage.ErrAccountExists
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (s *Storage) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	query :=
		`SELECT id, email, password_hash, created_at, updated_at FROM accounts
		 WHERE email = $1
		 `

	account := &models.Account{}
	err := s.db.QueryRowContext(ctx, query, email).Scan(
		&account.ID, &account.Email, &account.PasswordHash, &account.CreatedAt, &account.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrAccountNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return account, nil
}

func isInvalidText(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == invalidTextRepresentation
}
