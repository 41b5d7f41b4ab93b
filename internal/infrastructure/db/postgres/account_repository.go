package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/accounts/account-service/internal/core/domain"
)

const uniqueViolation = "23505"

// rowQuerier is the part of *pgxpool.Pool the repository uses.
type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// AccountRepository implements ports.AccountRepository on the accounts table.
type AccountRepository struct {
	db rowQuerier
}

func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{db: pool}
}

func (r *AccountRepository) Insert(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	query := `
		INSERT INTO accounts (id, email, name, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, email, name, password_hash, created_at, updated_at`

	row := r.db.QueryRow(ctx, query,
		uuid.New(),
		domain.NormalizeEmail(account.Email),
		account.Name,
		account.PasswordHash,
		account.CreatedAt.UTC(),
		account.UpdatedAt.UTC(),
	)

	created, err := scanAccount(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrAccountConflict
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}
	return created, nil
}

func (r *AccountRepository) FindByNormalizedEmail(ctx context.Context, email string) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	row := r.db.QueryRow(ctx,
		`SELECT id, email, name, password_hash, created_at, updated_at FROM accounts WHERE email = $1`,
		domain.NormalizeEmail(email),
	)

	a, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return a, nil
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var (
		a  domain.Account
		id uuid.UUID
	)
	if err := row.Scan(&id, &a.Email, &a.Name, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	a.ID = id.String()
	a.CreatedAt = a.CreatedAt.UTC()
	a.UpdatedAt = a.UpdatedAt.UTC()
	return &a, nil
}

// isUniqueViolation reports whether err is a Postgres unique constraint violation.
func isUniqueViolation(err error) bool {
	var pge *pgconn.PgError
	if errors.As(err, &pge) {
		return pge.Code == uniqueViolation
	}
	return false
}
