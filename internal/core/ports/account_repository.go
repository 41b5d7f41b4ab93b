package ports

import (
	"context"

	"github.com/accounts/account-service/internal/core/domain"
)

// AccountRepository is the credential store boundary. Email is the only
// uniqueness key and is lowercased before every write and lookup.
type AccountRepository interface {
	// FindByNormalizedEmail returns domain.ErrAccountNotFound when no account matches.
	FindByNormalizedEmail(ctx context.Context, email string) (*domain.Account, error)
	// Insert returns domain.ErrAccountConflict when the email is already taken.
	Insert(ctx context.Context, account *domain.Account) (*domain.Account, error)
}
