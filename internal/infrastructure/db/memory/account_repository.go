// Package memory provides process-local stores for development and tests.
// Contents are lost when the process exits.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/accounts/account-service/internal/core/domain"
)

// AccountRepository is a mutex-guarded map keyed by normalized email. The
// check and the write in Insert happen under one lock, so concurrent inserts
// for the same email resolve to exactly one success.
type AccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]domain.Account
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{accounts: make(map[string]domain.Account)}
}

func (r *AccountRepository) Insert(_ context.Context, account *domain.Account) (*domain.Account, error) {
	key := domain.NormalizeEmail(account.Email)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.accounts[key]; exists {
		return nil, domain.ErrAccountConflict
	}

	stored := *account
	stored.ID = uuid.NewString()
	stored.Email = key
	r.accounts[key] = stored

	out := stored
	return &out, nil
}

func (r *AccountRepository) FindByNormalizedEmail(_ context.Context, email string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.accounts[domain.NormalizeEmail(email)]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return &a, nil
}
