package ports

import "github.com/accounts/account-service/internal/core/domain"

// TokenIssuer mints and verifies session tokens.
type TokenIssuer interface {
	Issue(account *domain.Account) (*domain.IssuedToken, error)
	// Verify returns domain.ErrInvalidToken for any token it did not sign.
	Verify(token string) (*domain.Profile, error)
}
