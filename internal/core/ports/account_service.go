package ports

import (
	"context"

	"github.com/accounts/account-service/internal/core/domain"
)

// SignupInput carries the raw signup fields as received from the client.
type SignupInput struct {
	Email    string
	Name     string
	Password string
}

// SigninInput carries the raw signin fields as received from the client.
type SigninInput struct {
	Email    string
	Password string
}

// AccountService defines the signup and signin use cases.
type AccountService interface {
	Signup(ctx context.Context, input SignupInput) (*domain.Account, error)
	Signin(ctx context.Context, input SigninInput) (*domain.Account, error)
}
