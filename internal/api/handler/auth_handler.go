package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/accounts/account-service/internal/core/ports"
)

type AuthHandler struct {
	accounts ports.AccountService
	tokens   ports.TokenIssuer
}

func NewAuthHandler(accounts ports.AccountService, tokens ports.TokenIssuer) *AuthHandler {
	return &AuthHandler{accounts: accounts, tokens: tokens}
}

// Signup handles POST /auth/signup. Body: {email, name, password}.
// Responds 201 with {access_token, user}.
func (h *AuthHandler) Signup(c echo.Context) error {
	fields, err := bindFields(c, "email", "name", "password")
	if err != nil {
		return err
	}

	account, err := h.accounts.Signup(c.Request().Context(), ports.SignupInput{
		Email:    fields["email"],
		Name:     fields["name"],
		Password: fields["password"],
	})
	if err != nil {
		return err
	}

	issued, err := h.tokens.Issue(account)
	if err != nil {
		return fmt.Errorf("signup: %w", err)
	}
	return c.JSON(http.StatusCreated, issued)
}

// Signin handles POST /auth/signin. Body: {email, password}.
// Responds 200 with {access_token, user}.
func (h *AuthHandler) Signin(c echo.Context) error {
	fields, err := bindFields(c, "email", "password")
	if err != nil {
		return err
	}

	account, err := h.accounts.Signin(c.Request().Context(), ports.SigninInput{
		Email:    fields["email"],
		Password: fields["password"],
	})
	if err != nil {
		return err
	}

	issued, err := h.tokens.Issue(account)
	if err != nil {
		return fmt.Errorf("signin: %w", err)
	}
	return c.JSON(http.StatusOK, issued)
}
