package handler

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/accounts/account-service/internal/api/middleware"
	"github.com/accounts/account-service/internal/core/domain"
)

// ctxProfile extracts the profile injected by the Auth middleware. A missing
// profile means the route was registered without the middleware; the request
// is rejected the same way as an invalid token.
func ctxProfile(c echo.Context) (*domain.Profile, error) {
	profile, ok := c.Get(middleware.ProfileKey).(*domain.Profile)
	if !ok || profile == nil {
		return nil, fmt.Errorf("no profile in context: %w", domain.ErrInvalidToken)
	}
	return profile, nil
}
