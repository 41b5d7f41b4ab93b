package middleware

import (
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/accounts/account-service/internal/core/domain"
	"github.com/accounts/account-service/internal/core/ports"
)

// ProfileKey is the echo.Context key holding the verified *domain.Profile.
const ProfileKey = "profile"

// Auth validates the bearer token and injects the caller's profile into context.
func Auth(tokens ports.TokenIssuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return fmt.Errorf("missing authorization header: %w", domain.ErrInvalidToken)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				return fmt.Errorf("malformed authorization header: %w", domain.ErrInvalidToken)
			}

			profile, err := tokens.Verify(strings.TrimSpace(parts[1]))
			if err != nil {
				return fmt.Errorf("verify token: %w", domain.ErrInvalidToken)
			}

			c.Set(ProfileKey, profile)
			return next(c)
		}
	}
}
