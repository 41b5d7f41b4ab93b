package middleware

import (
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/accounts/account-service/internal/core/domain"
	"github.com/accounts/account-service/internal/core/sanitize"
)

// SanitizeQuery rejects requests whose query string carries an operator or
// reserved key, including inside bracket notation such as email[$ne]=.
func SanitizeQuery() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			for key := range c.QueryParams() {
				for _, segment := range querySegments(key) {
					if sanitize.IsDangerousKey(segment) {
						return fmt.Errorf("%w: dangerous key detected %q", domain.ErrInvalidInput, segment)
					}
				}
			}
			return next(c)
		}
	}
}

// querySegments splits "a[b][c]" into ["a", "b", "c"].
func querySegments(key string) []string {
	return strings.FieldsFunc(key, func(r rune) bool {
		return r == '[' || r == ']'
	})
}
