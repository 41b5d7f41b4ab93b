package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/accounts/account-service/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
// Message is a string, or a list of strings for validation failures.
type errorResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    any    `json:"message"`
	Error      string `json:"error"`
}

type errorMapping struct {
	target  error
	status  int
	message string
}

// errorTable maps the error taxonomy to HTTP status codes and the message the
// client sees. Order matters: the first match wins.
var errorTable = []errorMapping{
	{domain.ErrAccountConflict, http.StatusConflict, "User with this email already exists"},
	{domain.ErrAuthenticationFailed, http.StatusUnauthorized, "Invalid credentials"},
	{domain.ErrInvalidToken, http.StatusUnauthorized, "Unauthorized"},
	{domain.ErrInternal, http.StatusInternalServerError, "Internal server error"},
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps the domain error taxonomy to HTTP status codes via errorTable.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"statusCode", "message", "error"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		resp := errorResponse{StatusCode: code, Message: msg, Error: http.StatusText(code)}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, any) {
	// Echo's own errors (404 from router, 405, body limit, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, ve.Messages()
	}
	if errors.Is(err, domain.ErrInvalidInput) {
		return http.StatusBadRequest, err.Error()
	}

	for _, m := range errorTable {
		if errors.Is(err, m.target) {
			return m.status, m.message
		}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("unhandled error")

	return http.StatusInternalServerError, "Internal server error"
}
