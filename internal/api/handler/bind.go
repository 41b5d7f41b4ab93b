package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/accounts/account-service/internal/core/domain"
	"github.com/accounts/account-service/internal/core/sanitize"
)

// bindFields decodes a single JSON object body, sanitizes it and returns the allowed
// fields as plain strings. Absent and null fields come back as "" so the
// validator reports them as required. Unknown properties and non-string
// values are rejected.
func bindFields(c echo.Context, allowed ...string) (map[string]string, error) {
	raw, err := decodeObject(c)
	if err != nil {
		return nil, err
	}

	clean, err := sanitize.Sanitize(raw)
	if err != nil {
		return nil, err
	}
	body, _ := clean.(map[string]any)

	for _, key := range slices.Sorted(maps.Keys(body)) {
		if !slices.Contains(allowed, key) {
			return nil, fmt.Errorf("%w: property %s should not exist", domain.ErrInvalidInput, key)
		}
	}

	fields := make(map[string]string, len(allowed))
	for _, key := range allowed {
		v, ok := body[key]
		if !ok || v == nil {
			fields[key] = ""
			continue
		}
		s, err := sanitize.EnsureString(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		fields[key] = s
	}
	return fields, nil
}

// decodeObject reads exactly one JSON value from the request body. An empty
// body decodes to nil. Anything after the value other than whitespace is
// rejected.
func decodeObject(c echo.Context) (map[string]any, error) {
	req := c.Request()
	if req.ContentLength == 0 {
		return nil, nil
	}
	if !strings.HasPrefix(req.Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		return nil, echo.ErrUnsupportedMediaType
	}

	dec := json.NewDecoder(req.Body)
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: invalid payload", domain.ErrInvalidInput)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: unexpected data after JSON body", domain.ErrInvalidInput)
	}
	return raw, nil
}
