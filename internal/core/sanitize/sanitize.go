// Package sanitize removes operator-injection and prototype-pollution vectors
// from untrusted, JSON-shaped input before it reaches a store query.
//
// Inputs are the shapes produced by decoding JSON into an any:
// map[string]any, []any, string, float64/json.Number, bool and nil.
package sanitize

import (
	"fmt"
	"strings"

	"github.com/accounts/account-service/internal/core/domain"
)

const operatorPrefix = "$"

// reservedKeys are compared case-insensitively.
var reservedKeys = map[string]struct{}{
	"__proto__":   {},
	"constructor": {},
	"prototype":   {},
}

// Sanitize returns a sanitized copy of v. It fails with domain.ErrInvalidInput
// on the first dangerous key found at any depth. v is never modified.
func Sanitize(v any) (any, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			if IsDangerousKey(k) {
				return nil, fmt.Errorf("%w: dangerous key detected %q", domain.ErrInvalidInput, k)
			}
			clean, err := Sanitize(val)
			if err != nil {
				return nil, err
			}
			out[k] = clean
		}
		return out, nil
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			clean, err := Sanitize(item)
			if err != nil {
				return nil, err
			}
			out[i] = clean
		}
		return out, nil
	case string:
		return stripNull(t), nil
	default:
		return v, nil
	}
}

// IsDangerousKey reports whether key is a store operator or a reserved
// prototype-manipulation name.
func IsDangerousKey(key string) bool {
	if strings.HasPrefix(key, operatorPrefix) {
		return true
	}
	_, reserved := reservedKeys[strings.ToLower(key)]
	return reserved
}

// EnsureString fails with domain.ErrInvalidInput unless v is a plain string.
// The returned value has NUL bytes removed.
func EnsureString(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: expected string value", domain.ErrInvalidInput)
	}
	return stripNull(s), nil
}

func stripNull(s string) string {
	return strings.ReplaceAll(s, "\x00", "")
}
