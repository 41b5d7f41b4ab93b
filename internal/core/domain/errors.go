package domain

import (
	"errors"
	"strings"
)

var (
	ErrValidationFailed     = errors.New("validation failed")
	ErrInvalidInput         = errors.New("invalid input")
	ErrAccountConflict      = errors.New("account already exists")
	ErrAccountNotFound      = errors.New("account not found")
	ErrAuthenticationFailed = errors.New("invalid credentials")
	ErrInvalidToken         = errors.New("invalid token")
	ErrInternal             = errors.New("internal failure")
)

// Violation is a single field-level validation failure.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every violation found for one request.
// errors.Is(err, ErrValidationFailed) holds for it.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Field+": "+v.Message)
	}
	return ErrValidationFailed.Error() + ": " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// Messages returns the human-readable violation messages in order.
func (e *ValidationError) Messages() []string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Message)
	}
	return msgs
}
