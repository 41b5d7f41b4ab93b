package domain

import "time"

// AuthAction identifies the operation an audit event was recorded for.
type AuthAction string

const (
	ActionSignup AuthAction = "signup"
	ActionSignin AuthAction = "signin"
)

// AuthOutcome is the result of a signup or signin attempt.
type AuthOutcome string

const (
	OutcomeSuccess            AuthOutcome = "success"
	OutcomeValidationFailed   AuthOutcome = "validation_failed"
	OutcomeConflict           AuthOutcome = "conflict"
	OutcomeInvalidCredentials AuthOutcome = "invalid_credentials"
	OutcomeInternalError      AuthOutcome = "internal_error"
)

// AuthEvent is one entry of the authentication audit trail.
// It never carries password material.
type AuthEvent struct {
	Email      string
	Action     AuthAction
	Outcome    AuthOutcome
	OccurredAt time.Time
}
