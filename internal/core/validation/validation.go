// Package validation holds the field rules for signup and signin payloads.
// Results are advisory for any client that mirrors them; the service applies
// them authoritatively.
package validation

import (
	"fmt"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/accounts/account-service/internal/core/domain"
	"github.com/accounts/account-service/internal/core/ports"
)

const (
	MinNameLength     = 3
	MinPasswordLength = 8

	passwordTag = "password_strength"
)

// rule is one go-playground tag and the message reported when it fails.
type rule struct {
	tag     string
	message string
}

type fieldRules struct {
	field string
	rules []rule
}

var (
	emailRules = fieldRules{"email", []rule{
		{"required", "Email is required"},
		{"email", "Please provide a valid email address"},
	}}
	nameRules = fieldRules{"name", []rule{
		{"required", "Name is required"},
		{fmt.Sprintf("min=%d", MinNameLength), fmt.Sprintf("Name must be at least %d characters long", MinNameLength)},
	}}
	passwordRules = fieldRules{"password", []rule{
		{"required", "Password is required"},
		{fmt.Sprintf("min=%d", MinPasswordLength), fmt.Sprintf("Password must be at least %d characters long", MinPasswordLength)},
		{passwordTag, "Password must contain at least one letter, one number, and one special character"},
	}}
	// Signin skips length and strength rules: a stored hash may predate them.
	signinPasswordRules = fieldRules{"password", passwordRules.rules[:1]}
)

// Validator wraps go-playground/validator with the account rules registered.
type Validator struct {
	v *validator.Validate
}

// New returns a Validator ready for use. It is safe for concurrent use.
func New() *Validator {
	v := validator.New()
	// Registration only fails on an empty tag or nil func.
	_ = v.RegisterValidation(passwordTag, func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return utf8.RuneCountInString(s) >= MinPasswordLength && HasRequiredCharacterClasses(s)
	})
	return &Validator{v: v}
}

// Signup returns every violation of the signup rules, ordered email, name,
// password. A field that breaks several rules yields one violation per rule.
// An empty result means the input is valid.
func (val *Validator) Signup(in ports.SignupInput) []domain.Violation {
	var out []domain.Violation
	out = val.check(out, emailRules, in.Email)
	out = val.check(out, nameRules, in.Name)
	return val.check(out, passwordRules, in.Password)
}

// Signin checks email format and password presence only.
func (val *Validator) Signin(in ports.SigninInput) []domain.Violation {
	var out []domain.Violation
	out = val.check(out, emailRules, in.Email)
	return val.check(out, signinPasswordRules, in.Password)
}

// check runs each rule on its own so a value reports every rule it breaks,
// not only the first.
func (val *Validator) check(out []domain.Violation, fr fieldRules, value string) []domain.Violation {
	for _, r := range fr.rules {
		if err := val.v.Var(value, r.tag); err != nil {
			out = append(out, domain.Violation{Field: fr.field, Message: r.message})
		}
	}
	return out
}

// HasRequiredCharacterClasses reports whether s contains at least one ASCII
// letter, one digit and one symbol. Any character that is neither an ASCII
// letter nor a digit counts as a symbol, underscore and whitespace included.
func HasRequiredCharacterClasses(s string) bool {
	var letter, digit, symbol bool
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			letter = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			symbol = true
		}
	}
	return letter && digit && symbol
}
