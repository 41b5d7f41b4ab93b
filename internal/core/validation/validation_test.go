package validation

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/accounts/account-service/internal/core/domain"
	"github.com/accounts/account-service/internal/core/ports"
)

const strengthMessage = "Password must contain at least one letter, one number, and one special character"

func TestSignup_Valid(t *testing.T) {
	v := New()
	require.Empty(t, v.Signup(ports.SignupInput{Email: "a@b.com", Name: "Ann Lee", Password: "Secure1!"}))
	require.Empty(t, v.Signup(ports.SignupInput{Email: "A@B.com", Name: "Ann", Password: "Passw0rd!"}))
}

const (
	passwordRequired = "Password is required"
	passwordLength   = "Password must be at least 8 characters long"
)

func TestSignup_PasswordRules(t *testing.T) {
	t.Parallel()
	v := New()

	cases := []struct {
		password string
		want     []string
	}{
		{"", []string{passwordRequired, passwordLength, strengthMessage}},
		{"abc", []string{passwordLength, strengthMessage}},
		{"Ab1!", []string{passwordLength, strengthMessage}},
		{"password", []string{strengthMessage}},
		{"1234567!", []string{strengthMessage}},
		{"Password1", []string{strengthMessage}},
		{"Password!", []string{strengthMessage}},
		{"Passw0rd!", nil},
		{"passw0rd_", nil},
		{"pass w0rd", nil},
	}

	for _, tc := range cases {
		t.Run(tc.password, func(t *testing.T) {
			t.Parallel()
			got := v.Signup(ports.SignupInput{Email: "a@b.com", Name: "Ann", Password: tc.password})
			if tc.want == nil {
				require.Empty(t, got)
				return
			}
			want := make([]domain.Violation, 0, len(tc.want))
			for _, msg := range tc.want {
				want = append(want, domain.Violation{Field: "password", Message: msg})
			}
			require.Equal(t, want, got)
		})
	}
}

func TestSignup_ReportsEveryField(t *testing.T) {
	got := New().Signup(ports.SignupInput{Email: "not-an-email", Name: "Al", Password: "short"})
	require.Equal(t, []domain.Violation{
		{Field: "email", Message: "Please provide a valid email address"},
		{Field: "name", Message: "Name must be at least 3 characters long"},
		{Field: "password", Message: passwordLength},
		{Field: "password", Message: strengthMessage},
	}, got)
}

func TestSignup_MissingFields(t *testing.T) {
	got := New().Signup(ports.SignupInput{})
	require.Equal(t, []domain.Violation{
		{Field: "email", Message: "Email is required"},
		{Field: "email", Message: "Please provide a valid email address"},
		{Field: "name", Message: "Name is required"},
		{Field: "name", Message: "Name must be at least 3 characters long"},
		{Field: "password", Message: passwordRequired},
		{Field: "password", Message: passwordLength},
		{Field: "password", Message: strengthMessage},
	}, got)
}

func TestSignin_SkipsStrengthRules(t *testing.T) {
	v := New()
	require.Empty(t, v.Signin(ports.SigninInput{Email: "a@b.com", Password: "x"}))
	require.Equal(t, []domain.Violation{
		{Field: "email", Message: "Please provide a valid email address"},
		{Field: "password", Message: passwordRequired},
	}, v.Signin(ports.SigninInput{Email: "nope", Password: ""}))
}

func TestHasRequiredCharacterClasses(t *testing.T) {
	require.True(t, HasRequiredCharacterClasses("Passw0rd!"))
	require.True(t, HasRequiredCharacterClasses("a1_"))
	require.False(t, HasRequiredCharacterClasses("password"))
	require.False(t, HasRequiredCharacterClasses("1234567!"))
	require.False(t, HasRequiredCharacterClasses("abc12345"))
	require.False(t, HasRequiredCharacterClasses(""))
}
