package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/accounts/account-service/internal/core/domain"
)

func runSanitize(t *testing.T, target string) (bool, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	err := SanitizeQuery()(func(c echo.Context) error {
		called = true
		return nil
	})(c)
	return called, err
}

func TestSanitizeQuery_Allows(t *testing.T) {
	for _, target := range []string{"/users/me", "/users/me?page=2", "/users/me?filter[name]=ann"} {
		called, err := runSanitize(t, target)
		if err != nil || !called {
			t.Fatalf("%s: expected pass-through, got %v", target, err)
		}
	}
}

func TestSanitizeQuery_Rejects(t *testing.T) {
	targets := []string{
		"/users/me?$where=1",
		"/users/me?email[$ne]=x",
		"/users/me?__proto__[admin]=1",
		"/users/me?a[Constructor][prototype]=1",
	}
	for _, target := range targets {
		called, err := runSanitize(t, target)
		if called {
			t.Fatalf("%s: should not reach next", target)
		}
		if !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", target, err)
		}
	}
}
